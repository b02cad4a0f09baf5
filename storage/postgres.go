package storage

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/lib/pq"
)

// PostgresStore keeps snapshots in a single key/document table. The
// documents stay opaque JSON blobs; nothing in the schema mirrors the
// catalog structure.
type PostgresStore struct {
	db *sql.DB
}

// ConnectPostgres opens the database and creates the snapshot table if
// it does not exist.
func ConnectPostgres(databaseURL string) (*PostgresStore, error) {
	db, err := sql.Open("postgres", databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	schema := `
	CREATE TABLE IF NOT EXISTS snapshots (
		key TEXT PRIMARY KEY,
		doc JSONB NOT NULL,
		updated_at TIMESTAMP WITH TIME ZONE DEFAULT now()
	);`
	if _, err := db.Exec(schema); err != nil {
		return nil, fmt.Errorf("failed to create snapshots table: %w", err)
	}

	return &PostgresStore{db: db}, nil
}

func (ps *PostgresStore) Load(ctx context.Context, key string) ([]byte, error) {
	var doc []byte
	query := `SELECT doc FROM snapshots WHERE key = $1`
	err := ps.db.QueryRowContext(ctx, query, key).Scan(&doc)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load snapshot %s: %w", key, err)
	}
	return doc, nil
}

func (ps *PostgresStore) Save(ctx context.Context, key string, doc []byte) error {
	query := `INSERT INTO snapshots (key, doc, updated_at) VALUES ($1, $2, now())
	          ON CONFLICT (key) DO UPDATE SET doc = EXCLUDED.doc, updated_at = now()`
	if _, err := ps.db.ExecContext(ctx, query, key, doc); err != nil {
		return fmt.Errorf("failed to save snapshot %s: %w", key, err)
	}
	return nil
}

func (ps *PostgresStore) Close() error {
	return ps.db.Close()
}
