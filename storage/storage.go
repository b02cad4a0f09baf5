// Package storage persists whole-collection JSON snapshots under fixed
// keys. There is no partial write and no versioning: every save
// replaces the entire document for its key.
package storage

import (
	"context"
	"errors"
)

// Snapshot keys. Each holds one self-contained JSON document.
const (
	KeyInventory  = "inventory"
	KeyCategories = "categories"
	KeyLocations  = "locations"
	KeySettings   = "settings"
	KeyUsers      = "users"
	KeyActivity   = "activity"
)

// ErrNotFound is returned by Load when no snapshot exists for a key.
var ErrNotFound = errors.New("storage: snapshot not found")

// Store loads and saves whole JSON documents by key.
type Store interface {
	Load(ctx context.Context, key string) ([]byte, error)
	Save(ctx context.Context, key string, doc []byte) error
}
