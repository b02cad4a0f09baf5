// Package store owns the in-memory catalog and is the only writer of
// the snapshot store. Every mutation runs under one mutex, persists the
// touched collection before it commits, and appends to the activity
// feed. There is no finer-grained locking and no merge of concurrent
// edits, last writer wins.
package store

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"inventorypro-server/models"
	"inventorypro-server/storage"
)

const activityCap = 50

// Seed data for a fresh install.
var (
	seedCategories = []models.Category{
		{ID: "1", Name: "Electronics", Description: "Gadgets and computing devices"},
		{ID: "2", Name: "Furniture", Description: "Office and home furniture"},
		{ID: "3", Name: "Office Supplies", Description: "Stationery and daily tools"},
	}
	seedLocations = []string{
		"Warehouse A",
		"Warehouse B",
		"Main Storefront",
		"Showroom",
		"Cold Storage",
	}
)

type Store struct {
	mu        sync.Mutex
	snapshots storage.Store

	products   []models.Product
	categories []models.Category
	locations  []string
	users      []models.User
	settings   models.Settings
	activity   []models.ActivityEntry
}

// Stats are the dashboard aggregates, derived on read.
type Stats struct {
	TotalItems int             `json:"totalItems"`
	TotalValue decimal.Decimal `json:"totalValue"`
	LowStock   int             `json:"lowStock"`
	OutOfStock int             `json:"outOfStock"`
}

// Open loads every collection from the snapshot store. Absent snapshots
// seed the built-in defaults when seedDefaults is set, otherwise start
// empty. Legacy products without a per-location ledger are reshaped
// in memory; the migrated form reaches disk on the next mutation.
func Open(ctx context.Context, snapshots storage.Store, seedDefaults bool) (*Store, error) {
	s := &Store{
		snapshots: snapshots,
		settings:  models.DefaultSettings(),
	}

	if err := s.loadProducts(ctx); err != nil {
		return nil, err
	}
	if err := loadCollection(ctx, snapshots, storage.KeyCategories, &s.categories); err != nil {
		return nil, err
	}
	if err := loadCollection(ctx, snapshots, storage.KeyLocations, &s.locations); err != nil {
		return nil, err
	}
	if err := loadCollection(ctx, snapshots, storage.KeyUsers, &s.users); err != nil {
		return nil, err
	}
	if err := loadCollection(ctx, snapshots, storage.KeyActivity, &s.activity); err != nil {
		return nil, err
	}

	var saved models.Settings
	if err := loadCollection(ctx, snapshots, storage.KeySettings, &saved); err != nil {
		return nil, err
	}
	if saved != (models.Settings{}) {
		s.settings = saved
	}

	if seedDefaults {
		if s.categories == nil {
			s.categories = append([]models.Category(nil), seedCategories...)
		}
		if s.locations == nil {
			s.locations = append([]string(nil), seedLocations...)
		}
	}

	return s, nil
}

func (s *Store) loadProducts(ctx context.Context) error {
	doc, err := s.snapshots.Load(ctx, storage.KeyInventory)
	if err == storage.ErrNotFound {
		return nil
	}
	if err != nil {
		return err
	}

	var docs []models.ProductDoc
	if err := json.Unmarshal(doc, &docs); err != nil {
		return fmt.Errorf("corrupt inventory snapshot: %w", err)
	}

	s.products = make([]models.Product, 0, len(docs))
	for _, d := range docs {
		p := d.Product()
		if p.ID == "" {
			p.ID = uuid.NewString()
		}
		s.products = append(s.products, p)
	}
	return nil
}

func loadCollection(ctx context.Context, snapshots storage.Store, key string, target interface{}) error {
	doc, err := snapshots.Load(ctx, key)
	if err == storage.ErrNotFound {
		return nil
	}
	if err != nil {
		return err
	}
	if err := json.Unmarshal(doc, target); err != nil {
		return fmt.Errorf("corrupt %s snapshot: %w", key, err)
	}
	return nil
}

// persist serializes a collection and writes it under its key. Called
// with the store lock held, before the in-memory commit.
func (s *Store) persist(ctx context.Context, key string, v interface{}) error {
	doc, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to serialize %s: %w", key, err)
	}
	if err := s.snapshots.Save(ctx, key, doc); err != nil {
		return fmt.Errorf("failed to persist %s: %w", key, err)
	}
	return nil
}

// logActivity appends a feed entry and persists the feed. The feed is
// observational, so a failed write here never fails the mutation that
// produced it. Called with the store lock held.
func (s *Store) logActivity(ctx context.Context, entryType, text string) {
	entry := models.ActivityEntry{
		ID:        uuid.NewString(),
		Text:      text,
		Type:      entryType,
		Timestamp: time.Now().UTC(),
	}
	s.activity = append([]models.ActivityEntry{entry}, s.activity...)
	if len(s.activity) > activityCap {
		s.activity = s.activity[:activityCap]
	}
	_ = s.persist(ctx, storage.KeyActivity, s.activity)
}

// Activity returns the feed, most recent first.
func (s *Store) Activity() []models.ActivityEntry {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.ActivityEntry(nil), s.activity...)
}

// Settings returns the current settings object.
func (s *Store) Settings() models.Settings {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.settings
}

// UpdateSettings replaces the settings object.
func (s *Store) UpdateSettings(ctx context.Context, settings models.Settings) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if settings.Currency == "" {
		settings.Currency = models.DefaultSettings().Currency
	}
	if settings.DefaultMinStock < 0 {
		settings.DefaultMinStock = 0
	}
	if err := s.persist(ctx, storage.KeySettings, settings); err != nil {
		return err
	}
	s.settings = settings
	return nil
}

// Stats computes the dashboard aggregates from the live catalog.
func (s *Store) Stats() Stats {
	s.mu.Lock()
	defer s.mu.Unlock()

	stats := Stats{TotalItems: len(s.products), TotalValue: decimal.Zero}
	for i := range s.products {
		p := &s.products[i]
		stats.TotalValue = stats.TotalValue.Add(p.Value())
		switch p.Status() {
		case models.StatusLowStock:
			stats.LowStock++
		case models.StatusOutOfStock:
			stats.OutOfStock++
		}
	}
	return stats
}
