package store

import (
	"context"
	"fmt"
	"strings"

	"inventorypro-server/models"
	"inventorypro-server/storage"
)

// Locations returns a copy of the location registry.
func (s *Store) Locations() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.locations...)
}

// AddLocation registers a new storage location. Names are matched
// case-insensitively when rejecting duplicates.
func (s *Store) AddLocation(ctx context.Context, name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidLocation)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.locations {
		if strings.EqualFold(existing, name) {
			return ErrDuplicateLocation
		}
	}

	next := append(append([]string(nil), s.locations...), name)
	if err := s.persist(ctx, storage.KeyLocations, next); err != nil {
		return err
	}
	s.locations = next
	s.logActivity(ctx, models.ActivityAdd, fmt.Sprintf("Added storage location %q", name))
	return nil
}

// DeleteLocation removes a location from the registry. The delete is
// refused while any product still holds stock there; zero-quantity
// ledger entries referencing the location are swept as part of the
// delete so no stale keys survive.
func (s *Store) DeleteLocation(ctx context.Context, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := -1
	for i, existing := range s.locations {
		if existing == name {
			idx = i
			break
		}
	}
	if idx < 0 {
		return ErrLocationNotFound
	}

	for i := range s.products {
		if s.products[i].LocationStocks.Get(name) > 0 {
			return fmt.Errorf("%w: %q on product %q", ErrLocationInUse, name, s.products[i].Name)
		}
	}

	nextLocations := append([]string(nil), s.locations[:idx]...)
	nextLocations = append(nextLocations, s.locations[idx+1:]...)

	nextProducts := append([]models.Product(nil), s.products...)
	swept := false
	for i := range nextProducts {
		if _, ok := nextProducts[i].LocationStocks[name]; ok {
			ledger := nextProducts[i].LocationStocks.Clone()
			delete(ledger, name)
			nextProducts[i].LocationStocks = ledger
			swept = true
		}
	}

	if swept {
		if err := s.persist(ctx, storage.KeyInventory, nextProducts); err != nil {
			return err
		}
	}
	if err := s.persist(ctx, storage.KeyLocations, nextLocations); err != nil {
		return err
	}

	if swept {
		s.products = nextProducts
	}
	s.locations = nextLocations
	s.logActivity(ctx, models.ActivityDelete, fmt.Sprintf("Removed storage location %q", name))
	return nil
}

func (s *Store) hasLocation(name string) bool {
	for _, existing := range s.locations {
		if existing == name {
			return true
		}
	}
	return false
}
