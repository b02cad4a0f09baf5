package store

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"inventorypro-server/models"
	"inventorypro-server/storage"
)

// Categories returns a copy of the category registry.
func (s *Store) Categories() []models.Category {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.Category(nil), s.categories...)
}

// SaveCategory creates the category when its id is empty and replaces
// it otherwise. Products reference categories by name, so a rename
// cascades to every product carrying the old name.
func (s *Store) SaveCategory(ctx context.Context, c models.Category) (models.Category, error) {
	c.Name = strings.TrimSpace(c.Name)
	c.Description = strings.TrimSpace(c.Description)
	if c.Name == "" {
		return models.Category{}, fmt.Errorf("%w: name is required", ErrInvalidCategory)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	nextCategories := append([]models.Category(nil), s.categories...)

	if c.ID == "" {
		c.ID = uuid.NewString()
		nextCategories = append(nextCategories, c)
		if err := s.persist(ctx, storage.KeyCategories, nextCategories); err != nil {
			return models.Category{}, err
		}
		s.categories = nextCategories
		s.logActivity(ctx, models.ActivityAdd, fmt.Sprintf("Created category %q", c.Name))
		return c, nil
	}

	idx := s.findCategory(c.ID)
	if idx < 0 {
		return models.Category{}, ErrCategoryNotFound
	}

	oldName := nextCategories[idx].Name
	nextCategories[idx] = c

	if oldName != c.Name {
		nextProducts, changed := s.reassignCategory(oldName, c.Name)
		if changed {
			if err := s.persist(ctx, storage.KeyInventory, nextProducts); err != nil {
				return models.Category{}, err
			}
			if err := s.persist(ctx, storage.KeyCategories, nextCategories); err != nil {
				return models.Category{}, err
			}
			s.products = nextProducts
			s.categories = nextCategories
			s.logActivity(ctx, models.ActivityUpdate,
				fmt.Sprintf("Renamed category %q to %q", oldName, c.Name))
			return c, nil
		}
	}

	if err := s.persist(ctx, storage.KeyCategories, nextCategories); err != nil {
		return models.Category{}, err
	}
	s.categories = nextCategories
	s.logActivity(ctx, models.ActivityUpdate, fmt.Sprintf("Updated category %q", c.Name))
	return c, nil
}

// DeleteCategory removes a category and reassigns every product that
// referenced it by name to the unassigned (empty) category. Products
// are never deleted and never left pointing at the dangling name.
func (s *Store) DeleteCategory(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.findCategory(id)
	if idx < 0 {
		return ErrCategoryNotFound
	}

	name := s.categories[idx].Name
	nextCategories := append([]models.Category(nil), s.categories[:idx]...)
	nextCategories = append(nextCategories, s.categories[idx+1:]...)

	nextProducts, changed := s.reassignCategory(name, "")
	if changed {
		if err := s.persist(ctx, storage.KeyInventory, nextProducts); err != nil {
			return err
		}
	}
	if err := s.persist(ctx, storage.KeyCategories, nextCategories); err != nil {
		return err
	}

	if changed {
		s.products = nextProducts
	}
	s.categories = nextCategories
	s.logActivity(ctx, models.ActivityDelete, fmt.Sprintf("Deleted category %q", name))
	return nil
}

// reassignCategory returns a product list with every product in
// fromName moved to toName, plus whether anything changed. Called with
// the store lock held.
func (s *Store) reassignCategory(fromName, toName string) ([]models.Product, bool) {
	next := append([]models.Product(nil), s.products...)
	changed := false
	for i := range next {
		if next[i].Category == fromName {
			next[i].Category = toName
			changed = true
		}
	}
	return next, changed
}

func (s *Store) findCategory(id string) int {
	for i := range s.categories {
		if s.categories[i].ID == id {
			return i
		}
	}
	return -1
}
