package store

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"inventorypro-server/models"
	"inventorypro-server/storage"
)

// Products returns a copy of the catalog.
func (s *Store) Products() []models.Product {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]models.Product, len(s.products))
	for i, p := range s.products {
		out[i] = cloneProduct(p)
	}
	return out
}

// Product returns a single product by id.
func (s *Store) Product(id string) (models.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.findProduct(id)
	if idx < 0 {
		return models.Product{}, ErrProductNotFound
	}
	return cloneProduct(s.products[idx]), nil
}

// SearchProducts filters the catalog by a case-insensitive match on
// name or SKU.
func (s *Store) SearchProducts(query string) []models.Product {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return s.Products()
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	var out []models.Product
	for _, p := range s.products {
		if strings.Contains(strings.ToLower(p.Name), query) ||
			strings.Contains(strings.ToLower(p.SKU), query) {
			out = append(out, cloneProduct(p))
		}
	}
	return out
}

// SaveProduct creates the product when its id is empty and fully
// replaces the stored record otherwise. Replacement is deliberate
// last-writer-wins: a save built from stale data overwrites whatever
// happened in between.
func (s *Store) SaveProduct(ctx context.Context, p models.Product) (models.Product, error) {
	if err := validateProduct(&p); err != nil {
		return models.Product{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	p.LastUpdated = time.Now().UTC()
	next := append([]models.Product(nil), s.products...)

	creating := p.ID == ""
	if creating {
		p.ID = uuid.NewString()
		next = append(next, p)
	} else {
		idx := s.findProduct(p.ID)
		if idx < 0 {
			return models.Product{}, ErrProductNotFound
		}
		next[idx] = p
	}

	if err := s.persist(ctx, storage.KeyInventory, next); err != nil {
		return models.Product{}, err
	}
	s.products = next

	if creating {
		s.logActivity(ctx, models.ActivityAdd, fmt.Sprintf("Added %q to inventory", p.Name))
	} else {
		s.logActivity(ctx, models.ActivityUpdate, fmt.Sprintf("Updated %q", p.Name))
	}
	return p, nil
}

// DeleteProduct removes a product by id.
func (s *Store) DeleteProduct(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.findProduct(id)
	if idx < 0 {
		return ErrProductNotFound
	}

	name := s.products[idx].Name
	next := append([]models.Product(nil), s.products[:idx]...)
	next = append(next, s.products[idx+1:]...)

	if err := s.persist(ctx, storage.KeyInventory, next); err != nil {
		return err
	}
	s.products = next
	s.logActivity(ctx, models.ActivityDelete, fmt.Sprintf("Deleted %q from inventory", name))
	return nil
}

// TransferStock moves amount units of a product from one location's
// ledger entry to another's. The move is all-or-nothing: any failed
// precondition leaves the ledger untouched, and the product's total
// quantity is identical before and after a successful transfer.
func (s *Store) TransferStock(ctx context.Context, productID, from, to string, amount int) (models.Product, error) {
	if amount <= 0 || from == to || from == "" || to == "" {
		return models.Product{}, ErrInvalidRoute
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.hasLocation(to) {
		return models.Product{}, fmt.Errorf("%w: destination %q is not a registered location", ErrInvalidRoute, to)
	}

	idx := s.findProduct(productID)
	if idx < 0 {
		return models.Product{}, ErrProductNotFound
	}

	p := s.products[idx]
	if p.LocationStocks.Get(from) < amount {
		return models.Product{}, ErrInsufficientStock
	}

	ledger := p.LocationStocks.Clone()
	if ledger == nil {
		ledger = models.Ledger{}
	}
	ledger[from] -= amount
	ledger[to] += amount

	p.LocationStocks = ledger
	p.LastUpdated = time.Now().UTC()

	next := append([]models.Product(nil), s.products...)
	next[idx] = p

	if err := s.persist(ctx, storage.KeyInventory, next); err != nil {
		return models.Product{}, err
	}
	s.products = next
	s.logActivity(ctx, models.ActivityTransfer,
		fmt.Sprintf("Moved %d × %q from %s to %s", amount, p.Name, from, to))

	return cloneProduct(p), nil
}

// ImportProducts bulk-adds already-coerced products. Every record gets
// a fresh id; duplicate SKUs are kept as separate records on purpose.
func (s *Store) ImportProducts(ctx context.Context, products []models.Product) (int, error) {
	if len(products) == 0 {
		return 0, nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	next := append([]models.Product(nil), s.products...)
	now := time.Now().UTC()
	for _, p := range products {
		p.ID = uuid.NewString()
		p.LastUpdated = now
		if p.LocationStocks == nil {
			p.LocationStocks = models.Ledger{}
		}
		next = append(next, p)
	}

	if err := s.persist(ctx, storage.KeyInventory, next); err != nil {
		return 0, err
	}
	s.products = next
	s.logActivity(ctx, models.ActivityAdd, fmt.Sprintf("Imported %d products", len(products)))
	return len(products), nil
}

// cloneProduct detaches the mutable fields so callers cannot reach
// back into store state through a returned copy.
func cloneProduct(p models.Product) models.Product {
	p.LocationStocks = p.LocationStocks.Clone()
	if p.Tags != nil {
		p.Tags = append([]string(nil), p.Tags...)
	}
	return p
}

func (s *Store) findProduct(id string) int {
	for i := range s.products {
		if s.products[i].ID == id {
			return i
		}
	}
	return -1
}

func validateProduct(p *models.Product) error {
	p.Name = strings.TrimSpace(p.Name)
	p.SKU = strings.TrimSpace(p.SKU)
	if p.Name == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidProduct)
	}
	if p.Price.IsNegative() {
		return fmt.Errorf("%w: price cannot be negative", ErrInvalidProduct)
	}
	if p.MinStock < 0 {
		return fmt.Errorf("%w: min stock cannot be negative", ErrInvalidProduct)
	}
	for location, qty := range p.LocationStocks {
		if qty < 0 {
			return fmt.Errorf("%w: negative quantity at %q", ErrInvalidProduct, location)
		}
	}
	if p.LocationStocks == nil {
		p.LocationStocks = models.Ledger{}
	}
	return nil
}
