package services

import (
	"context"
	"sync"

	"github.com/dmsavelev/caloriebot/internal/domain"
	apperrors "github.com/dmsavelev/caloriebot/internal/errors"
	"github.com/dmsavelev/caloriebot/internal/logger"
	"github.com/dmsavelev/caloriebot/internal/storage"
)

// CatalogService owns the product catalog: names are unique and
// case-normalized, iteration order is insertion order. Every mutation is
// persisted synchronously; a persistence failure is logged and does not
// undo the in-memory change.
type CatalogService struct {
	mu       sync.RWMutex
	products []domain.Product
	index    map[string]int
	store    storage.Storage
}

// NewCatalogService loads the catalog from storage.
func NewCatalogService(ctx context.Context, store storage.Storage) (*CatalogService, error) {
	products, err := store.LoadCatalog(ctx)
	if err != nil {
		return nil, apperrors.NewPersistenceError(err)
	}

	s := &CatalogService{
		products: products,
		index:    make(map[string]int, len(products)),
		store:    store,
	}
	for i, p := range products {
		s.index[p.Name] = i
	}
	return s, nil
}

// Get returns the calories per 100 g for a product. Lookup is
// case-insensitive.
func (s *CatalogService) Get(ctx context.Context, name string) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	i, ok := s.index[domain.NormalizeName(name)]
	if !ok {
		return 0, apperrors.ErrProductNotFound
	}
	return s.products[i].Kcal, nil
}

// Add inserts a new product. Adding a name that is already present fails
// with the conflict error; the caller must Replace explicitly.
func (s *CatalogService) Add(ctx context.Context, name string, kcal int) error {
	normalized := domain.NormalizeName(name)

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.index[normalized]; ok {
		return apperrors.ErrProductExists
	}
	s.products = append(s.products, domain.Product{Name: normalized, Kcal: kcal})
	s.index[normalized] = len(s.products) - 1
	s.persist(ctx)
	return nil
}

// Replace overwrites a product's calorie value unconditionally. An
// existing product keeps its position; an unknown one is appended.
func (s *CatalogService) Replace(ctx context.Context, name string, kcal int) error {
	normalized := domain.NormalizeName(name)

	s.mu.Lock()
	defer s.mu.Unlock()

	if i, ok := s.index[normalized]; ok {
		s.products[i].Kcal = kcal
	} else {
		s.products = append(s.products, domain.Product{Name: normalized, Kcal: kcal})
		s.index[normalized] = len(s.products) - 1
	}
	s.persist(ctx)
	return nil
}

// Remove deletes a product from the catalog.
func (s *CatalogService) Remove(ctx context.Context, name string) error {
	normalized := domain.NormalizeName(name)

	s.mu.Lock()
	defer s.mu.Unlock()

	i, ok := s.index[normalized]
	if !ok {
		return apperrors.ErrProductNotFound
	}
	s.products = append(s.products[:i], s.products[i+1:]...)
	delete(s.index, normalized)
	for j := i; j < len(s.products); j++ {
		s.index[s.products[j].Name] = j
	}
	s.persist(ctx)
	return nil
}

// List returns the products in insertion order.
func (s *CatalogService) List(ctx context.Context) []domain.Product {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]domain.Product, len(s.products))
	copy(out, s.products)
	return out
}

// persist writes the catalog snapshot. Durability is best effort: the
// in-memory state stays authoritative when the write fails.
func (s *CatalogService) persist(ctx context.Context) {
	if err := s.store.SaveCatalog(ctx, s.products); err != nil {
		logger.Error("Failed to persist catalog", "error", err)
	}
}
