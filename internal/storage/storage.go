// Package storage persists the product catalog and the per-user ledger.
//
// The default backend keeps the original flat-file layout: one JSON
// document mapping product name to calories per 100 g, one mapping user id
// to total and history. Both documents are rewritten in full after every
// mutation. A Postgres backend with the same snapshot semantics can be
// selected via configuration.
package storage

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/dmsavelev/caloriebot/internal/config"
	"github.com/dmsavelev/caloriebot/internal/domain"
)

// Storage loads and saves whole snapshots of the catalog and the ledger.
type Storage interface {
	LoadCatalog(ctx context.Context) ([]domain.Product, error)
	SaveCatalog(ctx context.Context, products []domain.Product) error
	LoadUsers(ctx context.Context) (map[string]*domain.UserAccount, error)
	SaveUsers(ctx context.Context, users map[string]*domain.UserAccount) error
	Close() error
}

// DefaultCatalog seeds the catalog when no persisted one exists.
func DefaultCatalog() []domain.Product {
	return []domain.Product{
		{Name: "яблоко", Kcal: 52},
		{Name: "курица", Kcal: 165},
		{Name: "шоколад", Kcal: 546},
	}
}

// New creates a storage backend according to configuration.
func New(cfg config.StorageConfig) (Storage, error) {
	switch cfg.Driver {
	case "", config.StorageDriverFile:
		return NewFileStorage(
			filepath.Join(cfg.DataDir, cfg.ProductsFile),
			filepath.Join(cfg.DataDir, cfg.UsersFile),
		), nil
	case config.StorageDriverPostgres:
		return NewPostgresStorage(cfg.DB)
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.Driver)
	}
}
