package interfaces

import (
	"context"

	"github.com/dmsavelev/caloriebot/internal/domain"
)

// CatalogServiceInterface defines the contract for product catalog operations
type CatalogServiceInterface interface {
	Get(ctx context.Context, name string) (int, error)
	Add(ctx context.Context, name string, kcal int) error
	Replace(ctx context.Context, name string, kcal int) error
	Remove(ctx context.Context, name string) error
	List(ctx context.Context) []domain.Product
}

// LedgerServiceInterface defines the contract for user ledger operations
type LedgerServiceInterface interface {
	EnsureAccount(ctx context.Context, userID string)
	Append(ctx context.Context, userID, product string, amount, calories int, date string) (int, error)
	Reset(ctx context.Context, userID string)
	GetTotal(ctx context.Context, userID string) int
	GetHistory(ctx context.Context, userID string, limit int) []domain.ConsumptionEntry
}

// StatsServiceInterface defines the contract for history aggregation
type StatsServiceInterface interface {
	DailyTotals(history []domain.ConsumptionEntry) []domain.DailyTotal
	TopProducts(history []domain.ConsumptionEntry, topN int) []domain.ProductTotal
}

// ChartRendererInterface defines the contract for the chart collaborator:
// turn a labeled series into an image byte buffer.
type ChartRendererInterface interface {
	WeeklyChart(totals []domain.DailyTotal) ([]byte, error)
	TopProductsChart(totals []domain.ProductTotal) ([]byte, error)
}
