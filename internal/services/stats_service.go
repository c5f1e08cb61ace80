package services

import (
	"sort"

	"github.com/dmsavelev/caloriebot/internal/domain"
)

// WeeklyWindow is the number of distinct dates shown on the weekly chart.
const WeeklyWindow = 7

// TopProductsLimit is the number of products shown on the pie chart.
const TopProductsLimit = 5

// StatsService derives reporting aggregates from a history snapshot.
// Both methods are pure: they never touch ledger state.
type StatsService struct{}

// NewStatsService creates a stats aggregator.
func NewStatsService() *StatsService {
	return &StatsService{}
}

// DailyTotals groups the history by date and returns per-day calorie sums
// sorted ascending by date, truncated to the most recent WeeklyWindow
// distinct dates. An empty history yields an empty result.
func (s *StatsService) DailyTotals(history []domain.ConsumptionEntry) []domain.DailyTotal {
	byDate := make(map[string]int)
	for _, e := range history {
		byDate[e.Date] += e.Calories
	}
	if len(byDate) == 0 {
		return nil
	}

	dates := make([]string, 0, len(byDate))
	for date := range byDate {
		dates = append(dates, date)
	}
	// ISO dates sort chronologically as strings.
	sort.Strings(dates)
	if len(dates) > WeeklyWindow {
		dates = dates[len(dates)-WeeklyWindow:]
	}

	totals := make([]domain.DailyTotal, 0, len(dates))
	for _, date := range dates {
		totals = append(totals, domain.DailyTotal{Date: date, Calories: byDate[date]})
	}
	return totals
}

// TopProducts returns per-product calorie sums sorted descending,
// truncated to topN. Ties keep the order in which the products first
// appear in the history.
func (s *StatsService) TopProducts(history []domain.ConsumptionEntry, topN int) []domain.ProductTotal {
	byProduct := make(map[string]int)
	var order []string
	for _, e := range history {
		if _, seen := byProduct[e.Product]; !seen {
			order = append(order, e.Product)
		}
		byProduct[e.Product] += e.Calories
	}
	if len(order) == 0 {
		return nil
	}

	totals := make([]domain.ProductTotal, 0, len(order))
	for _, product := range order {
		totals = append(totals, domain.ProductTotal{Product: product, Calories: byProduct[product]})
	}
	sort.SliceStable(totals, func(i, j int) bool {
		return totals[i].Calories > totals[j].Calories
	})
	if topN > 0 && len(totals) > topN {
		totals = totals[:topN]
	}
	return totals
}
