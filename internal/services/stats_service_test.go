package services

import (
	"testing"

	"github.com/dmsavelev/caloriebot/internal/domain"
)

func entry(product, date string, calories int) domain.ConsumptionEntry {
	return domain.ConsumptionEntry{Product: product, Amount: 100, Calories: calories, Date: date}
}

func TestDailyTotalsGroupsAndSorts(t *testing.T) {
	svc := NewStatsService()
	history := []domain.ConsumptionEntry{
		entry("яблоко", "2026-08-30", 52),
		entry("курица", "2026-08-29", 330),
		entry("яблоко", "2026-08-30", 78),
	}

	totals := svc.DailyTotals(history)
	if len(totals) != 2 {
		t.Fatalf("expected 2 days, got %d", len(totals))
	}
	if totals[0].Date != "2026-08-29" || totals[0].Calories != 330 {
		t.Errorf("unexpected first day: %+v", totals[0])
	}
	if totals[1].Date != "2026-08-30" || totals[1].Calories != 130 {
		t.Errorf("unexpected second day: %+v", totals[1])
	}
}

func TestDailyTotalsKeepsMostRecentWeek(t *testing.T) {
	svc := NewStatsService()
	dates := []string{
		"2026-08-20", "2026-08-21", "2026-08-22", "2026-08-23", "2026-08-24",
		"2026-08-25", "2026-08-26", "2026-08-27", "2026-08-28",
	}
	var history []domain.ConsumptionEntry
	// Insert out of order; output must still be ascending.
	for i := len(dates) - 1; i >= 0; i-- {
		history = append(history, entry("яблоко", dates[i], 52))
	}

	totals := svc.DailyTotals(history)
	if len(totals) != WeeklyWindow {
		t.Fatalf("expected %d days, got %d", WeeklyWindow, len(totals))
	}
	if totals[0].Date != "2026-08-22" {
		t.Errorf("expected window to start at 2026-08-22, got %s", totals[0].Date)
	}
	for i := 1; i < len(totals); i++ {
		if totals[i-1].Date >= totals[i].Date {
			t.Errorf("dates not strictly ascending: %s >= %s", totals[i-1].Date, totals[i].Date)
		}
	}
}

func TestDailyTotalsEmptyHistory(t *testing.T) {
	svc := NewStatsService()
	if totals := svc.DailyTotals(nil); len(totals) != 0 {
		t.Errorf("expected empty result, got %v", totals)
	}
}

func TestTopProductsSortsDescending(t *testing.T) {
	svc := NewStatsService()
	history := []domain.ConsumptionEntry{
		entry("яблоко", "2026-08-30", 52),
		entry("шоколад", "2026-08-30", 546),
		entry("курица", "2026-08-30", 330),
		entry("яблоко", "2026-08-30", 104),
	}

	totals := svc.TopProducts(history, TopProductsLimit)
	want := []domain.ProductTotal{
		{Product: "шоколад", Calories: 546},
		{Product: "курица", Calories: 330},
		{Product: "яблоко", Calories: 156},
	}
	if len(totals) != len(want) {
		t.Fatalf("expected %d products, got %d", len(want), len(totals))
	}
	for i := range want {
		if totals[i] != want[i] {
			t.Errorf("position %d: expected %+v, got %+v", i, want[i], totals[i])
		}
	}
}

func TestTopProductsTieBreaksByFirstAppearance(t *testing.T) {
	svc := NewStatsService()
	history := []domain.ConsumptionEntry{
		entry("гречка", "2026-08-30", 200),
		entry("овсянка", "2026-08-30", 200),
	}

	totals := svc.TopProducts(history, 5)
	if totals[0].Product != "гречка" || totals[1].Product != "овсянка" {
		t.Errorf("tie must keep first-appearance order, got %v", totals)
	}
}

func TestTopProductsTruncates(t *testing.T) {
	svc := NewStatsService()
	var history []domain.ConsumptionEntry
	names := []string{"a", "b", "c", "d", "e", "f", "g"}
	for i, name := range names {
		history = append(history, entry(name, "2026-08-30", (i+1)*10))
	}

	totals := svc.TopProducts(history, TopProductsLimit)
	if len(totals) != TopProductsLimit {
		t.Fatalf("expected %d products, got %d", TopProductsLimit, len(totals))
	}
	if totals[0].Product != "g" {
		t.Errorf("expected highest-calorie product first, got %q", totals[0].Product)
	}
}

func TestTopProductsEmptyHistory(t *testing.T) {
	svc := NewStatsService()
	if totals := svc.TopProducts(nil, 5); len(totals) != 0 {
		t.Errorf("expected empty result, got %v", totals)
	}
}
