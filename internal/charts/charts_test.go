package charts

import (
	"bytes"
	"testing"

	"github.com/dmsavelev/caloriebot/internal/domain"
)

var pngHeader = []byte{0x89, 'P', 'N', 'G'}

func TestWeeklyChartProducesPNG(t *testing.T) {
	r := NewRenderer()
	image, err := r.WeeklyChart([]domain.DailyTotal{
		{Date: "2026-08-29", Calories: 1200},
		{Date: "2026-08-30", Calories: 800},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !bytes.HasPrefix(image, pngHeader) {
		t.Error("expected PNG output")
	}
}

func TestTopProductsChartProducesPNG(t *testing.T) {
	r := NewRenderer()
	image, err := r.TopProductsChart([]domain.ProductTotal{
		{Product: "яблоко", Calories: 78},
		{Product: "курица", Calories: 330},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !bytes.HasPrefix(image, pngHeader) {
		t.Error("expected PNG output")
	}
}
