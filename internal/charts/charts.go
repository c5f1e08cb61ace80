// Package charts rasterizes history aggregates into PNG images for
// Telegram photo replies.
package charts

import (
	"bytes"

	"github.com/wcharczuk/go-chart/v2"

	"github.com/dmsavelev/caloriebot/internal/domain"
)

// Renderer draws the weekly bar chart and the top-products pie chart.
type Renderer struct{}

// NewRenderer creates a chart renderer.
func NewRenderer() *Renderer {
	return &Renderer{}
}

// WeeklyChart renders per-day calorie totals as a bar chart.
func (r *Renderer) WeeklyChart(totals []domain.DailyTotal) ([]byte, error) {
	bars := make([]chart.Value, 0, len(totals))
	for _, t := range totals {
		bars = append(bars, chart.Value{Label: t.Date, Value: float64(t.Calories)})
	}

	graph := chart.BarChart{
		Title:    "Калории за неделю",
		Width:    800,
		Height:   400,
		BarWidth: 60,
		Bars:     bars,
	}

	var buf bytes.Buffer
	if err := graph.Render(chart.PNG, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// TopProductsChart renders per-product calorie totals as a pie chart.
func (r *Renderer) TopProductsChart(totals []domain.ProductTotal) ([]byte, error) {
	values := make([]chart.Value, 0, len(totals))
	for _, t := range totals {
		values = append(values, chart.Value{Label: t.Product, Value: float64(t.Calories)})
	}

	graph := chart.PieChart{
		Title:  "Топ продуктов по калориям",
		Width:  512,
		Height: 512,
		Values: values,
	}

	var buf bytes.Buffer
	if err := graph.Render(chart.PNG, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
