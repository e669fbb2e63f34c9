// Package chart renders portfolio analytics as PNG images.
package chart

import (
	"bytes"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/trogers1052/portfolio-analytics/internal/models"
)

// ErrNotEnoughData is returned when there is nothing meaningful to plot
var ErrNotEnoughData = errors.New("not enough data to chart")

var hundred = decimal.NewFromInt(100)

// RenderTrendChart renders the closing prices of symbol as a PNG line chart.
// At least two points are required.
func RenderTrendChart(symbol string, points []models.PricePoint) ([]byte, error) {
	if len(points) < 2 {
		return nil, fmt.Errorf("%w: need at least 2 price points, got %d", ErrNotEnoughData, len(points))
	}

	xValues := make([]time.Time, len(points))
	yValues := make([]float64, len(points))
	for i, p := range points {
		xValues[i] = p.Date
		yValues[i] = p.Close.InexactFloat64()
	}

	graph := chart.Chart{
		Title:  fmt.Sprintf("%s Stock Price Trend", symbol),
		Width:  900,
		Height: 400,
		Background: chart.Style{
			Padding: chart.Box{Top: 40, Left: 10, Right: 20, Bottom: 10},
		},
		XAxis: chart.XAxis{
			Name:         "Date",
			TickPosition: chart.TickPositionBetweenTicks,
			ValueFormatter: func(v interface{}) string {
				if t, ok := v.(float64); ok {
					return chart.TimeFromFloat64(t).Format("Jan 02")
				}
				return ""
			},
		},
		YAxis: chart.YAxis{
			Name: "Price",
			ValueFormatter: func(v interface{}) string {
				if f, ok := v.(float64); ok {
					return fmt.Sprintf("$%.2f", f)
				}
				return ""
			},
		},
		Series: []chart.Series{
			chart.TimeSeries{
				Name: symbol,
				Style: chart.Style{
					StrokeColor: drawing.ColorFromHex("2563eb"),
					StrokeWidth: 2,
				},
				XValues: xValues,
				YValues: yValues,
			},
		},
	}

	var buf bytes.Buffer
	if err := graph.Render(chart.PNG, &buf); err != nil {
		return nil, fmt.Errorf("chart render failed: %w", err)
	}
	return buf.Bytes(), nil
}

// RenderAllocationChart renders the per-symbol allocation as a PNG pie chart,
// slices ordered by first appearance in the portfolio.
func RenderAllocationChart(summary models.ValuationSummary) ([]byte, error) {
	if len(summary.Symbols) == 0 || !summary.TotalValue.IsPositive() {
		return nil, fmt.Errorf("%w: portfolio is empty", ErrNotEnoughData)
	}

	values := make([]chart.Value, 0, len(summary.Symbols))
	for _, symbol := range summary.Symbols {
		amount := summary.Allocation[symbol]
		pct := amount.Div(summary.TotalValue).Mul(hundred)
		values = append(values, chart.Value{
			Label: fmt.Sprintf("%s %s%%", symbol, pct.StringFixed(1)),
			Value: amount.InexactFloat64(),
		})
	}

	pie := chart.PieChart{
		Title:  "Portfolio Allocation",
		Width:  600,
		Height: 600,
		Values: values,
	}

	var buf bytes.Buffer
	if err := pie.Render(chart.PNG, &buf); err != nil {
		return nil, fmt.Errorf("chart render failed: %w", err)
	}
	return buf.Bytes(), nil
}
