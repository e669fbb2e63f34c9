package chart

import (
	"bytes"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trogers1052/portfolio-analytics/internal/models"
)

var pngHeader = []byte{0x89, 'P', 'N', 'G'}

func TestRenderTrendChart(t *testing.T) {
	points := []models.PricePoint{
		{Date: time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC), Close: decimal.NewFromInt(100)},
		{Date: time.Date(2024, 5, 2, 0, 0, 0, 0, time.UTC), Close: decimal.NewFromInt(102)},
		{Date: time.Date(2024, 5, 3, 0, 0, 0, 0, time.UTC), Close: decimal.NewFromInt(98)},
	}

	png, err := RenderTrendChart("AAPL", points)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(png, pngHeader))
}

func TestRenderTrendChartNeedsTwoPoints(t *testing.T) {
	_, err := RenderTrendChart("AAPL", nil)
	assert.ErrorIs(t, err, ErrNotEnoughData)

	_, err = RenderTrendChart("AAPL", []models.PricePoint{{Date: time.Now(), Close: decimal.NewFromInt(1)}})
	assert.ErrorIs(t, err, ErrNotEnoughData)
}

func TestRenderAllocationChart(t *testing.T) {
	summary := models.ValuationSummary{
		TotalValue: decimal.NewFromInt(2000),
		Symbols:    []string{"AAPL", "GOOGL"},
		Allocation: map[string]decimal.Decimal{
			"AAPL":  decimal.NewFromInt(1500),
			"GOOGL": decimal.NewFromInt(500),
		},
	}

	png, err := RenderAllocationChart(summary)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(png, pngHeader))
}

func TestRenderAllocationChartEmpty(t *testing.T) {
	_, err := RenderAllocationChart(models.ValuationSummary{Symbols: []string{}})
	assert.ErrorIs(t, err, ErrNotEnoughData)
}
