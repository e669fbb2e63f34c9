package portfolio

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/trogers1052/portfolio-analytics/internal/models"
)

func seriesOf(closes ...float64) Series {
	return NewSeries("TEST", NewStubQuotes().SetHistory("TEST", closes...).history["TEST"])
}

func TestVolatility(t *testing.T) {
	t.Run("coefficient of variation uses population standard deviation", func(t *testing.T) {
		// mean 15, population std 5
		v, err := Volatility(seriesOf(10, 20))
		require.NoError(t, err)
		assert.InDelta(t, 1.0/3.0, v, 1e-12)
	})

	t.Run("flat series has zero volatility", func(t *testing.T) {
		v, err := Volatility(seriesOf(100, 100, 100))
		require.NoError(t, err)
		assert.Zero(t, v)
	})

	t.Run("small moves", func(t *testing.T) {
		// mean 100, population variance 2
		v, err := Volatility(seriesOf(100, 102, 98, 100))
		require.NoError(t, err)
		assert.InDelta(t, 0.0141421356, v, 1e-9)
	})

	t.Run("fewer than two points is insufficient", func(t *testing.T) {
		_, err := Volatility(seriesOf(100))
		assert.ErrorIs(t, err, ErrInsufficientData)

		_, err = Volatility(Series{})
		assert.ErrorIs(t, err, ErrInsufficientData)
	})

	t.Run("zero mean is insufficient", func(t *testing.T) {
		_, err := Volatility(seriesOf(-1, 1))
		assert.ErrorIs(t, err, ErrInsufficientData)
	})
}

func alternating(center, delta decimal.Decimal, n int) Series {
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	points := make([]models.PricePoint, n)
	for i := range points {
		c := center.Sub(delta)
		if i%2 == 1 {
			c = center.Add(delta)
		}
		points[i] = models.PricePoint{Date: base.AddDate(0, 0, i), Close: c}
	}
	return NewSeries("EDGE", points)
}

func TestClassifyRisk(t *testing.T) {
	tests := []struct {
		name   string
		closes []float64
		want   models.RiskLevel
	}{
		{"flat", []float64{100, 100, 100}, models.RiskLow},
		{"small moves", []float64{100, 102, 98, 100}, models.RiskLow},
		{"exactly on the threshold", []float64{95, 105}, models.RiskLow},
		{"exactly on the threshold with scaled closes", []float64{21.47, 23.73, 21.47, 23.73}, models.RiskLow},
		{"just below the threshold", []float64{21.48, 23.72, 21.48, 23.72}, models.RiskLow},
		{"just above the threshold", []float64{21.46, 23.74, 21.46, 23.74}, models.RiskHigh},
		{"wide swings", []float64{10, 20}, models.RiskHigh},
		{"negative mean", []float64{-10, -30}, models.RiskLow},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			level, err := ClassifyRisk(seriesOf(tt.closes...))
			require.NoError(t, err)
			assert.Equal(t, tt.want, level)
		})
	}

	t.Run("insufficient data", func(t *testing.T) {
		_, err := ClassifyRisk(seriesOf(100))
		assert.ErrorIs(t, err, ErrInsufficientData)

		_, err = ClassifyRisk(seriesOf(-1, 1))
		assert.ErrorIs(t, err, ErrInsufficientData)
	})
}

func TestClassifyRiskThresholdAcrossScales(t *testing.T) {
	twenty := decimal.NewFromInt(20)
	wider := decimal.RequireFromString("1.001")

	for _, scale := range []string{"1", "1.13", "0.07", "3.3", "12.345"} {
		factor := decimal.RequireFromString(scale)
		for m := int64(1); m <= 200; m++ {
			center := decimal.NewFromInt(m).Mul(factor)
			delta := center.Div(twenty)

			for _, n := range []int{2, 4, 6} {
				level, err := ClassifyRisk(alternating(center, delta, n))
				require.NoError(t, err)
				assert.Equal(t, models.RiskLow, level, "center=%s n=%d", center, n)

				level, err = ClassifyRisk(alternating(center, delta.Mul(wider), n))
				require.NoError(t, err)
				assert.Equal(t, models.RiskHigh, level, "center=%s n=%d", center, n)
			}
		}
	}
}
