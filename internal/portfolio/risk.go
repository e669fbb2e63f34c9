package portfolio

import (
	"fmt"
	"math"

	"github.com/shopspring/decimal"
	"gonum.org/v1/gonum/stat"

	"github.com/trogers1052/portfolio-analytics/internal/models"
)

// HighVolatilityThreshold is the coefficient of variation above which a symbol is high risk
const HighVolatilityThreshold = 0.05

var highVolatilityThreshold = decimal.NewFromFloat(HighVolatilityThreshold)

// Volatility returns the coefficient of variation of the series' closes:
// population standard deviation divided by the arithmetic mean.
func Volatility(s Series) (float64, error) {
	closes := make([]float64, 0, s.Len())
	for p := range s.All() {
		closes = append(closes, p.Close.InexactFloat64())
	}
	if len(closes) < 2 {
		return 0, fmt.Errorf("%w: %d points for %s", ErrInsufficientData, len(closes), s.Symbol)
	}

	mean, variance := stat.PopMeanVariance(closes, nil)
	if mean == 0 {
		return 0, fmt.Errorf("%w: zero mean close for %s", ErrInsufficientData, s.Symbol)
	}
	return math.Sqrt(variance) / mean, nil
}

// ClassifyRisk maps the series' volatility to a risk level. The comparison
// against HighVolatilityThreshold is made on the decimal closes, so a series
// sitting exactly on the threshold is Low.
//
// With n closes summing to S with squares summing to Q, the population
// variance is (nQ - S²)/n² and the squared mean is S²/n², so the series is
// High iff nQ - S² > t²S² for a positive mean.
func ClassifyRisk(s Series) (models.RiskLevel, error) {
	n := int64(s.Len())
	if n < 2 {
		return "", fmt.Errorf("%w: %d points for %s", ErrInsufficientData, n, s.Symbol)
	}

	sum, squares := decimal.Zero, decimal.Zero
	for p := range s.All() {
		sum = sum.Add(p.Close)
		squares = squares.Add(p.Close.Mul(p.Close))
	}
	if sum.IsZero() {
		return "", fmt.Errorf("%w: zero mean close for %s", ErrInsufficientData, s.Symbol)
	}
	// a negative mean gives a negative coefficient, which is never above the threshold
	if sum.IsNegative() {
		return models.RiskLow, nil
	}

	sumSquared := sum.Mul(sum)
	spread := decimal.NewFromInt(n).Mul(squares).Sub(sumSquared)
	limit := highVolatilityThreshold.Mul(highVolatilityThreshold).Mul(sumSquared)
	if spread.GreaterThan(limit) {
		return models.RiskHigh, nil
	}
	return models.RiskLow, nil
}
