package portfolio

import (
	"iter"
	"slices"

	"github.com/trogers1052/portfolio-analytics/internal/models"
)

// Series is an immutable, chronologically ascending price history for one symbol.
// The zero value is an empty series.
type Series struct {
	Symbol string
	points []models.PricePoint
}

// NewSeries copies points and orders them by date ascending. Equal dates keep
// their original relative order.
func NewSeries(symbol string, points []models.PricePoint) Series {
	sorted := slices.Clone(points)
	slices.SortStableFunc(sorted, func(a, b models.PricePoint) int {
		return a.Date.Compare(b.Date)
	})
	return Series{Symbol: symbol, points: sorted}
}

// All yields the points in date order. It can be ranged over any number of times.
func (s Series) All() iter.Seq[models.PricePoint] {
	return func(yield func(models.PricePoint) bool) {
		for _, p := range s.points {
			if !yield(p) {
				return
			}
		}
	}
}

// Len returns the number of points
func (s Series) Len() int {
	return len(s.points)
}

// Empty reports whether the series has no data
func (s Series) Empty() bool {
	return len(s.points) == 0
}

// Points returns a copy of the points
func (s Series) Points() []models.PricePoint {
	if s.points == nil {
		return []models.PricePoint{}
	}
	return slices.Clone(s.points)
}
