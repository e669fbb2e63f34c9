package quotes

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"

	"github.com/trogers1052/portfolio-analytics/internal/models"
)

var errFake = errors.New("fake source down")

// fakeSource is a counting in-memory Source
type fakeSource struct {
	prices       map[string]decimal.Decimal
	history      map[string][]models.PricePoint
	fail         bool
	latestCalls  int
	historyCalls int
}

func newFakeSource() *fakeSource {
	return &fakeSource{
		prices:  make(map[string]decimal.Decimal),
		history: make(map[string][]models.PricePoint),
	}
}

func (f *fakeSource) LatestClose(ctx context.Context, symbol string) (decimal.Decimal, error) {
	f.latestCalls++
	if f.fail {
		return decimal.Zero, errFake
	}
	price, ok := f.prices[symbol]
	if !ok {
		return decimal.Zero, ErrNoData
	}
	return price, nil
}

func (f *fakeSource) History(ctx context.Context, symbol string, lookback time.Duration) ([]models.PricePoint, error) {
	f.historyCalls++
	if f.fail {
		return nil, errFake
	}
	return f.history[symbol], nil
}

func day(d int) time.Time {
	return time.Date(2024, 5, d, 0, 0, 0, 0, time.UTC)
}
