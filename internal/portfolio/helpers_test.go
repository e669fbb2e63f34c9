package portfolio

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"github.com/trogers1052/portfolio-analytics/internal/models"
)

var errStubUnavailable = errors.New("stub: no data")

// StubQuotes serves fixed prices and histories keyed by symbol
type StubQuotes struct {
	prices  map[string]decimal.Decimal
	history map[string][]models.PricePoint
	fail    map[string]bool

	LatestCalls  int
	HistoryCalls int
}

func NewStubQuotes() *StubQuotes {
	return &StubQuotes{
		prices:  make(map[string]decimal.Decimal),
		history: make(map[string][]models.PricePoint),
		fail:    make(map[string]bool),
	}
}

func (s *StubQuotes) SetPrice(symbol string, price float64) *StubQuotes {
	s.prices[symbol] = decimal.NewFromFloat(price)
	return s
}

func (s *StubQuotes) SetHistory(symbol string, closes ...float64) *StubQuotes {
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	points := make([]models.PricePoint, len(closes))
	for i, c := range closes {
		points[i] = models.PricePoint{Date: base.AddDate(0, 0, i), Close: decimal.NewFromFloat(c)}
	}
	s.history[symbol] = points
	return s
}

func (s *StubQuotes) Fail(symbol string) *StubQuotes {
	s.fail[symbol] = true
	return s
}

func (s *StubQuotes) LatestClose(_ context.Context, symbol string) (decimal.Decimal, error) {
	s.LatestCalls++
	if s.fail[symbol] {
		return decimal.Zero, errStubUnavailable
	}
	price, ok := s.prices[symbol]
	if !ok {
		return decimal.Zero, errStubUnavailable
	}
	return price, nil
}

func (s *StubQuotes) History(_ context.Context, symbol string, _ time.Duration) ([]models.PricePoint, error) {
	s.HistoryCalls++
	if s.fail[symbol] {
		return nil, errStubUnavailable
	}
	return s.history[symbol], nil
}

func holding(symbol string, qty int64, price float64) *models.Holding {
	return &models.Holding{Symbol: symbol, Quantity: qty, PriceAtAdd: decimal.NewFromFloat(price)}
}
