package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Holding represents one recorded purchase of a quantity of a symbol
type Holding struct {
	ID         string          `json:"id"`
	Symbol     string          `json:"symbol"`
	Quantity   int64           `json:"quantity"`
	PriceAtAdd decimal.Decimal `json:"price_at_add"`
	AddedAt    time.Time       `json:"added_at"`
}

// TotalValue returns quantity x price_at_add
func (h Holding) TotalValue() decimal.Decimal {
	return h.PriceAtAdd.Mul(decimal.NewFromInt(h.Quantity))
}

// ValuationLine is the derived per-holding valuation row
type ValuationLine struct {
	Symbol     string          `json:"symbol"`
	Quantity   int64           `json:"quantity"`
	PriceAtAdd decimal.Decimal `json:"price_at_add"`
	TotalValue decimal.Decimal `json:"total_value"`
}

// ValuationSummary aggregates the monetary metrics of a portfolio.
// Values are computed from the price recorded when each holding was added,
// not from a live quote.
type ValuationSummary struct {
	TotalValue    decimal.Decimal            `json:"total_value"`
	TotalQuantity int64                      `json:"total_quantity"`
	Allocation    map[string]decimal.Decimal `json:"allocation"`
	Symbols       []string                   `json:"symbols"`
	Lines         []ValuationLine            `json:"lines"`
}
