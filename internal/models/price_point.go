package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// PricePoint is a single daily close in a historical series
type PricePoint struct {
	Date  time.Time       `json:"date"`
	Close decimal.Decimal `json:"close"`
}
