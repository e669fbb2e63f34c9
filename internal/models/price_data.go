package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// PriceDataDaily is one stored daily OHLCV bar. Bars arrive from the
// price-bars topic or a backfill, and the stored quote source reads their
// closes back as trend points.
type PriceDataDaily struct {
	ID        int             `json:"id"`
	Symbol    string          `json:"symbol"`
	Date      time.Time       `json:"date"`
	Open      decimal.Decimal `json:"open"`
	High      decimal.Decimal `json:"high"`
	Low       decimal.Decimal `json:"low"`
	Close     decimal.Decimal `json:"close"`
	Volume    int64           `json:"volume"`
	VWAP      decimal.Decimal `json:"vwap,omitempty"`
	CreatedAt time.Time       `json:"created_at"`
}

// Point returns the bar's date and close as a trend point
func (p *PriceDataDaily) Point() PricePoint {
	return PricePoint{Date: p.Date, Close: p.Close}
}
