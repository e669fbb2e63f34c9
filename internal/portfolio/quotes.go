package portfolio

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"github.com/trogers1052/portfolio-analytics/internal/models"
)

// DefaultLookback is the trailing window used for price trends
const DefaultLookback = 30 * 24 * time.Hour

// QuoteSource supplies market prices. Any error is treated as the quote
// being unavailable.
type QuoteSource interface {
	LatestClose(ctx context.Context, symbol string) (decimal.Decimal, error)
	History(ctx context.Context, symbol string, lookback time.Duration) ([]models.PricePoint, error)
}
