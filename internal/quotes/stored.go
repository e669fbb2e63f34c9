package quotes

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/trogers1052/portfolio-analytics/internal/models"
)

// PriceReader defines the price repository reads a StoredSource needs
type PriceReader interface {
	GetLatestPriceData(ctx context.Context, symbol string) (*models.PriceDataDaily, error)
	GetPriceDataRange(ctx context.Context, symbol string, startDate, endDate time.Time) ([]*models.PriceDataDaily, error)
}

// StoredSource serves quotes from daily bars already persisted in the
// database, e.g. ingested from the price-bars topic.
type StoredSource struct {
	repo PriceReader
	now  func() time.Time
}

// NewStoredSource creates a source backed by repo
func NewStoredSource(repo PriceReader) *StoredSource {
	return &StoredSource{repo: repo, now: time.Now}
}

// LatestClose returns the close of the most recent stored bar
func (s *StoredSource) LatestClose(ctx context.Context, symbol string) (decimal.Decimal, error) {
	symbol = strings.ToUpper(symbol)
	bar, err := s.repo.GetLatestPriceData(ctx, symbol)
	if err != nil {
		return decimal.Zero, err
	}
	if !bar.Close.IsPositive() {
		return decimal.Zero, fmt.Errorf("%w for %s", ErrNoData, symbol)
	}
	return bar.Close, nil
}

// History returns stored closes within the trailing lookback window
func (s *StoredSource) History(ctx context.Context, symbol string, lookback time.Duration) ([]models.PricePoint, error) {
	symbol = strings.ToUpper(symbol)
	end := s.now().UTC()
	bars, err := s.repo.GetPriceDataRange(ctx, symbol, end.Add(-lookback), end)
	if err != nil {
		return nil, err
	}

	points := make([]models.PricePoint, 0, len(bars))
	for _, bar := range bars {
		points = append(points, bar.Point())
	}
	return points, nil
}
