package quotes

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/trogers1052/portfolio-analytics/internal/models"
)

// Fallback tries each source in order and returns the first success.
// A history is only accepted when it is non-empty.
type Fallback struct {
	sources []Source
	log     zerolog.Logger
}

// NewFallback chains sources, highest priority first
func NewFallback(log zerolog.Logger, sources ...Source) *Fallback {
	return &Fallback{sources: sources, log: log}
}

// LatestClose returns the first available latest close
func (f *Fallback) LatestClose(ctx context.Context, symbol string) (decimal.Decimal, error) {
	var errs []error
	for i, src := range f.sources {
		price, err := src.LatestClose(ctx, symbol)
		if err == nil {
			return price, nil
		}
		f.log.Debug().Err(err).Str("symbol", symbol).Int("source", i).Msg("Quote source failed, trying next")
		errs = append(errs, err)
	}
	return decimal.Zero, fallbackError(symbol, errs)
}

// History returns the first available non-empty history
func (f *Fallback) History(ctx context.Context, symbol string, lookback time.Duration) ([]models.PricePoint, error) {
	var errs []error
	for i, src := range f.sources {
		points, err := src.History(ctx, symbol, lookback)
		if err == nil && len(points) > 0 {
			return points, nil
		}
		if err == nil {
			err = fmt.Errorf("%w for %s", ErrNoData, symbol)
		}
		f.log.Debug().Err(err).Str("symbol", symbol).Int("source", i).Msg("History source failed, trying next")
		errs = append(errs, err)
	}
	return nil, fallbackError(symbol, errs)
}

func fallbackError(symbol string, errs []error) error {
	if len(errs) == 0 {
		return fmt.Errorf("%w for %s: no sources configured", ErrNoData, symbol)
	}
	return fmt.Errorf("all quote sources failed for %s: %w", symbol, errors.Join(errs...))
}
