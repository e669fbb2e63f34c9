package portfolio

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/trogers1052/portfolio-analytics/internal/models"
)

// Engine owns a portfolio for one session and derives analytics from it.
// All derived metrics are recomputed on every call.
type Engine struct {
	repo     HoldingRepository
	quotes   QuoteSource
	log      zerolog.Logger
	lookback time.Duration
	now      func() time.Time
	newID    func() string
}

// Option configures an Engine
type Option func(*Engine)

// WithLogger sets the logger
func WithLogger(log zerolog.Logger) Option {
	return func(e *Engine) {
		e.log = log
	}
}

// WithLookback sets the default trend lookback
func WithLookback(lookback time.Duration) Option {
	return func(e *Engine) {
		if lookback > 0 {
			e.lookback = lookback
		}
	}
}

// WithClock sets the clock used to stamp new holdings
func WithClock(now func() time.Time) Option {
	return func(e *Engine) {
		e.now = now
	}
}

// WithIDGenerator sets the holding ID generator
func WithIDGenerator(newID func() string) Option {
	return func(e *Engine) {
		e.newID = newID
	}
}

// NewEngine creates an engine over repo, pricing holdings from quotes
func NewEngine(repo HoldingRepository, quotes QuoteSource, opts ...Option) *Engine {
	e := &Engine{
		repo:     repo,
		quotes:   quotes,
		log:      zerolog.Nop(),
		lookback: DefaultLookback,
		now:      time.Now,
		newID:    uuid.NewString,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Lookback returns the default trend lookback
func (e *Engine) Lookback() time.Duration {
	return e.lookback
}

// AddHolding records a purchase of quantity shares of symbol at the current price.
// Input is validated before any I/O; no holding is created unless a positive
// price was obtained.
func (e *Engine) AddHolding(ctx context.Context, symbol string, quantity int64) (*models.Holding, error) {
	symbol = NormalizeSymbol(symbol)
	if symbol == "" {
		return nil, fmt.Errorf("%w: symbol is required", ErrInvalidInput)
	}
	if quantity < 1 {
		return nil, fmt.Errorf("%w: quantity must be at least 1, got %d", ErrInvalidInput, quantity)
	}

	price, err := e.CurrentPrice(ctx, symbol)
	if err != nil {
		return nil, err
	}

	h := &models.Holding{
		ID:         e.newID(),
		Symbol:     symbol,
		Quantity:   quantity,
		PriceAtAdd: price,
		AddedAt:    e.now().UTC(),
	}
	if err := e.repo.CreateHolding(ctx, h); err != nil {
		return nil, fmt.Errorf("failed to store holding: %w", err)
	}

	e.log.Info().
		Str("symbol", symbol).
		Int64("quantity", quantity).
		Str("price", price.StringFixed(2)).
		Msg("Holding added")
	return h, nil
}

// CurrentPrice fetches the latest close for symbol
func (e *Engine) CurrentPrice(ctx context.Context, symbol string) (decimal.Decimal, error) {
	price, err := e.quotes.LatestClose(ctx, symbol)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: latest close for %s: %w", ErrQuoteUnavailable, symbol, err)
	}
	if !price.IsPositive() {
		return decimal.Zero, fmt.Errorf("%w: non-positive close %s for %s", ErrQuoteUnavailable, price, symbol)
	}
	return price, nil
}

// RemoveHolding removes every holding for symbol. Removing an absent symbol
// is a no-op that returns 0.
func (e *Engine) RemoveHolding(ctx context.Context, symbol string) (int64, error) {
	symbol = NormalizeSymbol(symbol)
	if symbol == "" {
		return 0, nil
	}

	removed, err := e.repo.DeleteHoldingsBySymbol(ctx, symbol)
	if err != nil {
		return 0, fmt.Errorf("failed to remove holdings for %s: %w", symbol, err)
	}

	e.log.Info().Str("symbol", symbol).Int64("removed", removed).Msg("Holdings removed")
	return removed, nil
}

// ListHoldings returns the holdings in insertion order
func (e *Engine) ListHoldings(ctx context.Context) ([]*models.Holding, error) {
	holdings, err := e.repo.GetAllHoldings(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list holdings: %w", err)
	}
	return holdings, nil
}

// GetValuationSummary computes totals and per-symbol allocation
func (e *Engine) GetValuationSummary(ctx context.Context) (models.ValuationSummary, error) {
	holdings, err := e.ListHoldings(ctx)
	if err != nil {
		return models.ValuationSummary{}, err
	}
	return Summarize(holdings), nil
}

// GetTrend returns the price history of symbol over the default lookback
func (e *Engine) GetTrend(ctx context.Context, symbol string) Series {
	return e.GetTrendWithLookback(ctx, symbol, e.lookback)
}

// GetTrendWithLookback returns the price history of symbol over lookback.
// Unavailable data yields an empty series rather than an error.
func (e *Engine) GetTrendWithLookback(ctx context.Context, symbol string, lookback time.Duration) Series {
	symbol = NormalizeSymbol(symbol)
	if lookback <= 0 {
		lookback = e.lookback
	}

	points, err := e.quotes.History(ctx, symbol, lookback)
	if err != nil {
		e.log.Warn().Err(err).Str("symbol", symbol).Msg("Could not fetch price history")
		return Series{Symbol: symbol}
	}
	if len(points) == 0 {
		e.log.Warn().Str("symbol", symbol).Msg("Price history is empty")
	}
	return NewSeries(symbol, points)
}

// GetRiskReport classifies the volatility of each distinct symbol. Symbols
// without enough price history are left out of the report.
func (e *Engine) GetRiskReport(ctx context.Context) ([]models.RiskEntry, error) {
	holdings, err := e.ListHoldings(ctx)
	if err != nil {
		return nil, err
	}

	report := []models.RiskEntry{}
	for _, symbol := range DistinctSymbols(holdings) {
		series := e.GetTrend(ctx, symbol)
		if series.Empty() {
			continue
		}

		volatility, err := Volatility(series)
		var level models.RiskLevel
		if err == nil {
			level, err = ClassifyRisk(series)
		}
		if errors.Is(err, ErrInsufficientData) {
			e.log.Debug().Err(err).Str("symbol", symbol).Msg("Skipping symbol in risk report")
			continue
		}
		if err != nil {
			return nil, err
		}

		report = append(report, models.RiskEntry{
			Symbol:     symbol,
			Volatility: volatility,
			RiskLevel:  level,
		})
	}
	return report, nil
}

// GetRecommendation evaluates the diversification rules. ok is false when
// the portfolio is empty.
func (e *Engine) GetRecommendation(ctx context.Context) (advisory models.Advisory, ok bool, err error) {
	holdings, err := e.ListHoldings(ctx)
	if err != nil {
		return models.Advisory{}, false, err
	}
	if len(holdings) == 0 {
		return models.Advisory{}, false, nil
	}
	return Recommend(TotalValue(holdings), len(DistinctSymbols(holdings))), true, nil
}
