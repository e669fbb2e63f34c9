package quotes

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/trogers1052/portfolio-analytics/internal/models"
)

// DefaultCacheTTL bounds how long a cached quote is served
const DefaultCacheTTL = 5 * time.Minute

// Source is the quote contract shared by every provider in this package
type Source interface {
	LatestClose(ctx context.Context, symbol string) (decimal.Decimal, error)
	History(ctx context.Context, symbol string, lookback time.Duration) ([]models.PricePoint, error)
}

// CachedSource serves quotes from Redis when present and fills the cache
// from the wrapped source on a miss. Only successful, non-empty results are
// cached. A nil Redis client disables caching.
type CachedSource struct {
	next   Source
	rdb    *redis.Client
	prefix string
	ttl    time.Duration
	log    zerolog.Logger
}

// NewCachedSource wraps next with a Redis TTL cache
func NewCachedSource(next Source, rdb *redis.Client, prefix string, ttl time.Duration, log zerolog.Logger) *CachedSource {
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	return &CachedSource{
		next:   next,
		rdb:    rdb,
		prefix: prefix,
		ttl:    ttl,
		log:    log,
	}
}

// LatestCloseKey returns the cache key for a symbol's latest close
func (c *CachedSource) LatestCloseKey(symbol string) string {
	return fmt.Sprintf("%s:quote:latest:%s", c.prefix, strings.ToUpper(symbol))
}

// HistoryKey returns the cache key for a symbol's history over lookback
func (c *CachedSource) HistoryKey(symbol string, lookback time.Duration) string {
	return fmt.Sprintf("%s:quote:history:%s:%s", c.prefix, strings.ToUpper(symbol), lookback)
}

// LatestClose returns the cached close or fetches it from the wrapped source
func (c *CachedSource) LatestClose(ctx context.Context, symbol string) (decimal.Decimal, error) {
	key := c.LatestCloseKey(symbol)

	var cached decimal.Decimal
	if c.get(ctx, key, &cached) {
		return cached, nil
	}

	price, err := c.next.LatestClose(ctx, symbol)
	if err != nil {
		return decimal.Zero, err
	}
	c.set(ctx, key, price)
	return price, nil
}

// History returns the cached series or fetches it from the wrapped source
func (c *CachedSource) History(ctx context.Context, symbol string, lookback time.Duration) ([]models.PricePoint, error) {
	key := c.HistoryKey(symbol, lookback)

	var cached []models.PricePoint
	if c.get(ctx, key, &cached) && len(cached) > 0 {
		return cached, nil
	}

	points, err := c.next.History(ctx, symbol, lookback)
	if err != nil {
		return nil, err
	}
	if len(points) > 0 {
		c.set(ctx, key, points)
	}
	return points, nil
}

// Invalidate drops the cached latest close for symbol
func (c *CachedSource) Invalidate(ctx context.Context, symbol string) error {
	if c.rdb == nil {
		return nil
	}
	return c.rdb.Del(ctx, c.LatestCloseKey(symbol)).Err()
}

func (c *CachedSource) get(ctx context.Context, key string, dest interface{}) bool {
	if c.rdb == nil {
		return false
	}

	data, err := c.rdb.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return false
	}
	if err != nil {
		c.log.Warn().Err(err).Str("key", key).Msg("Quote cache read failed")
		return false
	}

	if err := json.Unmarshal(data, dest); err != nil {
		c.log.Warn().Err(err).Str("key", key).Msg("Discarding undecodable cache entry")
		return false
	}
	return true
}

func (c *CachedSource) set(ctx context.Context, key string, value interface{}) {
	if c.rdb == nil {
		return
	}

	data, err := json.Marshal(value)
	if err != nil {
		c.log.Warn().Err(err).Str("key", key).Msg("Quote cache marshal failed")
		return
	}
	if err := c.rdb.Set(ctx, key, data, c.ttl).Err(); err != nil {
		c.log.Warn().Err(err).Str("key", key).Msg("Quote cache write failed")
	}
}
