package quotes

import (
	"context"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/trogers1052/portfolio-analytics/internal/models"
)

func setupRedis(t *testing.T) *redis.Client {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping redis integration test in short mode")
	}

	ctx := context.Background()
	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "redis:7-alpine",
			ExposedPorts: []string{"6379/tcp"},
			WaitingFor: wait.ForAll(
				wait.ForListeningPort("6379/tcp"),
				wait.ForLog("Ready to accept connections"),
			).WithDeadline(60 * time.Second),
		},
		Started: true,
	})
	require.NoError(t, err, "failed to start redis container")
	t.Cleanup(func() {
		_ = container.Terminate(ctx)
	})

	endpoint, err := container.Endpoint(ctx, "")
	require.NoError(t, err)

	rdb := redis.NewClient(&redis.Options{Addr: endpoint})
	t.Cleanup(func() { _ = rdb.Close() })
	require.NoError(t, rdb.Ping(ctx).Err())
	return rdb
}

func TestCachedSourceKeys(t *testing.T) {
	c := NewCachedSource(newFakeSource(), nil, "portfolio", 0, zerolog.Nop())

	assert.Equal(t, "portfolio:quote:latest:AAPL", c.LatestCloseKey("aapl"))
	assert.Equal(t, "portfolio:quote:history:AAPL:720h0m0s", c.HistoryKey("AAPL", 720*time.Hour))
	assert.Equal(t, DefaultCacheTTL, c.ttl)
}

func TestCachedSourceWithoutRedisPassesThrough(t *testing.T) {
	ctx := context.Background()
	next := newFakeSource()
	next.prices["AAPL"] = decimal.NewFromInt(150)
	c := NewCachedSource(next, nil, "portfolio", time.Minute, zerolog.Nop())

	for i := 0; i < 3; i++ {
		price, err := c.LatestClose(ctx, "AAPL")
		require.NoError(t, err)
		assert.True(t, decimal.NewFromInt(150).Equal(price))
	}
	assert.Equal(t, 3, next.latestCalls)
	assert.NoError(t, c.Invalidate(ctx, "AAPL"))
}

func TestCachedSourceRedis(t *testing.T) {
	rdb := setupRedis(t)
	ctx := context.Background()

	next := newFakeSource()
	next.prices["AAPL"] = decimal.RequireFromString("150.25")
	next.history["AAPL"] = []models.PricePoint{
		{Date: day(1), Close: decimal.NewFromInt(100)},
		{Date: day(2), Close: decimal.NewFromInt(101)},
	}
	c := NewCachedSource(next, rdb, "test", time.Minute, zerolog.Nop())

	t.Run("latest close is served from cache after the first call", func(t *testing.T) {
		for i := 0; i < 3; i++ {
			price, err := c.LatestClose(ctx, "AAPL")
			require.NoError(t, err)
			assert.Equal(t, "150.25", price.String())
		}
		assert.Equal(t, 1, next.latestCalls)

		ttl, err := rdb.TTL(ctx, c.LatestCloseKey("AAPL")).Result()
		require.NoError(t, err)
		assert.Greater(t, ttl, time.Duration(0))
	})

	t.Run("invalidate forces a refetch", func(t *testing.T) {
		require.NoError(t, c.Invalidate(ctx, "AAPL"))
		_, err := c.LatestClose(ctx, "AAPL")
		require.NoError(t, err)
		assert.Equal(t, 2, next.latestCalls)
	})

	t.Run("history round trips through the cache", func(t *testing.T) {
		first, err := c.History(ctx, "AAPL", 48*time.Hour)
		require.NoError(t, err)
		second, err := c.History(ctx, "AAPL", 48*time.Hour)
		require.NoError(t, err)

		assert.Equal(t, 1, next.historyCalls)
		require.Len(t, second, 2)
		assert.True(t, first[1].Close.Equal(second[1].Close))
		assert.True(t, first[0].Date.Equal(second[0].Date))
	})

	t.Run("empty history is not cached", func(t *testing.T) {
		_, err := c.History(ctx, "NONE", time.Hour)
		require.NoError(t, err)
		_, err = c.History(ctx, "NONE", time.Hour)
		require.NoError(t, err)
		assert.Equal(t, 3, next.historyCalls)
	})

	t.Run("errors are not cached", func(t *testing.T) {
		_, err := c.LatestClose(ctx, "MISSING")
		assert.ErrorIs(t, err, ErrNoData)

		exists, err := rdb.Exists(ctx, c.LatestCloseKey("MISSING")).Result()
		require.NoError(t, err)
		assert.Zero(t, exists)
	})
}
