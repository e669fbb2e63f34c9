package commands

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/trogers1052/portfolio-analytics/internal/api"
	"github.com/trogers1052/portfolio-analytics/internal/config"
	"github.com/trogers1052/portfolio-analytics/internal/database"
	"github.com/trogers1052/portfolio-analytics/internal/kafka"
	"github.com/trogers1052/portfolio-analytics/internal/logger"
	"github.com/trogers1052/portfolio-analytics/internal/portfolio"
	"github.com/trogers1052/portfolio-analytics/internal/quotes"
)

const cachePrefix = "portfolio"

// app wires configuration into the engine and its optional backends
type app struct {
	cfg      *config.Config
	log      zerolog.Logger
	db       *database.DB
	rdb      *redis.Client
	producer *kafka.Producer
	eodhd    *quotes.EODHDClient
	cache    *quotes.CachedSource
	engine   *portfolio.Engine
}

func loadConfig() (*config.Config, zerolog.Logger) {
	cfg := config.Load()
	if logLevel != "" {
		cfg.Log.Level = logLevel
	}
	if verbose {
		cfg.Log.Level = "debug"
	}
	return cfg, logger.New(logger.Config{Level: cfg.Log.Level, Pretty: cfg.Log.Pretty})
}

func newApp(ctx context.Context) (*app, error) {
	cfg, log := loadConfig()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	a := &app{cfg: cfg, log: log}

	if cfg.Database.Enabled {
		db, err := database.New(cfg.Database.ConnectionString())
		if err != nil {
			return nil, fmt.Errorf("connect to database: %w", err)
		}
		a.db = db
		log.Info().Str("host", cfg.Database.Host).Str("db", cfg.Database.DBName).Msg("Connected to database")
	}

	if cfg.Redis.Enabled {
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err := rdb.Ping(ctx).Err(); err != nil {
			rdb.Close()
			a.Close()
			return nil, fmt.Errorf("redis connection failed: %w", err)
		}
		a.rdb = rdb
		log.Info().Str("addr", cfg.Redis.Addr).Dur("ttl", cfg.Redis.TTL).Msg("Quote cache enabled")
	}

	if cfg.Kafka.Enabled {
		a.producer = kafka.NewProducer(cfg.Kafka.Brokers, cfg.Kafka.Topic)
	}

	var sources []quotes.Source
	if cfg.Quotes.APIKey != "" {
		a.eodhd = quotes.NewEODHDClient(cfg.Quotes.APIKey,
			quotes.WithBaseURL(cfg.Quotes.BaseURL),
			quotes.WithExchange(cfg.Quotes.Exchange),
			quotes.WithRateLimit(cfg.Quotes.RateLimit),
			quotes.WithTimeout(cfg.Quotes.Timeout),
			quotes.WithLogger(log),
		)
		a.cache = quotes.NewCachedSource(a.eodhd, a.rdb, cachePrefix, cfg.Redis.TTL, log)
		sources = append(sources, a.cache)
	}
	if a.db != nil {
		sources = append(sources, quotes.NewStoredSource(a.db))
	}

	var repo portfolio.HoldingRepository = portfolio.NewMemoryStore()
	if a.db != nil {
		repo = a.db
	}

	a.engine = portfolio.NewEngine(repo, quotes.NewFallback(log, sources...),
		portfolio.WithLogger(log),
		portfolio.WithLookback(cfg.Analysis.TrendLookback),
	)
	return a, nil
}

// publisher returns the event publisher, or nil when Kafka is disabled
func (a *app) publisher() api.EventPublisher {
	if a.producer == nil {
		return nil
	}
	return a.producer
}

// persistent reports whether holdings outlive the process
func (a *app) persistent() bool {
	return a.db != nil
}

// Close releases every backend connection
func (a *app) Close() {
	if a.producer != nil {
		if err := a.producer.Close(); err != nil {
			a.log.Warn().Err(err).Msg("Failed to close Kafka producer")
		}
	}
	if a.rdb != nil {
		a.rdb.Close()
	}
	if a.db != nil {
		a.db.Close()
	}
}
