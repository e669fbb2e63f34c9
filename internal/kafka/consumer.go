package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/segmentio/kafka-go"
	"github.com/shopspring/decimal"

	"github.com/trogers1052/portfolio-analytics/internal/models"
)

// PriceRepository defines the database operations the price consumer needs
type PriceRepository interface {
	CreatePriceData(ctx context.Context, p *models.PriceDataDaily) error
}

// PriceConsumer stores daily bars from the price topic so trend and risk
// analysis can run from the database.
type PriceConsumer struct {
	reader   *kafka.Reader
	repo     PriceRepository
	log      zerolog.Logger
	onStored func(ctx context.Context, symbol string) error
}

// NewPriceConsumer creates a new Kafka consumer for price bar events
func NewPriceConsumer(brokers []string, topic, groupID string, repo PriceRepository, log zerolog.Logger) *PriceConsumer {
	reader := kafka.NewReader(kafka.ReaderConfig{
		Brokers:        brokers,
		Topic:          topic,
		GroupID:        groupID,
		MinBytes:       10e3, // 10KB
		MaxBytes:       10e6, // 10MB
		MaxWait:        1 * time.Second,
		StartOffset:    kafka.FirstOffset,
		CommitInterval: time.Second,
	})

	return &PriceConsumer{
		reader: reader,
		repo:   repo,
		log:    log,
	}
}

// OnStored registers a callback run after each bar is saved, e.g. to
// invalidate a cached quote for the symbol.
func (c *PriceConsumer) OnStored(fn func(ctx context.Context, symbol string) error) {
	c.onStored = fn
}

// Start consumes messages until ctx is cancelled
func (c *PriceConsumer) Start(ctx context.Context) error {
	c.log.Info().Str("topic", c.reader.Config().Topic).Msg("Starting price consumer")

	for {
		msg, err := c.reader.ReadMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				c.log.Info().Msg("Price consumer shutting down")
				return nil
			}
			c.log.Error().Err(err).Msg("Error reading message")
			continue
		}

		if err := c.processMessage(ctx, msg); err != nil {
			c.log.Error().Err(err).
				Int("partition", msg.Partition).
				Int64("offset", msg.Offset).
				Msg("Error processing message")
		}
	}
}

// processMessage handles a single Kafka message
func (c *PriceConsumer) processMessage(ctx context.Context, msg kafka.Message) error {
	c.log.Debug().
		Int("partition", msg.Partition).
		Int64("offset", msg.Offset).
		Str("key", string(msg.Key)).
		Msg("Received message")

	var event models.PriceBarEvent
	if err := json.Unmarshal(msg.Value, &event); err != nil {
		return fmt.Errorf("failed to unmarshal price bar event: %w", err)
	}

	if event.EventType != models.EventPriceBar {
		c.log.Debug().Str("event_type", event.EventType).Msg("Ignoring event type")
		return nil
	}

	bar, err := convertEventToPriceData(event)
	if err != nil {
		return fmt.Errorf("failed to convert event to price data: %w", err)
	}

	if err := c.repo.CreatePriceData(ctx, bar); err != nil {
		return fmt.Errorf("failed to save price data: %w", err)
	}

	if c.onStored != nil {
		if err := c.onStored(ctx, bar.Symbol); err != nil {
			c.log.Warn().Err(err).Str("symbol", bar.Symbol).Msg("Post-store hook failed")
		}
	}

	c.log.Debug().
		Str("symbol", bar.Symbol).
		Str("date", event.Date).
		Str("close", bar.Close.String()).
		Msg("Saved price bar")
	return nil
}

// convertEventToPriceData maps a PriceBarEvent to a daily bar. Missing
// open/high/low default to the close.
func convertEventToPriceData(event models.PriceBarEvent) (*models.PriceDataDaily, error) {
	symbol := strings.ToUpper(strings.TrimSpace(event.Symbol))
	if symbol == "" {
		return nil, fmt.Errorf("missing symbol")
	}

	date, err := time.Parse("2006-01-02", event.Date)
	if err != nil {
		return nil, fmt.Errorf("invalid date %q: %w", event.Date, err)
	}

	closePrice, err := decimal.NewFromString(event.Close)
	if err != nil {
		return nil, fmt.Errorf("invalid close %q: %w", event.Close, err)
	}
	if !closePrice.IsPositive() {
		return nil, fmt.Errorf("non-positive close %s", closePrice)
	}

	parse := func(s string) decimal.Decimal {
		if d, err := decimal.NewFromString(s); err == nil && d.IsPositive() {
			return d
		}
		return closePrice
	}

	return &models.PriceDataDaily{
		Symbol: symbol,
		Date:   date,
		Open:   parse(event.Open),
		High:   parse(event.High),
		Low:    parse(event.Low),
		Close:  closePrice,
		Volume: event.Volume,
	}, nil
}

// Close closes the Kafka consumer
func (c *PriceConsumer) Close() error {
	return c.reader.Close()
}
