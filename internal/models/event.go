package models

import "time"

// Portfolio event type constants
const (
	EventHoldingAdded   = "HOLDING_ADDED"
	EventHoldingRemoved = "HOLDING_REMOVED"
	EventPriceBar       = "PRICE_BAR"
)

// PortfolioEvent represents a Kafka event for portfolio changes
type PortfolioEvent struct {
	EventType string    `json:"event_type"`
	Symbol    string    `json:"symbol"`
	Holding   *Holding  `json:"holding,omitempty"`
	Removed   int64     `json:"removed,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// PriceBarEvent is a daily bar published by an upstream market data feed.
// Prices are strings to avoid float rounding on the wire.
type PriceBarEvent struct {
	EventType string `json:"event_type"`
	Symbol    string `json:"symbol"`
	Date      string `json:"date"`
	Open      string `json:"open,omitempty"`
	High      string `json:"high,omitempty"`
	Low       string `json:"low,omitempty"`
	Close     string `json:"close"`
	Volume    int64  `json:"volume,omitempty"`
}
