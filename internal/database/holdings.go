package database

import (
	"context"
	"fmt"

	"github.com/trogers1052/portfolio-analytics/internal/models"
)

// CreateHolding inserts a new holding. Holdings are append-only; the
// serial seq column preserves insertion order.
func (db *DB) CreateHolding(ctx context.Context, h *models.Holding) error {
	query := `
		INSERT INTO holdings (id, symbol, quantity, price_at_add, added_at)
		VALUES ($1, $2, $3, $4, $5)
	`
	_, err := db.conn.ExecContext(ctx, query, h.ID, h.Symbol, h.Quantity, h.PriceAtAdd, h.AddedAt)
	if err != nil {
		return fmt.Errorf("failed to create holding: %w", err)
	}
	return nil
}

// GetAllHoldings retrieves every holding in insertion order
func (db *DB) GetAllHoldings(ctx context.Context) ([]*models.Holding, error) {
	query := `
		SELECT id, symbol, quantity, price_at_add, added_at
		FROM holdings
		ORDER BY seq ASC
	`
	rows, err := db.conn.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to get holdings: %w", err)
	}
	defer rows.Close()

	holdings := []*models.Holding{}
	for rows.Next() {
		var h models.Holding
		if err := rows.Scan(&h.ID, &h.Symbol, &h.Quantity, &h.PriceAtAdd, &h.AddedAt); err != nil {
			return nil, fmt.Errorf("failed to scan holding: %w", err)
		}
		h.AddedAt = h.AddedAt.UTC()
		holdings = append(holdings, &h)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate holdings: %w", err)
	}

	return holdings, nil
}

// DeleteHoldingsBySymbol removes all holdings for a symbol and reports how many were removed
func (db *DB) DeleteHoldingsBySymbol(ctx context.Context, symbol string) (int64, error) {
	query := `DELETE FROM holdings WHERE symbol = $1`
	result, err := db.conn.ExecContext(ctx, query, symbol)
	if err != nil {
		return 0, fmt.Errorf("failed to delete holdings for %s: %w", symbol, err)
	}
	return result.RowsAffected()
}
