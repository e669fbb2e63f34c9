package portfolio

import (
	"context"
	"strings"
	"sync"

	"github.com/trogers1052/portfolio-analytics/internal/models"
)

// HoldingRepository defines the storage operations the engine needs.
// GetAllHoldings must return holdings in insertion order.
type HoldingRepository interface {
	CreateHolding(ctx context.Context, h *models.Holding) error
	DeleteHoldingsBySymbol(ctx context.Context, symbol string) (int64, error)
	GetAllHoldings(ctx context.Context) ([]*models.Holding, error)
}

// MemoryStore keeps holdings in memory for the lifetime of the process
type MemoryStore struct {
	mu       sync.RWMutex
	holdings []models.Holding
}

// NewMemoryStore creates an empty in-memory holding store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

// CreateHolding appends a holding to the end of the sequence
func (s *MemoryStore) CreateHolding(_ context.Context, h *models.Holding) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.holdings = append(s.holdings, *h)
	return nil
}

// DeleteHoldingsBySymbol removes every holding for symbol and returns how many were removed
func (s *MemoryStore) DeleteHoldingsBySymbol(_ context.Context, symbol string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	kept := s.holdings[:0]
	var removed int64
	for _, h := range s.holdings {
		if h.Symbol == symbol {
			removed++
			continue
		}
		kept = append(kept, h)
	}
	// clear the tail so removed records are not retained by the backing array
	for i := len(kept); i < len(s.holdings); i++ {
		s.holdings[i] = models.Holding{}
	}
	s.holdings = kept
	return removed, nil
}

// GetAllHoldings returns a snapshot of the holdings in insertion order
func (s *MemoryStore) GetAllHoldings(_ context.Context) ([]*models.Holding, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*models.Holding, len(s.holdings))
	for i := range s.holdings {
		h := s.holdings[i]
		out[i] = &h
	}
	return out, nil
}

// DistinctSymbols returns each symbol once, in first-seen order
func DistinctSymbols(holdings []*models.Holding) []string {
	seen := make(map[string]struct{}, len(holdings))
	var symbols []string
	for _, h := range holdings {
		if _, ok := seen[h.Symbol]; ok {
			continue
		}
		seen[h.Symbol] = struct{}{}
		symbols = append(symbols, h.Symbol)
	}
	return symbols
}

// NormalizeSymbol trims and upper-cases a ticker
func NormalizeSymbol(symbol string) string {
	return strings.ToUpper(strings.TrimSpace(symbol))
}
