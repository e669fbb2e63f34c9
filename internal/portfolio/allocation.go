package portfolio

import (
	"github.com/shopspring/decimal"
	"github.com/trogers1052/portfolio-analytics/internal/models"
)

// Allocation aggregates total value per distinct symbol. The values
// partition TotalValue exactly.
func Allocation(holdings []*models.Holding) map[string]decimal.Decimal {
	alloc := make(map[string]decimal.Decimal)
	for _, h := range holdings {
		alloc[h.Symbol] = alloc[h.Symbol].Add(h.TotalValue())
	}
	return alloc
}
