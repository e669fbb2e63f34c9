package portfolio

import (
	"github.com/shopspring/decimal"
	"github.com/trogers1052/portfolio-analytics/internal/models"
)

// TotalValue sums quantity x price_at_add over all holdings
func TotalValue(holdings []*models.Holding) decimal.Decimal {
	total := decimal.Zero
	for _, h := range holdings {
		total = total.Add(h.TotalValue())
	}
	return total
}

// TotalQuantity sums the quantities of all holdings
func TotalQuantity(holdings []*models.Holding) int64 {
	var total int64
	for _, h := range holdings {
		total += h.Quantity
	}
	return total
}

// ValuationLines derives one valuation row per holding
func ValuationLines(holdings []*models.Holding) []models.ValuationLine {
	lines := make([]models.ValuationLine, 0, len(holdings))
	for _, h := range holdings {
		lines = append(lines, models.ValuationLine{
			Symbol:     h.Symbol,
			Quantity:   h.Quantity,
			PriceAtAdd: h.PriceAtAdd,
			TotalValue: h.TotalValue(),
		})
	}
	return lines
}

// Summarize builds the full valuation summary for a set of holdings
func Summarize(holdings []*models.Holding) models.ValuationSummary {
	symbols := DistinctSymbols(holdings)
	if symbols == nil {
		symbols = []string{}
	}
	return models.ValuationSummary{
		TotalValue:    TotalValue(holdings),
		TotalQuantity: TotalQuantity(holdings),
		Allocation:    Allocation(holdings),
		Symbols:       symbols,
		Lines:         ValuationLines(holdings),
	}
}
