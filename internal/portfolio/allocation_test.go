package portfolio

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/trogers1052/portfolio-analytics/internal/models"
)

func TestAllocation(t *testing.T) {
	t.Run("empty portfolio yields empty mapping", func(t *testing.T) {
		assert.Empty(t, Allocation(nil))
	})

	t.Run("aggregates value per symbol", func(t *testing.T) {
		alloc := Allocation([]*models.Holding{
			holding("AAPL", 10, 150),
			holding("GOOGL", 5, 100),
			holding("AAPL", 2, 155.5),
		})

		assert.Len(t, alloc, 2)
		assert.True(t, decimal.RequireFromString("1811").Equal(alloc["AAPL"]))
		assert.True(t, decimal.NewFromInt(500).Equal(alloc["GOOGL"]))
	})

	t.Run("values partition the total value", func(t *testing.T) {
		holdings := []*models.Holding{
			holding("AAPL", 3, 189.37),
			holding("MSFT", 7, 412.11),
			holding("AAPL", 1, 0.01),
			holding("NVDA", 13, 121.79),
			holding("MSFT", 2, 399.99),
		}

		sum := decimal.Zero
		for _, v := range Allocation(holdings) {
			sum = sum.Add(v)
		}
		assert.True(t, TotalValue(holdings).Equal(sum), "allocation sum %s != total %s", sum, TotalValue(holdings))
	})
}
