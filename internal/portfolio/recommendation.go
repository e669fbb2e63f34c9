package portfolio

import (
	"github.com/shopspring/decimal"
	"github.com/trogers1052/portfolio-analytics/internal/models"
)

// Recommendation policy constants
const (
	MinInvestment      = 5000
	MinDistinctSymbols = 3
)

var (
	adviseIncreaseInvestment = models.Advisory{
		Code:     models.AdvisoryIncreaseInvestment,
		Message:  "Consider increasing your investment to diversify your portfolio and reduce risk.",
		Severity: models.SeverityInfo,
	}
	adviseLimitedDiversity = models.Advisory{
		Code:     models.AdvisoryLimitedDiversity,
		Message:  "Your portfolio has limited diversity. Adding more stocks from different sectors could improve stability.",
		Severity: models.SeverityInfo,
	}
	adviseWellDiversified = models.Advisory{
		Code:     models.AdvisoryWellDiversified,
		Message:  "Your portfolio is well diversified. Keep monitoring for market trends.",
		Severity: models.SeveritySuccess,
	}
)

// Recommend applies the diversification rules in priority order; the first match wins.
func Recommend(totalValue decimal.Decimal, distinctSymbols int) models.Advisory {
	switch {
	case totalValue.LessThan(decimal.NewFromInt(MinInvestment)):
		return adviseIncreaseInvestment
	case distinctSymbols < MinDistinctSymbols:
		return adviseLimitedDiversity
	default:
		return adviseWellDiversified
	}
}
