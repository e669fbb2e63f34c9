package models

// Advisory code constants
const (
	AdvisoryIncreaseInvestment = "increase_investment"
	AdvisoryLimitedDiversity   = "limited_diversity"
	AdvisoryWellDiversified    = "well_diversified"
)

// Advisory severity constants
const (
	SeverityInfo    = "info"
	SeveritySuccess = "success"
)

// Advisory is a portfolio recommendation message
type Advisory struct {
	Code     string `json:"code"`
	Message  string `json:"message"`
	Severity string `json:"severity"`
}
