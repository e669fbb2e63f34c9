package models

// RiskLevel is the discrete risk classification of a symbol
type RiskLevel string

// Risk level constants
const (
	RiskLow  RiskLevel = "Low"
	RiskHigh RiskLevel = "High"
)

// RiskEntry is one row of the risk report
type RiskEntry struct {
	Symbol     string    `json:"symbol"`
	Volatility float64   `json:"volatility"`
	RiskLevel  RiskLevel `json:"risk_level"`
}
