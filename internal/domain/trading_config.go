package domain

import "math"

// TradingConfig caller thresholds for trade screening.
// The engine itself only reads MaxInvestment; the minimums are applied by callers.
type TradingConfig struct {
	MinVolume           float64 `json:"minVolume"`
	MinSpreadPercentage float64 `json:"minSpreadPercentage"`
	MinProfitPerItem    float64 `json:"minProfitPerItem"`
	MaxInvestment       float64 `json:"maxInvestment"`
	MinROI              float64 `json:"minROI"`
}

// DefaultTradingConfig returns permissive defaults: every minimum is 1 and the
// investment ceiling is the largest 32-bit coin stack.
func DefaultTradingConfig() TradingConfig {
	return TradingConfig{
		MinVolume:           1,
		MinSpreadPercentage: 1,
		MinProfitPerItem:    1,
		MaxInvestment:       math.MaxInt32,
		MinROI:              1,
	}
}
