package domain

import "math"

// TimeEstimate duration range in hours with its display form.
type TimeEstimate struct {
	Min       float64 `json:"min"`
	Max       float64 `json:"max"`
	Formatted string  `json:"formatted"`
}

// TradeTimeAnalysis estimated durations to fill the buy and the sell side of a flip.
type TradeTimeAnalysis struct {
	BuyTime   TimeEstimate `json:"buyTime"`
	SellTime  TimeEstimate `json:"sellTime"`
	TotalTime TimeEstimate `json:"totalTime"`
	// Confidence is the reliability of the estimate, 0..1.
	Confidence float64  `json:"confidence"`
	Factors    []Remark `json:"factors"`
	Advice     []Remark `json:"advice"`
}

// TradeOpportunity scored flip candidate.
//
// Numeric fields are not guarded against degenerate input: a zero buy price or
// zero volume yields NaN or infinite values, which callers must read as
// "insufficient data".
type TradeOpportunity struct {
	ItemID string `json:"itemId"`
	Name   string `json:"name"`
	Icon   string `json:"icon"`
	// BuyPrice is the average low price.
	BuyPrice float64 `json:"buyPrice"`
	// SellPrice is the quoted average high price, before tax.
	SellPrice float64 `json:"sellPrice"`
	// NetSellPrice is SellPrice after the sell-side tax.
	NetSellPrice         float64           `json:"netSellPrice"`
	Volume               float64           `json:"volume"`
	ProfitPerItem        float64           `json:"profitPerItem"`
	TotalPotentialProfit float64           `json:"totalPotentialProfit"`
	ROI                  float64           `json:"roi"`
	BuyLimit             float64           `json:"buyLimit"`
	Confidence           float64           `json:"confidence"`
	PriceStability       float64           `json:"priceStability"`
	RecommendedQuantity  float64           `json:"recommendedQuantity"`
	ExpectedTimeToSell   string            `json:"expectedTimeToSell"`
	ConfidenceToProfit   float64           `json:"confidenceToProfit"`
	TimeAnalysis         TradeTimeAnalysis `json:"timeAnalysis"`
	Members              bool              `json:"members"`
}

// Profitable reports whether a unit flip earns coins after tax.
func (t TradeOpportunity) Profitable() bool {
	return t.ProfitPerItem > 0
}

// SpreadPercentage returns the quoted spread relative to the buy price, in percent.
func (t TradeOpportunity) SpreadPercentage() float64 {
	return (t.SellPrice - t.BuyPrice) / t.BuyPrice * 100
}

// Finite reports whether every score callers rank by is a finite number.
func (t TradeOpportunity) Finite() bool {
	for _, v := range []float64{t.ROI, t.Confidence, t.ConfidenceToProfit, t.RecommendedQuantity, t.TotalPotentialProfit} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}
