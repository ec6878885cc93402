package domain

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTradeOpportunity_Finite(t *testing.T) {
	opp := TradeOpportunity{ROI: 98, Confidence: 0.5, ConfidenceToProfit: 0.6, RecommendedQuantity: 100, TotalPotentialProfit: 4900}
	assert.True(t, opp.Finite())

	opp.ROI = math.Inf(1)
	assert.False(t, opp.Finite())

	opp.ROI = 98
	opp.ConfidenceToProfit = math.NaN()
	assert.False(t, opp.Finite())
}

func TestTradeOpportunity_Profitable(t *testing.T) {
	assert.True(t, TradeOpportunity{ProfitPerItem: 1}.Profitable())
	assert.False(t, TradeOpportunity{ProfitPerItem: 0}.Profitable())
	assert.False(t, TradeOpportunity{ProfitPerItem: -3}.Profitable())
}

func TestTradeOpportunity_SpreadPercentage(t *testing.T) {
	assert.InDelta(t, 100.0, TradeOpportunity{BuyPrice: 50, SellPrice: 100}.SpreadPercentage(), 1e-9)
}
