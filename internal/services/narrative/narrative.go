// Package narrative renders advisory remark codes into human-readable text.
package narrative

import (
	"strings"

	"github.com/vadiminshakov/geflip/internal/domain"
)

// Renderer turns a remark code into display text.
type Renderer interface {
	Render(remark domain.Remark) string
}

// English renders remarks with the default English wording.
// Unknown remarks render as their code.
type English struct{}

var english = map[domain.Remark]string{
	domain.RemarkVeryLowVolume:       "Very low trading volume",
	domain.RemarkHighVolumeLiquidity: "High trading volume indicates good liquidity",
	domain.RemarkHighVolatility:      "High price volatility",
	domain.RemarkStablePrices:        "Stable price trends",
	domain.RemarkReachesBuyLimit:     "Trade size reaches buy limit",

	domain.RemarkReduceTradeSize:      "Consider reducing trade size due to low volume",
	domain.RemarkFasterThanEstimated:  "Can likely complete trades faster than estimated",
	domain.RemarkSplitOrders:          "Use multiple small orders instead of one large order",
	domain.RemarkLargerOrders:         "Can use larger order sizes safely",
	domain.RemarkMultipleLimitPeriods: "Will need multiple 4-hour periods to complete purchase",

	domain.RemarkVolumeBelowLimit:       "Trading volume is lower than the buy limit, suggesting potential delays in completing trades.",
	domain.RemarkVolumeAboveLimit:       "Good trading volume relative to buy limit, indicating potential for quick trades.",
	domain.RemarkExcellentLiquidity:     "High daily volume suggests excellent liquidity.",
	domain.RemarkDecentLiquidity:        "Moderate daily volume indicates decent liquidity.",
	domain.RemarkCautionLargeQuantities: "Low daily volume suggests caution when trading larger quantities.",
	domain.RemarkDelayedTradeRisk:       "Very low daily volume indicates high risk of delayed trades.",

	domain.RemarkFrequentTrading:     "High volume makes this item suitable for frequent trading.",
	domain.RemarkPatientTraders:      "Low volume suggests this item is better for patient traders.",
	domain.RemarkLowerRisk:           "Price stability is high, making this a lower-risk trade.",
	domain.RemarkVolatilityUpside:    "Price volatility suggests higher risk but potential for better profits.",
	domain.RemarkReliableOpportunity: "High confidence rating suggests this is a reliable trading opportunity.",
	domain.RemarkCarefulMonitoring:   "Lower confidence rating indicates careful monitoring is recommended.",
}

// Render returns the English text of remark.
func (English) Render(remark domain.Remark) string {
	if text, ok := english[remark]; ok {
		return text
	}
	return remark.String()
}

// Texts renders every remark, keeping order.
func Texts(r Renderer, remarks []domain.Remark) []string {
	texts := make([]string, 0, len(remarks))
	for _, remark := range remarks {
		texts = append(texts, r.Render(remark))
	}
	return texts
}

// Join renders remarks into a single space-separated paragraph.
func Join(r Renderer, remarks []domain.Remark) string {
	return strings.Join(Texts(r, remarks), " ")
}
