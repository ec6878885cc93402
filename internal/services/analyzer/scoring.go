package analyzer

import (
	"fmt"
	"math"

	"github.com/vadiminshakov/geflip/internal/domain"
)

const (
	// volume at which liquidity stops adding confidence
	fullLiquidityVolume = 10000
	// relative spread multiplier, a 10% spread already scores the worst
	spreadPenaltyFactor = 10

	volumeWeight    = 0.4
	stabilityWeight = 0.4
	spreadWeight    = 0.2
)

// Confidence blends liquidity, price stability and spread tightness into a 0..1 score.
func Confidence(obs domain.ItemObservation) float64 {
	volumeScore := math.Min(1, float64(obs.Volume())/fullLiquidityVolume)
	spreadScore := clamp01(obs.SpreadRatio() * spreadPenaltyFactor)

	return volumeScore*volumeWeight + PriceStability(obs)*stabilityWeight + (1-spreadScore)*spreadWeight
}

// PriceStability scores how tight the spread is around the mid price.
// A spread of half the mid price or more scores 0. Inverted quotes (high
// below low) score 1 rather than above it.
func PriceStability(obs domain.ItemObservation) float64 {
	avgPrice := (obs.AvgHighPrice + obs.AvgLowPrice) / 2
	spreadPercentage := obs.Spread() / avgPrice

	return clamp01(1 - spreadPercentage*2)
}

// clamp01 bounds v to [0, 1]; NaN passes through.
func clamp01(v float64) float64 {
	return math.Min(1, math.Max(0, v))
}

// expectedTimeToSell formats quantity/volumePerHour as a rough headline duration.
func expectedTimeToSell(volumePerHour, quantity float64) string {
	hours := quantity / volumePerHour

	switch {
	case hours < 1:
		return "Less than 1 hour"
	case hours < 24:
		rounded := math.Ceil(hours)
		return fmt.Sprintf("~%s hour%s", count(rounded), plural(rounded))
	default:
		days := math.Ceil(hours / 24)
		return fmt.Sprintf("~%s day%s", count(days), plural(days))
	}
}

// count prints a whole number; non-finite values print as NaN or Inf.
func count(v float64) string {
	return fmt.Sprintf("%.0f", v)
}

func plural(v float64) string {
	if v > 1 {
		return "s"
	}
	return ""
}
