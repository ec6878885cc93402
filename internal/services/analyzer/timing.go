package analyzer

import (
	"fmt"
	"math"

	"github.com/vadiminshakov/geflip/internal/domain"
)

const (
	hoursPerDay = 24
	// buy limits reset every 4 hours
	limitPeriodHours = 4
	// padding applied to the ceiling of a limit-bound buy window
	limitPeriodSlack = 1.2

	sellFriction = 1.2

	rangeLow  = 0.7
	rangeHigh = 1.3

	lowVolume      = 1000
	moderateVolume = 5000
	highVolume     = 10000
	veryHighVolume = 20000

	volatilePrice = 0.3
	stablePrice   = 0.7
)

// AnalyzeTime estimates how long buying and selling the recommended quantity takes.
//
// The quantity is recomputed against DefaultTradingConfig with an hourly volume
// of volume/24, and a missing buy limit counts as TimingDefaultBuyLimit.
func (a *Analyzer) AnalyzeTime(obs domain.ItemObservation) domain.TradeTimeAnalysis {
	volume := float64(obs.Volume())
	volumePerHour := volume / hoursPerDay
	buyLimit := float64(obs.LimitOr(TimingDefaultBuyLimit))
	quantity := recommendedQuantity(volume, buyLimit, obs.AvgLowPrice, domain.DefaultTradingConfig().MaxInvestment)
	stability := PriceStability(obs)

	var factors, advice []domain.Remark

	if volume < lowVolume {
		factors = append(factors, domain.RemarkVeryLowVolume)
		advice = append(advice, domain.RemarkReduceTradeSize)
	} else if volume > highVolume {
		factors = append(factors, domain.RemarkHighVolumeLiquidity)
		advice = append(advice, domain.RemarkFasterThanEstimated)
	}

	if stability < volatilePrice {
		factors = append(factors, domain.RemarkHighVolatility)
		advice = append(advice, domain.RemarkSplitOrders)
	} else if stability > stablePrice {
		factors = append(factors, domain.RemarkStablePrices)
		advice = append(advice, domain.RemarkLargerOrders)
	}

	if quantity >= buyLimit {
		factors = append(factors, domain.RemarkReachesBuyLimit)
		advice = append(advice, domain.RemarkMultipleLimitPeriods)
	}

	buy := adjustForBuyLimit(buyTime(quantity, volumePerHour, stability), quantity, buyLimit)
	sell := sellTime(quantity, volumePerHour, stability)

	return domain.TradeTimeAnalysis{
		BuyTime:    buy,
		SellTime:   sell,
		TotalTime:  combineTimes(buy, sell),
		Confidence: timeEstimateConfidence(volume, stability, quantity, buyLimit),
		Factors:    factors,
		Advice:     advice,
	}
}

func buyTime(quantity, volumePerHour, stability float64) domain.TimeEstimate {
	return estimate(quantity/volumePerHour, stability)
}

func sellTime(quantity, volumePerHour, stability float64) domain.TimeEstimate {
	return estimate(quantity/volumePerHour*sellFriction, stability)
}

// estimate widens baseHours into a range; unstable prices stretch it up to twice.
func estimate(baseHours, stability float64) domain.TimeEstimate {
	stabilityFactor := 1 + (1 - stability)

	return newTimeEstimate(baseHours*rangeLow*stabilityFactor, baseHours*rangeHigh*stabilityFactor)
}

// adjustForBuyLimit stretches a buy window that needs more than one limit period.
func adjustForBuyLimit(t domain.TimeEstimate, quantity, buyLimit float64) domain.TimeEstimate {
	if quantity <= buyLimit {
		return t
	}

	periods := math.Ceil(quantity / buyLimit)
	limitHours := periods * limitPeriodHours

	return newTimeEstimate(math.Max(t.Min, limitHours), math.Max(t.Max, limitHours*limitPeriodSlack))
}

func combineTimes(buy, sell domain.TimeEstimate) domain.TimeEstimate {
	return newTimeEstimate(buy.Min+sell.Min, buy.Max+sell.Max)
}

func newTimeEstimate(minHours, maxHours float64) domain.TimeEstimate {
	return domain.TimeEstimate{
		Min:       minHours,
		Max:       maxHours,
		Formatted: FormatTimeRange(minHours, maxHours),
	}
}

func timeEstimateConfidence(volume, stability, quantity, buyLimit float64) float64 {
	confidence := 1.0

	switch {
	case volume < lowVolume:
		confidence *= 0.7
	case volume < moderateVolume:
		confidence *= 0.85
	case volume > veryHighVolume:
		confidence *= 1.1
	}

	confidence *= 0.5 + stability/2

	if quantity > buyLimit {
		confidence *= 0.9
	}

	return clamp01(confidence)
}

// FormatTimeRange renders a range of hours. Bounds within the same whole hour
// collapse into a single value.
func FormatTimeRange(minHours, maxHours float64) string {
	if math.Floor(minHours) == math.Floor(maxHours) {
		return FormatHours(minHours)
	}
	return FormatHours(minHours) + " - " + FormatHours(maxHours)
}

// FormatHours renders a duration as "Less than 1 hour", "N hours" or "N days".
func FormatHours(hours float64) string {
	if hours < 1 {
		return "Less than 1 hour"
	}
	if hours < hoursPerDay {
		return fmt.Sprintf("%s hours", count(math.Ceil(hours)))
	}
	days := math.Ceil(hours / hoursPerDay)
	return fmt.Sprintf("%s day%s", count(days), plural(days))
}
