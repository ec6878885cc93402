package analyzer

import (
	"github.com/vadiminshakov/geflip/internal/domain"
	"github.com/vadiminshakov/geflip/internal/services/narrative"
)

const (
	stableAdvice    = 0.8
	volatileAdvice  = 0.5
	reliableAdvice  = 0.8
	uncertainAdvice = 0.5
)

// VolumeRemarks compares liquidity with the purchase quota and grades daily volume.
// It always yields exactly two remarks.
func VolumeRemarks(volume, buyLimit float64) []domain.Remark {
	remarks := make([]domain.Remark, 0, 2)

	if volume/hoursPerDay < buyLimit/hoursPerDay {
		remarks = append(remarks, domain.RemarkVolumeBelowLimit)
	} else {
		remarks = append(remarks, domain.RemarkVolumeAboveLimit)
	}

	switch {
	case volume > highVolume:
		remarks = append(remarks, domain.RemarkExcellentLiquidity)
	case volume > moderateVolume:
		remarks = append(remarks, domain.RemarkDecentLiquidity)
	case volume > lowVolume:
		remarks = append(remarks, domain.RemarkCautionLargeQuantities)
	default:
		remarks = append(remarks, domain.RemarkDelayedTradeRisk)
	}

	return remarks
}

// AdviceRemarks gives up to three remarks, gated on volume, stability and
// confidence in that order. Middle bands contribute nothing.
func AdviceRemarks(volume, stability, confidence float64) []domain.Remark {
	var remarks []domain.Remark

	if volume > highVolume {
		remarks = append(remarks, domain.RemarkFrequentTrading)
	} else if volume < lowVolume {
		remarks = append(remarks, domain.RemarkPatientTraders)
	}

	if stability > stableAdvice {
		remarks = append(remarks, domain.RemarkLowerRisk)
	} else if stability < volatileAdvice {
		remarks = append(remarks, domain.RemarkVolatilityUpside)
	}

	if confidence > reliableAdvice {
		remarks = append(remarks, domain.RemarkReliableOpportunity)
	} else if confidence < uncertainAdvice {
		remarks = append(remarks, domain.RemarkCarefulMonitoring)
	}

	return remarks
}

// VolumeAnalysis renders VolumeRemarks in English.
func VolumeAnalysis(volume, buyLimit float64) string {
	return narrative.Join(narrative.English{}, VolumeRemarks(volume, buyLimit))
}

// TradingAdvice renders AdviceRemarks in English.
func TradingAdvice(volume, stability, confidence float64) string {
	return narrative.Join(narrative.English{}, AdviceRemarks(volume, stability, confidence))
}
