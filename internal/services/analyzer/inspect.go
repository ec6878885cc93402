package analyzer

import (
	"github.com/vadiminshakov/geflip/internal/domain"
)

// Inspection full per-item report: validation, warnings, the scored
// opportunity and narrative remarks. Opportunity is nil when validation failed.
type Inspection struct {
	Validation    domain.ValidationResult
	Warnings      []string
	Opportunity   *domain.TradeOpportunity
	VolumeRemarks []domain.Remark
	AdviceRemarks []domain.Remark
}

// Profitable reports whether the item was analyzed and earns coins per unit.
func (i Inspection) Profitable() bool {
	return i.Opportunity != nil && i.Opportunity.Profitable()
}

// Inspect validates obs and, when valid, analyzes it and attaches narratives.
func (a *Analyzer) Inspect(obs *domain.ItemObservation, cfg domain.TradingConfig) Inspection {
	result := Inspection{Validation: a.Validate(obs)}
	if !result.Validation.Valid {
		return result
	}

	if warning, ok := VolatilityWarning(obs); ok {
		result.Warnings = append(result.Warnings, warning)
	}

	opp := a.Analyze(*obs, cfg)
	result.Opportunity = &opp
	result.VolumeRemarks = VolumeRemarks(opp.Volume, opp.BuyLimit)
	result.AdviceRemarks = AdviceRemarks(opp.Volume, opp.PriceStability, opp.Confidence)

	return result
}
