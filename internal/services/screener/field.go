package screener

import (
	"github.com/pkg/errors"

	"github.com/vadiminshakov/geflip/internal/domain"
)

// Field numeric opportunity attribute to sort by.
type Field string

const (
	FieldConfidence         Field = "confidence"
	FieldROI                Field = "roi"
	FieldProfit             Field = "profit"
	FieldTotalProfit        Field = "total_profit"
	FieldVolume             Field = "volume"
	FieldConfidenceToProfit Field = "confidence_to_profit"
	FieldStability          Field = "stability"
)

// ParseField parses a sort field name.
func ParseField(s string) (Field, error) {
	switch f := Field(s); f {
	case FieldConfidence, FieldROI, FieldProfit, FieldTotalProfit,
		FieldVolume, FieldConfidenceToProfit, FieldStability:
		return f, nil
	}
	return "", errors.Errorf("unknown sort field %q", s)
}

func (f Field) value(opp domain.TradeOpportunity) float64 {
	switch f {
	case FieldROI:
		return opp.ROI
	case FieldProfit:
		return opp.ProfitPerItem
	case FieldTotalProfit:
		return opp.TotalPotentialProfit
	case FieldVolume:
		return opp.Volume
	case FieldConfidenceToProfit:
		return opp.ConfidenceToProfit
	case FieldStability:
		return opp.PriceStability
	default:
		return opp.Confidence
	}
}
