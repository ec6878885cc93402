package analyzer

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/vadiminshakov/geflip/internal/domain"
)

// spread above which a price is flagged as volatile, relative to the low price
const volatilitySpreadThreshold = 0.5

// Validate checks that obs is complete enough to analyze.
// Every check runs and records its error; only a nil observation stops early.
// Negative prices are reported twice, once for the pair and once per price.
func Validate(obs *domain.ItemObservation) domain.ValidationResult {
	if obs == nil {
		return domain.ValidationResult{Valid: false, Errors: []string{"Item is undefined or null"}}
	}

	var errs []string

	if obs.AvgHighPrice == 0 {
		errs = append(errs, "Missing average high price")
	}
	if obs.AvgLowPrice == 0 {
		errs = append(errs, "Missing average low price")
	}
	if obs.AvgHighPrice != 0 && obs.AvgLowPrice != 0 {
		if obs.AvgHighPrice < 0 || obs.AvgLowPrice < 0 {
			errs = append(errs, "Prices cannot be negative")
		}
	}

	if obs.Details == nil {
		errs = append(errs, "Missing item details")
	} else if obs.Details.Limit == 0 {
		errs = append(errs, "Missing or invalid buy limit")
	} else if obs.Details.Limit < 0 {
		errs = append(errs, "Buy limit must be greater than 0")
	}

	if obs.HighPriceVolume == 0 && obs.LowPriceVolume == 0 {
		errs = append(errs, "Missing trading volume data")
	}

	if obs.AvgHighPrice < 0 {
		errs = append(errs, "High price cannot be negative")
	}
	if obs.AvgLowPrice < 0 {
		errs = append(errs, "Low price cannot be negative")
	}

	return domain.ValidationResult{Valid: len(errs) == 0, Errors: errs}
}

// VolatilityWarning describes a spread wider than half the low price.
// It is informational and never affects validity.
func VolatilityWarning(obs *domain.ItemObservation) (string, bool) {
	if obs == nil || obs.AvgHighPrice == 0 || obs.AvgLowPrice == 0 {
		return "", false
	}

	spread := obs.SpreadRatio()
	if spread <= volatilitySpreadThreshold {
		return "", false
	}

	return fmt.Sprintf("High price volatility detected (%.1f%% spread)", spread*100), true
}

// ValidationSummary returns a one-line verdict for obs.
func ValidationSummary(obs *domain.ItemObservation) string {
	return Validate(obs).Summary()
}

// Validate checks obs like the package-level Validate and logs volatility warnings.
func (a *Analyzer) Validate(obs *domain.ItemObservation) domain.ValidationResult {
	result := Validate(obs)

	if warning, ok := VolatilityWarning(obs); ok {
		a.logger.Warn(warning, zap.String("item", obs.ItemID))
	}
	if !result.Valid && obs != nil {
		a.logger.Debug("observation rejected",
			zap.String("item", obs.ItemID),
			zap.Strings("errors", result.Errors),
		)
	}

	return result
}
