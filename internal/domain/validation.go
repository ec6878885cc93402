package domain

import "strings"

// ValidationResult outcome of an observation completeness check.
// Errors keep the order in which the checks ran.
type ValidationResult struct {
	Valid  bool     `json:"isValid"`
	Errors []string `json:"errors"`
}

// Summary returns a one-line human-readable verdict.
func (v ValidationResult) Summary() string {
	if v.Valid {
		return "Item is valid for trading"
	}
	return "Invalid trade: " + strings.Join(v.Errors, "; ")
}
