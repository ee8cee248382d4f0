// Package iban validates IBAN account numbers against per-country length
// rules for SEPA direct debit collection.
package iban

import (
	"fmt"
	"strings"
)

// countryLengths maps ISO-3166 country codes to the expected IBAN length.
var countryLengths = map[string]int{
	"AD": 24, "AT": 20, "BE": 16, "BG": 22, "CH": 21, "CY": 28,
	"CZ": 24, "DE": 22, "DK": 18, "EE": 20, "ES": 24, "FI": 18,
	"FR": 27, "GB": 22, "GR": 27, "HR": 21, "HU": 28, "IE": 22,
	"IS": 26, "IT": 27, "LI": 21, "LT": 20, "LU": 20, "LV": 21,
	"MC": 27, "MT": 31, "NL": 18, "NO": 15, "PL": 28, "PT": 25,
	"RO": 24, "SE": 24, "SI": 19, "SK": 24, "SM": 27,
}

// IncompleteError describes how an IBAN failed the country length check.
// Its string form is machine-parseable so the UI can render precise
// diagnostics per donor.
type IncompleteError struct {
	Country        string
	ActualLength   int
	ExpectedLength int
}

func (e *IncompleteError) Error() string {
	return fmt.Sprintf("IBAN_INCOMPLETE:%s:%d:%d", e.Country, e.ActualLength, e.ExpectedLength)
}

// Normalize strips spaces and upper-cases an IBAN for comparison and export.
func Normalize(raw string) string {
	return strings.ToUpper(strings.ReplaceAll(strings.TrimSpace(raw), " ", ""))
}

// Validate checks an IBAN against the per-country expected length table.
// Unknown country codes are rejected with ExpectedLength 0. Full ISO-7064
// checksum verification is intentionally not performed.
func Validate(raw string) error {
	value := Normalize(raw)
	if len(value) < 2 {
		return &IncompleteError{Country: value, ActualLength: len(value)}
	}

	country := value[:2]
	expected := ExpectedLength(country)
	if expected == 0 {
		return &IncompleteError{Country: country, ActualLength: len(value)}
	}
	if len(value) != expected {
		return &IncompleteError{Country: country, ActualLength: len(value), ExpectedLength: expected}
	}
	return nil
}

// ExpectedLength reports the expected IBAN length for a country code, or 0
// when the country is not supported.
func ExpectedLength(country string) int {
	return countryLengths[strings.ToUpper(country)]
}
