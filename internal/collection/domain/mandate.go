package domain

import (
	"time"

	donordomain "github.com/solidaria/backoffice/internal/donor/domain"
)

// Resolved carries a mandate field value together with whether a fallback
// source supplied it, so "used fallback" stays observable downstream.
type Resolved[T any] struct {
	Value        T
	FromFallback bool
	Missing      bool
}

// ResolveUMR returns the donor's Unique Mandate Reference, falling back to
// the fiscal identifier when the mandate carries none.
func ResolveUMR(d donordomain.Donor) Resolved[string] {
	if d.MandateUMR != "" {
		return Resolved[string]{Value: d.MandateUMR}
	}
	if d.TaxID != "" {
		return Resolved[string]{Value: d.TaxID, FromFallback: true}
	}
	return Resolved[string]{Missing: true}
}

// ResolveSignatureDate returns the mandate signature date, falling back to
// the membership start date.
func ResolveSignatureDate(d donordomain.Donor) Resolved[time.Time] {
	if d.MandateSignedAt != nil {
		return Resolved[time.Time]{Value: *d.MandateSignedAt}
	}
	if d.MemberSince != nil {
		return Resolved[time.Time]{Value: *d.MemberSince, FromFallback: true}
	}
	return Resolved[time.Time]{Missing: true}
}
