// Package eligibility partitions donors into the eligible set and the
// excluded set with per-donor reasons.
package eligibility

import (
	collectiondomain "github.com/solidaria/backoffice/internal/collection/domain"
	donordomain "github.com/solidaria/backoffice/internal/donor/domain"
	"github.com/solidaria/backoffice/internal/iban"
)

// Result is a total partition: every input donor appears in exactly one of
// Eligible or Excluded. Warnings are advisory and never exclude.
type Result struct {
	Eligible []donordomain.Donor
	Excluded []collectiondomain.Exclusion
	Warnings []collectiondomain.AmountWarning
}

// Partition applies the exclusion rules in precedence order; the first
// matching rule wins.
func Partition(donors []donordomain.Donor) Result {
	out := Result{
		Eligible: make([]donordomain.Donor, 0, len(donors)),
	}

	for _, d := range donors {
		if reason, detail, excluded := exclude(d); excluded {
			out.Excluded = append(out.Excluded, collectiondomain.Exclusion{
				DonorID:   d.ID,
				DonorName: d.Name,
				Reason:    reason,
				Detail:    detail,
			})
			continue
		}

		if cents, err := collectiondomain.AmountCents(d.MonthlyAmount); err != nil || cents <= 0 {
			detail := "amount must be greater than zero"
			if err != nil {
				detail = err.Error()
			}
			out.Warnings = append(out.Warnings, collectiondomain.AmountWarning{
				DonorID: d.ID,
				Amount:  d.MonthlyAmount,
				Detail:  detail,
			})
		}

		out.Eligible = append(out.Eligible, d)
	}

	return out
}

func exclude(d donordomain.Donor) (collectiondomain.ExclusionReason, string, bool) {
	if !d.IsActive() {
		return collectiondomain.ExclusionInactive, "", true
	}
	if !d.IsRecurring() {
		return collectiondomain.ExclusionNotRecurring, "", true
	}
	if iban.Normalize(d.IBAN) == "" {
		return collectiondomain.ExclusionNoIBAN, "", true
	}
	if err := iban.Validate(d.IBAN); err != nil {
		return collectiondomain.ExclusionIBANFormat, err.Error(), true
	}
	if d.TaxID == "" {
		return collectiondomain.ExclusionNoTaxID, "", true
	}
	if collectiondomain.ResolveSignatureDate(d).Missing {
		return collectiondomain.ExclusionNoMandateDate, "", true
	}
	return "", "", false
}
