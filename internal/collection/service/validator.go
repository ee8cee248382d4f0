package service

import (
	"time"

	"github.com/solidaria/backoffice/internal/collection/domain"
	"github.com/solidaria/backoffice/internal/iban"
)

// ValidateRun runs every pre-flight check and returns all violations, not
// just the first, so the operator can fix them in one pass. A non-empty
// result blocks export.
func ValidateRun(run domain.CollectionRun, today time.Time) []error {
	var errs []error

	if run.CreditorID == "" {
		errs = append(errs, domain.ErrMissingCreditorID)
	}
	if len(run.Items) == 0 {
		errs = append(errs, domain.ErrNoItems)
	}

	for _, item := range run.Items {
		if err := iban.Validate(item.IBAN); err != nil {
			errs = append(errs, &domain.ItemError{DonorID: item.DonorID.String(), DonorName: item.DonorName, Err: err})
		}
		if item.AmountCents <= 0 {
			errs = append(errs, &domain.ItemError{DonorID: item.DonorID.String(), DonorName: item.DonorName, Err: domain.ErrItemInvalidAmount})
		}
		if item.UMR == "" {
			errs = append(errs, &domain.ItemError{DonorID: item.DonorID.String(), DonorName: item.DonorName, Err: domain.ErrItemMissingUMR})
		}
	}

	if cents, count := run.ComputeTotals(); cents != run.TotalAmountCents || count != run.TotalCount {
		errs = append(errs, domain.ErrTotalsMismatch)
	}

	if run.RequestedCollectionDate.IsZero() || truncateDay(run.RequestedCollectionDate).Before(truncateDay(today)) {
		errs = append(errs, domain.ErrCollectionDatePast)
	}

	return errs
}

func truncateDay(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
