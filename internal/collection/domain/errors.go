package domain

import (
	"errors"
	"fmt"
	"strings"

	"github.com/bwmarrin/snowflake"
)

var (
	ErrNoBankAccount      = errors.New("no_active_bank_account")
	ErrMissingCreditorID  = errors.New("missing_creditor_id")
	ErrNoItems            = errors.New("no_items")
	ErrTotalsMismatch     = errors.New("totals_mismatch")
	ErrCollectionDatePast = errors.New("collection_date_in_past")
	ErrRunNotFound        = errors.New("run_not_found")
	ErrRunAlreadyRecorded = errors.New("run_already_recorded")
	ErrDonorNotEligible   = errors.New("donor_not_eligible")
)

// MissingDonorsError reports selected donor IDs absent from the snapshot,
// typically donors deleted between preview and export. The run must not
// build with fewer donors than the operator selected.
type MissingDonorsError struct {
	IDs []snowflake.ID
}

func (e *MissingDonorsError) Error() string {
	ids := make([]string, 0, len(e.IDs))
	for _, id := range e.IDs {
		ids = append(ids, id.String())
	}
	return fmt.Sprintf("selected donors not found: %s", strings.Join(ids, ", "))
}

// ItemError ties a validation failure to the donor it belongs to so the
// operator can fix every violation in one pass.
type ItemError struct {
	DonorID   string
	DonorName string
	Err       error
}

func (e *ItemError) Error() string {
	return fmt.Sprintf("item %s (%s): %v", e.DonorID, e.DonorName, e.Err)
}

func (e *ItemError) Unwrap() error { return e.Err }

var (
	ErrItemInvalidAmount = errors.New("amount_not_positive")
	ErrItemMissingUMR    = errors.New("missing_umr")
)

// PartialTrackingError reports a multi-batch tracking update that stopped
// partway. The exported file is unaffected; some donors carry stale
// last-run markers until the operator re-checks them.
type PartialTrackingError struct {
	Updated int
	Total   int
	Err     error
}

func (e *PartialTrackingError) Error() string {
	return fmt.Sprintf("tracking updated for %d of %d donors: %v", e.Updated, e.Total, e.Err)
}

func (e *PartialTrackingError) Unwrap() error { return e.Err }
