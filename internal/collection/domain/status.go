package domain

import donordomain "github.com/solidaria/backoffice/internal/donor/domain"

// StatusType classifies a donor's collection eligibility on a given date.
type StatusType string

const (
	// StatusUnset means the donor has no periodicity configured and needs
	// manual handling before they can ever be automated.
	StatusUnset StatusType = "unset"
	// StatusManual means the operator collects this donor outside the
	// engine; never auto-selected.
	StatusManual StatusType = "manual"
	StatusDue    StatusType = "due"
	// StatusOverdue means the elapsed time exceeds the periodicity window
	// by more than one full period.
	StatusOverdue StatusType = "overdue"
	// StatusBlocked means not enough time has elapsed since the last run.
	// The donor must not be auto-selected.
	StatusBlocked StatusType = "blocked"
)

// Status is the resolved collection state for one donor on one date.
type Status struct {
	Type        StatusType              `json:"type"`
	Periodicity donordomain.Periodicity `json:"periodicity"`
	// MigrationRisk flags non-monthly donors with no recorded last run:
	// a collection may already have been taken outside the system, so
	// automated inclusion could double-charge them.
	MigrationRisk bool `json:"migration_risk"`
}

// AutoSelectable reports whether the donor may be preselected for a run.
// Blocked, unset, manual and migration-risk donors always require an
// explicit operator decision.
func (s Status) AutoSelectable() bool {
	if s.MigrationRisk {
		return false
	}
	return s.Type == StatusDue || s.Type == StatusOverdue
}
