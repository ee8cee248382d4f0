// Package domain contains persistence models for donors and their
// direct debit mandates.
package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

// Periodicity is how often a recurring donor is meant to be collected.
type Periodicity string

const (
	PeriodicityMonthly    Periodicity = "monthly"
	PeriodicityQuarterly  Periodicity = "quarterly"
	PeriodicitySemiannual Periodicity = "semiannual"
	PeriodicityAnnual     Periodicity = "annual"
	PeriodicityManual     Periodicity = "manual"
	PeriodicityUnset      Periodicity = ""
)

// Months returns the length of the collection window in months, or 0 for
// manual/unset periodicities.
func (p Periodicity) Months() int {
	switch p {
	case PeriodicityMonthly:
		return 1
	case PeriodicityQuarterly:
		return 3
	case PeriodicitySemiannual:
		return 6
	case PeriodicityAnnual:
		return 12
	default:
		return 0
	}
}

// MembershipTypeRecurring marks donors with a standing monthly pledge.
// Only these donors are eligible for automated collection.
const MembershipTypeRecurring = "recurring"

const StatusInactive = "inactive"

// Donor represents a member or donor holding a direct debit mandate.
type Donor struct {
	ID   snowflake.ID `gorm:"primaryKey" json:"id,string"`
	Name string       `gorm:"type:text;not null" json:"name"`
	// TaxID is the donor's fiscal identifier (NIF).
	TaxID string `gorm:"type:text;index" json:"tax_id"`

	IBAN string `gorm:"type:text" json:"iban"`
	// MonthlyAmount is the pledged amount in decimal currency units,
	// e.g. "25.00". Converted to integer cents at run build time.
	MonthlyAmount  string      `gorm:"type:text" json:"monthly_amount"`
	MembershipType string      `gorm:"type:text;not null;default:''" json:"membership_type"`
	Periodicity    Periodicity `gorm:"column:periodicity_quota;type:text;not null;default:''" json:"periodicity_quota"`

	// MandateUMR is the Unique Mandate Reference. Falls back to TaxID
	// when empty.
	MandateUMR string `gorm:"column:sepa_mandate_umr;type:text" json:"sepa_mandate_umr"`
	// MandateSignedAt falls back to MemberSince when nil.
	MandateSignedAt *time.Time `gorm:"column:sepa_mandate_signature_date" json:"sepa_mandate_signature_date"`
	MemberSince     *time.Time `gorm:"" json:"member_since"`

	// Collection bookkeeping, mutated only by the collection engine
	// after a successful export.
	SepaPain008LastRunAt *time.Time    `gorm:"column:sepa_pain008_last_run_at" json:"sepa_pain008_last_run_at"`
	SepaPain008LastRunID *snowflake.ID `gorm:"column:sepa_pain008_last_run_id" json:"sepa_pain008_last_run_id,string"`

	Status     string     `gorm:"type:text;not null;default:'active'" json:"status"`
	ArchivedAt *time.Time `gorm:"" json:"archived_at"`
	DeletedAt  *time.Time `gorm:"" json:"deleted_at"`

	CreatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// TableName sets the database table name.
func (Donor) TableName() string { return "donors" }

// IsRecurring reports whether the donor holds a recurring pledge.
func (d Donor) IsRecurring() bool { return d.MembershipType == MembershipTypeRecurring }

// IsActive reports whether the donor is collectible at all.
func (d Donor) IsActive() bool {
	return d.Status != StatusInactive && d.ArchivedAt == nil && d.DeletedAt == nil
}
