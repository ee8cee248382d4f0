// Package domain contains the collection run aggregate and the value types
// shared by the SEPA direct debit engine.
package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/datatypes"
)

// Scheme is the direct debit scheme used for every run.
const Scheme = "CORE"

// EndToEndPlaceholder is written on every transaction until the bank
// assigns real end-to-end identifiers.
const EndToEndPlaceholder = "NOTPROVIDED"

// SequenceType marks a collection's position in the mandate lifecycle.
type SequenceType string

const (
	SequenceFRST SequenceType = "FRST"
	SequenceRCUR SequenceType = "RCUR"
	SequenceOOFF SequenceType = "OOFF"
	// SequenceFNAL is reserved for mandate termination. The engine never
	// assigns it; it arrives only from the mandate-cancellation flow.
	SequenceFNAL SequenceType = "FNAL"
)

// SequenceOrder is the fixed batch ordering in the exported file.
var SequenceOrder = []SequenceType{SequenceFRST, SequenceRCUR, SequenceOOFF, SequenceFNAL}

// CollectionRun is the aggregate behind one pain.008 remittance file.
// It becomes immutable the moment its XML is serialized.
type CollectionRun struct {
	ID     snowflake.ID `gorm:"primaryKey" json:"id,string"`
	Scheme string       `gorm:"type:text;not null;default:'CORE'" json:"scheme"`

	BankAccountID snowflake.ID `gorm:"not null;index" json:"bank_account_id,string"`
	CreditorID    string       `gorm:"type:text;not null" json:"creditor_id"`
	CreditorName  string       `gorm:"type:text;not null" json:"creditor_name"`
	CreditorIBAN  string       `gorm:"type:text;not null" json:"creditor_iban"`

	RequestedCollectionDate time.Time `gorm:"not null" json:"requested_collection_date"`

	// MessageID is globally unique per export, never reused even across
	// retries of the same logical run.
	MessageID string `gorm:"type:text;not null;uniqueIndex" json:"message_id"`

	TotalAmountCents int64 `gorm:"not null" json:"total_amount_cents"`
	TotalCount       int   `gorm:"not null" json:"total_count"`

	Items []CollectionItem `gorm:"foreignKey:RunID" json:"items"`

	// Excluded stores the operator-facing exclusion report alongside the
	// run for audit.
	Excluded datatypes.JSON `gorm:"type:jsonb" json:"excluded,omitempty"`

	CreatedAt  time.Time  `gorm:"not null" json:"created_at"`
	CreatedBy  string     `gorm:"type:text" json:"created_by"`
	ExportedAt *time.Time `gorm:"" json:"exported_at"`
}

// TableName sets the database table name.
func (CollectionRun) TableName() string { return "collection_runs" }

// ComputeTotals re-derives total cents and count from the items. Stored
// totals must always equal these sums.
func (r CollectionRun) ComputeTotals() (cents int64, count int) {
	for _, item := range r.Items {
		cents += item.AmountCents
	}
	return cents, len(r.Items)
}

// SequenceBreakdown tallies one sequence type for the review output.
type SequenceBreakdown struct {
	SequenceType SequenceType `json:"sequence_type"`
	Count        int          `json:"count"`
	AmountCents  int64        `json:"amount_cents"`
}

// Breakdown groups items by sequence type in the fixed file ordering.
// Types with no items are omitted.
func (r CollectionRun) Breakdown() []SequenceBreakdown {
	totals := make(map[SequenceType]*SequenceBreakdown, len(SequenceOrder))
	for _, item := range r.Items {
		entry, ok := totals[item.SequenceType]
		if !ok {
			entry = &SequenceBreakdown{SequenceType: item.SequenceType}
			totals[item.SequenceType] = entry
		}
		entry.Count++
		entry.AmountCents += item.AmountCents
	}

	out := make([]SequenceBreakdown, 0, len(totals))
	for _, seq := range SequenceOrder {
		if entry, ok := totals[seq]; ok {
			out = append(out, *entry)
		}
	}
	return out
}

// CollectionItem is one debit row in a run.
type CollectionItem struct {
	ID    snowflake.ID `gorm:"primaryKey" json:"id,string"`
	RunID snowflake.ID `gorm:"not null;index" json:"run_id,string"`

	DonorID    snowflake.ID `gorm:"not null;index" json:"donor_id,string"`
	DonorName  string       `gorm:"type:text;not null" json:"donor_name"`
	DonorTaxID string       `gorm:"type:text" json:"donor_tax_id"`
	IBAN       string       `gorm:"type:text;not null" json:"iban"`

	AmountCents int64 `gorm:"not null" json:"amount_cents"`

	UMR           string    `gorm:"type:text;not null" json:"umr"`
	SignatureDate time.Time `gorm:"not null" json:"signature_date"`
	// Fallback provenance, observable per the mandate resolution rules.
	UMRFromTaxID             bool `gorm:"not null;default:false" json:"umr_from_tax_id"`
	SignatureFromMemberSince bool `gorm:"not null;default:false" json:"signature_from_member_since"`

	SequenceType SequenceType `gorm:"type:text;not null" json:"sequence_type"`
	EndToEndID   string       `gorm:"type:text;not null;default:'NOTPROVIDED'" json:"end_to_end_id"`
}

// TableName sets the database table name.
func (CollectionItem) TableName() string { return "collection_run_items" }

// CollectionEvent is the append-only record of one donor being included in
// an exported run. The per-donor last-run fields are a compressed view of
// this log.
type CollectionEvent struct {
	ID             snowflake.ID `gorm:"primaryKey" json:"id,string"`
	DonorID        snowflake.ID `gorm:"not null;index" json:"donor_id,string"`
	RunID          snowflake.ID `gorm:"not null;index" json:"run_id,string"`
	UMR            string       `gorm:"type:text;not null" json:"umr"`
	SequenceType   SequenceType `gorm:"type:text;not null" json:"sequence_type"`
	AmountCents    int64        `gorm:"not null" json:"amount_cents"`
	CollectionDate time.Time    `gorm:"not null" json:"collection_date"`
	CreatedAt      time.Time    `gorm:"not null" json:"created_at"`
}

// TableName sets the database table name.
func (CollectionEvent) TableName() string { return "collection_events" }
