package domain

import (
	"context"
	"time"

	"github.com/bwmarrin/snowflake"
	donordomain "github.com/solidaria/backoffice/internal/donor/domain"
)

// ExclusionReason explains why a donor was left out of the eligible set.
type ExclusionReason string

const (
	ExclusionInactive      ExclusionReason = "donor_inactive"
	ExclusionNotRecurring  ExclusionReason = "not_recurring"
	ExclusionNoIBAN        ExclusionReason = "no_iban"
	ExclusionIBANFormat    ExclusionReason = "iban_format"
	ExclusionNoTaxID       ExclusionReason = "no_tax_id"
	ExclusionNoMandateDate ExclusionReason = "no_mandate_signature_date"
)

// Exclusion pairs a donor with the first matching exclusion reason.
type Exclusion struct {
	DonorID   snowflake.ID    `json:"donor_id,string"`
	DonorName string          `json:"donor_name"`
	Reason    ExclusionReason `json:"reason"`
	// Detail carries the structured IBAN diagnostic when Reason is
	// iban_format.
	Detail string `json:"detail,omitempty"`
}

// AmountWarning flags a selectable donor whose pledged amount cannot be
// collected as-is. Non-blocking at filter time; the run validator rejects
// such amounts if the donor is ultimately included.
type AmountWarning struct {
	DonorID snowflake.ID `json:"donor_id,string"`
	Amount  string       `json:"amount"`
	Detail  string       `json:"detail"`
}

// PreviewEntry is one eligible donor on the operator's selection worksheet.
type PreviewEntry struct {
	Donor        donordomain.Donor `json:"donor"`
	Status       Status            `json:"status"`
	SequenceType SequenceType      `json:"sequence_type"`
	AmountCents  int64             `json:"amount_cents"`
	Preselected  bool              `json:"preselected"`
}

// Preview is the engine-side half of the selection wizard.
type Preview struct {
	CollectionDate time.Time       `json:"collection_date"`
	Eligible       []PreviewEntry  `json:"eligible"`
	Excluded       []Exclusion     `json:"excluded"`
	Warnings       []AmountWarning `json:"warnings"`
}

// BuildRequest carries the operator's choices into run construction.
type BuildRequest struct {
	BankAccountID  snowflake.ID
	CollectionDate time.Time
	DonorIDs       []snowflake.ID
	CreatedBy      string
}

// ExportResult reports the two independent outcomes of an export: the file
// (authoritative, delivered unconditionally once validation passes) and the
// best-effort persistence of tracking state.
type ExportResult struct {
	Run      CollectionRun
	File     []byte
	Filename string
	// Persistence is nil on full success, a *PartialTrackingError when
	// only some donors were marked, or another error when nothing was
	// recorded. It never invalidates File.
	Persistence error
}

// Service is the collection engine boundary the presentation layer calls.
type Service interface {
	Preview(ctx context.Context, collectionDate time.Time) (Preview, error)
	BuildRun(ctx context.Context, req BuildRequest) (CollectionRun, error)
	ValidateRun(run CollectionRun) []error
	Export(ctx context.Context, req BuildRequest) (ExportResult, error)
	ListRuns(ctx context.Context) ([]CollectionRun, error)
	GetRun(ctx context.Context, id snowflake.ID) (CollectionRun, error)
}
