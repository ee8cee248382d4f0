package service

import (
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/oklog/ulid/v2"
	bankaccountdomain "github.com/solidaria/backoffice/internal/bankaccount/domain"
	"github.com/solidaria/backoffice/internal/collection/domain"
	"github.com/solidaria/backoffice/internal/collection/plan"
	donordomain "github.com/solidaria/backoffice/internal/donor/domain"
	"github.com/solidaria/backoffice/internal/iban"
)

// BuildRun assembles the operator's selection into a collection run
// aggregate. Construction only: no I/O, no persistence. Totals are computed
// from the items, never carried in separately. The message id is freshly
// generated on every call and never reused, even across retries of the same
// logical run.
func BuildRun(
	account bankaccountdomain.BankAccount,
	collectionDate time.Time,
	selected []donordomain.Donor,
	now time.Time,
	createdBy string,
	genID *snowflake.Node,
) (domain.CollectionRun, error) {
	if account.CreditorID == "" {
		return domain.CollectionRun{}, domain.ErrMissingCreditorID
	}

	runID := genID.Generate()
	items := make([]domain.CollectionItem, 0, len(selected))
	for _, d := range selected {
		// Invalid amounts become zero-cent items here; the run validator
		// rejects them before any file is produced.
		cents, _ := domain.AmountCents(d.MonthlyAmount)

		umr := domain.ResolveUMR(d)
		signature := domain.ResolveSignatureDate(d)

		items = append(items, domain.CollectionItem{
			ID:                       genID.Generate(),
			RunID:                    runID,
			DonorID:                  d.ID,
			DonorName:                d.Name,
			DonorTaxID:               d.TaxID,
			IBAN:                     iban.Normalize(d.IBAN),
			AmountCents:              cents,
			UMR:                      umr.Value,
			UMRFromTaxID:             umr.FromFallback,
			SignatureDate:            signature.Value,
			SignatureFromMemberSince: signature.FromFallback,
			SequenceType:             plan.ResolveSequenceType(d),
			EndToEndID:               domain.EndToEndPlaceholder,
		})
	}

	run := domain.CollectionRun{
		ID:                      runID,
		Scheme:                  domain.Scheme,
		BankAccountID:           account.ID,
		CreditorID:              account.CreditorID,
		CreditorName:            account.HolderName,
		CreditorIBAN:            iban.Normalize(account.IBAN),
		RequestedCollectionDate: collectionDate,
		MessageID:               ulid.MustNew(ulid.Timestamp(now), ulid.DefaultEntropy()).String(),
		Items:                   items,
		CreatedAt:               now.UTC(),
		CreatedBy:               createdBy,
	}
	run.TotalAmountCents, run.TotalCount = run.ComputeTotals()
	return run, nil
}
