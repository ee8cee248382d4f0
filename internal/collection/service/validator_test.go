package service

import (
	"errors"
	"testing"
	"time"

	"github.com/solidaria/backoffice/internal/collection/domain"
	donordomain "github.com/solidaria/backoffice/internal/donor/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validRun(t *testing.T) domain.CollectionRun {
	t.Helper()
	run, err := BuildRun(testAccount(), buildDate, []donordomain.Donor{donorA()}, buildNow, "operator", testNode(t))
	require.NoError(t, err)
	return run
}

func TestValidateRun_ValidRunPasses(t *testing.T) {
	assert.Empty(t, ValidateRun(validRun(t), buildNow))
}

func TestValidateRun_ReportsAllViolationsTogether(t *testing.T) {
	run := validRun(t)
	run.CreditorID = ""
	run.Items[0].AmountCents = 0
	// Keep stored totals consistent so only the two target violations fire.
	run.TotalAmountCents, run.TotalCount = run.ComputeTotals()

	errs := ValidateRun(run, buildNow)
	require.Len(t, errs, 2)
	assert.ErrorIs(t, errs[0], domain.ErrMissingCreditorID)

	var itemErr *domain.ItemError
	require.ErrorAs(t, errs[1], &itemErr)
	assert.ErrorIs(t, itemErr, domain.ErrItemInvalidAmount)
}

func TestValidateRun_EmptyItems(t *testing.T) {
	run := validRun(t)
	run.Items = nil
	run.TotalAmountCents, run.TotalCount = 0, 0

	errs := ValidateRun(run, buildNow)
	require.Len(t, errs, 1)
	assert.ErrorIs(t, errs[0], domain.ErrNoItems)
}

func TestValidateRun_ItemIBANFormat(t *testing.T) {
	run := validRun(t)
	run.Items[0].IBAN = "FR76300"

	errs := ValidateRun(run, buildNow)
	require.Len(t, errs, 1)
	assert.Contains(t, errs[0].Error(), "IBAN_INCOMPLETE:FR:7:27")
}

func TestValidateRun_MissingUMR(t *testing.T) {
	run := validRun(t)
	run.Items[0].UMR = ""

	errs := ValidateRun(run, buildNow)
	require.Len(t, errs, 1)
	assert.ErrorIs(t, errs[0], domain.ErrItemMissingUMR)
}

func TestValidateRun_TotalsDriftDetected(t *testing.T) {
	run := validRun(t)
	run.TotalAmountCents += 100

	errs := ValidateRun(run, buildNow)
	require.Len(t, errs, 1)
	assert.ErrorIs(t, errs[0], domain.ErrTotalsMismatch)

	run = validRun(t)
	run.TotalCount++
	errs = ValidateRun(run, buildNow)
	require.Len(t, errs, 1)
	assert.ErrorIs(t, errs[0], domain.ErrTotalsMismatch)
}

func TestValidateRun_CollectionDateInPast(t *testing.T) {
	run := validRun(t)
	run.RequestedCollectionDate = buildNow.AddDate(0, 0, -1)

	errs := ValidateRun(run, buildNow)
	require.Len(t, errs, 1)
	assert.ErrorIs(t, errs[0], domain.ErrCollectionDatePast)
}

func TestValidateRun_CollectionDateTodayAccepted(t *testing.T) {
	run := validRun(t)
	run.RequestedCollectionDate = time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)

	assert.Empty(t, ValidateRun(run, buildNow))
}

func TestValidateRun_JoinedErrorsRemainInspectable(t *testing.T) {
	run := validRun(t)
	run.CreditorID = ""
	run.Items[0].UMR = ""

	joined := errors.Join(ValidateRun(run, buildNow)...)
	assert.ErrorIs(t, joined, domain.ErrMissingCreditorID)
	assert.ErrorIs(t, joined, domain.ErrItemMissingUMR)
}
