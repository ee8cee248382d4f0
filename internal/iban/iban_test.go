package iban

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidate_AcceptsKnownCountries(t *testing.T) {
	assert.NoError(t, Validate("ES0000000000000000000000"))
	assert.NoError(t, Validate("DE00000000000000000000"))
	assert.NoError(t, Validate("FR760000000000000000000000000"))
}

func TestValidate_NormalizesBeforeChecking(t *testing.T) {
	assert.NoError(t, Validate("es00 0000 0000 0000 0000 0000"))
}

func TestValidate_ShortIBANReportsStructuredReason(t *testing.T) {
	err := Validate("FR76300")
	require.Error(t, err)
	assert.Equal(t, "IBAN_INCOMPLETE:FR:7:27", err.Error())

	var incomplete *IncompleteError
	require.ErrorAs(t, err, &incomplete)
	assert.Equal(t, "FR", incomplete.Country)
	assert.Equal(t, 7, incomplete.ActualLength)
	assert.Equal(t, 27, incomplete.ExpectedLength)
}

func TestValidate_UnknownCountryRejected(t *testing.T) {
	err := Validate("XX0000000000000000000000")
	require.Error(t, err)
	assert.Equal(t, "IBAN_INCOMPLETE:XX:24:0", err.Error())
}

func TestValidate_TooShortForCountryCode(t *testing.T) {
	assert.Error(t, Validate(""))
	assert.Error(t, Validate("E"))
}

func TestExpectedLength(t *testing.T) {
	assert.Equal(t, 24, ExpectedLength("ES"))
	assert.Equal(t, 27, ExpectedLength("fr"))
	assert.Equal(t, 0, ExpectedLength("XX"))
}
