package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAmountCents(t *testing.T) {
	cases := []struct {
		in   string
		want int64
	}{
		{"25.00", 2500},
		{"10", 1000},
		{"7,5", 750},
		{"0.01", 1},
		{"1000.99", 100099},
		{"-3.20", -320},
		{".50", 50},
	}
	for _, tc := range cases {
		got, err := AmountCents(tc.in)
		require.NoError(t, err, tc.in)
		assert.Equal(t, tc.want, got, tc.in)
	}
}

func TestAmountCents_Invalid(t *testing.T) {
	for _, in := range []string{"", "abc", "1.234", "1.2.3"} {
		_, err := AmountCents(in)
		assert.Error(t, err, in)
	}
}

func TestFormatCents(t *testing.T) {
	assert.Equal(t, "25.00", FormatCents(2500))
	assert.Equal(t, "0.05", FormatCents(5))
	assert.Equal(t, "1000.99", FormatCents(100099))
	assert.Equal(t, "-3.20", FormatCents(-320))
}

func TestFormatCents_RoundTripsAmountCents(t *testing.T) {
	for _, cents := range []int64{1, 99, 100, 2500, 123456789} {
		parsed, err := AmountCents(FormatCents(cents))
		require.NoError(t, err)
		assert.Equal(t, cents, parsed)
	}
}
