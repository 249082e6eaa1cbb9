package normalize

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAmount_StripsGroupingSeparators(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"plain", "100.00", "100.00"},
		{"thousands", "1,234.56", "1234.56"},
		{"lakh grouping", "1,23,456.78", "123456.78"},
		{"no decimals", "500", "500"},
		{"surrounding space", " 42.50 ", "42.50"},
		{"millions", "2,000,000", "2000000"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Amount(tt.input)
			require.NoError(t, err)

			want, err := decimal.NewFromString(tt.want)
			require.NoError(t, err)
			assert.True(t, got.Equal(want), "got %s, want %s", got, want)
		})
	}
}

func TestAmount_ExactTwoDecimalRoundTrip(t *testing.T) {
	got, err := Amount("1,234.56")
	require.NoError(t, err)

	// Exact string round-trip, not float comparison
	assert.Equal(t, "1234.56", got.StringFixed(2))
}

func TestAmount_Invalid(t *testing.T) {
	for _, input := range []string{"", "   ", "abc", "12.3.4", "-50.00"} {
		_, err := Amount(input)
		assert.Error(t, err, "input %q should not parse", input)
	}
}

func TestCounterparty(t *testing.T) {
	tests := []struct {
		name   string
		parts  []string
		prefix string
		want   string
	}{
		{"single part", []string{" MERCHANT "}, "", "MERCHANT"},
		{"two parts joined", []string{"JOHN DOE", "john@upi"}, "", "JOHN DOE john@upi"},
		{"prefix applied", []string{"ACME CORP"}, "NEFT/", "NEFT/ACME CORP"},
		{"empty parts dropped", []string{"", "XYZ", "  "}, "", "XYZ"},
		{"all empty yields empty even with prefix", []string{"", " "}, "NEFT/", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Counterparty(tt.parts, tt.prefix))
		})
	}
}

func TestBody_CollapsesWhitespace(t *testing.T) {
	assert.Equal(t,
		"Rs 100.00 debited to MERCHANT",
		Body("  Rs  100.00\n debited\tto   MERCHANT "))
	assert.Equal(t, "", Body("   \n\t "))
}
