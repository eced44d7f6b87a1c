package layout

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractDate(t *testing.T) {
	tests := []struct {
		name string
		text string
		want time.Time
		ok   bool
	}{
		{
			name: "plain date",
			text: "01-Feb-2024",
			want: time.Date(2024, time.February, 1, 0, 0, 0, 0, time.UTC),
			ok:   true,
		},
		{
			name: "duplicated date returns first occurrence",
			text: "01-Feb-2024 03-Feb-2024",
			want: time.Date(2024, time.February, 1, 0, 0, 0, 0, time.UTC),
			ok:   true,
		},
		{
			name: "date embedded in text",
			text: "ref 15-Mar-2023 UPI",
			want: time.Date(2023, time.March, 15, 0, 0, 0, 0, time.UTC),
			ok:   true,
		},
		{name: "no date", text: "NEFT TRANSFER", ok: false},
		{name: "wrong format", text: "2024-02-01", ok: false},
		{name: "empty", text: "", ok: false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := ExtractDate(tc.text)
			require.Equal(t, tc.ok, ok)
			if tc.ok {
				assert.True(t, got.Equal(tc.want), "got %v want %v", got, tc.want)
			}
		})
	}
}

func TestParseAmount(t *testing.T) {
	tests := []struct {
		name   string
		debit  string
		credit string
		want   string
	}{
		{name: "credit wins", debit: "", credit: "1,234.56", want: "1234.56"},
		{name: "debit negated", debit: "500.00", credit: "", want: "-500"},
		{name: "both empty", debit: "", credit: "", want: "0"},
		{name: "credit preferred over debit", debit: "10.00", credit: "25.00", want: "25"},
		{name: "zero credit falls through to debit", debit: "42.10", credit: "0.00", want: "-42.1"},
		{name: "negative credit ignored", debit: "", credit: "-5.00", want: "0"},
		{name: "garbage cells", debit: "n/a", credit: "--", want: "0"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := ParseAmount(tc.debit, tc.credit)
			assert.Equal(t, tc.want, got.String())
		})
	}
}

func TestWithinTolerance(t *testing.T) {
	assert.True(t, withinTolerance(100, 104.9, 5))
	assert.True(t, withinTolerance(104.9, 100, 5))
	assert.False(t, withinTolerance(100, 105, 5))
	assert.False(t, withinTolerance(100, 110, 5))
}
