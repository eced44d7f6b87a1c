package layout

import (
	"regexp"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// dateFormat matches ledger dates of the form 01-Feb-2024.
const dateFormat = "02-Jan-2006"

var datePattern = regexp.MustCompile(`\d{2}-[A-Za-z]{3}-\d{4}`)

// withinTolerance reports whether a and b differ by less than tol.
func withinTolerance(a, b, tol float64) bool {
	d := a - b
	if d < 0 {
		d = -d
	}
	return d < tol
}

// ExtractDate returns the first DD-Mon-YYYY date found in text. Merged
// cells often repeat the date (transaction date plus value date); only the
// first occurrence counts.
func ExtractDate(text string) (time.Time, bool) {
	match := datePattern.FindString(text)
	if match == "" {
		return time.Time{}, false
	}
	t, err := time.Parse(dateFormat, match)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// parseMoney parses a ledger money cell such as "1,234.56". Thousands
// separators and surrounding whitespace are tolerated.
func parseMoney(text string) (decimal.Decimal, bool) {
	s := strings.TrimSpace(strings.ReplaceAll(text, ",", ""))
	if s == "" {
		return decimal.Zero, false
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, false
	}
	return d, true
}

// ParseAmount converts a debit/credit cell pair into a signed amount:
// a strictly positive credit wins, otherwise a strictly positive debit is
// negated, otherwise the amount is zero. Correct table structure populates
// exactly one of the two per transaction row.
func ParseAmount(debitText, creditText string) decimal.Decimal {
	if credit, ok := parseMoney(creditText); ok && credit.IsPositive() {
		return credit
	}
	if debit, ok := parseMoney(debitText); ok && debit.IsPositive() {
		return debit.Neg()
	}
	return decimal.Zero
}
