// Package layout reconstructs a transaction ledger from positioned text
// fragments. There is no markup to lean on: column boundaries are anchored
// to detected header labels, rows are y-coordinate clusters, and
// transaction boundaries are inferred from row shape.
package layout

// Canonical cell buckets used during column assignment.
const (
	// ColumnUnassigned collects fragments that fall outside every detected
	// column boundary. It doubles as the narrative/description column: free
	// text on a statement rarely aligns with any header.
	ColumnUnassigned = "Unassigned"
)

// Config carries the parser's tuning knobs. The tolerances are tuned to
// one document family: vertical clustering stays tight while horizontal
// column matching is deliberately looser.
type Config struct {
	// RowTolerance is the maximum y-distance (in text-space units) between
	// a fragment and a row cluster's anchor for the fragment to join it.
	RowTolerance float64

	// ColumnTolerance widens each column's horizontal span on both sides
	// when assigning fragments to columns.
	ColumnTolerance float64

	// Headers is the expected header vocabulary, in column order.
	Headers []string

	// MinHeaders is the minimum number of headers that must be located for
	// boundary detection to succeed. Zero means len(Headers)-2.
	MinHeaders int

	// Column roles within Headers.
	DateColumn        string
	DebitColumn       string
	CreditColumn      string
	DescriptionColumn string
}

// DefaultConfig returns the ledger layout the parser was tuned against: a
// seven-column table where at least five headers must be present.
func DefaultConfig() Config {
	return Config{
		RowTolerance:    5,
		ColumnTolerance: 15,
		Headers: []string{
			"Transaction Date",
			"Value Date",
			"Narration",
			"Chq/Ref No",
			"Debit",
			"Credit",
			"Balance",
		},
		DateColumn:        "Transaction Date",
		DebitColumn:       "Debit",
		CreditColumn:      "Credit",
		DescriptionColumn: "Narration",
	}
}

func (c Config) normalize() Config {
	out := c
	def := DefaultConfig()

	if out.RowTolerance <= 0 {
		out.RowTolerance = def.RowTolerance
	}
	if out.ColumnTolerance <= 0 {
		out.ColumnTolerance = def.ColumnTolerance
	}
	if len(out.Headers) == 0 {
		out.Headers = def.Headers
	}
	if out.MinHeaders <= 0 || out.MinHeaders > len(out.Headers) {
		out.MinHeaders = len(out.Headers) - 2
		if out.MinHeaders < 1 {
			out.MinHeaders = 1
		}
	}
	if out.DateColumn == "" {
		out.DateColumn = def.DateColumn
	}
	if out.DebitColumn == "" {
		out.DebitColumn = def.DebitColumn
	}
	if out.CreditColumn == "" {
		out.CreditColumn = def.CreditColumn
	}
	if out.DescriptionColumn == "" {
		out.DescriptionColumn = def.DescriptionColumn
	}
	return out
}
