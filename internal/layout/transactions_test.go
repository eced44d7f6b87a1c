package layout

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/finparse/statement-extractor/internal/core/domain"
)

// statementFragments builds a small two-transaction ledger page:
// a debit with a continuation line, a dated-but-amountless noise row,
// and a final credit left pending until the loop ends.
func statementFragments() []domain.PositionedFragment {
	frags := headerRow()
	frags = append(frags,
		// start: debit 500.00
		domain.PositionedFragment{Text: "01-Feb-2024", X: 40, Y: 680, Width: 60},
		domain.PositionedFragment{Text: "UPI PAYMENT", X: 205, Y: 680, Width: 70},
		domain.PositionedFragment{Text: "500.00", X: 382, Y: 680, Width: 35},
		// continuation: narration overflow
		domain.PositionedFragment{Text: "REF 928AB", X: 205, Y: 662, Width: 55},
		// noise: date without amount
		domain.PositionedFragment{Text: "01-Feb-2024", X: 40, Y: 644, Width: 60},
		// start: credit 1,000.00, committed after the loop
		domain.PositionedFragment{Text: "03-Feb-2024", X: 40, Y: 626, Width: 60},
		domain.PositionedFragment{Text: "SALARY ACME", X: 205, Y: 626, Width: 70},
		domain.PositionedFragment{Text: "1,000.00", X: 442, Y: 626, Width: 40},
	)
	return frags
}

func buildFromFragments(t *testing.T, p *Parser, frags []domain.PositionedFragment) []domain.Transaction {
	t.Helper()
	boundaries, ok := p.FindColumnBoundaries(frags)
	require.True(t, ok)
	rows := p.GroupRows(frags, boundaries.HeaderY)
	return p.BuildTransactions(rows, boundaries)
}

func TestBuildTransactions(t *testing.T) {
	p := NewParser(Config{})
	txs := buildFromFragments(t, p, statementFragments())
	require.Len(t, txs, 2)

	assert.Equal(t, "UPI PAYMENT REF 928AB", txs[0].Description)
	assert.Equal(t, "-500", txs[0].Amount.String())
	assert.Equal(t, "01-Feb-2024", txs[0].Date.Format("02-Jan-2006"))
	assert.False(t, txs[0].IsCredit())
	assert.Equal(t, domain.CategoryUncategorized, txs[0].Category)

	assert.Equal(t, "SALARY ACME", txs[1].Description)
	assert.Equal(t, "1000", txs[1].Amount.String())
	assert.True(t, txs[1].IsCredit())
}

func TestBuildTransactionsIsIdempotent(t *testing.T) {
	p := NewParser(Config{})
	frags := statementFragments()

	boundaries, ok := p.FindColumnBoundaries(frags)
	require.True(t, ok)
	rows := p.GroupRows(frags, boundaries.HeaderY)

	first := p.BuildTransactions(rows, boundaries)
	second := p.BuildTransactions(rows, boundaries)
	require.Len(t, second, len(first))
	for i := range first {
		assert.True(t, first[i].Date.Equal(second[i].Date))
		assert.Equal(t, first[i].Description, second[i].Description)
		assert.True(t, first[i].Amount.Equal(second[i].Amount))
	}
}

func TestBuildTransactionsContinuationBeforeAnyStartIsDropped(t *testing.T) {
	p := NewParser(Config{})
	frags := headerRow()
	frags = append(frags,
		domain.PositionedFragment{Text: "BROUGHT FORWARD", X: 205, Y: 680, Width: 90},
	)
	txs := buildFromFragments(t, p, frags)
	assert.Empty(t, txs)
}

func TestClassifyRowOrderingContract(t *testing.T) {
	p := NewParser(Config{})

	// A dated row with an amount starts a transaction even when it also
	// carries description text.
	start := p.classifyRow(map[string]string{
		"Transaction Date": "01-Feb-2024",
		"Credit":           "10.00",
		ColumnUnassigned:   "SOME TEXT",
	})
	assert.Equal(t, rowStart, start.kind)

	cont := p.classifyRow(map[string]string{ColumnUnassigned: "OVERFLOW TEXT"})
	assert.Equal(t, rowContinuation, cont.kind)

	// Date without amount, and amount without date, are both noise.
	assert.Equal(t, rowNoise, p.classifyRow(map[string]string{"Transaction Date": "01-Feb-2024"}).kind)
	assert.Equal(t, rowNoise, p.classifyRow(map[string]string{"Debit": "5.00"}).kind)
	assert.Equal(t, rowNoise, p.classifyRow(map[string]string{}).kind)
}
