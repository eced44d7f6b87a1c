package layout

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/finparse/statement-extractor/internal/core/domain"
)

func TestParsePage(t *testing.T) {
	p := NewParser(Config{})

	txs, ok := p.ParsePage(statementFragments())
	require.True(t, ok)
	assert.Len(t, txs, 2)
}

func TestParsePageHeaderDetectionFailureIsRecoverable(t *testing.T) {
	p := NewParser(Config{})

	txs, ok := p.ParsePage([]domain.PositionedFragment{
		{Text: "This page intentionally left blank", X: 100, Y: 400, Width: 180},
	})
	assert.False(t, ok)
	assert.Empty(t, txs)
}

func TestParseDocumentSkipsHeaderlessPages(t *testing.T) {
	p := NewParser(Config{})

	headerless := []domain.PositionedFragment{
		{Text: "Terms and conditions apply", X: 100, Y: 400, Width: 150},
	}
	txs := p.ParseDocument([][]domain.PositionedFragment{
		statementFragments(),
		headerless,
		statementFragments(),
	})

	// Both parseable pages contribute, in page order; the headerless page
	// contributes nothing and does not abort the document.
	require.Len(t, txs, 4)
	assert.Equal(t, "UPI PAYMENT REF 928AB", txs[0].Description)
	assert.Equal(t, "SALARY ACME", txs[1].Description)
	assert.Equal(t, "UPI PAYMENT REF 928AB", txs[2].Description)
}

func TestParserConfigOverrides(t *testing.T) {
	p := NewParser(Config{RowTolerance: 2, ColumnTolerance: 1})

	// With a 1-unit column tolerance a cell at x=413 falls between the
	// Debit span [379, 411] and the Credit span [439, 473].
	frags := headerRow()
	frags = append(frags,
		domain.PositionedFragment{Text: "01-Feb-2024", X: 40, Y: 680, Width: 60},
		domain.PositionedFragment{Text: "500.00", X: 413, Y: 680, Width: 35},
	)

	boundaries, ok := p.FindColumnBoundaries(frags)
	require.True(t, ok)
	rows := p.GroupRows(frags, boundaries.HeaderY)
	require.Len(t, rows, 1)

	cells := p.AssignColumns(rows[0], boundaries)
	assert.NotContains(t, cells, "Debit")
	assert.Equal(t, "500.00", cells[ColumnUnassigned])
}
