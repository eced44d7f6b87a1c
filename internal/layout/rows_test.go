package layout

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/finparse/statement-extractor/internal/core/domain"
)

func TestGroupRowsKeepsOnlyContentRegion(t *testing.T) {
	p := NewParser(Config{})

	frags := []domain.PositionedFragment{
		{Text: "Debit", X: 380, Y: 700, Width: 30},       // header line
		{Text: "STATEMENT", X: 40, Y: 760, Width: 60},    // above header
		{Text: "01-Feb-2024", X: 40, Y: 680, Width: 60},  // content
		{Text: "   ", X: 200, Y: 680, Width: 20},         // blank text
		{Text: "500.00", X: 382, Y: 678, Width: 35},      // same line, within tolerance
	}

	rows := p.GroupRows(frags, 700)
	require.Len(t, rows, 1)
	assert.Len(t, rows[0].Fragments, 2)
}

func TestGroupRowsClustersWithinTolerance(t *testing.T) {
	p := NewParser(Config{})

	frags := []domain.PositionedFragment{
		{Text: "a", X: 40, Y: 680, Width: 10},
		{Text: "b", X: 100, Y: 683, Width: 10}, // joins 680 cluster
		{Text: "c", X: 40, Y: 660, Width: 10},  // new cluster
		{Text: "d", X: 100, Y: 656, Width: 10}, // joins 660 cluster
	}

	rows := p.GroupRows(frags, 700)
	require.Len(t, rows, 2)
	assert.Len(t, rows[0].Fragments, 2)
	assert.Len(t, rows[1].Fragments, 2)
}

func TestGroupRowsSortsFragmentsLeftToRight(t *testing.T) {
	p := NewParser(Config{})

	frags := []domain.PositionedFragment{
		{Text: "right", X: 300, Y: 680, Width: 30},
		{Text: "left", X: 40, Y: 681, Width: 25},
		{Text: "middle", X: 150, Y: 679, Width: 40},
	}

	rows := p.GroupRows(frags, 700)
	require.Len(t, rows, 1)
	texts := []string{rows[0].Fragments[0].Text, rows[0].Fragments[1].Text, rows[0].Fragments[2].Text}
	assert.Equal(t, []string{"left", "middle", "right"}, texts)
}

func TestGroupRowsSortsRowsTopToBottom(t *testing.T) {
	p := NewParser(Config{})

	frags := []domain.PositionedFragment{
		{Text: "lower", X: 40, Y: 620, Width: 30},
		{Text: "upper", X: 40, Y: 690, Width: 30},
		{Text: "middle", X: 40, Y: 655, Width: 30},
	}

	rows := p.GroupRows(frags, 700)
	require.Len(t, rows, 3)
	assert.Equal(t, "upper", rows[0].Fragments[0].Text)
	assert.Equal(t, "middle", rows[1].Fragments[0].Text)
	assert.Equal(t, "lower", rows[2].Fragments[0].Text)
}
