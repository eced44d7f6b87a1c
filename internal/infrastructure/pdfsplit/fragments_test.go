package pdfsplit

import (
	"testing"

	"github.com/ledongthuc/pdf"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/finparse/statement-extractor/internal/core/domain"
)

func glyphs(y float64, x float64, fontSize float64, s string) []pdf.Text {
	texts := make([]pdf.Text, 0, len(s))
	for _, r := range s {
		w := fontSize * 0.5
		texts = append(texts, pdf.Text{
			FontSize: fontSize,
			X:        x,
			Y:        y,
			W:        w,
			S:        string(r),
		})
		x += w
	}
	return texts
}

func TestCoalesceMergesGlyphRuns(t *testing.T) {
	texts := glyphs(700, 40, 10, "Debit")

	got := Coalesce(texts)

	require.Len(t, got, 1)
	assert.Equal(t, "Debit", got[0].Text)
	assert.Equal(t, 40.0, got[0].X)
	assert.Equal(t, 700.0, got[0].Y)
	assert.InDelta(t, 25.0, got[0].Width, 0.01)
}

func TestCoalesceSplitsOnColumnGutter(t *testing.T) {
	texts := append(glyphs(650, 40, 10, "UPI"), glyphs(650, 300, 10, "500.00")...)

	got := Coalesce(texts)

	require.Len(t, got, 2)
	assert.Equal(t, "UPI", got[0].Text)
	assert.Equal(t, "500.00", got[1].Text)
	assert.Equal(t, 300.0, got[1].X)
}

func TestCoalesceInsertsSpaceForSmallGaps(t *testing.T) {
	left := glyphs(650, 40, 10, "UPI")
	// A gap of 3 units at font size 10 is a word space, not a column break.
	right := glyphs(650, left[len(left)-1].X+left[len(left)-1].W+3, 10, "PAYMENT")
	texts := append(left, right...)

	got := Coalesce(texts)

	require.Len(t, got, 1)
	assert.Equal(t, "UPI PAYMENT", got[0].Text)
}

func TestCoalesceSeparatesLines(t *testing.T) {
	texts := append(glyphs(650, 40, 10, "SALARY"), glyphs(600, 40, 10, "ACME")...)

	got := Coalesce(texts)

	require.Len(t, got, 2)
	assert.Equal(t, "SALARY", got[0].Text)
	assert.Equal(t, 650.0, got[0].Y)
	assert.Equal(t, "ACME", got[1].Text)
	assert.Equal(t, 600.0, got[1].Y)
}

func TestCoalesceOrdersUnsortedInput(t *testing.T) {
	// Content streams emit text in draw order, which need not be reading
	// order. Coalesce must not depend on it.
	texts := append(glyphs(600, 40, 10, "ACME"), glyphs(650, 40, 10, "SALARY")...)

	got := Coalesce(texts)

	require.Len(t, got, 2)
	assert.Equal(t, "SALARY", got[0].Text)
	assert.Equal(t, "ACME", got[1].Text)
}

func TestCoalesceEmptyInput(t *testing.T) {
	assert.Nil(t, Coalesce(nil))
	assert.Nil(t, Coalesce([]pdf.Text{}))
}

func TestAssembleTextJoinsLinesTopToBottom(t *testing.T) {
	fragments := []domain.PositionedFragment{
		{Text: "ACME", X: 90, Y: 600},
		{Text: "500.00", X: 300, Y: 650},
		{Text: "UPI", X: 40, Y: 650},
		{Text: "CORP", X: 140, Y: 601},
	}

	got := AssembleText(fragments)

	assert.Equal(t, "UPI 500.00\nACME CORP", got)
}

func TestAssembleTextEmpty(t *testing.T) {
	assert.Equal(t, "", AssembleText(nil))
}
