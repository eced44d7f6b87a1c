package pdfsplit

import (
	"sort"
	"strings"

	"github.com/ledongthuc/pdf"

	"github.com/finparse/statement-extractor/internal/core/domain"
)

// lineTolerance is how far apart two y-positions may be while still
// counting as the same text line during coalescing and text assembly.
const lineTolerance = 3.0

// Coalesce merges the library's text-showing operations, frequently one
// glyph each, into word-level fragments. Runs on the same line merge while
// the horizontal gap stays below half the font size; a space is inserted
// for small in-word gaps the layout engine encoded explicitly. Column
// gutters are far wider than any glyph gap, so cell boundaries survive.
func Coalesce(texts []pdf.Text) []domain.PositionedFragment {
	if len(texts) == 0 {
		return nil
	}

	sorted := make([]pdf.Text, len(texts))
	copy(sorted, texts)
	sort.SliceStable(sorted, func(i, j int) bool {
		if !sameLine(sorted[i].Y, sorted[j].Y) {
			return sorted[i].Y > sorted[j].Y
		}
		return sorted[i].X < sorted[j].X
	})

	var fragments []domain.PositionedFragment
	var run strings.Builder
	start := sorted[0]
	prev := sorted[0]
	run.WriteString(sorted[0].S)

	flush := func(last pdf.Text) {
		text := strings.TrimSpace(run.String())
		if text != "" {
			fragments = append(fragments, domain.PositionedFragment{
				Text:  text,
				X:     start.X,
				Y:     start.Y,
				Width: last.X + last.W - start.X,
			})
		}
		run.Reset()
	}

	for _, t := range sorted[1:] {
		gap := t.X - (prev.X + prev.W)
		glyphGap := maxGlyphGap(prev.FontSize)

		if !sameLine(t.Y, prev.Y) || gap > glyphGap || gap < -glyphGap {
			flush(prev)
			start = t
		} else if gap > spaceGap(prev.FontSize) {
			run.WriteString(" ")
		}
		run.WriteString(t.S)
		prev = t
	}
	flush(prev)

	return fragments
}

func sameLine(a, b float64) bool {
	d := a - b
	if d < 0 {
		d = -d
	}
	return d <= lineTolerance
}

func maxGlyphGap(fontSize float64) float64 {
	if fontSize <= 0 {
		return 3.0
	}
	return fontSize * 0.5
}

func spaceGap(fontSize float64) float64 {
	if fontSize <= 0 {
		return 1.0
	}
	return fontSize * 0.18
}

// AssembleText renders fragments into plain page text: fragments on one
// line joined by single spaces left to right, lines top to bottom.
func AssembleText(fragments []domain.PositionedFragment) string {
	if len(fragments) == 0 {
		return ""
	}

	sorted := make([]domain.PositionedFragment, len(fragments))
	copy(sorted, fragments)
	sort.SliceStable(sorted, func(i, j int) bool {
		if !sameLine(sorted[i].Y, sorted[j].Y) {
			return sorted[i].Y > sorted[j].Y
		}
		return sorted[i].X < sorted[j].X
	})

	var b strings.Builder
	lineY := sorted[0].Y
	for i, f := range sorted {
		if i > 0 {
			if sameLine(f.Y, lineY) {
				b.WriteString(" ")
			} else {
				b.WriteString("\n")
				lineY = f.Y
			}
		}
		b.WriteString(f.Text)
	}
	return b.String()
}
