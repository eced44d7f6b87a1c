package layout

import (
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"

	"github.com/finparse/statement-extractor/internal/core/domain"
)

// ColumnBoundary is the horizontal span attributed to one logical table
// column, anchored by the header label that named it.
type ColumnBoundary struct {
	X     float64
	Width float64
}

// ColumnBoundaries maps column name to boundary, plus the y-position of
// the header row they were detected on. Computed once per page.
type ColumnBoundaries struct {
	Columns map[string]ColumnBoundary
	HeaderY float64
}

// headerSlack bounds how much longer than the expected label a fragment
// may be and still count as that header under the fuzzy fallback.
const headerSlack = 4

// headerMatches reports whether a fragment's text names the given header
// label. Primary test is a case-insensitive prefix match; a folded
// subsequence match covers rendering quirks such as stray spaces inside
// the label.
func headerMatches(fragmentText, label string) bool {
	text := strings.ToLower(strings.TrimSpace(fragmentText))
	want := strings.ToLower(label)
	if text == "" {
		return false
	}
	if strings.HasPrefix(text, want) {
		return true
	}
	return len(text) <= len(want)+headerSlack && fuzzy.MatchFold(want, text)
}

// FindColumnBoundaries searches a page's fragments for the expected header
// labels. Detection is a partial-match search: it succeeds when at least
// MinHeaders of the expected labels are located (one or two may be lost to
// rendering quirks). The second return value is false when detection
// fails, which is a recoverable per-page skip, never a fatal error.
func (p *Parser) FindColumnBoundaries(fragments []domain.PositionedFragment) (*ColumnBoundaries, bool) {
	boundaries := &ColumnBoundaries{Columns: make(map[string]ColumnBoundary)}
	headerFound := false

	for _, label := range p.cfg.Headers {
		for _, frag := range fragments {
			if !headerMatches(frag.Text, label) {
				continue
			}
			boundaries.Columns[label] = ColumnBoundary{X: frag.X, Width: frag.Width}
			if !headerFound {
				boundaries.HeaderY = frag.Y
				headerFound = true
			}
			break
		}
	}

	if !headerFound || len(boundaries.Columns) < p.cfg.MinHeaders {
		return nil, false
	}
	return boundaries, true
}

// AssignColumns distributes a row's fragments into named cells. A fragment
// belongs to the first column whose widened span contains its anchor x;
// everything else accumulates into the Unassigned bucket. The narrative
// column, if it matched anything, is folded into Unassigned as well so the
// description always lives in a single slot.
func (p *Parser) AssignColumns(row TableRow, boundaries *ColumnBoundaries) map[string]string {
	cells := make(map[string]string)

	appendCell := func(name, text string) {
		text = strings.TrimSpace(text)
		if text == "" {
			return
		}
		if cells[name] == "" {
			cells[name] = text
			return
		}
		cells[name] += " " + text
	}

	for _, frag := range row.Fragments {
		assigned := false
		for _, label := range p.cfg.Headers {
			b, ok := boundaries.Columns[label]
			if !ok {
				continue
			}
			if frag.X >= b.X-p.cfg.ColumnTolerance && frag.X <= b.X+b.Width+p.cfg.ColumnTolerance {
				appendCell(label, frag.Text)
				assigned = true
				break
			}
		}
		if !assigned {
			appendCell(ColumnUnassigned, frag.Text)
		}
	}

	if desc := cells[p.cfg.DescriptionColumn]; desc != "" {
		if cells[ColumnUnassigned] == "" {
			cells[ColumnUnassigned] = desc
		} else {
			cells[ColumnUnassigned] = desc + " " + cells[ColumnUnassigned]
		}
		delete(cells, p.cfg.DescriptionColumn)
	}

	return cells
}
