package layout

import (
	"sort"
	"strings"

	"github.com/finparse/statement-extractor/internal/core/domain"
)

// TableRow is an ordered run of fragments sharing one reconstructed line.
// Y is the cluster's anchor: the y-coordinate of the first fragment that
// opened the cluster. Rows are transient; they exist only while one page
// is being parsed.
type TableRow struct {
	Y         float64
	Fragments []domain.PositionedFragment
}

// GroupRows clusters the content-region fragments of a page into rows.
// Only fragments strictly below the header line (smaller y in PDF space)
// with non-empty text are kept. A fragment joins the first existing
// cluster whose anchor y is within RowTolerance; otherwise it opens a new
// cluster. First-match-wins means the comparison order matters; this is a
// known approximation, not a stable clustering algorithm, and it holds up
// because ledger lines are spaced well beyond the tolerance.
func (p *Parser) GroupRows(fragments []domain.PositionedFragment, headerY float64) []TableRow {
	var rows []TableRow

	for _, frag := range fragments {
		if frag.Y >= headerY {
			continue
		}
		if strings.TrimSpace(frag.Text) == "" {
			continue
		}

		placed := false
		for i := range rows {
			if withinTolerance(rows[i].Y, frag.Y, p.cfg.RowTolerance) {
				rows[i].Fragments = append(rows[i].Fragments, frag)
				placed = true
				break
			}
		}
		if !placed {
			rows = append(rows, TableRow{Y: frag.Y, Fragments: []domain.PositionedFragment{frag}})
		}
	}

	for i := range rows {
		frags := rows[i].Fragments
		sort.SliceStable(frags, func(a, b int) bool { return frags[a].X < frags[b].X })
	}
	sort.SliceStable(rows, func(a, b int) bool { return rows[a].Y > rows[b].Y })

	return rows
}
