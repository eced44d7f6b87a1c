package layout

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/finparse/statement-extractor/internal/core/domain"
)

// rowKind is the three-way classification at the heart of the parser:
// a row either starts a transaction, continues the current one, or is
// noise (spacer lines, footers, page furniture).
type rowKind int

const (
	rowNoise rowKind = iota
	rowStart
	rowContinuation
)

type rowClass struct {
	kind   rowKind
	date   time.Time
	amount decimal.Decimal
	text   string
}

// classifyRow decides what a row means for transaction building. The
// ordering contract is load-bearing: the date+amount test runs before the
// continuation test, so a dated row with an amount always starts a new
// transaction even when it also carries description text.
func (p *Parser) classifyRow(cells map[string]string) rowClass {
	date, hasDate := ExtractDate(cells[p.cfg.DateColumn])
	amount := ParseAmount(cells[p.cfg.DebitColumn], cells[p.cfg.CreditColumn])
	text := strings.TrimSpace(cells[ColumnUnassigned])

	if hasDate && !amount.IsZero() {
		return rowClass{kind: rowStart, date: date, amount: amount, text: text}
	}
	if !hasDate && amount.IsZero() && text != "" {
		return rowClass{kind: rowContinuation, text: text}
	}
	return rowClass{kind: rowNoise}
}

// BuildTransactions walks rows top to bottom maintaining a current
// transaction slot. A start row commits any pending transaction first; a
// continuation row appends its text to the pending description; noise rows
// are discarded without error, since statements routinely contain them.
func (p *Parser) BuildTransactions(rows []TableRow, boundaries *ColumnBoundaries) []domain.Transaction {
	transactions := make([]domain.Transaction, 0, len(rows))
	var current *domain.Transaction

	for _, row := range rows {
		class := p.classifyRow(p.AssignColumns(row, boundaries))

		switch class.kind {
		case rowStart:
			if current != nil {
				transactions = append(transactions, *current)
			}
			tx := domain.NewTransaction(class.date, class.text, class.amount)
			current = &tx
		case rowContinuation:
			if current != nil {
				if current.Description == "" {
					current.Description = class.text
				} else {
					current.Description += " " + class.text
				}
			}
		case rowNoise:
			// discarded
		}
	}

	if current != nil {
		transactions = append(transactions, *current)
	}
	return transactions
}
