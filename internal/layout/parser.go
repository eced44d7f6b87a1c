package layout

import (
	"github.com/finparse/statement-extractor/internal/core/domain"
)

// Parser is the deterministic positional-table parser. It is stateless
// across pages: unlike the AI orchestrator, no balance or other context is
// carried between them.
type Parser struct {
	cfg Config
}

// NewParser creates a parser; zero-value config fields fall back to
// DefaultConfig.
func NewParser(cfg Config) *Parser {
	return &Parser{cfg: cfg.normalize()}
}

// ParsePage reconstructs the transactions of a single page. The second
// return value is false when the page's headers could not be located; the
// page then contributes zero transactions and the caller moves on.
func (p *Parser) ParsePage(fragments []domain.PositionedFragment) ([]domain.Transaction, bool) {
	boundaries, ok := p.FindColumnBoundaries(fragments)
	if !ok {
		return nil, false
	}
	rows := p.GroupRows(fragments, boundaries.HeaderY)
	return p.BuildTransactions(rows, boundaries), true
}

// ParseDocument parses every page independently. Header-detection failure
// on a page is never fatal to the document.
func (p *Parser) ParseDocument(pages [][]domain.PositionedFragment) []domain.Transaction {
	var transactions []domain.Transaction
	for _, fragments := range pages {
		pageTxs, ok := p.ParsePage(fragments)
		if !ok {
			continue
		}
		transactions = append(transactions, pageTxs...)
	}
	return transactions
}
