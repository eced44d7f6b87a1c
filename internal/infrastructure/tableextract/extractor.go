// Package tableextract adapts the positional layout parser to the
// extraction ports. It is the offline counterpart of the model-backed
// adapters: deterministic, no network, no redaction counts.
package tableextract

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/finparse/statement-extractor/internal/core/domain"
	"github.com/finparse/statement-extractor/internal/layout"
)

type Extractor struct {
	parser *layout.Parser
}

func New(cfg layout.Config) *Extractor {
	return &Extractor{parser: layout.NewParser(cfg)}
}

// ProcessPage parses the page's positioned fragments. A page whose table
// headers cannot be located is still a successful page with zero
// transactions; only a page with no fragments at all while text is present
// counts as unreadable.
func (e *Extractor) ProcessPage(_ context.Context, req domain.PageRequest) (domain.PageResult, error) {
	result := domain.PageResult{
		PageNumber: req.Number,
		TotalPages: req.TotalPages,
		Success:    true,
	}

	transactions, ok := e.parser.ParsePage(req.Fragments)
	if !ok {
		result.Notes = "no transaction table detected on this page"
		return result, nil
	}

	result.Transactions = transactions
	return result, nil
}

// Validator checks the expected identity against the leading pages' text.
// Bank matching tolerates spacing and case differences; month and year
// must appear literally.
type Validator struct{}

func NewValidator() *Validator {
	return &Validator{}
}

func (v *Validator) Validate(_ context.Context, expected domain.ExpectedStatement, firstPagesText string) (domain.ValidationResult, error) {
	result := domain.ValidationResult{
		BankMatch:  bankMatches(expected.Bank, firstPagesText),
		MonthMatch: strings.Contains(strings.ToLower(firstPagesText), strings.ToLower(expected.Month.String())),
		YearMatch:  strings.Contains(firstPagesText, strconv.Itoa(expected.Year)),
		Confidence: 1,
	}
	result.IsValid = result.BankMatch && result.MonthMatch && result.YearMatch

	if !result.IsValid {
		var missing []string
		if !result.BankMatch {
			missing = append(missing, fmt.Sprintf("bank %q", expected.Bank))
		}
		if !result.MonthMatch {
			missing = append(missing, fmt.Sprintf("month %q", expected.Month))
		}
		if !result.YearMatch {
			missing = append(missing, fmt.Sprintf("year %d", expected.Year))
		}
		result.Error = "not found in document: " + strings.Join(missing, ", ")
	}
	return result, nil
}

func bankMatches(bank, text string) bool {
	if bank == "" {
		return false
	}
	if strings.Contains(strings.ToLower(text), strings.ToLower(bank)) {
		return true
	}
	// Statements sometimes letter-space the bank name in the letterhead
	// ("H D F C  B a n k"). Collapse whitespace per line and look for the
	// collapsed name as a substring; matching across the whole page text
	// would accept any name whose letters merely appear somewhere in order.
	want := collapseSpaces(bank)
	for _, line := range strings.Split(text, "\n") {
		if strings.Contains(collapseSpaces(line), want) {
			return true
		}
	}
	return false
}

func collapseSpaces(s string) string {
	return strings.ToLower(strings.Join(strings.Fields(s), ""))
}

// Finalizer leaves categories untouched; the offline path has no
// categorization backend.
type Finalizer struct{}

func NewFinalizer() *Finalizer {
	return &Finalizer{}
}

func (f *Finalizer) FinalizeCategories(_ context.Context, transactions []domain.Transaction, _ []string) ([]domain.Transaction, error) {
	return transactions, nil
}
