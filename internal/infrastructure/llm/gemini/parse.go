package gemini

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/finparse/statement-extractor/internal/core/domain"
)

// cleanModelJSON strips markdown code fences from a model response. Models
// occasionally wrap output in ```json fences despite instructions.
func cleanModelJSON(raw string) string {
	s := strings.TrimSpace(raw)
	if strings.HasPrefix(s, "```") {
		if idx := strings.Index(s, "\n"); idx != -1 {
			s = s[idx+1:]
		} else {
			return s
		}
		s = strings.TrimSpace(s)
	}
	if idx := strings.LastIndex(s, "```"); idx != -1 {
		s = s[:idx]
	}
	return strings.TrimSpace(s)
}

func parseValidationResult(raw string) (domain.ValidationResult, error) {
	var result domain.ValidationResult
	if err := json.Unmarshal([]byte(cleanModelJSON(raw)), &result); err != nil {
		return domain.ValidationResult{}, fmt.Errorf("parse validation json: %w", err)
	}
	return result, nil
}

type transactionDTO struct {
	Date        string   `json:"date"`
	Description string   `json:"description"`
	Amount      *float64 `json:"amount"`
	Category    string   `json:"category"`
	IsTransfer  bool     `json:"is_transfer"`
}

type balanceDTO struct {
	Opening    *float64 `json:"opening"`
	Closing    *float64 `json:"closing"`
	Available  *float64 `json:"available"`
	Current    *float64 `json:"current"`
	Confidence float64  `json:"confidence"`
}

type pageDTO struct {
	Transactions      []transactionDTO         `json:"transactions"`
	Balance           *balanceDTO              `json:"balance"`
	PageEndingBalance *float64                 `json:"page_ending_balance"`
	Notes             string                   `json:"notes"`
	SuspectTruncation bool                     `json:"suspect_truncation"`
	Success           bool                     `json:"success"`
	Security          domain.SecurityBreakdown `json:"security"`
}

func parsePageResult(raw string, pageNumber, totalPages int) (domain.PageResult, error) {
	var dto pageDTO
	if err := json.Unmarshal([]byte(cleanModelJSON(raw)), &dto); err != nil {
		return domain.PageResult{}, fmt.Errorf("parse page json: %w", err)
	}

	result := domain.PageResult{
		PageNumber:        pageNumber,
		TotalPages:        totalPages,
		Transactions:      make([]domain.Transaction, 0, len(dto.Transactions)),
		PageEndingBalance: toDecimal(dto.PageEndingBalance),
		Notes:             dto.Notes,
		SuspectTruncation: dto.SuspectTruncation,
		Success:           dto.Success,
	}
	if dto.Balance != nil {
		result.Balance = &domain.BalanceSnapshot{
			Opening:    toDecimal(dto.Balance.Opening),
			Closing:    toDecimal(dto.Balance.Closing),
			Available:  toDecimal(dto.Balance.Available),
			Current:    toDecimal(dto.Balance.Current),
			Confidence: dto.Balance.Confidence,
		}
	}
	if dto.Security.Total() > 0 {
		security := dto.Security
		result.Security = &security
	}

	for i, tx := range dto.Transactions {
		date, err := time.Parse("2006-01-02", tx.Date)
		if err != nil {
			return domain.PageResult{}, fmt.Errorf("parse transaction %d date %q: %w", i, tx.Date, err)
		}
		if tx.Amount == nil {
			return domain.PageResult{}, fmt.Errorf("transaction %d has no amount", i)
		}
		amount := decimal.NewFromFloat(*tx.Amount)
		if amount.IsZero() {
			// A zero amount is a balance or header line the model mistook
			// for a transaction; committed transactions are never zero.
			continue
		}
		parsed := domain.NewTransaction(date, tx.Description, amount)
		if tx.Category != "" {
			parsed.Category = tx.Category
		}
		parsed.IsTransfer = tx.IsTransfer
		result.Transactions = append(result.Transactions, parsed)
	}
	return result, nil
}

func toDecimal(v *float64) *decimal.Decimal {
	if v == nil {
		return nil
	}
	d := decimal.NewFromFloat(*v)
	return &d
}

type finalizedDTO struct {
	ID       string `json:"id"`
	Category string `json:"category"`
}

// applyFinalizedCategories maps the model's id→category assignments onto a
// copy of the input. Assignments outside the allowed vocabulary and ids the
// model invented are ignored.
func applyFinalizedCategories(raw string, transactions []domain.Transaction, categories []string) ([]domain.Transaction, error) {
	var assignments []finalizedDTO
	if err := json.Unmarshal([]byte(cleanModelJSON(raw)), &assignments); err != nil {
		return nil, fmt.Errorf("parse finalize json: %w", err)
	}

	allowed := make(map[string]struct{}, len(categories)+1)
	for _, c := range categories {
		allowed[c] = struct{}{}
	}
	allowed[domain.CategoryUncategorized] = struct{}{}

	byID := make(map[string]string, len(assignments))
	for _, a := range assignments {
		if _, ok := allowed[a.Category]; ok {
			byID[a.ID] = a.Category
		}
	}

	out := make([]domain.Transaction, len(transactions))
	copy(out, transactions)
	for i := range out {
		if category, ok := byID[out[i].ID]; ok {
			out[i].Category = category
		}
	}
	return out, nil
}
