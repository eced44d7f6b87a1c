package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Transaction is the canonical output unit of statement extraction.
// Amount is signed: positive means money in (credit), negative means money
// out (debit). A committed transaction never carries a zero amount.
type Transaction struct {
	ID          string          `json:"id"`
	Date        time.Time       `json:"date"`
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
	Category    string          `json:"category"`
	IsTransfer  bool            `json:"is_transfer"`
}

// CategoryUncategorized is the category assigned to transactions before
// finalization runs (or when finalization fails).
const CategoryUncategorized = "Uncategorized"

// NewTransaction builds a transaction with a fresh identifier and the
// default category.
func NewTransaction(date time.Time, description string, amount decimal.Decimal) Transaction {
	return Transaction{
		ID:          uuid.NewString(),
		Date:        date,
		Description: description,
		Amount:      amount,
		Category:    CategoryUncategorized,
	}
}

// IsCredit reports whether the transaction is an inflow.
func (t Transaction) IsCredit() bool {
	return t.Amount.IsPositive()
}
