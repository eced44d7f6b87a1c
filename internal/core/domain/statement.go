package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// PositionedFragment is a single run of text with its layout position on a
// page. Coordinates follow PDF conventions: X grows rightward, Y grows
// upward, so a fragment below another has a smaller Y. Fragments are
// produced by the page splitter and never mutated.
type PositionedFragment struct {
	Text  string
	X     float64
	Y     float64
	Width float64
}

// PageContent is one page of the source document: its plain text plus the
// positioned fragments it was assembled from.
type PageContent struct {
	Number    int
	Text      string
	Fragments []PositionedFragment
}

// ExpectedStatement is the user-declared identity of the document being
// extracted. Validation checks the first pages against it before any
// per-page work starts.
type ExpectedStatement struct {
	Bank  string
	Month time.Month
	Year  int
}

// PageRequest is the input to a single page-extraction call.
// PreviousBalance is the ending balance carried from the last successfully
// processed page; nil for the first page. Fragments carry the page's
// positioned text for extractors that work on layout rather than prose.
type PageRequest struct {
	Text            string
	Fragments       []PositionedFragment
	Number          int
	TotalPages      int
	PreviousBalance *decimal.Decimal
	Categories      []string
}

// BalanceSnapshot is the balance information recovered from one page,
// with the extractor's confidence in it.
type BalanceSnapshot struct {
	Opening    *decimal.Decimal `json:"opening,omitempty"`
	Closing    *decimal.Decimal `json:"closing,omitempty"`
	Available  *decimal.Decimal `json:"available,omitempty"`
	Current    *decimal.Decimal `json:"current,omitempty"`
	Confidence float64          `json:"confidence"`
}

// PageResult is the outcome of extracting one page. A failed page carries
// zero transactions and a nil PageEndingBalance; the orchestrator keeps the
// previous carry in that case.
type PageResult struct {
	PageNumber        int                `json:"page_number"`
	TotalPages        int                `json:"total_pages"`
	Transactions      []Transaction      `json:"transactions"`
	Balance           *BalanceSnapshot   `json:"balance,omitempty"`
	PageEndingBalance *decimal.Decimal   `json:"page_ending_balance,omitempty"`
	Notes             string             `json:"notes,omitempty"`
	SuspectTruncation bool               `json:"suspect_truncation"`
	Success           bool               `json:"success"`
	Security          *SecurityBreakdown `json:"security,omitempty"`
}

// ValidationResult is the outcome of identity-checking a candidate
// document against the expected bank, month and year.
type ValidationResult struct {
	IsValid       bool    `json:"is_valid"`
	BankMatch     bool    `json:"bank_match"`
	MonthMatch    bool    `json:"month_match"`
	YearMatch     bool    `json:"year_match"`
	Error         string  `json:"error,omitempty"`
	DetectedBank  string  `json:"detected_bank,omitempty"`
	DetectedMonth string  `json:"detected_month,omitempty"`
	DetectedYear  int     `json:"detected_year,omitempty"`
	Confidence    float64 `json:"confidence"`
}

// StatementJob is the queue payload that asks a worker to extract one
// statement document.
type StatementJob struct {
	ID            string     `json:"id"`
	DocumentPath  string     `json:"document_path"`
	ExpectedBank  string     `json:"expected_bank"`
	ExpectedMonth time.Month `json:"expected_month"`
	ExpectedYear  int        `json:"expected_year"`
	Categories    []string   `json:"categories,omitempty"`
	EnqueuedAt    time.Time  `json:"enqueued_at"`
}

// Expected returns the identity declared on the job.
func (j StatementJob) Expected() ExpectedStatement {
	return ExpectedStatement{Bank: j.ExpectedBank, Month: j.ExpectedMonth, Year: j.ExpectedYear}
}
