package domain

import "time"

// JobStatus is the coarse state of an extraction job.
type JobStatus string

const (
	StatusValidating   JobStatus = "validating"
	StatusProcessing   JobStatus = "processing"
	StatusCategorizing JobStatus = "categorizing"
	StatusCompleted    JobStatus = "completed"
	StatusFailed       JobStatus = "failed"
)

// JobProgress is an immutable snapshot of orchestration state, published
// to observers after every step. Observers never receive a live reference
// to the orchestrator's own state.
type JobProgress struct {
	CurrentPage        int           `json:"current_page"`
	TotalPages         int           `json:"total_pages"`
	CompletedPages     int           `json:"completed_pages"`
	SuccessfulPages    int           `json:"successful_pages"`
	FailedPages        int           `json:"failed_pages"`
	PercentComplete    float64       `json:"percent_complete"`
	EstimatedRemaining time.Duration `json:"estimated_remaining"`
	Status             JobStatus     `json:"status"`
}

// Analytics summarizes a completed extraction job.
type Analytics struct {
	TotalPages        int           `json:"total_pages"`
	SuccessfulPages   int           `json:"successful_pages"`
	FailedPages       int           `json:"failed_pages"`
	TotalTransactions int           `json:"total_transactions"`
	ProcessingTime    time.Duration `json:"processing_time"`
}

// ExtractionResult is the full output of one extraction job. Transactions
// keep page order, then within-page extraction order.
type ExtractionResult struct {
	Transactions []Transaction     `json:"transactions"`
	Validation   ValidationResult  `json:"validation"`
	PageResults  []PageResult      `json:"page_results"`
	Security     SecurityBreakdown `json:"security"`
	Analytics    Analytics         `json:"analytics"`
}
