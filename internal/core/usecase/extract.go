package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/time/rate"

	"github.com/finparse/statement-extractor/internal/core/domain"
	"github.com/finparse/statement-extractor/internal/core/ports"
)

// validationPageCount is how many leading pages feed the identity check;
// statements state their bank and period within the first pages.
const validationPageCount = 3

// Options tunes one use-case instance. Zero values fall back to defaults.
type Options struct {
	Logger   *slog.Logger
	Progress ports.ProgressSink

	// PageDelay paces consecutive page calls. Reserved for progress
	// visibility; not a correctness requirement.
	PageDelay time.Duration

	PageTimeout     time.Duration
	ValidateTimeout time.Duration
	FinalizeTimeout time.Duration
}

func (o Options) normalize() Options {
	out := o
	if out.Logger == nil {
		out.Logger = slog.Default()
	}
	if out.Progress == nil {
		out.Progress = func(domain.JobProgress, domain.SecurityBreakdown) {}
	}
	if out.PageDelay <= 0 {
		out.PageDelay = 250 * time.Millisecond
	}
	if out.PageTimeout <= 0 {
		out.PageTimeout = 90 * time.Second
	}
	if out.ValidateTimeout <= 0 {
		out.ValidateTimeout = 30 * time.Second
	}
	if out.FinalizeTimeout <= 0 {
		out.FinalizeTimeout = 60 * time.Second
	}
	return out
}

// ExtractStatementUseCase sequences one extraction job: split the document
// into pages, validate its identity, process pages strictly in order with
// the balance carried page to page, then finalize categories best-effort.
// One instance runs one job at a time; re-entry while active is rejected,
// not queued.
type ExtractStatementUseCase struct {
	splitter  ports.PageSplitter
	validator ports.StatementValidator
	pages     ports.PageExtractor
	finalizer ports.CategoryFinalizer

	opts    Options
	limiter *rate.Limiter

	mu     sync.Mutex
	active bool
}

func NewExtractStatementUseCase(
	splitter ports.PageSplitter,
	validator ports.StatementValidator,
	pages ports.PageExtractor,
	finalizer ports.CategoryFinalizer,
	opts Options,
) *ExtractStatementUseCase {
	opts = opts.normalize()
	return &ExtractStatementUseCase{
		splitter:  splitter,
		validator: validator,
		pages:     pages,
		finalizer: finalizer,
		opts:      opts,
		limiter:   rate.NewLimiter(rate.Every(opts.PageDelay), 1),
	}
}

// pageFold is the accumulator threaded through the per-page fold. Pages
// are a strict sequential dependency because of the balance carry, so the
// fold shape keeps the no-parallelism invariant structurally obvious.
type pageFold struct {
	carry        *decimal.Decimal
	transactions []domain.Transaction
	results      []domain.PageResult
	security     domain.SecurityBreakdown
	successful   int
	failed       int
}

// Extract runs the full pipeline for one document.
func (uc *ExtractStatementUseCase) Extract(
	ctx context.Context,
	documentPath string,
	expected domain.ExpectedStatement,
	categories []string,
) (*domain.ExtractionResult, error) {
	if err := uc.begin(); err != nil {
		return nil, err
	}
	defer uc.finish()

	started := time.Now()
	log := uc.opts.Logger.With("document", documentPath, "bank", expected.Bank)

	// Password protection and extraction failures propagate unchanged; no
	// fallback path rewraps them.
	pages, err := uc.splitter.ExtractPages(ctx, documentPath)
	if err != nil {
		return nil, err
	}
	total := len(pages)

	uc.publish(domain.JobProgress{TotalPages: total, Status: domain.StatusValidating}, domain.SecurityBreakdown{})

	validation, err := uc.validate(ctx, expected, pages)
	if err != nil {
		uc.publish(domain.JobProgress{TotalPages: total, Status: domain.StatusFailed}, domain.SecurityBreakdown{})
		return nil, err
	}
	if !validation.IsValid {
		uc.publish(domain.JobProgress{TotalPages: total, Status: domain.StatusFailed}, domain.SecurityBreakdown{})
		return nil, fmt.Errorf("%w: %s", domain.ErrValidationMismatch, validation.Error)
	}
	log.Info("statement validated",
		"confidence", validation.Confidence,
		"detected_bank", validation.DetectedBank,
	)

	state := pageFold{
		transactions: make([]domain.Transaction, 0, total*8),
		results:      make([]domain.PageResult, 0, total),
	}
	for i, page := range pages {
		if i > 0 {
			if err := uc.limiter.Wait(ctx); err != nil {
				// Observers need a terminal status even when the job dies
				// between pages.
				uc.publish(domain.JobProgress{
					CurrentPage:     page.Number,
					TotalPages:      total,
					CompletedPages:  state.successful + state.failed,
					SuccessfulPages: state.successful,
					FailedPages:     state.failed,
					Status:          domain.StatusFailed,
				}, state.security)
				return nil, fmt.Errorf("wait between pages: %w", err)
			}
		}
		state = uc.step(ctx, state, page, total, categories, log)
		uc.publish(uc.snapshot(state, page.Number, total, started), state.security)
	}

	uc.publish(domain.JobProgress{
		CurrentPage:     total,
		TotalPages:      total,
		CompletedPages:  total,
		SuccessfulPages: state.successful,
		FailedPages:     state.failed,
		PercentComplete: 100,
		Status:          domain.StatusCategorizing,
	}, state.security)

	transactions := uc.finalizeCategories(ctx, state.transactions, categories, log)

	result := &domain.ExtractionResult{
		Transactions: transactions,
		Validation:   validation,
		PageResults:  state.results,
		Security:     state.security,
		Analytics: domain.Analytics{
			TotalPages:        total,
			SuccessfulPages:   state.successful,
			FailedPages:       state.failed,
			TotalTransactions: len(transactions),
			ProcessingTime:    time.Since(started),
		},
	}

	// Page-level failures are partial, not systemic: a job with zero
	// successful pages still completes once validation has passed.
	uc.publish(domain.JobProgress{
		CurrentPage:     total,
		TotalPages:      total,
		CompletedPages:  total,
		SuccessfulPages: state.successful,
		FailedPages:     state.failed,
		PercentComplete: 100,
		Status:          domain.StatusCompleted,
	}, state.security)

	log.Info("extraction completed",
		"pages", total,
		"successful_pages", state.successful,
		"failed_pages", state.failed,
		"transactions", len(transactions),
		"elapsed", time.Since(started),
	)
	return result, nil
}

func (uc *ExtractStatementUseCase) begin() error {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	if uc.active {
		return domain.ErrAlreadyProcessing
	}
	uc.active = true
	return nil
}

func (uc *ExtractStatementUseCase) finish() {
	uc.mu.Lock()
	uc.active = false
	uc.mu.Unlock()
}

func (uc *ExtractStatementUseCase) validate(
	ctx context.Context,
	expected domain.ExpectedStatement,
	pages []domain.PageContent,
) (domain.ValidationResult, error) {
	n := len(pages)
	if n > validationPageCount {
		n = validationPageCount
	}
	parts := make([]string, 0, n)
	for _, page := range pages[:n] {
		parts = append(parts, page.Text)
	}

	vctx, cancel := context.WithTimeout(ctx, uc.opts.ValidateTimeout)
	defer cancel()

	result, err := uc.validator.Validate(vctx, expected, strings.Join(parts, "\n"))
	if err != nil {
		return domain.ValidationResult{}, domain.WrapError(domain.ErrValidationService, "validate statement", err)
	}
	return result, nil
}

// step processes one page and returns the advanced fold state. A failed
// page records a zero-transaction result and leaves the balance carry at
// the last known-good value.
func (uc *ExtractStatementUseCase) step(
	ctx context.Context,
	state pageFold,
	page domain.PageContent,
	total int,
	categories []string,
	log *slog.Logger,
) pageFold {
	pctx, cancel := context.WithTimeout(ctx, uc.opts.PageTimeout)
	defer cancel()

	result, err := uc.pages.ProcessPage(pctx, domain.PageRequest{
		Text:            page.Text,
		Fragments:       page.Fragments,
		Number:          page.Number,
		TotalPages:      total,
		PreviousBalance: state.carry,
		Categories:      categories,
	})
	if err != nil || !result.Success {
		if err == nil {
			err = fmt.Errorf("extractor reported failure: %s", result.Notes)
		}
		log.Warn("page processing failed", "page", page.Number, "error", err)
		state.results = append(state.results, domain.PageResult{
			PageNumber: page.Number,
			TotalPages: total,
			Notes:      domain.WrapError(domain.ErrPageProcessing, "process page", err).Error(),
			Success:    false,
		})
		state.failed++
		return state
	}

	state.transactions = append(state.transactions, result.Transactions...)
	if result.PageEndingBalance != nil {
		state.carry = result.PageEndingBalance
	}
	if result.Security != nil {
		state.security.Add(*result.Security)
	}
	state.results = append(state.results, result)
	state.successful++
	return state
}

// finalizeCategories is best-effort: extraction results are never lost to
// a categorization failure.
func (uc *ExtractStatementUseCase) finalizeCategories(
	ctx context.Context,
	transactions []domain.Transaction,
	categories []string,
	log *slog.Logger,
) []domain.Transaction {
	fctx, cancel := context.WithTimeout(ctx, uc.opts.FinalizeTimeout)
	defer cancel()

	finalized, err := uc.finalizer.FinalizeCategories(fctx, transactions, categories)
	if err != nil {
		log.Warn("category finalization failed, keeping raw categories",
			"error", domain.WrapError(domain.ErrCategorization, "finalize categories", err))
		return transactions
	}
	return finalized
}

func (uc *ExtractStatementUseCase) snapshot(state pageFold, currentPage, total int, started time.Time) domain.JobProgress {
	completed := state.successful + state.failed
	progress := domain.JobProgress{
		CurrentPage:     currentPage,
		TotalPages:      total,
		CompletedPages:  completed,
		SuccessfulPages: state.successful,
		FailedPages:     state.failed,
		Status:          domain.StatusProcessing,
	}
	if total > 0 {
		progress.PercentComplete = float64(completed) / float64(total) * 100
	}
	if completed > 0 && completed < total {
		perPage := time.Since(started) / time.Duration(completed)
		progress.EstimatedRemaining = perPage * time.Duration(total-completed)
	}
	return progress
}

func (uc *ExtractStatementUseCase) publish(progress domain.JobProgress, security domain.SecurityBreakdown) {
	uc.opts.Progress(progress, security)
}
