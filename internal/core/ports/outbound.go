package ports

import (
	"context"

	"github.com/finparse/statement-extractor/internal/core/domain"
)

// PageSplitter turns a source document into per-page content. An
// access-protected document surfaces domain.ErrPasswordProtected; any other
// failure surfaces domain.ErrExtractionFailed.
type PageSplitter interface {
	ExtractPages(ctx context.Context, documentPath string) ([]domain.PageContent, error)
}

// StatementValidator confirms a candidate document matches the expected
// bank, month and year before any per-page work is committed. A returned
// error means the validation backend itself failed, which is distinct from
// a content mismatch reported inside the ValidationResult.
type StatementValidator interface {
	Validate(ctx context.Context, expected domain.ExpectedStatement, firstPagesText string) (domain.ValidationResult, error)
}

// PageExtractor processes one page of statement text, carrying the prior
// page's ending balance as context.
type PageExtractor interface {
	ProcessPage(ctx context.Context, req domain.PageRequest) (domain.PageResult, error)
}

// CategoryFinalizer reconciles transaction categories against the caller's
// vocabulary once all pages are processed. Best-effort: on error the caller
// keeps the input unchanged.
type CategoryFinalizer interface {
	FinalizeCategories(ctx context.Context, transactions []domain.Transaction, categories []string) ([]domain.Transaction, error)
}

// StatementQueue publishes and consumes extraction jobs.
type StatementQueue interface {
	PublishStatementJob(ctx context.Context, job domain.StatementJob) error
	SubscribeStatementJobs(ctx context.Context, handler func(context.Context, domain.StatementJob) error) error
}
