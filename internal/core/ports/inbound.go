package ports

import (
	"context"

	"github.com/finparse/statement-extractor/internal/core/domain"
)

// StatementExtractor is the inbound contract for running one extraction job
// end to end: split, validate, per-page extraction, category finalization.
type StatementExtractor interface {
	Extract(ctx context.Context, documentPath string, expected domain.ExpectedStatement, categories []string) (*domain.ExtractionResult, error)
}

// ProgressSink receives immutable progress snapshots after every
// orchestration step. Implementations must not retain references into the
// orchestrator's mutable state; they only ever see copies.
type ProgressSink func(progress domain.JobProgress, security domain.SecurityBreakdown)
