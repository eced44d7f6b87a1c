package main

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/finparse/statement-extractor/internal/core/domain"
	"github.com/finparse/statement-extractor/internal/observability/metrics"
)

type extractorFake struct {
	calls int
	errs  []error
}

func (f *extractorFake) Extract(_ context.Context, _ string, _ domain.ExpectedStatement, _ []string) (*domain.ExtractionResult, error) {
	f.calls++
	if f.calls <= len(f.errs) && f.errs[f.calls-1] != nil {
		return nil, f.errs[f.calls-1]
	}
	return &domain.ExtractionResult{}, nil
}

func testJob() domain.StatementJob {
	return domain.StatementJob{
		ID:           "job-1",
		DocumentPath: "/tmp/statement.pdf",
		ExpectedBank: "HDFC",
		ExpectedYear: 2025,
		EnqueuedAt:   time.Now(),
	}
}

func TestJobHandlerRetriesTemporaryFailureOnce(t *testing.T) {
	fake := &extractorFake{errs: []error{
		domain.WrapError(domain.ErrTemporary, "process page", errors.New("429")),
		nil,
	}}
	handler := jobHandler(fake, metrics.NewWorkerMetrics("test"))

	if err := handler(context.Background(), testJob()); err != nil {
		t.Fatalf("expected retry to recover, got %v", err)
	}
	if fake.calls != 2 {
		t.Fatalf("expected 2 extraction attempts, got %d", fake.calls)
	}
}

func TestJobHandlerDoesNotRetrySemanticFailures(t *testing.T) {
	mismatch := domain.WrapError(domain.ErrValidationMismatch, "validate statement", errors.New("wrong month"))
	fake := &extractorFake{errs: []error{mismatch}}
	handler := jobHandler(fake, metrics.NewWorkerMetrics("test"))

	err := handler(context.Background(), testJob())
	if !domain.IsKind(err, domain.ErrValidationMismatch) {
		t.Fatalf("expected mismatch error, got %v", err)
	}
	if fake.calls != 1 {
		t.Fatalf("expected 1 extraction attempt, got %d", fake.calls)
	}
}

func TestJobHandlerSurfacesRepeatedTemporaryFailure(t *testing.T) {
	temp := domain.WrapError(domain.ErrTemporary, "process page", errors.New("connection reset"))
	fake := &extractorFake{errs: []error{temp, temp}}
	handler := jobHandler(fake, metrics.NewWorkerMetrics("test"))

	err := handler(context.Background(), testJob())
	if !domain.IsKind(err, domain.ErrTemporary) {
		t.Fatalf("expected temporary error, got %v", err)
	}
	if fake.calls != 2 {
		t.Fatalf("expected 2 extraction attempts, got %d", fake.calls)
	}
}
