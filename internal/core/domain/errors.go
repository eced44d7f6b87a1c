package domain

import (
	"errors"
	"fmt"
)

// Sentinel error kinds for the extraction pipeline. Only document-access
// and validation-stage kinds abort a whole job; page-level and
// categorization kinds are recoverable.
var (
	// ErrPasswordProtected marks an access-protected source document. It is
	// fatal and must propagate unchanged through any fallback path.
	ErrPasswordProtected = errors.New("document is password protected")

	// ErrExtractionFailed marks a document that could not be split into pages.
	ErrExtractionFailed = errors.New("page extraction failed")

	// ErrValidationMismatch marks a document whose detected identity does not
	// match the expected bank, month or year. Fatal to the job; not retried.
	ErrValidationMismatch = errors.New("statement identity mismatch")

	// ErrValidationService marks a failure of the validation backend itself,
	// distinct from a content mismatch. Fatal to the job.
	ErrValidationService = errors.New("validation service failure")

	// ErrPageProcessing marks a single page that failed to extract. Recorded
	// per page; the job continues.
	ErrPageProcessing = errors.New("page processing failed")

	// ErrCategorization marks a failed finalization pass. The job completes
	// with un-finalized categories.
	ErrCategorization = errors.New("category finalization failed")

	// ErrAlreadyProcessing rejects a second job started while one is active.
	ErrAlreadyProcessing = errors.New("extraction already processing")

	// ErrTemporary marks an infrastructure failure that is worth retrying:
	// adapters wrap retryable backend errors (rate limits, broken
	// connections) with it so callers can tell them apart from semantic
	// failures. The worker gives jobs carrying it one extra attempt.
	ErrTemporary = errors.New("temporary failure")
)

// WrapError preserves typed semantic errors with operation context.
func WrapError(kind error, operation string, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w: %w", operation, kind, err)
}

func IsKind(err error, kind error) bool {
	return errors.Is(err, kind)
}
