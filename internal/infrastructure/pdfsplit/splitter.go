// Package pdfsplit turns a PDF document into per-page content: positioned
// text fragments plus the plain text assembled from them. It performs no
// OCR; scanned image statements yield empty pages.
package pdfsplit

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"

	"github.com/finparse/statement-extractor/internal/core/domain"
)

type Splitter struct{}

func New() *Splitter {
	return &Splitter{}
}

// ExtractPages reads every page of the document at path. An encrypted
// document surfaces domain.ErrPasswordProtected; anything else that stops
// the read surfaces domain.ErrExtractionFailed.
func (s *Splitter) ExtractPages(ctx context.Context, documentPath string) ([]domain.PageContent, error) {
	f, reader, err := pdf.Open(documentPath)
	if err != nil {
		if isEncrypted(err) {
			return nil, domain.WrapError(domain.ErrPasswordProtected, "open document", err)
		}
		return nil, domain.WrapError(domain.ErrExtractionFailed, "open document", err)
	}
	defer f.Close()

	total := reader.NumPage()
	pages := make([]domain.PageContent, 0, total)
	for i := 1; i <= total; i++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		fragments, err := pageFragments(reader.Page(i))
		if err != nil {
			return nil, domain.WrapError(domain.ErrExtractionFailed, fmt.Sprintf("read page %d", i), err)
		}
		pages = append(pages, domain.PageContent{
			Number:    i,
			Text:      AssembleText(fragments),
			Fragments: fragments,
		})
	}
	return pages, nil
}

func isEncrypted(err error) bool {
	return errors.Is(err, pdf.ErrInvalidPassword) ||
		strings.Contains(strings.ToLower(err.Error()), "encrypted")
}

// pageFragments reads one page's text-showing operations and coalesces
// them into word-level fragments. The pdf library panics on malformed
// content streams, hence the recover.
func pageFragments(page pdf.Page) (fragments []domain.PositionedFragment, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("malformed content stream: %v", r)
		}
	}()

	if page.V.IsNull() {
		return nil, nil
	}
	return Coalesce(page.Content().Text), nil
}
