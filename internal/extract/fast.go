package extract

import (
	"context"
	"fmt"
	"strings"

	fitz "github.com/gen2brain/go-fitz"

	"github.com/custodia-labs/docfeed-cli/internal/core/domain"
	"github.com/custodia-labs/docfeed-cli/internal/core/ports/driven"
)

// Ensure FastStrategy implements the interface.
var _ driven.ExtractionStrategy = (*FastStrategy)(nil)

// FastStrategy pulls page text through MuPDF. It is the quickest of the
// three strategies and has good Unicode coverage, so it runs first.
type FastStrategy struct{}

// NewFast creates the MuPDF-backed strategy.
func NewFast() *FastStrategy {
	return &FastStrategy{}
}

// Name identifies the strategy.
func (s *FastStrategy) Name() domain.Strategy {
	return domain.StrategyFast
}

// Extract reads text from at most maxPages pages (<= 0 means all).
func (s *FastStrategy) Extract(ctx context.Context, path string, maxPages int) (string, error) {
	doc, err := fitz.New(path)
	if err != nil {
		return "", fmt.Errorf("open pdf: %w", err)
	}
	defer doc.Close()

	pages := doc.NumPage()
	if maxPages > 0 && pages > maxPages {
		pages = maxPages
	}

	var b strings.Builder
	for i := 0; i < pages; i++ {
		if err := ctx.Err(); err != nil {
			return "", err
		}

		text, err := doc.Text(i)
		if err != nil {
			// Skip unreadable pages; the chain judges the total yield.
			continue
		}
		if strings.TrimSpace(text) == "" {
			continue
		}

		if b.Len() > 0 {
			b.WriteString("\n\n")
		}
		b.WriteString(text)
	}

	return b.String(), nil
}
