package extract

import (
	"context"
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"

	"github.com/custodia-labs/docfeed-cli/internal/core/domain"
	"github.com/custodia-labs/docfeed-cli/internal/core/ports/driven"
)

// Ensure AccurateStrategy implements the interface.
var _ driven.ExtractionStrategy = (*AccurateStrategy)(nil)

// AccurateStrategy reads text row by row using the page layout, which
// keeps reading order intact on multi-column exam papers where the raw
// content stream interleaves columns.
type AccurateStrategy struct{}

// NewAccurate creates the layout-aware strategy.
func NewAccurate() *AccurateStrategy {
	return &AccurateStrategy{}
}

// Name identifies the strategy.
func (s *AccurateStrategy) Name() domain.Strategy {
	return domain.StrategyAccurate
}

// Extract reads text from at most maxPages pages (<= 0 means all).
func (s *AccurateStrategy) Extract(ctx context.Context, path string, maxPages int) (string, error) {
	f, r, err := pdf.Open(path)
	if err != nil {
		return "", fmt.Errorf("open pdf: %w", err)
	}
	defer f.Close()

	pages := r.NumPage()
	if maxPages > 0 && pages > maxPages {
		pages = maxPages
	}

	var b strings.Builder
	for i := 1; i <= pages; i++ {
		if err := ctx.Err(); err != nil {
			return "", err
		}

		page := r.Page(i)
		if page.V.IsNull() {
			continue
		}

		pageText, err := rowText(page)
		if err != nil || pageText == "" {
			continue
		}

		if b.Len() > 0 {
			b.WriteString("\n\n")
		}
		b.WriteString(pageText)
	}

	return b.String(), nil
}

// rowText assembles a page's text from its layout rows, top to bottom.
func rowText(page pdf.Page) (string, error) {
	rows, err := page.GetTextByRow()
	if err != nil {
		return "", err
	}

	var b strings.Builder
	for _, row := range rows {
		var line strings.Builder
		for _, word := range row.Content {
			line.WriteString(word.S)
		}

		text := strings.TrimSpace(line.String())
		if text == "" {
			continue
		}
		if b.Len() > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(text)
	}

	return b.String(), nil
}
