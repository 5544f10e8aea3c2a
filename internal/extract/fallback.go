package extract

import (
	"context"
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"

	"github.com/custodia-labs/docfeed-cli/internal/core/domain"
	"github.com/custodia-labs/docfeed-cli/internal/core/ports/driven"
)

// Ensure FallbackStrategy implements the interface.
var _ driven.ExtractionStrategy = (*FallbackStrategy)(nil)

// FallbackStrategy decodes the raw text stream in content order, with no
// layout reconstruction. It is the last resort: crude reading order, but
// it copes with documents whose page geometry confuses the other two.
type FallbackStrategy struct{}

// NewFallback creates the plain stream-order strategy.
func NewFallback() *FallbackStrategy {
	return &FallbackStrategy{}
}

// Name identifies the strategy.
func (s *FallbackStrategy) Name() domain.Strategy {
	return domain.StrategyFallback
}

// Extract reads text from at most maxPages pages (<= 0 means all).
func (s *FallbackStrategy) Extract(ctx context.Context, path string, maxPages int) (string, error) {
	f, r, err := pdf.Open(path)
	if err != nil {
		return "", fmt.Errorf("open pdf: %w", err)
	}
	defer f.Close()

	pages := r.NumPage()
	if maxPages > 0 && pages > maxPages {
		pages = maxPages
	}

	fonts := make(map[string]*pdf.Font)

	var b strings.Builder
	for i := 1; i <= pages; i++ {
		if err := ctx.Err(); err != nil {
			return "", err
		}

		page := r.Page(i)
		if page.V.IsNull() {
			continue
		}

		pageText, err := page.GetPlainText(fonts)
		if err != nil {
			continue
		}
		pageText = strings.TrimSpace(pageText)
		if pageText == "" {
			continue
		}

		if b.Len() > 0 {
			b.WriteString("\n\n")
		}
		b.WriteString(pageText)
	}

	return b.String(), nil
}
