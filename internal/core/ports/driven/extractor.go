package driven

import (
	"context"

	"github.com/custodia-labs/docfeed-cli/internal/core/domain"
)

// Extractor converts a PDF on disk into text.
// Returns domain.ErrUnreadablePDF only when every strategy in the chain
// failed or yielded empty text.
type Extractor interface {
	Extract(ctx context.Context, path string, mode domain.Mode) (*domain.ExtractionResult, error)

	// PageCount reads the page count from the document's page directory,
	// independently of text extraction.
	PageCount(path string) (int, error)
}

// ExtractionStrategy is one step in the extractor's ordered chain.
// Strategies are tried in order; the first to produce non-trivial text
// wins. A strategy error is swallowed as a degraded attempt, never
// propagated until the whole chain is exhausted.
type ExtractionStrategy interface {
	// Name identifies the strategy in results and logs.
	Name() domain.Strategy

	// Extract pulls text from at most maxPages pages.
	// maxPages <= 0 means all pages.
	Extract(ctx context.Context, path string, maxPages int) (string, error)
}

// Classifier inspects extracted text and classifies its writing system.
// Classification never fails; empty input yields the EMPTY status.
type Classifier interface {
	Classify(text string) domain.ScriptVerdict
}
