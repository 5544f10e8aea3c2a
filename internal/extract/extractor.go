// Package extract converts PDFs into text through an ordered chain of
// extraction strategies: FAST (MuPDF page pull), ACCURATE (layout-aware
// rows) and FALLBACK (raw stream order). The first strategy to produce
// satisfactory text wins; strategy failures are swallowed as degraded
// attempts until the whole chain is exhausted.
package extract

import (
	"context"
	"fmt"
	"strings"

	"github.com/pdfcpu/pdfcpu/pkg/api"

	"github.com/custodia-labs/docfeed-cli/internal/core/domain"
	"github.com/custodia-labs/docfeed-cli/internal/core/ports/driven"
	"github.com/custodia-labs/docfeed-cli/internal/logger"
)

// Defaults for the chain configuration.
const (
	// DefaultQuickPages is the page prefix read in quick mode.
	DefaultQuickPages = 3

	// DefaultMaxPages is the hard page cap in full mode.
	DefaultMaxPages = 1000

	// DefaultMaxTextLength is the extracted-text rune ceiling.
	DefaultMaxTextLength = 500_000

	// DefaultMinTextLength is the non-trivial text threshold: a strategy
	// result at or below this many non-whitespace runes does not count.
	DefaultMinTextLength = 10

	// DefaultMinCharsPerPage flags suspiciously short results: text
	// shorter than this per page sends the chain on to the next strategy.
	DefaultMinCharsPerPage = 10
)

// Config holds extractor tuning. Zero values select the defaults.
type Config struct {
	QuickPages      int
	MaxPages        int
	MaxTextLength   int
	MinTextLength   int
	MinCharsPerPage int
}

// Ensure Chain implements the interface.
var _ driven.Extractor = (*Chain)(nil)

// Chain runs the ordered strategy list over a document.
type Chain struct {
	cfg        Config
	strategies []driven.ExtractionStrategy

	// pageCounter reads the page directory; swappable for tests.
	pageCounter func(path string) (int, error)
}

// NewChain creates an extractor with the given strategies.
// With no strategies it uses the standard FAST, ACCURATE, FALLBACK order.
func NewChain(cfg Config, strategies ...driven.ExtractionStrategy) *Chain {
	if cfg.QuickPages <= 0 {
		cfg.QuickPages = DefaultQuickPages
	}
	if cfg.MaxPages <= 0 {
		cfg.MaxPages = DefaultMaxPages
	}
	if cfg.MaxTextLength <= 0 {
		cfg.MaxTextLength = DefaultMaxTextLength
	}
	if cfg.MinTextLength <= 0 {
		cfg.MinTextLength = DefaultMinTextLength
	}
	if cfg.MinCharsPerPage <= 0 {
		cfg.MinCharsPerPage = DefaultMinCharsPerPage
	}
	if len(strategies) == 0 {
		strategies = []driven.ExtractionStrategy{NewFast(), NewAccurate(), NewFallback()}
	}
	return &Chain{cfg: cfg, strategies: strategies, pageCounter: api.PageCountFile}
}

// PageCount reads the page count from the document's page directory.
func (c *Chain) PageCount(path string) (int, error) {
	n, err := c.pageCounter(path)
	if err != nil {
		return 0, fmt.Errorf("page count: %w", err)
	}
	return n, nil
}

// Extract runs the strategy chain and returns the best result.
// Returns domain.ErrUnreadablePDF only when every strategy errors or
// yields trivial text.
func (c *Chain) Extract(ctx context.Context, path string, mode domain.Mode) (*domain.ExtractionResult, error) {
	pageCount, err := c.PageCount(path)
	if err != nil {
		// The page directory being unreadable does not mean the text is;
		// carry on with an unknown page count.
		logger.Warn("Page count unavailable for %s: %v", path, err)
		pageCount = 0
	}

	quick := mode == domain.ModeQuick
	maxPages := c.cfg.MaxPages
	if quick {
		maxPages = c.cfg.QuickPages
	}

	var bestText string
	var bestStrategy domain.Strategy

	for _, strategy := range c.strategies {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		text, err := strategy.Extract(ctx, path, maxPages)
		if err != nil {
			logger.Debug("Strategy %s degraded on %s: %v", strategy.Name(), path, err)
			continue
		}
		if !c.nonTrivial(text) {
			logger.Debug("Strategy %s yielded trivial text on %s", strategy.Name(), path)
			continue
		}

		if c.satisfactory(text, pageCount, maxPages) {
			return c.result(text, pageCount, maxPages, quick, strategy.Name()), nil
		}

		// Keep the longest unsatisfactory candidate in case nothing
		// better comes out of the rest of the chain.
		if len(text) > len(bestText) {
			bestText = text
			bestStrategy = strategy.Name()
		}
	}

	if bestText != "" {
		return c.result(bestText, pageCount, maxPages, quick, bestStrategy), nil
	}

	return nil, fmt.Errorf("%w: all strategies failed for %s", domain.ErrUnreadablePDF, path)
}

// nonTrivial reports whether text is above the minimal threshold and
// not all whitespace.
func (c *Chain) nonTrivial(text string) bool {
	return len(strings.TrimSpace(text)) > c.cfg.MinTextLength
}

// satisfactory reports whether the yield is plausible for the number of
// pages actually read. Short text on a long document usually means the
// strategy silently dropped most of the content.
func (c *Chain) satisfactory(text string, pageCount, maxPages int) bool {
	pagesRead := pageCount
	if pagesRead == 0 {
		return true
	}
	if maxPages > 0 && pagesRead > maxPages {
		pagesRead = maxPages
	}
	return len([]rune(text)) >= pagesRead*c.cfg.MinCharsPerPage
}

// result assembles the extraction result, applying the text ceiling and
// the truncation flag. With an unknown page count, quick mode cannot
// prove its page bound reached the document end, so it reports
// truncated conservatively.
func (c *Chain) result(text string, pageCount, maxPages int, quick bool, used domain.Strategy) *domain.ExtractionResult {
	truncated := maxPages > 0 && (pageCount > maxPages || (quick && pageCount == 0))

	if runes := []rune(text); len(runes) > c.cfg.MaxTextLength {
		text = string(runes[:c.cfg.MaxTextLength])
		truncated = true
	}

	return &domain.ExtractionResult{
		Text:         text,
		PageCount:    pageCount,
		StrategyUsed: used,
		Truncated:    truncated,
	}
}
