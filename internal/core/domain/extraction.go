package domain

// Mode selects how much of a document the extractor reads.
type Mode int

const (
	// ModeQuick reads a bounded page prefix for fast preview.
	ModeQuick Mode = iota

	// ModeFull reads the entire document, subject to the hard page and
	// text-length ceilings.
	ModeFull
)

// String returns a human-readable mode name.
func (m Mode) String() string {
	if m == ModeQuick {
		return "quick"
	}
	return "full"
}

// ParseMode is the inverse of String. Anything other than "quick"
// yields ModeFull.
func ParseMode(s string) Mode {
	if s == "quick" {
		return ModeQuick
	}
	return ModeFull
}

// Strategy identifies which extraction strategy produced the text.
type Strategy string

const (
	// StrategyFast is the page-rendering-based quick pull.
	StrategyFast Strategy = "FAST"

	// StrategyAccurate is the layout-aware extraction.
	StrategyAccurate Strategy = "ACCURATE"

	// StrategyFallback is the secondary, simpler text-stream decoder.
	StrategyFallback Strategy = "FALLBACK"

	// StrategyNone means no strategy produced text.
	StrategyNone Strategy = ""
)

// ExtractionResult is the output of the extraction strategy chain.
type ExtractionResult struct {
	// Text is the extracted text. Empty only if every strategy failed.
	Text string

	// PageCount is the number of pages in the document, read from the
	// page directory independently of which strategy supplied the text.
	PageCount int

	// StrategyUsed identifies the winning strategy.
	StrategyUsed Strategy

	// Truncated is true iff extraction stopped before the last page
	// (quick mode page bound or the text-length ceiling).
	Truncated bool
}
