// Package script classifies extracted text by writing system.
//
// The classifier scans text as a sequence of Unicode code points and
// keeps counters for the Sinhala range (U+0D80..U+0DFF), the Tamil
// range (U+0B80..U+0BFF) and Latin letters. Thresholds are fractions of
// the total character count, not absolute counts, so classification is
// stable across document length. A separate legacy-font check compares
// the text against known 8-bit font signatures; a match always
// overrides apparent validity, because legacy text can coincidentally
// contain valid-range code points while remaining unusable.
package script

import (
	"unicode"

	"github.com/custodia-labs/docfeed-cli/internal/core/domain"
	"github.com/custodia-labs/docfeed-cli/internal/core/ports/driven"
)

// Unicode block bounds for the supported scripts.
const (
	sinhalaLo = 0x0D80
	sinhalaHi = 0x0DFF
	tamilLo   = 0x0B80
	tamilHi   = 0x0BFF
)

// Default thresholds.
const (
	// DefaultScriptThreshold is the fraction of counted characters a
	// script must reach to register as present.
	DefaultScriptThreshold = 0.02

	// DefaultMinTextLength is the minimum rune count below which the
	// legacy-font check is skipped; tiny samples match by accident.
	DefaultMinTextLength = 20
)

// Ensure Classifier implements the interface.
var _ driven.Classifier = (*Classifier)(nil)

// Config holds classifier tuning. Zero values select the defaults.
type Config struct {
	// ScriptThreshold is the presence threshold as a fraction of the
	// total counted characters.
	ScriptThreshold float64

	// MinTextLength is the minimum text length for legacy detection.
	MinTextLength int

	// Signatures is the legacy font signature table.
	// Nil selects DefaultSignatures.
	Signatures []Signature
}

// Classifier classifies text samples. Classification never fails.
type Classifier struct {
	threshold  float64
	minLength  int
	signatures []Signature
}

// New creates a classifier with the given configuration.
func New(cfg Config) *Classifier {
	c := &Classifier{
		threshold:  cfg.ScriptThreshold,
		minLength:  cfg.MinTextLength,
		signatures: cfg.Signatures,
	}
	if c.threshold <= 0 {
		c.threshold = DefaultScriptThreshold
	}
	if c.minLength <= 0 {
		c.minLength = DefaultMinTextLength
	}
	if c.signatures == nil {
		c.signatures = DefaultSignatures()
	}
	return c
}

// Classify inspects text and returns a script verdict.
// Empty or all-whitespace input yields StatusEmpty.
func (c *Classifier) Classify(text string) domain.ScriptVerdict {
	var total, sinhala, tamil, latin, runes int

	for _, r := range text {
		runes++
		if unicode.IsSpace(r) {
			continue
		}
		total++
		switch {
		case r >= sinhalaLo && r <= sinhalaHi:
			sinhala++
		case r >= tamilLo && r <= tamilHi:
			tamil++
		case r < unicode.MaxASCII && unicode.IsLetter(r):
			latin++
		}
	}

	if total == 0 {
		return domain.ScriptVerdict{Status: domain.StatusEmpty}
	}

	verdict := domain.ScriptVerdict{
		HasSinhala: c.present(sinhala, total),
		HasTamil:   c.present(tamil, total),
		HasLatin:   c.present(latin, total),
	}

	if runes >= c.minLength {
		for _, sig := range c.signatures {
			if sig.Matches(text, total) {
				verdict.LegacyFontDetected = true
				break
			}
		}
	}

	verdict.Status = c.status(verdict)
	return verdict
}

// present applies the fraction threshold to one counter.
func (c *Classifier) present(count, total int) bool {
	return float64(count)/float64(total) >= c.threshold
}

// status derives the overall status. Legacy detection wins over any
// apparent valid-Unicode presence.
func (c *Classifier) status(v domain.ScriptVerdict) domain.ScriptStatus {
	if v.LegacyFontDetected {
		return domain.StatusLegacyFont
	}

	switch {
	case v.HasSinhala && v.HasTamil:
		return domain.StatusValidMixed
	case v.HasSinhala:
		return domain.StatusValidSinhala
	case v.HasTamil:
		return domain.StatusValidTamil
	case v.HasLatin:
		return domain.StatusValidEnglish
	default:
		return domain.StatusUnknown
	}
}
