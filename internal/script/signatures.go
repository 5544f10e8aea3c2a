package script

import "strings"

// Signature describes one legacy 8-bit font family. Legacy fonts remap
// Sinhala glyphs onto ordinary Latin code points, so extracted text is
// garbled Latin with recognisable marker characters and substrings.
//
// Signatures are data, not logic: new font families can be added from
// configuration without code changes.
type Signature struct {
	// Name identifies the font family (for logs and config).
	Name string

	// Marker is a character the font table overloads heavily.
	// Zero means no marker check.
	Marker rune

	// MarkerRatio is the fraction of total characters above which the
	// marker alone indicates the font.
	MarkerRatio float64

	// Patterns are garbled substrings characteristic of the font table.
	Patterns []string

	// MinPatternHits is how many distinct patterns must appear before
	// the signature matches on patterns alone.
	MinPatternHits int
}

// Matches reports whether the text fits this signature.
// total is the number of counted (non-whitespace) characters.
func (s Signature) Matches(text string, total int) bool {
	if total == 0 {
		return false
	}

	if s.Marker != 0 && s.MarkerRatio > 0 {
		ratio := float64(strings.Count(text, string(s.Marker))) / float64(total)
		if ratio > s.MarkerRatio {
			return true
		}
	}

	if s.MinPatternHits > 0 {
		hits := 0
		for _, p := range s.Patterns {
			if strings.Contains(text, p) {
				hits++
			}
		}
		if hits >= s.MinPatternHits {
			return true
		}
	}

	return false
}

// DefaultSignatures returns the built-in legacy font signature table.
// Currently covers the FM family (FM Abhaya and friends), whose table
// maps the Sinhala al-lakuna onto the semicolon and produces the listed
// letter clusters for common words.
func DefaultSignatures() []Signature {
	return []Signature{
		{
			Name:        "fm",
			Marker:      ';',
			MarkerRatio: 0.03,
			Patterns: []string{
				";a", ";s", ";j", ";d", ";l", ";k",
				"WIaK", "fld", "fjk",
			},
			MinPatternHits: 3,
		},
	}
}
