package domain

// ScriptStatus is the classification outcome for a text sample.
type ScriptStatus string

const (
	// StatusValidSinhala means genuine Sinhala Unicode text.
	StatusValidSinhala ScriptStatus = "VALID_SINHALA"

	// StatusValidTamil means genuine Tamil Unicode text.
	StatusValidTamil ScriptStatus = "VALID_TAMIL"

	// StatusValidMixed means both Sinhala and Tamil are present.
	StatusValidMixed ScriptStatus = "VALID_MIXED"

	// StatusValidEnglish means Latin text only.
	StatusValidEnglish ScriptStatus = "VALID_ENGLISH"

	// StatusLegacyFont means the text matches a legacy 8-bit font
	// signature. Such text is a compression of glyphs, not real
	// characters, and is unusable for retrieval. Always overrides any
	// apparent valid-Unicode counts.
	StatusLegacyFont ScriptStatus = "LEGACY_FONT"

	// StatusEmpty means the input text was empty.
	StatusEmpty ScriptStatus = "EMPTY"

	// StatusUnknown means no script crossed the detection threshold.
	StatusUnknown ScriptStatus = "UNKNOWN"
)

// Valid reports whether the status is one of the VALID_* outcomes.
func (s ScriptStatus) Valid() bool {
	switch s {
	case StatusValidSinhala, StatusValidTamil, StatusValidMixed, StatusValidEnglish:
		return true
	default:
		return false
	}
}

// ScriptVerdict describes which writing systems a text sample uses.
// Invariant: LegacyFontDetected and a VALID_* status are mutually
// exclusive; legacy detection forces StatusLegacyFont.
type ScriptVerdict struct {
	// HasSinhala is true when Sinhala Unicode (U+0D80..U+0DFF) crossed
	// the detection threshold.
	HasSinhala bool

	// HasTamil is true when Tamil Unicode (U+0B80..U+0BFF) crossed the
	// detection threshold.
	HasTamil bool

	// HasLatin is true when Latin letters crossed the detection threshold.
	HasLatin bool

	// LegacyFontDetected is true when the text matches a known legacy
	// 8-bit font signature.
	LegacyFontDetected bool

	// Status is the overall classification.
	Status ScriptStatus
}
