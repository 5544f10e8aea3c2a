package domain

import "time"

// RecordStatus is the per-document pipeline outcome.
type RecordStatus string

const (
	// StatusOK means extraction succeeded and classification produced a
	// VALID_* verdict.
	StatusOK RecordStatus = "OK"

	// StatusPartial means extraction succeeded but the text is not
	// usable valid Unicode (UNKNOWN, EMPTY or LEGACY_FONT verdicts).
	StatusPartial RecordStatus = "PARTIAL"

	// StatusFailed means an upstream stage failed; the record exists
	// only to capture the error for the run summary.
	StatusFailed RecordStatus = "FAILED"
)

// DocumentRecord is the persisted metadata unit for one processed
// document. Written once per item and never mutated after persistence;
// reprocessing creates a new record.
//
// The JSON shape is the filesystem contract read by the downstream
// retrieval pipeline.
type DocumentRecord struct {
	// ID uniquely identifies this record.
	ID string `json:"-"`

	// FileName is the sanitised source file name.
	FileName string `json:"file_name"`

	// SourceURL is the remote origin, when the item was fetched.
	SourceURL string `json:"source_url,omitempty"`

	// ByteSize is the size of the source file in bytes.
	ByteSize int64 `json:"byte_size"`

	// PageCount is the number of pages in the document.
	PageCount int `json:"page_count"`

	// HasSinhala, HasTamil and HasLatin mirror the script verdict.
	HasSinhala bool `json:"has_sinhala"`
	HasTamil   bool `json:"has_tamil"`
	HasLatin   bool `json:"has_latin"`

	// LegacyFont is true when a legacy 8-bit font signature was detected.
	LegacyFont bool `json:"legacy_font"`

	// UnicodeStatus is the script classification outcome.
	UnicodeStatus ScriptStatus `json:"unicode_status"`

	// ExtractionStrategy identifies which strategy supplied the text.
	ExtractionStrategy Strategy `json:"extraction_strategy"`

	// TextLength is the length of the extracted text in runes.
	TextLength int `json:"text_length"`

	// ProcessedAt is when the record was assembled, ISO-8601.
	ProcessedAt time.Time `json:"processed_at"`

	// Status is the pipeline outcome for this document.
	Status RecordStatus `json:"status"`

	// Error carries the failure kind and message. Present only when
	// Status is FAILED.
	Error string `json:"error,omitempty"`
}

// FileSummary is one entry in the run summary's per-file list.
type FileSummary struct {
	FileName string       `json:"file_name"`
	Status   RecordStatus `json:"status"`
}

// RunSummary aggregates one pipeline invocation. Owned by the
// orchestrator for the lifetime of the run and written once at the end.
// Files keeps the original input order regardless of completion order.
type RunSummary struct {
	Total   int           `json:"total"`
	OK      int           `json:"ok"`
	Partial int           `json:"partial"`
	Failed  int           `json:"failed"`
	Files   []FileSummary `json:"files"`
}

// Add counts a record into the summary and appends its file entry.
func (s *RunSummary) Add(rec *DocumentRecord) {
	s.Total++
	switch rec.Status {
	case StatusOK:
		s.OK++
	case StatusPartial:
		s.Partial++
	case StatusFailed:
		s.Failed++
	}
	s.Files = append(s.Files, FileSummary{FileName: rec.FileName, Status: rec.Status})
}

// RunStats carries per-run aggregate statistics kept in the run history.
type RunStats struct {
	TotalPages  int `json:"total_pages"`
	TotalChars  int `json:"total_chars"`
	WithSinhala int `json:"with_sinhala"`
	WithTamil   int `json:"with_tamil"`
	LegacyFonts int `json:"legacy_fonts"`
}
