package services

import (
	"path/filepath"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/custodia-labs/docfeed-cli/internal/core/domain"
)

// Assembler builds document records out of the pipeline stage outputs.
type Assembler struct {
	// now is swapped in tests.
	now func() time.Time
}

// NewAssembler creates an Assembler.
func NewAssembler() *Assembler {
	return &Assembler{now: time.Now}
}

// Assemble builds the record for a document that made it through
// extraction and classification. The record status follows the verdict:
// a VALID_* status is OK, anything else (EMPTY, LEGACY_FONT, UNKNOWN)
// is PARTIAL because the artifacts exist but the text is not usable.
func (a *Assembler) Assemble(
	ref domain.SourceRef,
	fetched *domain.FetchResult,
	extraction *domain.ExtractionResult,
	verdict domain.ScriptVerdict,
) *domain.DocumentRecord {
	status := domain.StatusPartial
	if verdict.Status.Valid() {
		status = domain.StatusOK
	}

	return &domain.DocumentRecord{
		ID:                 uuid.New().String(),
		FileName:           filepath.Base(fetched.LocalPath),
		SourceURL:          fetched.OriginURL,
		ByteSize:           fetched.ByteSize,
		PageCount:          extraction.PageCount,
		HasSinhala:         verdict.HasSinhala,
		HasTamil:           verdict.HasTamil,
		HasLatin:           verdict.HasLatin,
		LegacyFont:         verdict.LegacyFontDetected,
		UnicodeStatus:      verdict.Status,
		ExtractionStrategy: extraction.StrategyUsed,
		TextLength:         utf8.RuneCountInString(extraction.Text),
		ProcessedAt:        a.now(),
		Status:             status,
	}
}

// Failed builds the record for a document that failed before
// classification. Fields from stages that never ran stay at their zero
// values; the error message carries the failure cause.
func (a *Assembler) Failed(ref domain.SourceRef, err error) *domain.DocumentRecord {
	return &domain.DocumentRecord{
		ID:            uuid.New().String(),
		FileName:      fileNameFor(ref),
		SourceURL:     ref.URL,
		UnicodeStatus: domain.StatusUnknown,
		ProcessedAt:   a.now(),
		Status:        domain.StatusFailed,
		Error:         err.Error(),
	}
}

// fileNameFor picks the best available file name for a ref that may
// never have been fetched.
func fileNameFor(ref domain.SourceRef) string {
	if ref.Name != "" {
		return ref.Name
	}
	if ref.Kind == domain.SourceLocal {
		return filepath.Base(ref.Path)
	}
	return ref.URL
}

// Stem returns the artifact base name for a file: the name with its
// extension removed.
func Stem(fileName string) string {
	return strings.TrimSuffix(fileName, filepath.Ext(fileName))
}
