package driven

import (
	"context"

	"github.com/custodia-labs/docfeed-cli/internal/core/domain"
)

// ConfigStore provides persistent key-value configuration.
type ConfigStore interface {
	// Get retrieves a value by key. Returns false if not set.
	Get(key string) (any, bool)

	// GetString retrieves a string value. Returns "" if not set.
	GetString(key string) string

	// GetInt retrieves an integer value. Returns 0 if not set.
	GetInt(key string) int

	// GetBool retrieves a boolean value. Returns false if not set.
	GetBool(key string) bool

	// GetStringSlice retrieves a string slice value. Returns nil if not set.
	GetStringSlice(key string) []string

	// Set stores a value and persists immediately.
	Set(key string, value any) error

	// Delete removes a value and persists immediately.
	Delete(key string) error

	// Load reloads configuration from the backing file.
	Load() error
}

// ArtifactStore persists the filesystem contract consumed by the
// downstream retrieval pipeline: one text file and one metadata file
// per document, plus one summary per run. Writes are atomic; a crashed
// write never leaves a half-written artifact behind.
type ArtifactStore interface {
	// WriteText persists extracted text as {stem}_text.txt, UTF-8
	// without BOM.
	WriteText(stem string, text string) error

	// WriteMetadata persists a document record as {stem}_metadata.json.
	WriteMetadata(stem string, rec *domain.DocumentRecord) error

	// WriteSummary persists the run summary as pipeline_summary.json.
	WriteSummary(summary *domain.RunSummary) error
}

// RunStore persists run history: one row per run plus one row per
// document record. Records are write-once; reprocessing a document in a
// later run inserts a new record rather than patching the old one.
type RunStore interface {
	// SaveRun persists a completed run with its summary and stats.
	SaveRun(ctx context.Context, run *domain.Run) error

	// SaveRecord persists one document record under a run.
	SaveRecord(ctx context.Context, runID string, rec *domain.DocumentRecord) error

	// GetRun retrieves a run by ID. Returns domain.ErrNotFound if absent.
	GetRun(ctx context.Context, id string) (*domain.Run, error)

	// ListRuns returns all runs, most recent first.
	ListRuns(ctx context.Context) ([]domain.Run, error)

	// ListRecords returns the records of a run in insertion order.
	ListRecords(ctx context.Context, runID string) ([]domain.DocumentRecord, error)

	// Close releases the underlying database handle.
	Close() error
}
