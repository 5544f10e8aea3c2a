package driving

import (
	"context"

	"github.com/custodia-labs/docfeed-cli/internal/core/domain"
)

// PipelineRunner sequences fetch, extraction, classification and
// persistence over a batch of source refs.
type PipelineRunner interface {
	// Run processes the refs in order and returns the aggregate summary.
	// A failure in one item never aborts the batch; failed items are
	// recorded in the summary with their error kind.
	Run(ctx context.Context, refs []domain.SourceRef, mode domain.Mode) (*domain.RunSummary, error)

	// Status returns progress for the run in flight, if any.
	Status(ctx context.Context) (*RunStatus, error)
}

// RunStatus is a point-in-time view of pipeline progress.
type RunStatus struct {
	// Running is true while a run is in flight.
	Running bool

	// Processed is the number of items finished so far.
	Processed int

	// ErrorCount is the number of items that failed so far.
	ErrorCount int
}
