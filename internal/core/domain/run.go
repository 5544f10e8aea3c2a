package domain

import "time"

// Run is one pipeline invocation as kept in the run history.
type Run struct {
	// ID uniquely identifies the run.
	ID string

	// Mode is the extraction mode the run was started with.
	Mode Mode

	// StartedAt and FinishedAt bound the run.
	StartedAt  time.Time
	FinishedAt time.Time

	// Summary is the aggregate outcome.
	Summary RunSummary

	// Stats carries aggregate statistics over successful records.
	Stats RunStats
}
