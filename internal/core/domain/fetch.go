package domain

import "time"

// FetchResult describes a file materialised on local disk by the fetcher.
// It is owned by the fetcher until handed to the extractor and is
// immutable thereafter. The temp file behind LocalPath is removed only
// after the orchestrator has persisted artifacts for the item or marked
// it permanently failed.
type FetchResult struct {
	// LocalPath is where the bytes live on disk.
	LocalPath string

	// ByteSize is the size of the fetched file in bytes.
	ByteSize int64

	// OriginURL is the remote URL the file came from. Empty for local refs.
	OriginURL string

	// RetrievedAt is when the fetch completed.
	RetrievedAt time.Time

	// Temporary reports whether LocalPath is a pipeline-owned temp file
	// that should be removed once the item is finished. Local refs are
	// processed in place and are never temporary.
	Temporary bool
}
