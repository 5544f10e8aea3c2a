package driven

import (
	"context"
	"io"

	"github.com/custodia-labs/docfeed-cli/internal/core/domain"
)

// Fetcher resolves a SourceRef to bytes on local disk.
// Failures are reported through the domain sentinel errors:
// ErrOriginNotAllowed, ErrPathTraversal, ErrSizeExceeded and ErrNetwork.
type Fetcher interface {
	// Fetch materialises a single-file ref on disk. Folder refs must be
	// expanded first; passing one is an ErrInvalidInput.
	Fetch(ctx context.Context, ref domain.SourceRef) (*domain.FetchResult, error)

	// Expand turns a folder ref into a flat list of file refs.
	// Single-file and local refs pass through unchanged as a one-element
	// list. Expansion failures for individual entries are logged and
	// skipped; they do not abort sibling entries.
	Expand(ctx context.Context, ref domain.SourceRef) ([]domain.SourceRef, error)
}

// StorageClient is the remote-storage collaborator consumed by the
// fetcher. The Google Drive implementation lives in internal/fetch/drive.
type StorageClient interface {
	// Resolve lists the file refs behind a remote URL. A file URL yields
	// one ref; a folder URL yields one ref per contained file.
	Resolve(ctx context.Context, url string) ([]domain.SourceRef, error)

	// Stat returns the file name and size for a remote file ref without
	// downloading its content.
	Stat(ctx context.Context, ref domain.SourceRef) (name string, size int64, err error)

	// Download streams a remote file into w, writing at most maxBytes.
	// Returns domain.ErrSizeExceeded the instant the ceiling is crossed;
	// bytes already written must be discarded by the caller.
	Download(ctx context.Context, ref domain.SourceRef, w io.Writer, maxBytes int64) (int64, error)
}
