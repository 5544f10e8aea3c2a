package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// Fetch errors. None of these are retryable: retrying cannot change
	// the outcome of a validation failure.

	// ErrOriginNotAllowed indicates a URL whose origin is not on the
	// fetcher's allow-list. Rejected before any network call is made.
	ErrOriginNotAllowed = errors.New("origin not allowed")

	// ErrPathTraversal indicates a file name that would resolve outside
	// the download root after sanitisation.
	ErrPathTraversal = errors.New("path traversal detected")

	// ErrSizeExceeded indicates a download or local file crossed the
	// configured byte ceiling.
	ErrSizeExceeded = errors.New("size limit exceeded")

	// ErrNetwork indicates a transient network failure. The only fetch
	// error that is retried with backoff.
	ErrNetwork = errors.New("network error")

	// Extraction errors.

	// ErrUnreadablePDF indicates every extraction strategy failed or
	// produced empty text for a document.
	ErrUnreadablePDF = errors.New("unreadable PDF")

	// ErrNotPDF indicates the input is not a PDF file.
	ErrNotPDF = errors.New("not a PDF file")
)
