// Package drive implements the remote-storage client for Google Drive.
//
// It covers the three operations the fetcher needs:
//   - resolving a Drive URL (file or folder) to a flat list of file refs
//   - reading a file's name and size without downloading it
//   - streaming a file's bytes under a hard size ceiling
//
// Error handling maps Google API status codes onto the domain sentinels
// (401/403/404 are terminal, 429/5xx and transport failures are
// retryable network errors), and all API calls pass through a token
// bucket rate limiter to respect Drive quotas.
package drive
