package drive

import (
	"errors"
	"fmt"
	"net/http"

	"google.golang.org/api/googleapi"

	"github.com/custodia-labs/docfeed-cli/internal/core/domain"
)

// Common Drive API errors.
var (
	// ErrUnauthorized indicates invalid or expired credentials.
	ErrUnauthorized = errors.New("drive: unauthorised (invalid credentials)")

	// ErrForbidden indicates insufficient permissions on the file.
	ErrForbidden = errors.New("drive: forbidden (insufficient permissions)")

	// ErrRateLimited indicates the API rate limit was exceeded.
	ErrRateLimited = errors.New("drive: rate limit exceeded")
)

// IsRateLimited returns true if the error indicates rate limiting.
func IsRateLimited(err error) bool {
	if errors.Is(err, ErrRateLimited) {
		return true
	}
	var gerr *googleapi.Error
	if errors.As(err, &gerr) {
		return gerr.Code == http.StatusTooManyRequests
	}
	return false
}

// WrapError converts a Drive API error into the taxonomy the fetcher's
// retry logic understands: auth and not-found failures are terminal,
// rate limiting and server-side failures are retryable network errors.
func WrapError(err error) error {
	if err == nil {
		return nil
	}

	var gerr *googleapi.Error
	if !errors.As(err, &gerr) {
		// Transport-level failure (DNS, reset, timeout): retryable.
		return fmt.Errorf("%w: %v", domain.ErrNetwork, err)
	}

	switch {
	case gerr.Code == http.StatusUnauthorized:
		return ErrUnauthorized
	case gerr.Code == http.StatusForbidden:
		return ErrForbidden
	case gerr.Code == http.StatusNotFound:
		return fmt.Errorf("%w: drive resource", domain.ErrNotFound)
	case gerr.Code == http.StatusTooManyRequests:
		return fmt.Errorf("%w: %w", domain.ErrNetwork, ErrRateLimited)
	case gerr.Code >= 500:
		return fmt.Errorf("%w: drive server error %d", domain.ErrNetwork, gerr.Code)
	default:
		return err
	}
}
