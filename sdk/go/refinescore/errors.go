// Package refinescore provides a Go client for the Text Refine Score Engine API.
package refinescore

import (
	"errors"
	"fmt"
	"time"
)

// Error represents an error from the scoring API with the HTTP status code
// and the server's error message.
type Error struct {
	StatusCode int
	Code       string
	Message    string

	// RequestID is the server-assigned correlation ID, when present.
	// Quote it when reporting a problem.
	RequestID string

	// RetryAfter is how long to wait before retrying, parsed from the
	// Retry-After header of rate limited responses. Zero when absent.
	RetryAfter time.Duration
}

func (e *Error) Error() string {
	return fmt.Sprintf("refinescore: %s (%d): %s", e.Code, e.StatusCode, e.Message)
}

// IsInvalidInput returns true if the error is a 400: malformed request,
// text below the 20-word minimum, or an unknown audience tag.
func IsInvalidInput(err error) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.StatusCode == 400
	}
	return false
}

// IsNotFound returns true if the error is a 404.
func IsNotFound(err error) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.StatusCode == 404
	}
	return false
}

// IsUpstreamTimeout returns true if the error is a 408. The grammar engine
// timed out; the same request is worth retrying.
func IsUpstreamTimeout(err error) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.StatusCode == 408
	}
	return false
}

// IsRateLimited returns true if the error is a 429 (Too Many Requests).
// Check Error.RetryAfter for the wait the server suggested.
func IsRateLimited(err error) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.StatusCode == 429
	}
	return false
}
