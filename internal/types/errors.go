package types

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// Sentinel errors for common failure modes.
var (
	ErrInvalidIdentifier = errors.New("no recognizable video or channel identifier")
	ErrRetriesExhausted  = errors.New("max retries exceeded")
	ErrEmptyResponse     = errors.New("empty response body")
	ErrInvalidURL        = errors.New("invalid URL")
	ErrNoProxyAvailable  = errors.New("no proxy available")
)

// FetchError wraps errors that occur while fetching a target.
type FetchError struct {
	URL        string
	StatusCode int
	Err        error
	Retryable  bool
	RetryAfter time.Duration // populated from Retry-After header on HTTP 429
}

func (e *FetchError) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("fetch error for %s (status %d): %v", e.URL, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("fetch error for %s: %v", e.URL, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

func (e *FetchError) IsRetryable() bool { return e.Retryable }

// IsRateLimited reports whether the error is an HTTP 429 observation.
func (e *FetchError) IsRateLimited() bool { return e.StatusCode == 429 }

// IsBotDetected reports whether the error is an HTTP 403 block.
func (e *FetchError) IsBotDetected() bool { return e.StatusCode == 403 }

// ParseError wraps errors from interpreting a successful response body.
type ParseError struct {
	URL  string
	Kind string // channel, video, video_entries, playlists, comments
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse error for %s (kind=%q): %v", e.URL, e.Kind, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// NoCandidateError reports that every candidate shape for a logical target
// failed, keeping the per-shape errors for diagnostics.
type NoCandidateError struct {
	Shapes []string
	Errs   []error
}

func (e *NoCandidateError) Error() string {
	parts := make([]string, 0, len(e.Errs))
	for i, err := range e.Errs {
		parts = append(parts, fmt.Sprintf("%s: %v", e.Shapes[i], err))
	}
	return fmt.Sprintf("all %d candidate shapes failed: %s", len(e.Shapes), strings.Join(parts, "; "))
}

func (e *NoCandidateError) Unwrap() []error { return e.Errs }

// StorageError wraps errors that occur during export.
type StorageError struct {
	Backend string
	Op      string
	Err     error
}

func (e *StorageError) Error() string {
	if e.Op != "" {
		return fmt.Sprintf("storage error (%s %s): %v", e.Backend, e.Op, e.Err)
	}
	return fmt.Sprintf("storage error (%s): %v", e.Backend, e.Err)
}

func (e *StorageError) Unwrap() error { return e.Err }
