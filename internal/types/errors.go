package types

import (
	"errors"
	"fmt"
)

// Sentinel errors for common failure modes.
var (
	ErrAttemptsExhausted = errors.New("fetch attempts exhausted")
	ErrNoProductURL      = errors.New("product URL not found")
	ErrEmptyDocument     = errors.New("empty document")
)

// FetchError wraps errors that occur while retrieving a page.
type FetchError struct {
	URL       string
	Attempt   int
	Err       error
	Retryable bool
}

func (e *FetchError) Error() string {
	if e.Attempt > 0 {
		return fmt.Sprintf("fetch error for %s (attempt %d): %v", e.URL, e.Attempt, e.Err)
	}
	return fmt.Sprintf("fetch error for %s: %v", e.URL, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

func (e *FetchError) IsRetryable() bool { return e.Retryable }

// ParseError wraps errors that occur during extraction.
type ParseError struct {
	URL      string
	Selector string
	Err      error
}

func (e *ParseError) Error() string {
	if e.Selector != "" {
		return fmt.Sprintf("parse error for %s (selector=%q): %v", e.URL, e.Selector, e.Err)
	}
	return fmt.Sprintf("parse error for %s: %v", e.URL, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// StorageError wraps errors that occur during export.
type StorageError struct {
	Backend string
	Err     error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage error (%s): %v", e.Backend, e.Err)
}

func (e *StorageError) Unwrap() error { return e.Err }
