package ai

import (
	"errors"
	"fmt"
)

// ErrInvalidInput marks a request rejected before any provider call.
var ErrInvalidInput = errors.New("ai: invalid input")

// QuotaError reports exhausted monthly credits, with the counters the client
// needs to display.
type QuotaError struct {
	Used  int64
	Limit int64
}

// Error implements error.
func (e *QuotaError) Error() string {
	return fmt.Sprintf("ai: quota exhausted (%d/%d)", e.Used, e.Limit)
}

// ProviderError reports a failed or timed-out provider call.
type ProviderError struct {
	StatusCode int
	Timeout    bool
	Err        error
}

// Error implements error.
func (e *ProviderError) Error() string {
	if e.Timeout {
		return "ai: provider timeout"
	}
	if e.StatusCode != 0 {
		return fmt.Sprintf("ai: provider error (status %d)", e.StatusCode)
	}
	return fmt.Sprintf("ai: provider error: %v", e.Err)
}

// Unwrap exposes the underlying error.
func (e *ProviderError) Unwrap() error {
	return e.Err
}
