package domain

import (
	"errors"
	"fmt"
)

// ErrNotConfigured marks an optional integration without credentials.
var ErrNotConfigured = errors.New("not configured")

// ValidationError is a caller mistake and maps to 400.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// NewValidationError builds a 400-class error.
func NewValidationError(field, format string, args ...any) *ValidationError {
	return &ValidationError{Field: field, Message: fmt.Sprintf(format, args...)}
}

// GenerationError means the model answered but not in the agreed grammar.
type GenerationError struct {
	Message string
	Raw     string
}

func (e *GenerationError) Error() string {
	return e.Message
}

// UpstreamError is a non-2xx answer from a remote API.
type UpstreamError struct {
	Service    string
	StatusCode int
	Body       string
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("%s API error (%d): %s", e.Service, e.StatusCode, e.Body)
}

// Retryable reports the statuses the generation API asks callers to retry.
func (e *UpstreamError) Retryable() bool {
	return e.StatusCode == 429 || e.StatusCode == 529
}

// StatusCode extracts an upstream HTTP status, 0 when err carries none.
func StatusCode(err error) int {
	var up *UpstreamError
	if errors.As(err, &up) {
		return up.StatusCode
	}
	return 0
}
