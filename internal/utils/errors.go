package utils

import (
	"errors"
	"fmt"
)

// NotFoundError indicates a requested market identifier matched no
// normalized market. Deterministic and never retried or masked by cache.
type NotFoundError struct {
	Message string
}

// Error returns the error message string.
func (e *NotFoundError) Error() string {
	return e.Message
}

// NewNotFoundErrorf creates a NotFoundError with a formatted message.
func NewNotFoundErrorf(format string, args ...interface{}) error {
	return &NotFoundError{Message: fmt.Sprintf(format, args...)}
}

// InvalidParameterError indicates a caller-facing bound, type, or enum
// constraint violation. Non-retryable.
type InvalidParameterError struct {
	Message string
}

// Error returns the error message string.
func (e *InvalidParameterError) Error() string {
	return e.Message
}

// NewInvalidParameterErrorf creates an InvalidParameterError with a
// formatted message.
func NewInvalidParameterErrorf(format string, args ...interface{}) error {
	return &InvalidParameterError{Message: fmt.Sprintf(format, args...)}
}

// UpstreamError indicates the market data source call failed or returned
// malformed data. Eligible for stale-serving by the resilient cache.
type UpstreamError struct {
	Message string
	Cause   error
}

// Error returns the error message, including the cause when present.
func (e *UpstreamError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

// Unwrap exposes the wrapped cause.
func (e *UpstreamError) Unwrap() error {
	return e.Cause
}

// NewUpstreamError wraps a failed upstream call.
func NewUpstreamError(message string, cause error) error {
	return &UpstreamError{Message: message, Cause: cause}
}

// IsNotFound reports whether err is a NotFoundError.
func IsNotFound(err error) bool {
	var target *NotFoundError
	return errors.As(err, &target)
}

// IsInvalidParameter reports whether err is an InvalidParameterError.
func IsInvalidParameter(err error) bool {
	var target *InvalidParameterError
	return errors.As(err, &target)
}

// IsUpstream reports whether err is an UpstreamError.
func IsUpstream(err error) bool {
	var target *UpstreamError
	return errors.As(err, &target)
}
