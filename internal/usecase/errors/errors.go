package errors

import (
	"errors"
	"fmt"
)

// Common errors
var (
	ErrInvalidInput  = errors.New("invalid input")
	ErrUnauthorized  = errors.New("unauthorized")
	ErrNotFound      = errors.New("resource not found")
	ErrInternalError = errors.New("internal server error")
)

// Analysis errors
var (
	// ErrAnalysisFailed wraps every failure after the credit was charged.
	// The credit has been refunded (or the refund was logged) by the time it is returned.
	ErrAnalysisFailed = errors.New("analysis failed")
)

// ValidationError reports a rejected input field
type ValidationError struct {
	Field  string
	Reason string
}

// NewValidationError creates a validation error for field
func NewValidationError(field, reason string) *ValidationError {
	return &ValidationError{Field: field, Reason: reason}
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Reason
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

// Unwrap lets errors.Is(err, ErrInvalidInput) match validation failures
func (e *ValidationError) Unwrap() error {
	return ErrInvalidInput
}
