package ai

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrorKind classifies gateway failures so callers can react without string matching
type ErrorKind string

const (
	KindMissingCredentials ErrorKind = "missing_credentials"
	KindTimeout            ErrorKind = "timeout"
	KindNetwork            ErrorKind = "network"
	KindUpstreamHTTP       ErrorKind = "upstream_http"
	KindMalformedResponse  ErrorKind = "malformed_response"
	KindParse              ErrorKind = "parse"
)

// Error is returned for every failed completion or analysis parse
type Error struct {
	Kind       ErrorKind
	StatusCode int
	Body       string
	Err        error
}

func (e *Error) Error() string {
	msg := string(e.Kind)
	if e.StatusCode != 0 {
		msg = fmt.Sprintf("%s (status %d)", msg, e.StatusCode)
	}
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return "ai: " + msg
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Retryable reports whether the failure is transient upstream pressure (429/5xx)
func (e *Error) Retryable() bool {
	if e.Kind != KindUpstreamHTTP {
		return false
	}
	return e.StatusCode == http.StatusTooManyRequests || e.StatusCode >= http.StatusInternalServerError
}

// IsKind reports whether err is an *Error of the given kind
func IsKind(err error, kind ErrorKind) bool {
	var aiErr *Error
	return errors.As(err, &aiErr) && aiErr.Kind == kind
}

// KindOf returns the kind of err, or "" when err is not an *Error
func KindOf(err error) ErrorKind {
	var aiErr *Error
	if errors.As(err, &aiErr) {
		return aiErr.Kind
	}
	return ""
}
