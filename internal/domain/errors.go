package domain

import (
	"errors"
	"fmt"
)

// ErrorKind enumerates the failure taxonomy shared by adapters, the
// orchestration service, and the transport layer.
type ErrorKind string

const (
	ErrUnknownProvider          ErrorKind = "unknown_provider"
	ErrUnsupportedContentType   ErrorKind = "unsupported_content_type"
	ErrAuthFailure              ErrorKind = "auth_failure"
	ErrRateLimited              ErrorKind = "rate_limited"
	ErrTimeout                  ErrorKind = "timeout"
	ErrUpstream                 ErrorKind = "upstream_error"
	ErrNotFound                 ErrorKind = "not_found"
	ErrClassificationImpossible ErrorKind = "classification_impossible"
)

// Retryable reports whether a caller-triggered retry can plausibly
// succeed. Configuration-level failures are terminal.
func (k ErrorKind) Retryable() bool {
	switch k {
	case ErrRateLimited, ErrTimeout, ErrUpstream:
		return true
	}
	return false
}

// ErrItemNotFound marks a repository lookup miss.
var ErrItemNotFound = errors.New("item not found")

// AdapterError is the typed failure adapters return instead of raw
// transport errors.
type AdapterError struct {
	Kind    ErrorKind
	Message string
	Err     error
}

func (e *AdapterError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *AdapterError) Unwrap() error {
	return e.Err
}

// NewAdapterError builds an AdapterError with a formatted message.
func NewAdapterError(kind ErrorKind, format string, args ...any) *AdapterError {
	return &AdapterError{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// Info converts the error into the caller-facing ErrorInfo shape.
func (e *AdapterError) Info() ErrorInfo {
	return ErrorInfo{Kind: e.Kind, Message: e.Message, Retryable: e.Kind.Retryable()}
}

// ErrorInfo is the failure half of a ProcessingResult.
type ErrorInfo struct {
	Kind      ErrorKind
	Message   string
	Retryable bool
}
