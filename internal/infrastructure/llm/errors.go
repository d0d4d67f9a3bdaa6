package llm

import (
	"context"
	"errors"
	"net/http"

	"SummaryHub/internal/domain"
)

// statusError maps an upstream HTTP status into the adapter failure
// taxonomy. detail is a trimmed excerpt of the response body.
func statusError(provider string, status int, detail string) *domain.AdapterError {
	kind := domain.ErrUpstream
	switch {
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		kind = domain.ErrAuthFailure
	case status == http.StatusTooManyRequests:
		kind = domain.ErrRateLimited
	}
	if detail == "" {
		return domain.NewAdapterError(kind, "%s returned status %d", provider, status)
	}
	return domain.NewAdapterError(kind, "%s returned status %d: %s", provider, status, detail)
}

// transportError classifies a failed outbound call. Deadline expiry from
// the caller's context becomes a Timeout; everything else is upstream.
func transportError(provider string, err error) *domain.AdapterError {
	kind := domain.ErrUpstream
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		kind = domain.ErrTimeout
	}
	return &domain.AdapterError{Kind: kind, Message: provider + " request failed", Err: err}
}
