package llm

import (
	"errors"
	"fmt"
	"strings"
)

// FailureKind classifies why a provider call failed.
type FailureKind string

const (
	// FailAuth means a bad or rejected credential; this provider will not
	// recover within the request.
	FailAuth FailureKind = "auth_error"
	// FailRateLimited means the provider throttled the call.
	FailRateLimited FailureKind = "rate_limited"
	// FailUnavailable means a network error, timeout, or 5xx-class outage.
	FailUnavailable FailureKind = "unavailable"
	// FailInvalidResponse means the provider answered but with an empty or
	// unusable payload.
	FailInvalidResponse FailureKind = "invalid_response"
)

// ErrNoProviders is returned by Route when no provider is configured.
var ErrNoProviders = errors.New("no llm providers configured")

// ProviderError is one provider's classified failure.
type ProviderError struct {
	Provider string
	Kind     FailureKind
	Err      error
}

func (e *ProviderError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s: %s", e.Provider, e.Kind)
	}
	return fmt.Sprintf("%s: %s: %v", e.Provider, e.Kind, e.Err)
}

func (e *ProviderError) Unwrap() error {
	return e.Err
}

// AllProvidersError aggregates one failure per attempted provider, in
// priority order.
type AllProvidersError struct {
	Failures []*ProviderError
}

func (e *AllProvidersError) Error() string {
	parts := make([]string, 0, len(e.Failures))
	for _, f := range e.Failures {
		parts = append(parts, fmt.Sprintf("%s: %s", f.Provider, f.Kind))
	}
	return "all providers failed: " + strings.Join(parts, "; ")
}
