package llm

import (
	"context"
	"errors"

	"jobforge-backend/internal/shared/telemetry"
)

// Router tries providers in fixed priority order. Each provider is attempted
// at most once per Route call; the first success short-circuits the rest.
// Cross-provider fallback is the resilience mechanism — there is no
// same-provider retry or backoff.
type Router struct {
	clients []Client
}

// NewRouter constructs a router over the given clients. Order is priority.
func NewRouter(clients ...Client) *Router {
	return &Router{clients: clients}
}

// Providers returns the configured provider names in priority order.
func (r *Router) Providers() []string {
	names := make([]string, 0, len(r.clients))
	for _, c := range r.clients {
		names = append(names, c.Name())
	}
	return names
}

// Route sends the request to the first provider that succeeds. When every
// provider fails it returns an *AllProvidersError carrying each provider's
// classified failure; with no providers configured it returns ErrNoProviders.
func (r *Router) Route(ctx context.Context, req Request) (string, error) {
	if len(r.clients) == 0 {
		return "", ErrNoProviders
	}

	failures := make([]*ProviderError, 0, len(r.clients))
	for _, client := range r.clients {
		text, err := client.Complete(ctx, req)
		if err == nil {
			if len(failures) > 0 {
				telemetry.Info("llm.fallback_succeeded", map[string]any{
					"provider": client.Name(),
					"attempts": len(failures) + 1,
				})
			}
			return text, nil
		}

		var provErr *ProviderError
		if !errors.As(err, &provErr) {
			provErr = &ProviderError{Provider: client.Name(), Kind: FailUnavailable, Err: err}
		}
		failures = append(failures, provErr)

		telemetry.Error("llm.provider_failed", map[string]any{
			"provider": provErr.Provider,
			"kind":     string(provErr.Kind),
			"error":    provErr.Error(),
		})

		if ctx.Err() != nil {
			break
		}
	}

	return "", &AllProvidersError{Failures: failures}
}
