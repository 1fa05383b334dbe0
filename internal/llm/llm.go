package llm

import "context"

// Client abstracts one language-model provider. Implementations issue a
// single prompt/response exchange and classify failures as *ProviderError.
type Client interface {
	// Name identifies the provider in logs and aggregated errors.
	Name() string
	// Complete sends one request and returns the raw response text.
	Complete(ctx context.Context, req Request) (string, error)
}

// Request captures the inputs for a single completion call.
type Request struct {
	System      string
	Prompt      string
	MaxTokens   int
	Temperature float32
	// JSONOnly asks the provider for a JSON-object response where the
	// vendor supports it.
	JSONOnly bool
}
