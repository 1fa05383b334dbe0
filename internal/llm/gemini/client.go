package gemini

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"google.golang.org/genai"

	"jobforge-backend/internal/llm"
)

// Options configures the Gemini provider.
type Options struct {
	APIKey string
	Model  string
}

// Client implements llm.Client on top of the Gemini API. Gemini has no
// system role in this call shape, so system text is folded into the
// prompt, and JSON-only output is enforced downstream by parsing.
type Client struct {
	client *genai.Client
	model  string
}

func New(ctx context.Context, opts Options) (*Client, error) {
	if strings.TrimSpace(opts.APIKey) == "" {
		return nil, errors.New("gemini: missing api key")
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  opts.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("gemini: create client: %w", err)
	}
	return &Client{client: client, model: opts.Model}, nil
}

func (c *Client) Name() string { return "gemini" }

func (c *Client) Complete(ctx context.Context, req llm.Request) (string, error) {
	prompt := req.Prompt
	if sys := strings.TrimSpace(req.System); sys != "" {
		prompt = sys + "\n\n" + req.Prompt
	}

	temp := req.Temperature
	config := &genai.GenerateContentConfig{
		Temperature:     &temp,
		MaxOutputTokens: int32(req.MaxTokens),
	}

	resp, err := c.client.Models.GenerateContent(ctx, c.model, genai.Text(prompt), config)
	if err != nil {
		return "", c.fail(classify(err), err)
	}
	if resp == nil {
		return "", c.fail(llm.FailInvalidResponse, errors.New("nil response"))
	}

	text := strings.TrimSpace(resp.Text())
	if text == "" {
		return "", c.fail(llm.FailInvalidResponse, errors.New("response empty content"))
	}
	return text, nil
}

func (c *Client) fail(kind llm.FailureKind, err error) error {
	return &llm.ProviderError{Provider: c.Name(), Kind: kind, Err: err}
}

// classify maps Gemini API errors onto failure kinds by message, since
// the SDK surfaces HTTP status through error text.
func classify(err error) llm.FailureKind {
	msg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(msg, "api key"),
		strings.Contains(msg, "unauthenticated"),
		strings.Contains(msg, "permission denied"),
		strings.Contains(msg, "permission_denied"):
		return llm.FailAuth
	case strings.Contains(msg, "resource_exhausted"),
		strings.Contains(msg, "resource exhausted"),
		strings.Contains(msg, "quota"),
		strings.Contains(msg, "429"):
		return llm.FailRateLimited
	default:
		return llm.FailUnavailable
	}
}

var _ llm.Client = (*Client)(nil)
