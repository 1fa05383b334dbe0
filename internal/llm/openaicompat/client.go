package openaicompat

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	"jobforge-backend/internal/llm"
)

// Options configures a chat-completions client for one vendor.
type Options struct {
	// Name identifies the provider (cerebras, groq, openrouter).
	Name string
	// BaseURL is the full chat-completions endpoint URL.
	BaseURL string
	APIKey  string
	Model   string
	Timeout time.Duration
	// ExtraHeaders are sent on every request (OpenRouter wants
	// HTTP-Referer and X-Title).
	ExtraHeaders map[string]string
	// DisableJSONMode skips response_format for vendors that reject it.
	DisableJSONMode bool
}

// Client implements llm.Client against the OpenAI-style chat-completions
// wire format shared by Cerebras, Groq, and OpenRouter.
type Client struct {
	name            string
	baseURL         string
	apiKey          string
	model           string
	extraHeaders    map[string]string
	disableJSONMode bool
	httpClient      *http.Client
}

// New constructs a client. Callers are expected to have verified the
// credential is present; an empty credential still fails cleanly as an
// auth error on first use.
func New(opts Options) *Client {
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = 120 * time.Second
	}
	return &Client{
		name:            opts.Name,
		baseURL:         opts.BaseURL,
		apiKey:          opts.APIKey,
		model:           opts.Model,
		extraHeaders:    opts.ExtraHeaders,
		disableJSONMode: opts.DisableJSONMode,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

func (c *Client) Name() string { return c.name }

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model          string          `json:"model"`
	Messages       []chatMessage   `json:"messages"`
	Temperature    *float32        `json:"temperature,omitempty"`
	MaxTokens      int             `json:"max_tokens,omitempty"`
	ResponseFormat *responseFormat `json:"response_format,omitempty"`
}

type responseFormat struct {
	Type string `json:"type"`
}

type chatUsage struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
	TotalTokens      int `json:"total_tokens"`
}

type chatResponse struct {
	ID      string `json:"id"`
	Model   string `json:"model"`
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
	Usage *chatUsage `json:"usage,omitempty"`
	Error *struct {
		Message string `json:"message"`
		Type    string `json:"type"`
	} `json:"error,omitempty"`
}

// Complete issues one chat-completions call and classifies any failure.
func (c *Client) Complete(ctx context.Context, req llm.Request) (string, error) {
	messages := make([]chatMessage, 0, 2)
	if strings.TrimSpace(req.System) != "" {
		messages = append(messages, chatMessage{Role: "system", Content: req.System})
	}
	messages = append(messages, chatMessage{Role: "user", Content: req.Prompt})

	temp := req.Temperature
	reqBody := chatRequest{
		Model:       c.model,
		Messages:    messages,
		Temperature: &temp,
		MaxTokens:   req.MaxTokens,
	}
	if req.JSONOnly && !c.disableJSONMode {
		reqBody.ResponseFormat = &responseFormat{Type: "json_object"}
	}

	payload, err := json.Marshal(reqBody)
	if err != nil {
		return "", c.fail(llm.FailInvalidResponse, fmt.Errorf("marshal request: %w", err))
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL, bytes.NewReader(payload))
	if err != nil {
		return "", c.fail(llm.FailUnavailable, err)
	}
	httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)
	httpReq.Header.Set("Content-Type", "application/json")
	for k, v := range c.extraHeaders {
		httpReq.Header.Set(k, v)
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return "", c.fail(llm.FailUnavailable, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", c.fail(llm.FailUnavailable, fmt.Errorf("read response: %w", err))
	}

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return "", c.fail(llm.FailAuth, fmt.Errorf("status %d: %s", resp.StatusCode, snippet(body)))
	case resp.StatusCode == http.StatusTooManyRequests:
		return "", c.fail(llm.FailRateLimited, fmt.Errorf("status %d: %s", resp.StatusCode, snippet(body)))
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		return "", c.fail(llm.FailUnavailable, fmt.Errorf("status %d: %s", resp.StatusCode, snippet(body)))
	}

	var parsed chatResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return "", c.fail(llm.FailInvalidResponse, fmt.Errorf("response parse: %w", err))
	}
	if parsed.Error != nil {
		return "", c.fail(llm.FailInvalidResponse, fmt.Errorf("provider error: %s (%s)", parsed.Error.Message, parsed.Error.Type))
	}
	if len(parsed.Choices) == 0 {
		return "", c.fail(llm.FailInvalidResponse, fmt.Errorf("response missing choices"))
	}

	content := strings.TrimSpace(parsed.Choices[0].Message.Content)
	if content == "" {
		return "", c.fail(llm.FailInvalidResponse, fmt.Errorf("response empty content"))
	}

	logUsage(c.name, c.model, parsed.Usage)
	return content, nil
}

func (c *Client) fail(kind llm.FailureKind, err error) error {
	return &llm.ProviderError{Provider: c.name, Kind: kind, Err: err}
}

func snippet(body []byte) string {
	s := strings.Join(strings.Fields(string(body)), " ")
	if len(s) > 200 {
		return s[:200]
	}
	return s
}

func logUsage(provider, model string, usage *chatUsage) {
	if usage == nil {
		log.Printf("llm response provider=%s model=%s", provider, model)
		return
	}
	log.Printf("llm response provider=%s model=%s prompt_tokens=%d completion_tokens=%d total_tokens=%d",
		provider, model, usage.PromptTokens, usage.CompletionTokens, usage.TotalTokens)
}

var _ llm.Client = (*Client)(nil)
