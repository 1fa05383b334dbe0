package openaicompat

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"jobforge-backend/internal/llm"
)

func newTestClient(url string, mutate func(*Options)) *Client {
	opts := Options{
		Name:    "cerebras",
		BaseURL: url,
		APIKey:  "test-key",
		Model:   "llama-3.3-70b",
		Timeout: 2 * time.Second,
	}
	if mutate != nil {
		mutate(&opts)
	}
	return New(opts)
}

func completionBody(content string) string {
	return `{"id":"cmpl-1","model":"llama-3.3-70b","choices":[{"message":{"role":"assistant","content":` + mustJSON(content) + `}}],"usage":{"prompt_tokens":10,"completion_tokens":5,"total_tokens":15}}`
}

func mustJSON(s string) string {
	b, err := json.Marshal(s)
	if err != nil {
		panic(err)
	}
	return string(b)
}

func failureKind(t *testing.T, err error) llm.FailureKind {
	t.Helper()
	var provErr *llm.ProviderError
	if !errors.As(err, &provErr) {
		t.Fatalf("expected *llm.ProviderError, got %T: %v", err, err)
	}
	return provErr.Kind
}

func TestCompleteSuccess(t *testing.T) {
	var captured chatRequest
	var authHeader string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader = r.Header.Get("Authorization")
		if err := json.NewDecoder(r.Body).Decode(&captured); err != nil {
			t.Errorf("decode request: %v", err)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(completionBody(`{"ok":true}`)))
	}))
	defer srv.Close()

	client := newTestClient(srv.URL, nil)
	got, err := client.Complete(context.Background(), llm.Request{
		System:      "You are a helpful assistant.",
		Prompt:      "do the thing",
		MaxTokens:   512,
		Temperature: 0.7,
		JSONOnly:    true,
	})
	if err != nil {
		t.Fatalf("Complete: %v", err)
	}
	if got != `{"ok":true}` {
		t.Fatalf("content = %q", got)
	}
	if authHeader != "Bearer test-key" {
		t.Fatalf("authorization header = %q", authHeader)
	}
	if captured.Model != "llama-3.3-70b" {
		t.Fatalf("model = %q", captured.Model)
	}
	if len(captured.Messages) != 2 || captured.Messages[0].Role != "system" || captured.Messages[1].Role != "user" {
		t.Fatalf("unexpected messages: %+v", captured.Messages)
	}
	if captured.MaxTokens != 512 {
		t.Fatalf("max_tokens = %d", captured.MaxTokens)
	}
	if captured.Temperature == nil || *captured.Temperature != 0.7 {
		t.Fatalf("temperature = %v", captured.Temperature)
	}
	if captured.ResponseFormat == nil || captured.ResponseFormat.Type != "json_object" {
		t.Fatalf("response_format = %+v", captured.ResponseFormat)
	}
}

func TestCompleteOmitsSystemWhenEmpty(t *testing.T) {
	var captured chatRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewDecoder(r.Body).Decode(&captured)
		w.Write([]byte(completionBody("hi")))
	}))
	defer srv.Close()

	client := newTestClient(srv.URL, nil)
	if _, err := client.Complete(context.Background(), llm.Request{Prompt: "hello"}); err != nil {
		t.Fatalf("Complete: %v", err)
	}
	if len(captured.Messages) != 1 || captured.Messages[0].Role != "user" {
		t.Fatalf("unexpected messages: %+v", captured.Messages)
	}
}

func TestCompleteDisableJSONMode(t *testing.T) {
	var captured chatRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewDecoder(r.Body).Decode(&captured)
		w.Write([]byte(completionBody("ok")))
	}))
	defer srv.Close()

	client := newTestClient(srv.URL, func(o *Options) {
		o.Name = "openrouter"
		o.DisableJSONMode = true
		o.ExtraHeaders = map[string]string{"X-Title": "JobForge"}
	})
	if _, err := client.Complete(context.Background(), llm.Request{Prompt: "hello", JSONOnly: true}); err != nil {
		t.Fatalf("Complete: %v", err)
	}
	if captured.ResponseFormat != nil {
		t.Fatalf("expected response_format omitted, got %+v", captured.ResponseFormat)
	}
}

func TestCompleteSendsExtraHeaders(t *testing.T) {
	var referer, title string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		referer = r.Header.Get("HTTP-Referer")
		title = r.Header.Get("X-Title")
		w.Write([]byte(completionBody("ok")))
	}))
	defer srv.Close()

	client := newTestClient(srv.URL, func(o *Options) {
		o.ExtraHeaders = map[string]string{
			"HTTP-Referer": "https://jobforge.local",
			"X-Title":      "JobForge",
		}
	})
	if _, err := client.Complete(context.Background(), llm.Request{Prompt: "hello"}); err != nil {
		t.Fatalf("Complete: %v", err)
	}
	if referer != "https://jobforge.local" || title != "JobForge" {
		t.Fatalf("extra headers not sent: referer=%q title=%q", referer, title)
	}
}

func TestCompleteClassifiesStatusCodes(t *testing.T) {
	cases := []struct {
		name   string
		status int
		kind   llm.FailureKind
	}{
		{"unauthorized", http.StatusUnauthorized, llm.FailAuth},
		{"forbidden", http.StatusForbidden, llm.FailAuth},
		{"rate limited", http.StatusTooManyRequests, llm.FailRateLimited},
		{"server error", http.StatusInternalServerError, llm.FailUnavailable},
		{"bad gateway", http.StatusBadGateway, llm.FailUnavailable},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tc.status)
				w.Write([]byte(`{"error":{"message":"nope"}}`))
			}))
			defer srv.Close()

			client := newTestClient(srv.URL, nil)
			_, err := client.Complete(context.Background(), llm.Request{Prompt: "hello"})
			if err == nil {
				t.Fatal("expected error")
			}
			if kind := failureKind(t, err); kind != tc.kind {
				t.Fatalf("kind = %q, want %q", kind, tc.kind)
			}
		})
	}
}

func TestCompleteClassifiesBadBodies(t *testing.T) {
	cases := []struct {
		name string
		body string
	}{
		{"garbled json", `{"choices":[`},
		{"no choices", `{"id":"cmpl-1","choices":[]}`},
		{"empty content", completionBody("   ")},
		{"embedded error", `{"error":{"message":"model overloaded","type":"server_error"}}`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(tc.body))
			}))
			defer srv.Close()

			client := newTestClient(srv.URL, nil)
			_, err := client.Complete(context.Background(), llm.Request{Prompt: "hello"})
			if err == nil {
				t.Fatal("expected error")
			}
			if kind := failureKind(t, err); kind != llm.FailInvalidResponse {
				t.Fatalf("kind = %q, want %q", kind, llm.FailInvalidResponse)
			}
		})
	}
}

func TestCompleteNetworkFailureIsUnavailable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	client := newTestClient(srv.URL, nil)
	_, err := client.Complete(context.Background(), llm.Request{Prompt: "hello"})
	if err == nil {
		t.Fatal("expected error")
	}
	if kind := failureKind(t, err); kind != llm.FailUnavailable {
		t.Fatalf("kind = %q, want %q", kind, llm.FailUnavailable)
	}
}

func TestCompleteProviderErrorNamesProvider(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	client := newTestClient(srv.URL, func(o *Options) { o.Name = "groq" })
	_, err := client.Complete(context.Background(), llm.Request{Prompt: "hello"})
	var provErr *llm.ProviderError
	if !errors.As(err, &provErr) {
		t.Fatalf("expected *llm.ProviderError, got %v", err)
	}
	if provErr.Provider != "groq" {
		t.Fatalf("provider = %q", provErr.Provider)
	}
}
