package gateway

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	chatmodels "viber/internal/domain/models/chat"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testSettings(provider, model string) chatmodels.Settings {
	s := chatmodels.DefaultSettings()
	s.AIProvider = provider
	s.DefaultModel = model
	return s
}

func TestClassifyStatus(t *testing.T) {
	tests := []struct {
		name   string
		status int
		want   error
	}{
		{"ok", 200, nil},
		{"created", 201, nil},
		{"rate limited", 429, ErrRateLimited},
		{"unauthorized", 401, ErrUnauthorized},
		{"forbidden", 403, ErrUnauthorized},
		{"bad request", 400, ErrBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := classifyStatus("openai", tt.status, "")
			if tt.want == nil {
				if err != nil {
					t.Fatalf("classifyStatus(%d) = %v, want nil", tt.status, err)
				}
				return
			}
			if !errors.Is(err, tt.want) {
				t.Fatalf("classifyStatus(%d) = %v, want %v", tt.status, err, tt.want)
			}
		})
	}
}

func TestClassifyStatusUnclassified(t *testing.T) {
	err := classifyStatus("openai", 503, "overloaded")

	var provErr *ProviderError
	if !errors.As(err, &provErr) {
		t.Fatalf("classifyStatus(503) = %T, want *ProviderError", err)
	}
	if provErr.Status != 503 || provErr.Body != "overloaded" {
		t.Fatalf("provErr = %+v", provErr)
	}
}

func TestSendUnsupportedProvider(t *testing.T) {
	g := New(discardLogger())

	_, err := g.Send(context.Background(), "hi", testSettings("cohere", "command"), "key")
	if !errors.Is(err, ErrUnsupportedProvider) {
		t.Fatalf("err = %v, want ErrUnsupportedProvider", err)
	}
}

func TestSendMissingCredential(t *testing.T) {
	g := New(discardLogger())

	for _, provider := range []string{"openai", "anthropic", "gemini"} {
		_, err := g.Send(context.Background(), "hi", testSettings(provider, "m"), "")
		if !errors.Is(err, ErrMissingCredential) {
			t.Fatalf("%s: err = %v, want ErrMissingCredential", provider, err)
		}
	}
}

func TestOpenAIComplete(t *testing.T) {
	var gotAuth string
	var gotBody map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		_ = json.NewDecoder(r.Body).Decode(&gotBody)
		_ = json.NewEncoder(w).Encode(map[string]any{
			"choices": []map[string]any{
				{"message": map[string]any{"content": "hello there"}},
			},
		})
	}))
	defer srv.Close()

	p := NewOpenAI(srv.Client())
	p.baseURL = srv.URL

	text, err := p.Complete(context.Background(), &Request{
		Prompt: "hi", Model: "gpt-4", MaxTokens: 100, Temperature: 0.5, Credential: "sk-test",
	})
	if err != nil {
		t.Fatalf("Complete: %v", err)
	}
	if text != "hello there" {
		t.Fatalf("text = %q", text)
	}
	if gotAuth != "Bearer sk-test" {
		t.Fatalf("Authorization = %q", gotAuth)
	}
	if gotBody["model"] != "gpt-4" {
		t.Fatalf("model = %v", gotBody["model"])
	}
}

func TestOpenAIEmptyChoices(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{"choices": []any{}})
	}))
	defer srv.Close()

	p := NewOpenAI(srv.Client())
	p.baseURL = srv.URL

	text, err := p.Complete(context.Background(), &Request{Model: "gpt-4"})
	if err != nil {
		t.Fatalf("Complete: %v", err)
	}
	if text != "No response received" {
		t.Fatalf("text = %q", text)
	}
}

func TestAnthropicComplete(t *testing.T) {
	var gotKey, gotVersion string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotKey = r.Header.Get("x-api-key")
		gotVersion = r.Header.Get("anthropic-version")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"content": []map[string]any{{"text": "claude says hi"}},
		})
	}))
	defer srv.Close()

	p := NewAnthropic(srv.Client())
	p.baseURL = srv.URL

	text, err := p.Complete(context.Background(), &Request{
		Prompt: "hi", Model: "claude-3-sonnet-20240229", MaxTokens: 100, Credential: "ak-test",
	})
	if err != nil {
		t.Fatalf("Complete: %v", err)
	}
	if text != "claude says hi" {
		t.Fatalf("text = %q", text)
	}
	if gotKey != "ak-test" {
		t.Fatalf("x-api-key = %q", gotKey)
	}
	if gotVersion != "2023-06-01" {
		t.Fatalf("anthropic-version = %q", gotVersion)
	}
}

func TestGeminiSafetyFiltered(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{
			"candidates": []map[string]any{
				{"finishReason": "SAFETY", "content": map[string]any{"parts": []any{}}},
			},
		})
	}))
	defer srv.Close()

	p := NewGemini(srv.Client(), discardLogger())
	p.baseURL = srv.URL

	text, err := p.Complete(context.Background(), &Request{Model: "gemini-1.5-flash", Credential: "k"})
	if err != nil {
		t.Fatalf("filtered completion must not error: %v", err)
	}
	if text != geminiFilteredMessage {
		t.Fatalf("text = %q", text)
	}
}

func TestGeminiModelFallback(t *testing.T) {
	var gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		_ = json.NewEncoder(w).Encode(map[string]any{
			"candidates": []map[string]any{
				{"content": map[string]any{"parts": []map[string]any{{"text": "ok"}}}},
			},
		})
	}))
	defer srv.Close()

	p := NewGemini(srv.Client(), discardLogger())
	p.baseURL = srv.URL

	if _, err := p.Complete(context.Background(), &Request{Model: "gpt-4", Credential: "k"}); err != nil {
		t.Fatalf("Complete: %v", err)
	}
	if gotPath != "/models/gemini-1.5-flash:generateContent" {
		t.Fatalf("path = %q, want fallback model endpoint", gotPath)
	}
}

func TestRetryRateLimitedEventuallySucceeds(t *testing.T) {
	calls := 0
	text, err := retryRateLimited(context.Background(), 2, time.Millisecond, func() (string, error) {
		calls++
		if calls < 3 {
			return "", classifyStatus("gemini", 429, "")
		}
		return "ok", nil
	})
	if err != nil {
		t.Fatalf("err = %v", err)
	}
	if text != "ok" || calls != 3 {
		t.Fatalf("text = %q, calls = %d", text, calls)
	}
}

func TestRetryRateLimitedExhausted(t *testing.T) {
	calls := 0
	_, err := retryRateLimited(context.Background(), 2, time.Millisecond, func() (string, error) {
		calls++
		return "", classifyStatus("gemini", 429, "")
	})
	if !errors.Is(err, ErrRateLimited) {
		t.Fatalf("err = %v, want ErrRateLimited", err)
	}
	if calls != 3 {
		t.Fatalf("calls = %d, want 3", calls)
	}
}

func TestRetryDoesNotRetryOtherErrors(t *testing.T) {
	calls := 0
	_, err := retryRateLimited(context.Background(), 2, time.Millisecond, func() (string, error) {
		calls++
		return "", classifyStatus("gemini", 401, "")
	})
	if !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("err = %v, want ErrUnauthorized", err)
	}
	if calls != 1 {
		t.Fatalf("calls = %d, want 1", calls)
	}
}

func TestRetryStopsOnContextCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := retryRateLimited(ctx, 5, time.Hour, func() (string, error) {
		return "", classifyStatus("gemini", 429, "")
	})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("err = %v, want context.Canceled", err)
	}
}
