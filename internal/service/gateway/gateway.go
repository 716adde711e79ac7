// Package gateway dispatches prompts to external AI completion backends.
//
// Providers form a closed variant set: each maps the shared request onto its
// own wire shape and extracts the completion from its own response shape.
// Adding a backend means adding a variant here, never branching in callers.
package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	chatmodels "viber/internal/domain/models/chat"
)

const defaultHTTPTimeout = 120 * time.Second

// Request carries the per-call parameters every provider variant maps onto
// its own request shape.
type Request struct {
	Prompt      string
	Model       string
	MaxTokens   int
	Temperature float64
	Credential  string
}

// Provider is one AI completion backend: a single complete-text capability
// addressed by a fixed id.
type Provider interface {
	// Name returns the provider id (e.g. "openai").
	Name() string

	// Complete sends the prompt and returns the assistant's raw text. A
	// completion withheld for policy reasons is returned as ordinary text
	// carrying an explanatory message, not as an error.
	Complete(ctx context.Context, req *Request) (string, error)

	// RequiresCredential reports whether the variant needs an API key.
	// Local backends run without one.
	RequiresCredential() bool
}

// Gateway routes a prompt to the provider selected by the settings.
type Gateway struct {
	providers map[string]Provider
	logger    *slog.Logger
}

// New creates a gateway with the full variant set registered, sharing one
// HTTP client.
func New(logger *slog.Logger) *Gateway {
	client := &http.Client{Timeout: defaultHTTPTimeout}

	g := &Gateway{
		providers: make(map[string]Provider),
		logger:    logger,
	}
	g.register(NewOpenAI(client))
	g.register(NewAnthropic(client))
	g.register(NewGemini(client, logger))
	g.register(NewOllama(client))
	return g
}

func (g *Gateway) register(p Provider) {
	g.providers[p.Name()] = p
}

// Send dispatches prompt to the provider named by settings.AIProvider.
//
// The credential is checked before any network call; an unknown provider id
// and a missing credential both fail fast. HTTP-level failures come back
// classified per the gateway error taxonomy.
func (g *Gateway) Send(ctx context.Context, prompt string, settings chatmodels.Settings, credential string) (string, error) {
	provider, ok := g.providers[settings.AIProvider]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnsupportedProvider, settings.AIProvider)
	}
	if provider.RequiresCredential() && credential == "" {
		return "", fmt.Errorf("%s: %w", provider.Name(), ErrMissingCredential)
	}

	req := &Request{
		Prompt:      prompt,
		Model:       settings.DefaultModel,
		MaxTokens:   settings.MaxTokens,
		Temperature: settings.Temperature,
		Credential:  credential,
	}

	start := time.Now()
	text, err := provider.Complete(ctx, req)
	if err != nil {
		g.logger.Warn("provider call failed",
			"provider", provider.Name(),
			"model", req.Model,
			"error", err,
		)
		return "", err
	}

	g.logger.Info("provider call completed",
		"provider", provider.Name(),
		"model", req.Model,
		"duration_ms", time.Since(start).Milliseconds(),
		"response_chars", len(text),
	)
	return text, nil
}

// postJSON marshals payload, POSTs it with the given headers, and returns the
// response body after status classification.
func postJSON(ctx context.Context, client *http.Client, provider, url string, headers map[string]string, payload any) ([]byte, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshal %s request: %w", provider, err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("create %s request: %w", provider, err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")
	for k, v := range headers {
		httpReq.Header.Set(k, v)
	}

	resp, err := client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("%s request failed: %w", provider, err)
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read %s response: %w", provider, err)
	}

	if err := classifyStatus(provider, resp.StatusCode, string(respBody)); err != nil {
		return nil, err
	}
	return respBody, nil
}
