package gateway

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
)

const (
	defaultAnthropicURL = "https://api.anthropic.com/v1/messages"
	anthropicVersion    = "2023-06-01"
)

// Anthropic talks to the Messages API.
type Anthropic struct {
	baseURL string
	client  *http.Client
}

// NewAnthropic creates the Anthropic variant.
func NewAnthropic(client *http.Client) *Anthropic {
	return &Anthropic{baseURL: defaultAnthropicURL, client: client}
}

func (p *Anthropic) Name() string             { return "anthropic" }
func (p *Anthropic) RequiresCredential() bool { return true }

type anthropicMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type anthropicRequest struct {
	Model     string             `json:"model"`
	MaxTokens int                `json:"max_tokens"`
	Messages  []anthropicMessage `json:"messages"`
}

type anthropicResponse struct {
	Content []struct {
		Text string `json:"text"`
	} `json:"content"`
}

// Complete implements Provider.
func (p *Anthropic) Complete(ctx context.Context, req *Request) (string, error) {
	payload := anthropicRequest{
		Model:     req.Model,
		MaxTokens: req.MaxTokens,
		Messages: []anthropicMessage{
			{Role: "user", Content: req.Prompt},
		},
	}

	headers := map[string]string{
		"x-api-key":         req.Credential,
		"anthropic-version": anthropicVersion,
	}

	body, err := postJSON(ctx, p.client, p.Name(), p.baseURL, headers, payload)
	if err != nil {
		return "", err
	}

	var parsed anthropicResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return "", fmt.Errorf("parse anthropic response: %w", err)
	}
	if len(parsed.Content) == 0 || parsed.Content[0].Text == "" {
		return "No response received", nil
	}
	return parsed.Content[0].Text, nil
}
