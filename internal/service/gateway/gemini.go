package gateway

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const (
	defaultGeminiURL = "https://generativelanguage.googleapis.com/v1beta"

	// Gemini caps the output budget regardless of what the settings ask for.
	geminiMaxOutputTokens = 8192

	geminiRetries   = 2
	geminiRetryBase = time.Second
)

// geminiFilteredMessage is returned as ordinary response text when the
// completion was withheld by the safety filters. Filtered is not errored:
// callers must not conflate the two.
const geminiFilteredMessage = "Response was blocked due to safety filters. " +
	"Please try rephrasing your request."

// Gemini talks to the Generative Language API. It is the one variant wrapped
// in a bounded retry on rate limiting.
type Gemini struct {
	baseURL string
	client  *http.Client
	logger  *slog.Logger
}

// NewGemini creates the Gemini variant.
func NewGemini(client *http.Client, logger *slog.Logger) *Gemini {
	return &Gemini{baseURL: defaultGeminiURL, client: client, logger: logger}
}

func (p *Gemini) Name() string             { return "gemini" }
func (p *Gemini) RequiresCredential() bool { return true }

type geminiPart struct {
	Text string `json:"text"`
}

type geminiContent struct {
	Parts []geminiPart `json:"parts"`
}

type geminiGenerationConfig struct {
	Temperature     float64 `json:"temperature"`
	MaxOutputTokens int     `json:"maxOutputTokens"`
	TopP            float64 `json:"topP"`
	TopK            int     `json:"topK"`
}

type geminiSafetySetting struct {
	Category  string `json:"category"`
	Threshold string `json:"threshold"`
}

type geminiRequest struct {
	Contents         []geminiContent        `json:"contents"`
	GenerationConfig geminiGenerationConfig `json:"generationConfig"`
	SafetySettings   []geminiSafetySetting  `json:"safetySettings"`
}

type geminiResponse struct {
	Candidates []struct {
		Content struct {
			Parts []geminiPart `json:"parts"`
		} `json:"content"`
		FinishReason string `json:"finishReason"`
	} `json:"candidates"`
}

var geminiSafetySettings = []geminiSafetySetting{
	{Category: "HARM_CATEGORY_HARASSMENT", Threshold: "BLOCK_MEDIUM_AND_ABOVE"},
	{Category: "HARM_CATEGORY_HATE_SPEECH", Threshold: "BLOCK_MEDIUM_AND_ABOVE"},
	{Category: "HARM_CATEGORY_SEXUALLY_EXPLICIT", Threshold: "BLOCK_MEDIUM_AND_ABOVE"},
	{Category: "HARM_CATEGORY_DANGEROUS_CONTENT", Threshold: "BLOCK_MEDIUM_AND_ABOVE"},
}

// Complete implements Provider with the bounded rate-limit retry.
func (p *Gemini) Complete(ctx context.Context, req *Request) (string, error) {
	attempt := 0
	return retryRateLimited(ctx, geminiRetries, geminiRetryBase, func() (string, error) {
		attempt++
		if attempt > 1 {
			p.logger.Debug("retrying gemini call", "attempt", attempt)
		}
		return p.completeOnce(ctx, req)
	})
}

func (p *Gemini) completeOnce(ctx context.Context, req *Request) (string, error) {
	maxTokens := req.MaxTokens
	if maxTokens <= 0 || maxTokens > geminiMaxOutputTokens {
		maxTokens = geminiMaxOutputTokens
	}

	payload := geminiRequest{
		Contents: []geminiContent{
			{Parts: []geminiPart{{Text: req.Prompt}}},
		},
		GenerationConfig: geminiGenerationConfig{
			Temperature:     req.Temperature,
			MaxOutputTokens: maxTokens,
			TopP:            0.8,
			TopK:            40,
		},
		SafetySettings: geminiSafetySettings,
	}

	model := req.Model
	if !strings.Contains(model, "gemini-") {
		model = "gemini-1.5-flash"
	}
	endpoint := fmt.Sprintf("%s/models/%s:generateContent?key=%s",
		p.baseURL, model, url.QueryEscape(req.Credential))

	body, err := postJSON(ctx, p.client, p.Name(), endpoint, nil, payload)
	if err != nil {
		return "", err
	}

	var parsed geminiResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return "", fmt.Errorf("parse gemini response: %w", err)
	}

	if len(parsed.Candidates) > 0 {
		cand := parsed.Candidates[0]
		if len(cand.Content.Parts) > 0 && cand.Content.Parts[0].Text != "" {
			return cand.Content.Parts[0].Text, nil
		}
		if cand.FinishReason == "SAFETY" {
			return geminiFilteredMessage, nil
		}
	}
	return "", fmt.Errorf("no valid response received from gemini API")
}
