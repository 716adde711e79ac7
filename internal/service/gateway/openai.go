package gateway

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
)

const defaultOpenAIURL = "https://api.openai.com/v1/chat/completions"

// System message sent ahead of every user prompt so the model keeps emitting
// the modification format.
const openAISystemPrompt = "You are an expert AI assistant that helps build applications. " +
	"You can modify files directly using the FILE_MODIFICATION format. " +
	"Always provide complete file contents when making changes."

// OpenAI talks to the Chat Completions API.
type OpenAI struct {
	baseURL string
	client  *http.Client
}

// NewOpenAI creates the OpenAI variant.
func NewOpenAI(client *http.Client) *OpenAI {
	return &OpenAI{baseURL: defaultOpenAIURL, client: client}
}

func (p *OpenAI) Name() string             { return "openai" }
func (p *OpenAI) RequiresCredential() bool { return true }

type openAIMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type openAIRequest struct {
	Model       string          `json:"model"`
	Messages    []openAIMessage `json:"messages"`
	MaxTokens   int             `json:"max_tokens"`
	Temperature float64         `json:"temperature"`
}

type openAIResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// Complete implements Provider.
func (p *OpenAI) Complete(ctx context.Context, req *Request) (string, error) {
	payload := openAIRequest{
		Model: req.Model,
		Messages: []openAIMessage{
			{Role: "system", Content: openAISystemPrompt},
			{Role: "user", Content: req.Prompt},
		},
		MaxTokens:   req.MaxTokens,
		Temperature: req.Temperature,
	}

	headers := map[string]string{
		"Authorization": "Bearer " + req.Credential,
	}

	body, err := postJSON(ctx, p.client, p.Name(), p.baseURL, headers, payload)
	if err != nil {
		return "", err
	}

	var parsed openAIResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return "", fmt.Errorf("parse openai response: %w", err)
	}
	if len(parsed.Choices) == 0 || parsed.Choices[0].Message.Content == "" {
		return "No response received", nil
	}
	return parsed.Choices[0].Message.Content, nil
}
