package gateway

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
)

const defaultOllamaURL = "http://localhost:11434"

// Ollama talks to a locally running Ollama daemon. It is the credential-free
// variant: nothing leaves the machine, so no API key is checked.
type Ollama struct {
	baseURL string
	client  *http.Client
}

// NewOllama creates the Ollama variant.
func NewOllama(client *http.Client) *Ollama {
	return &Ollama{baseURL: defaultOllamaURL, client: client}
}

func (p *Ollama) Name() string             { return "ollama" }
func (p *Ollama) RequiresCredential() bool { return false }

type ollamaOptions struct {
	Temperature float64 `json:"temperature"`
	NumPredict  int     `json:"num_predict"`
}

type ollamaRequest struct {
	Model   string        `json:"model"`
	Prompt  string        `json:"prompt"`
	Stream  bool          `json:"stream"`
	Options ollamaOptions `json:"options"`
}

type ollamaResponse struct {
	Response string `json:"response"`
}

// Complete implements Provider.
func (p *Ollama) Complete(ctx context.Context, req *Request) (string, error) {
	payload := ollamaRequest{
		Model:  req.Model,
		Prompt: req.Prompt,
		Stream: false,
		Options: ollamaOptions{
			Temperature: req.Temperature,
			NumPredict:  req.MaxTokens,
		},
	}

	body, err := postJSON(ctx, p.client, p.Name(), p.baseURL+"/api/generate", nil, payload)
	if err != nil {
		return "", err
	}

	var parsed ollamaResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return "", fmt.Errorf("parse ollama response: %w", err)
	}
	if parsed.Response == "" {
		return "No response received", nil
	}
	return parsed.Response, nil
}
