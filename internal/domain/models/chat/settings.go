package chat

// Settings mirror the UI settings blob. The orchestrator and the provider
// gateway read them at call time and never mutate them.
type Settings struct {
	Theme           string  `json:"theme"`
	AIProvider      string  `json:"aiProvider"`
	DefaultModel    string  `json:"defaultModel"`
	MaxTokens       int     `json:"maxTokens"`
	Temperature     float64 `json:"temperature"`
	AutoSave        bool    `json:"autoSave"`
	ShowLineNumbers bool    `json:"showLineNumbers"`
	FontSize        int     `json:"fontSize"`
}

// DefaultSettings returns the settings used before the user has saved any.
func DefaultSettings() Settings {
	return Settings{
		Theme:           "system",
		AIProvider:      "openai",
		DefaultModel:    "gpt-4",
		MaxTokens:       4096,
		Temperature:     0.7,
		AutoSave:        true,
		ShowLineNumbers: true,
		FontSize:        14,
	}
}

// DefaultModelFor returns the model selected automatically when the user
// switches to provider. Unknown providers keep their current model.
func DefaultModelFor(provider string) string {
	switch provider {
	case "openai":
		return "gpt-4"
	case "anthropic":
		return "claude-3-sonnet-20240229"
	case "gemini":
		// Flash has the friendlier free-tier rate limits.
		return "gemini-1.5-flash"
	case "ollama":
		return "llama2"
	default:
		return ""
	}
}
