package catalog

// ModelInfo is the metadata for one selectable model.
type ModelInfo struct {
	ID            string `yaml:"id" json:"id"`
	DisplayName   string `yaml:"display_name" json:"display_name"`
	Description   string `yaml:"description" json:"description"`
	ContextWindow int    `yaml:"context_window" json:"context_window"`
	MaxOutput     int    `yaml:"max_output" json:"max_output"`
}

// ProviderInfo is one provider and its models, ordered as declared.
type ProviderInfo struct {
	Provider string `yaml:"provider" json:"provider"`

	// Local providers run on the user's machine and need no API key.
	Local bool `yaml:"local" json:"local"`

	Models []ModelInfo `yaml:"models" json:"models"`
}
