// Package catalog holds the embedded provider and model metadata used for
// settings validation and the catalog endpoint.
package catalog

import (
	"embed"
	"fmt"
	"sync"

	"gopkg.in/yaml.v3"
)

//go:embed config/*.yaml
var configFiles embed.FS

// providerFiles lists the embedded provider definitions and fixes the order
// they are reported in.
var providerFiles = []string{"openai", "anthropic", "gemini", "ollama"}

// Registry is the loaded provider catalog.
type Registry struct {
	providers map[string]*ProviderInfo
	order     []string
	mu        sync.RWMutex
}

// NewRegistry loads all embedded provider files.
func NewRegistry() (*Registry, error) {
	r := &Registry{
		providers: make(map[string]*ProviderInfo),
	}

	for _, name := range providerFiles {
		if err := r.loadProviderFile(name); err != nil {
			return nil, fmt.Errorf("failed to load %s catalog: %w", name, err)
		}
	}

	return r, nil
}

func (r *Registry) loadProviderFile(provider string) error {
	filename := fmt.Sprintf("config/%s.yaml", provider)
	data, err := configFiles.ReadFile(filename)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", filename, err)
	}

	var info ProviderInfo
	if err := yaml.Unmarshal(data, &info); err != nil {
		return fmt.Errorf("failed to unmarshal %s: %w", filename, err)
	}

	r.mu.Lock()
	r.providers[provider] = &info
	r.order = append(r.order, provider)
	r.mu.Unlock()

	return nil
}

// Provider returns the catalog entry for one provider.
func (r *Registry) Provider(name string) (*ProviderInfo, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	info, ok := r.providers[name]
	if !ok {
		return nil, fmt.Errorf("unknown provider: %s", name)
	}
	return info, nil
}

// HasProvider reports whether the provider is in the catalog.
func (r *Registry) HasProvider(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.providers[name]
	return ok
}

// Providers returns all catalog entries in declaration order.
func (r *Registry) Providers() []*ProviderInfo {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*ProviderInfo, 0, len(r.order))
	for _, name := range r.order {
		out = append(out, r.providers[name])
	}
	return out
}
