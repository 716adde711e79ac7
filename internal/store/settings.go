// Package store persists settings and provider credentials as a single JSON
// document on disk. The document is a flat key/value map: one key for the
// settings blob, one per provider credential.
package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	chatmodels "viber/internal/domain/models/chat"
)

const settingsKey = "dyad-settings"

func credentialKey(provider string) string {
	return provider + "-api-key"
}

// SettingsStore is a file-backed key/value store. All reads and writes go
// through the in-memory map; the file is rewritten whole on every mutation.
type SettingsStore struct {
	path   string
	logger *slog.Logger

	mu     sync.RWMutex
	values map[string]json.RawMessage
}

// NewSettingsStore opens or creates the store at path. A missing file is not
// an error: the store starts empty and the file appears on first write. A
// corrupt file is logged and replaced rather than blocking startup.
func NewSettingsStore(path string, logger *slog.Logger) (*SettingsStore, error) {
	s := &SettingsStore{
		path:   path,
		logger: logger,
		values: make(map[string]json.RawMessage),
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return s, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read settings file: %w", err)
	}

	if err := json.Unmarshal(data, &s.values); err != nil {
		logger.Warn("settings file corrupt, starting fresh", "path", path, "error", err)
		s.values = make(map[string]json.RawMessage)
	}
	return s, nil
}

// Settings returns the stored settings merged over the defaults. Missing or
// unreadable values degrade to the defaults instead of failing the caller.
func (s *SettingsStore) Settings() chatmodels.Settings {
	s.mu.RLock()
	raw, ok := s.values[settingsKey]
	s.mu.RUnlock()

	settings := chatmodels.DefaultSettings()
	if !ok {
		return settings
	}
	if err := json.Unmarshal(raw, &settings); err != nil {
		s.logger.Warn("stored settings unreadable, using defaults", "error", err)
		return chatmodels.DefaultSettings()
	}
	return settings
}

// UpdateSettings replaces the stored settings. When the provider changed and
// the model was not explicitly moved with it, the model snaps to the new
// provider's default so a stale cross-provider model is never persisted.
func (s *SettingsStore) UpdateSettings(next chatmodels.Settings) (chatmodels.Settings, error) {
	current := s.Settings()
	if next.AIProvider != current.AIProvider && next.DefaultModel == current.DefaultModel {
		if def := chatmodels.DefaultModelFor(next.AIProvider); def != "" {
			next.DefaultModel = def
		}
	}

	raw, err := json.Marshal(next)
	if err != nil {
		return chatmodels.Settings{}, fmt.Errorf("marshal settings: %w", err)
	}

	s.mu.Lock()
	s.values[settingsKey] = raw
	err = s.flushLocked()
	s.mu.Unlock()
	if err != nil {
		return chatmodels.Settings{}, err
	}
	return next, nil
}

// Credential returns the stored API key for the provider, or "".
func (s *SettingsStore) Credential(provider string) string {
	s.mu.RLock()
	raw, ok := s.values[credentialKey(provider)]
	s.mu.RUnlock()
	if !ok {
		return ""
	}

	var key string
	if err := json.Unmarshal(raw, &key); err != nil {
		s.logger.Warn("stored credential unreadable", "provider", provider, "error", err)
		return ""
	}
	return key
}

// SetCredential stores or clears the API key for the provider. An empty key
// removes the entry.
func (s *SettingsStore) SetCredential(provider, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if key == "" {
		delete(s.values, credentialKey(provider))
	} else {
		raw, err := json.Marshal(key)
		if err != nil {
			return fmt.Errorf("marshal credential: %w", err)
		}
		s.values[credentialKey(provider)] = raw
	}
	return s.flushLocked()
}

// flushLocked rewrites the backing file. Callers hold s.mu.
func (s *SettingsStore) flushLocked() error {
	data, err := json.MarshalIndent(s.values, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal settings store: %w", err)
	}

	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create settings dir: %w", err)
		}
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return fmt.Errorf("write settings file: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("replace settings file: %w", err)
	}
	return nil
}
