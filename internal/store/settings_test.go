package store

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	chatmodels "viber/internal/domain/models/chat"
)

func newTestStore(t *testing.T) (*SettingsStore, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "settings.json")
	s, err := NewSettingsStore(path, slog.New(slog.NewTextHandler(io.Discard, nil)))
	if err != nil {
		t.Fatalf("NewSettingsStore: %v", err)
	}
	return s, path
}

func TestSettingsDefaultsWhenEmpty(t *testing.T) {
	s, _ := newTestStore(t)

	got := s.Settings()
	if got != chatmodels.DefaultSettings() {
		t.Fatalf("Settings() = %+v, want defaults", got)
	}
}

func TestUpdateSettingsRoundTrip(t *testing.T) {
	s, path := newTestStore(t)

	next := chatmodels.DefaultSettings()
	next.Temperature = 0.2
	next.MaxTokens = 2048

	saved, err := s.UpdateSettings(next)
	if err != nil {
		t.Fatalf("UpdateSettings: %v", err)
	}
	if saved != next {
		t.Fatalf("saved = %+v, want %+v", saved, next)
	}

	// A new store over the same file sees the persisted values.
	reopened, err := NewSettingsStore(path, slog.New(slog.NewTextHandler(io.Discard, nil)))
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	if got := reopened.Settings(); got != next {
		t.Fatalf("reopened Settings() = %+v, want %+v", got, next)
	}
}

func TestUpdateSettingsSnapsModelOnProviderSwitch(t *testing.T) {
	s, _ := newTestStore(t)

	next := chatmodels.DefaultSettings()
	next.AIProvider = "anthropic" // model still the openai default

	saved, err := s.UpdateSettings(next)
	if err != nil {
		t.Fatalf("UpdateSettings: %v", err)
	}
	if saved.DefaultModel != "claude-3-sonnet-20240229" {
		t.Fatalf("DefaultModel = %q, want anthropic default", saved.DefaultModel)
	}
}

func TestUpdateSettingsKeepsExplicitModel(t *testing.T) {
	s, _ := newTestStore(t)

	next := chatmodels.DefaultSettings()
	next.AIProvider = "anthropic"
	next.DefaultModel = "claude-3-opus-20240229"

	saved, err := s.UpdateSettings(next)
	if err != nil {
		t.Fatalf("UpdateSettings: %v", err)
	}
	if saved.DefaultModel != "claude-3-opus-20240229" {
		t.Fatalf("DefaultModel = %q, explicit choice must survive", saved.DefaultModel)
	}
}

func TestCredentialLifecycle(t *testing.T) {
	s, path := newTestStore(t)

	if got := s.Credential("openai"); got != "" {
		t.Fatalf("Credential before set = %q", got)
	}

	if err := s.SetCredential("openai", "sk-test"); err != nil {
		t.Fatalf("SetCredential: %v", err)
	}
	if got := s.Credential("openai"); got != "sk-test" {
		t.Fatalf("Credential = %q", got)
	}
	if got := s.Credential("anthropic"); got != "" {
		t.Fatalf("other provider credential = %q", got)
	}

	// Empty key clears the entry.
	if err := s.SetCredential("openai", ""); err != nil {
		t.Fatalf("SetCredential clear: %v", err)
	}
	if got := s.Credential("openai"); got != "" {
		t.Fatalf("Credential after clear = %q", got)
	}

	reopened, err := NewSettingsStore(path, slog.New(slog.NewTextHandler(io.Discard, nil)))
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	if got := reopened.Credential("openai"); got != "" {
		t.Fatalf("cleared credential persisted: %q", got)
	}
}

func TestCorruptFileStartsFresh(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o600); err != nil {
		t.Fatal(err)
	}

	s, err := NewSettingsStore(path, slog.New(slog.NewTextHandler(io.Discard, nil)))
	if err != nil {
		t.Fatalf("NewSettingsStore on corrupt file: %v", err)
	}
	if got := s.Settings(); got != chatmodels.DefaultSettings() {
		t.Fatalf("Settings() = %+v, want defaults", got)
	}
}
