package catalog

import "testing"

func TestNewRegistryLoadsAllProviders(t *testing.T) {
	r, err := NewRegistry()
	if err != nil {
		t.Fatalf("NewRegistry: %v", err)
	}

	providers := r.Providers()
	want := []string{"openai", "anthropic", "gemini", "ollama"}
	if len(providers) != len(want) {
		t.Fatalf("got %d providers, want %d", len(providers), len(want))
	}
	for i, name := range want {
		if providers[i].Provider != name {
			t.Errorf("providers[%d] = %q, want %q", i, providers[i].Provider, name)
		}
		if len(providers[i].Models) == 0 {
			t.Errorf("%s has no models", name)
		}
	}
}

func TestOnlyOllamaIsLocal(t *testing.T) {
	r, err := NewRegistry()
	if err != nil {
		t.Fatalf("NewRegistry: %v", err)
	}

	for _, p := range r.Providers() {
		if got, want := p.Local, p.Provider == "ollama"; got != want {
			t.Errorf("%s Local = %v, want %v", p.Provider, got, want)
		}
	}
}

func TestProviderLookup(t *testing.T) {
	r, err := NewRegistry()
	if err != nil {
		t.Fatalf("NewRegistry: %v", err)
	}

	info, err := r.Provider("gemini")
	if err != nil {
		t.Fatalf("Provider(gemini): %v", err)
	}
	found := false
	for _, m := range info.Models {
		if m.ID == "gemini-1.5-flash" {
			found = true
		}
	}
	if !found {
		t.Fatal("gemini-1.5-flash missing from gemini models")
	}

	if _, err := r.Provider("cohere"); err == nil {
		t.Fatal("unknown provider must error")
	}
	if r.HasProvider("cohere") {
		t.Fatal("HasProvider(cohere) = true")
	}
	if !r.HasProvider("openai") {
		t.Fatal("HasProvider(openai) = false")
	}
}
