package gateway

import (
	"errors"
	"fmt"
)

// Sentinel errors classifying provider call failures - use with errors.Is().
// The orchestrator maps each class to a fixed user-readable message; raw
// provider payloads are surfaced only through ProviderError.
var (
	// ErrMissingCredential is returned before any network call when the
	// selected provider requires an API key and none is configured.
	ErrMissingCredential = errors.New("missing API key")

	// ErrUnsupportedProvider is returned for a provider id no variant claims.
	ErrUnsupportedProvider = errors.New("unsupported provider")

	// ErrRateLimited corresponds to an HTTP 429 reply.
	ErrRateLimited = errors.New("rate limited")

	// ErrUnauthorized corresponds to an HTTP 401 or 403 reply.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrBadRequest corresponds to an HTTP 400 reply.
	ErrBadRequest = errors.New("bad request")
)

// ProviderError carries the raw status and body of a non-2xx reply that does
// not fall into one of the classified categories.
type ProviderError struct {
	Provider string
	Status   int
	Body     string
}

func (e *ProviderError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("%s API error: status %d", e.Provider, e.Status)
	}
	return fmt.Sprintf("%s API error: status %d: %s", e.Provider, e.Status, e.Body)
}

// classifyStatus maps an HTTP status code to the gateway error taxonomy.
// 2xx maps to nil.
func classifyStatus(provider string, status int, body string) error {
	switch {
	case status >= 200 && status < 300:
		return nil
	case status == 429:
		return fmt.Errorf("%s: %w", provider, ErrRateLimited)
	case status == 401 || status == 403:
		return fmt.Errorf("%s: %w", provider, ErrUnauthorized)
	case status == 400:
		return fmt.Errorf("%s: %w", provider, ErrBadRequest)
	default:
		return &ProviderError{Provider: provider, Status: status, Body: body}
	}
}
