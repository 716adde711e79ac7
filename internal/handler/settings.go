package handler

import (
	"fmt"
	"log/slog"
	"net/http"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"viber/internal/catalog"
	"viber/internal/domain"
	chatmodels "viber/internal/domain/models/chat"
	"viber/internal/httputil"
	"viber/internal/store"
)

// SettingsHandler handles settings and credential HTTP requests.
type SettingsHandler struct {
	store    *store.SettingsStore
	registry *catalog.Registry
	logger   *slog.Logger
}

// NewSettingsHandler creates a new settings handler.
func NewSettingsHandler(store *store.SettingsStore, registry *catalog.Registry, logger *slog.Logger) *SettingsHandler {
	return &SettingsHandler{store: store, registry: registry, logger: logger}
}

// GetSettings returns the current settings.
// GET /api/settings
func (h *SettingsHandler) GetSettings(w http.ResponseWriter, r *http.Request) {
	httputil.RespondJSON(w, http.StatusOK, h.store.Settings())
}

// UpdateSettings replaces the settings document.
// PUT /api/settings
func (h *SettingsHandler) UpdateSettings(w http.ResponseWriter, r *http.Request) {
	var req chatmodels.Settings
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := h.validateSettings(req); err != nil {
		handleError(w, fmt.Errorf("%w: %v", domain.ErrValidation, err))
		return
	}

	saved, err := h.store.UpdateSettings(req)
	if err != nil {
		h.logger.Error("failed to persist settings", "error", err)
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, saved)
}

type setCredentialRequest struct {
	APIKey string `json:"apiKey"`
}

// SetCredential stores or clears a provider API key. The key itself is never
// echoed back or logged.
// PUT /api/settings/keys/{provider}
func (h *SettingsHandler) SetCredential(w http.ResponseWriter, r *http.Request) {
	provider, ok := PathParam(w, r, "provider", "Provider")
	if !ok {
		return
	}
	if !h.registry.HasProvider(provider) {
		httputil.RespondError(w, http.StatusBadRequest, fmt.Sprintf("unknown provider: %s", provider))
		return
	}

	var req setCredentialRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := h.store.SetCredential(provider, req.APIKey); err != nil {
		h.logger.Error("failed to persist credential", "provider", provider, "error", err)
		handleError(w, err)
		return
	}

	h.logger.Info("credential updated", "provider", provider, "cleared", req.APIKey == "")
	w.WriteHeader(http.StatusNoContent)
}

func (h *SettingsHandler) validateSettings(s chatmodels.Settings) error {
	return validation.Errors{
		"aiProvider": validation.Validate(s.AIProvider,
			validation.Required,
			validation.By(func(v any) error {
				if !h.registry.HasProvider(v.(string)) {
					return fmt.Errorf("unknown provider")
				}
				return nil
			}),
		),
		"defaultModel": validation.Validate(s.DefaultModel, validation.Required),
		"maxTokens":    validation.Validate(s.MaxTokens, validation.Min(1), validation.Max(128000)),
		"temperature":  validation.Validate(s.Temperature, validation.Min(0.0), validation.Max(2.0)),
		"fontSize":     validation.Validate(s.FontSize, validation.Min(8), validation.Max(32)),
	}.Filter()
}
