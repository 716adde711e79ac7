package handler

import (
	"log/slog"
	"net/http"

	"viber/internal/catalog"
	"viber/internal/httputil"
)

// CatalogHandler serves the provider and model catalog.
type CatalogHandler struct {
	registry *catalog.Registry
	logger   *slog.Logger
}

// NewCatalogHandler creates a new catalog handler.
func NewCatalogHandler(registry *catalog.Registry, logger *slog.Logger) *CatalogHandler {
	return &CatalogHandler{registry: registry, logger: logger}
}

// ListProviders returns every provider with its models.
// GET /api/catalog
func (h *CatalogHandler) ListProviders(w http.ResponseWriter, r *http.Request) {
	httputil.RespondJSON(w, http.StatusOK, h.registry.Providers())
}
