package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"viber/internal/service/preview"
	"viber/internal/service/workspace"
)

// PreviewHandler serves the compiled sandbox document.
type PreviewHandler struct {
	compiler         *preview.Compiler
	workspaceService *workspace.Service
	logger           *slog.Logger
}

// NewPreviewHandler creates a new preview handler.
func NewPreviewHandler(compiler *preview.Compiler, workspaceService *workspace.Service, logger *slog.Logger) *PreviewHandler {
	return &PreviewHandler{compiler: compiler, workspaceService: workspaceService, logger: logger}
}

// GetPreview compiles the current project and serves the document. A project
// without an entry component still renders: the error document takes its
// place so the preview surface is never blank.
// GET /api/preview
func (h *PreviewHandler) GetPreview(w http.ResponseWriter, r *http.Request) {
	doc, err := h.compiler.Compile(h.workspaceService.Current())
	if err != nil {
		if !errors.Is(err, preview.ErrEntryNotFound) {
			h.logger.Error("preview compile failed", "error", err)
		}
		doc = h.compiler.RenderError(err.Error())
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	// The document is assembled from model output; confine it.
	w.Header().Set("Content-Security-Policy", "sandbox allow-scripts")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(doc))
}
