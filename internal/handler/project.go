package handler

import (
	"log/slog"
	"net/http"

	"viber/internal/httputil"
	"viber/internal/service/workspace"
)

// ProjectHandler handles project tree HTTP requests.
type ProjectHandler struct {
	workspaceService *workspace.Service
	logger           *slog.Logger
}

// NewProjectHandler creates a new project handler.
func NewProjectHandler(workspaceService *workspace.Service, logger *slog.Logger) *ProjectHandler {
	return &ProjectHandler{workspaceService: workspaceService, logger: logger}
}

// GetProject returns the whole current project.
// GET /api/project
func (h *ProjectHandler) GetProject(w http.ResponseWriter, r *http.Request) {
	httputil.RespondJSON(w, http.StatusOK, h.workspaceService.Current())
}

// GetFile returns a single file looked up by its tree path.
// GET /api/project/files?path=/src/App.tsx
func (h *ProjectHandler) GetFile(w http.ResponseWriter, r *http.Request) {
	path := r.URL.Query().Get("path")
	if path == "" {
		httputil.RespondError(w, http.StatusBadRequest, "path query parameter is required")
		return
	}

	file, err := h.workspaceService.FileByPath(path)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, file)
}

type updateFileRequest struct {
	Content string `json:"content"`
}

// UpdateFile replaces one file's content.
// PUT /api/project/files/{id}
func (h *ProjectHandler) UpdateFile(w http.ResponseWriter, r *http.Request) {
	fileID, ok := PathParam(w, r, "id", "File ID")
	if !ok {
		return
	}

	var req updateFileRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	project, err := h.workspaceService.UpdateFile(fileID, req.Content)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, project)
}
