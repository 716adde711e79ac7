package handler

import (
	"log/slog"
	"net/http"

	"viber/internal/httputil"
	"viber/internal/service/chat"
)

// ChatHandler handles conversation HTTP requests.
type ChatHandler struct {
	chatService *chat.Service
	logger      *slog.Logger
}

// NewChatHandler creates a new chat handler.
func NewChatHandler(chatService *chat.Service, logger *slog.Logger) *ChatHandler {
	return &ChatHandler{chatService: chatService, logger: logger}
}

type sendMessageRequest struct {
	Content string `json:"content"`
}

// SendMessage runs one conversation turn.
// POST /api/chat
// Returns 409 while another turn is in flight.
func (h *ChatHandler) SendMessage(w http.ResponseWriter, r *http.Request) {
	var req sendMessageRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	msg, err := h.chatService.SendMessage(r.Context(), req.Content)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, msg)
}

// ListMessages returns the ordered conversation log.
// GET /api/chat/messages
func (h *ChatHandler) ListMessages(w http.ResponseWriter, r *http.Request) {
	httputil.RespondJSON(w, http.StatusOK, h.chatService.Messages())
}

type statusResponse struct {
	IsLoading bool `json:"isLoading"`
}

// Status reports whether a turn is in flight.
// GET /api/chat/status
func (h *ChatHandler) Status(w http.ResponseWriter, r *http.Request) {
	httputil.RespondJSON(w, http.StatusOK, statusResponse{IsLoading: h.chatService.IsLoading()})
}
