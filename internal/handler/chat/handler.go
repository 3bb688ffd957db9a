package chat

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/steven0413/ChatBetTechnicalAssessment/internal/model/chat"
	"github.com/steven0413/ChatBetTechnicalAssessment/pkg/utils"
)

// Orchestrator is the conversation entry point the handler delegates to.
type Orchestrator interface {
	Handle(ctx context.Context, req chat.Request) chat.Reply
}

// HealthProbe reports upstream sports-API connectivity for /health.
type HealthProbe interface {
	IsConnected(ctx context.Context) bool
}

// Handler exposes the chat endpoints over HTTP.
type Handler struct {
	chatSvc Orchestrator
	probe   HealthProbe
	logger  *zap.SugaredLogger
}

// New creates the chat handler.
func New(chatSvc Orchestrator, probe HealthProbe, logger *zap.SugaredLogger) *Handler {
	return &Handler{chatSvc: chatSvc, probe: probe, logger: logger}
}

// HandleChat serves POST /chat. The only non-2xx outcome is malformed
// input; upstream trouble is already absorbed into the reply text.
func (h *Handler) HandleChat(w http.ResponseWriter, r *http.Request) {
	var payload chat.Request
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if strings.TrimSpace(payload.Message) == "" {
		utils.RespondError(w, http.StatusBadRequest, "message is required")
		return
	}

	reply := h.chatSvc.Handle(r.Context(), payload)
	utils.RespondJSON(w, http.StatusOK, reply)
}

// HandleHealth serves GET /health.
func (h *Handler) HandleHealth(w http.ResponseWriter, r *http.Request) {
	connected := false
	if h.probe != nil {
		connected = h.probe.IsConnected(r.Context())
	}
	utils.RespondJSON(w, http.StatusOK, map[string]any{
		"status":        "healthy",
		"service":       "chatbot",
		"api_connected": connected,
	})
}
