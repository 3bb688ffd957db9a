package chat

import (
	"net/http"
	"strings"

	"github.com/gorilla/websocket"

	"github.com/steven0413/ChatBetTechnicalAssessment/internal/model/chat"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

type wsError struct {
	Error string `json:"error"`
}

// HandleWebSocket serves GET /ws/chat: each inbound frame carries the same
// JSON payload as POST /chat and gets one reply frame back. Used by the
// widget's live mode so it can skip per-message HTTP round trips.
func (h *Handler) HandleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warnw("websocket upgrade failed", "error", err)
		return
	}
	defer conn.Close()

	for {
		var payload chat.Request
		if err := conn.ReadJSON(&payload); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				h.logger.Warnw("websocket read failed", "error", err)
			}
			return
		}

		if strings.TrimSpace(payload.Message) == "" {
			if err := conn.WriteJSON(wsError{Error: "message is required"}); err != nil {
				return
			}
			continue
		}

		reply := h.chatSvc.Handle(r.Context(), payload)
		if err := conn.WriteJSON(reply); err != nil {
			h.logger.Warnw("websocket write failed", "error", err)
			return
		}
	}
}
