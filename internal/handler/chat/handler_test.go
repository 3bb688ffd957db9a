package chat

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/steven0413/ChatBetTechnicalAssessment/internal/model/chat"
)

type fakeOrchestrator struct {
	lastReq chat.Request
}

func (f *fakeOrchestrator) Handle(_ context.Context, req chat.Request) chat.Reply {
	f.lastReq = req
	return chat.Reply{Response: "respuesta de prueba", SessionID: req.SessionID}
}

type fakeProbe struct {
	connected bool
}

func (f *fakeProbe) IsConnected(_ context.Context) bool {
	return f.connected
}

func newTestHandler() (*Handler, *fakeOrchestrator) {
	orch := &fakeOrchestrator{}
	return New(orch, &fakeProbe{connected: true}, zap.NewNop().Sugar()), orch
}

func TestHandleChatSuccess(t *testing.T) {
	h, orch := newTestHandler()

	body := strings.NewReader(`{"message":"¿Quién juega hoy?","session_id":"s1"}`)
	req := httptest.NewRequest(http.MethodPost, "/chat", body)
	rec := httptest.NewRecorder()

	h.HandleChat(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var reply chat.Reply
	if err := json.NewDecoder(rec.Body).Decode(&reply); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if reply.Response != "respuesta de prueba" {
		t.Fatalf("unexpected response %q", reply.Response)
	}
	if reply.SessionID != "s1" {
		t.Fatalf("unexpected session id %q", reply.SessionID)
	}
	if orch.lastReq.Message != "¿Quién juega hoy?" {
		t.Fatalf("orchestrator got %q", orch.lastReq.Message)
	}
}

func TestHandleChatRejectsMalformedBody(t *testing.T) {
	h, _ := newTestHandler()

	req := httptest.NewRequest(http.MethodPost, "/chat", strings.NewReader("{no es json"))
	rec := httptest.NewRecorder()

	h.HandleChat(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestHandleChatRejectsMissingMessage(t *testing.T) {
	h, _ := newTestHandler()

	for _, body := range []string{`{}`, `{"message":"   ","session_id":"s1"}`} {
		req := httptest.NewRequest(http.MethodPost, "/chat", strings.NewReader(body))
		rec := httptest.NewRecorder()

		h.HandleChat(rec, req)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("body %s: expected 400, got %d", body, rec.Code)
		}
	}
}

func TestHandleHealth(t *testing.T) {
	h, _ := newTestHandler()

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()

	h.HandleHealth(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var payload map[string]any
	if err := json.NewDecoder(rec.Body).Decode(&payload); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if payload["status"] != "healthy" {
		t.Fatalf("unexpected status %v", payload["status"])
	}
	if payload["api_connected"] != true {
		t.Fatalf("expected api_connected true, got %v", payload["api_connected"])
	}
}

func TestHandleWebSocketEcho(t *testing.T) {
	h, _ := newTestHandler()

	server := httptest.NewServer(http.HandlerFunc(h.HandleWebSocket))
	defer server.Close()

	url := "ws" + strings.TrimPrefix(server.URL, "http") + "/ws/chat"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer conn.Close()

	if err := conn.WriteJSON(chat.Request{Message: "Hola", SessionID: "ws1"}); err != nil {
		t.Fatalf("write: %v", err)
	}

	var reply chat.Reply
	if err := conn.ReadJSON(&reply); err != nil {
		t.Fatalf("read: %v", err)
	}
	if reply.Response != "respuesta de prueba" {
		t.Fatalf("unexpected reply %q", reply.Response)
	}

	if err := conn.WriteJSON(chat.Request{Message: "  ", SessionID: "ws1"}); err != nil {
		t.Fatalf("write: %v", err)
	}
	var wsErr wsError
	if err := conn.ReadJSON(&wsErr); err != nil {
		t.Fatalf("read: %v", err)
	}
	if wsErr.Error != "message is required" {
		t.Fatalf("unexpected error payload %q", wsErr.Error)
	}
}
