package chat

import "time"

// Request is the inbound payload for POST /chat. SessionID may be empty,
// in which case the handler falls back to the shared "default" session.
type Request struct {
	Message   string `json:"message"`
	SessionID string `json:"session_id"`
}

// Reply carries the generated answer back to the widget.
type Reply struct {
	Response  string `json:"response"`
	SessionID string `json:"session_id"`
}

// Turn is one completed exchange: the user message and the bot reply.
type Turn struct {
	ID        string    `json:"id"`
	User      string    `json:"user"`
	Bot       string    `json:"bot"`
	CreatedAt time.Time `json:"createdAt"`
}
