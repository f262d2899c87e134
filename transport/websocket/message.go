package websocket

import (
	"encoding/json"

	"github.com/rocketscienceinc/tictactoe-board/internal/entity"
)

const (
	actionGameState = "game:state"
	actionGameNew   = "game:new"
	actionGameTurn  = "game:turn"
	actionError     = "error"
)

// Message is the envelope of every frame in both directions.
type Message struct {
	Action  string          `json:"action"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// RequestPayload carries the arguments of an action. SessionID falls back to the
// session cookie of the upgrade request.
type RequestPayload struct {
	SessionID string `json:"session_id,omitempty"`
	Dimension int    `json:"dimension,omitempty"`
	Row       *int   `json:"row,omitempty"`
	Col       *int   `json:"col,omitempty"`
}

type ResponsePayload struct {
	SessionID string       `json:"session_id,omitempty"`
	Game      *entity.Game `json:"game,omitempty"`
	Accepted  *bool        `json:"accepted,omitempty"`
	Error     string       `json:"error,omitempty"`
}

func newMessage(action string, payload ResponsePayload) (*Message, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	return &Message{Action: action, Payload: raw}, nil
}
