package ws

import (
	"encoding/json"
	"time"
)

// MessageType constants for the event stream protocol.
const (
	// Client -> Server
	TypePing = "ping"

	// Server -> Client
	TypeHello               = "hello"
	TypeQuestion            = "question"
	TypeCorrect             = "correct"
	TypeWrong               = "wrong"
	TypeTimeout             = "timeout"
	TypeGameOver            = "game_over"
	TypeLevelUp             = "level_up"
	TypeAchievementUnlocked = "achievement_unlocked"
	TypePong                = "pong"
	TypeError               = "error"
)

// Message wraps all WebSocket payloads with type and optional request ID.
type Message struct {
	Type      string          `json:"type"`
	Payload   json.RawMessage `json:"payload"`
	RequestID string          `json:"request_id,omitempty"`
}

// NewMessage marshals payload into a typed message.
func NewMessage(msgType string, payload any) (Message, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return Message{}, err
	}
	return Message{Type: msgType, Payload: raw}, nil
}

// HelloPayload greets a freshly connected client.
type HelloPayload struct {
	ConnectionID string    `json:"connection_id"`
	ServerTime   time.Time `json:"server_time"`
}

// ErrorPayload reports a protocol problem to the client.
type ErrorPayload struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
