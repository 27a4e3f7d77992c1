package events

import (
	"time"

	"github.com/google/uuid"

	"github.com/gokatarajesh/timerift/internal/progression"
	"github.com/gokatarajesh/timerift/internal/question"
	"github.com/gokatarajesh/timerift/internal/session"
	ws "github.com/gokatarajesh/timerift/pkg/http/ws"
)

// Kind names a notification. Values double as websocket message types.
type Kind string

const (
	KindQuestion    Kind = ws.TypeQuestion
	KindCorrect     Kind = ws.TypeCorrect
	KindWrong       Kind = ws.TypeWrong
	KindTimeout     Kind = ws.TypeTimeout
	KindGameOver    Kind = ws.TypeGameOver
	KindLevelUp     Kind = ws.TypeLevelUp
	KindAchievement Kind = ws.TypeAchievementUnlocked
)

// Event is a fire-and-forget notification for presentation collaborators.
type Event struct {
	ID          uuid.UUID                `json:"id"`
	Kind        Kind                     `json:"kind"`
	SessionID   uuid.UUID                `json:"session_id"`
	At          time.Time                `json:"at"`
	Question    *question.View           `json:"question,omitempty"`
	Result      *session.Result          `json:"result,omitempty"`
	Stats       *session.Stats           `json:"stats,omitempty"`
	Level       int                      `json:"level,omitempty"`
	Achievement *progression.Achievement `json:"achievement,omitempty"`
}

// New stamps an event with an id and time.
func New(kind Kind, sessionID uuid.UUID) Event {
	return Event{
		ID:        uuid.New(),
		Kind:      kind,
		SessionID: sessionID,
		At:        time.Now().UTC(),
	}
}

// Emitter accepts events without blocking.
type Emitter interface {
	Emit(evt Event) bool
}

// Discard drops every event.
type Discard struct{}

func (Discard) Emit(Event) bool { return true }
