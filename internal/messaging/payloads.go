package messaging

import (
	"time"

	"github.com/google/uuid"
)

type GameEventType string

const (
	EventSessionStarted   GameEventType = "session.started"
	EventSessionCompleted GameEventType = "session.completed"
	EventSessionAbandoned GameEventType = "session.abandoned"
)

// GameEvent is the JSON message published on the game events queue.
type GameEvent struct {
	EventID    string        `json:"event_id"`
	Type       GameEventType `json:"type"`
	SessionID  uuid.UUID     `json:"session_id"`
	PlayerID   uuid.UUID     `json:"player_id"`
	StoryID    uuid.UUID     `json:"story_id"`
	SceneID    uuid.UUID     `json:"scene_id"`
	EndingType string        `json:"ending_type,omitempty"` // session.completed only
	OccurredAt time.Time     `json:"occurred_at"`
}
