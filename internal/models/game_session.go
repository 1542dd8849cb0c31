package models

import (
	"time"

	"github.com/google/uuid"
)

// SessionStatus mirrors the session_status enum in the database.
type SessionStatus string

const (
	SessionStatusActive    SessionStatus = "active"
	SessionStatusCompleted SessionStatus = "completed"
	SessionStatusAbandoned SessionStatus = "abandoned"
)

func (s SessionStatus) IsValid() bool {
	switch s {
	case SessionStatusActive, SessionStatusCompleted, SessionStatusAbandoned:
		return true
	}
	return false
}

// GameSession is one player's traversal state through one story.
// There is at most one row per (PlayerID, StoryID); replaying resets it.
type GameSession struct {
	ID             uuid.UUID     `json:"id"`
	PlayerID       uuid.UUID     `json:"playerId"`
	StoryID        uuid.UUID     `json:"storyId"`
	CurrentSceneID uuid.UUID     `json:"currentSceneId"`
	Status         SessionStatus `json:"status"`
	Journal        KeywordSet    `json:"journal"`
	Items          KeywordSet    `json:"items"`
	StartedAt      time.Time     `json:"startedAt"`
	CompletedAt    *time.Time    `json:"completedAt,omitempty"`
	UpdatedAt      time.Time     `json:"updatedAt"`
}

func (s *GameSession) IsActive() bool {
	return s.Status == SessionStatusActive
}

// SessionTransition is the conditional update produced by a navigation step.
// It applies only while the row still matches ID, PlayerID, an active status
// and ExpectedSceneID.
type SessionTransition struct {
	SessionID       uuid.UUID
	PlayerID        uuid.UUID
	ExpectedSceneID uuid.UUID
	NextSceneID     uuid.UUID
	Status          SessionStatus
	Journal         KeywordSet
	CompletedAt     *time.Time
}

// SceneVisit is an append-only audit record of one scene entry. ChoiceID is nil
// for the visit created when a session starts.
type SceneVisit struct {
	ID        uuid.UUID  `json:"id" db:"id"`
	SessionID uuid.UUID  `json:"sessionId" db:"session_id"`
	SceneID   uuid.UUID  `json:"sceneId" db:"scene_id"`
	ChoiceID  *uuid.UUID `json:"choiceId,omitempty" db:"choice_id"`
	VisitedAt time.Time  `json:"visitedAt" db:"visited_at"`
}
