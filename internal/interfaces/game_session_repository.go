package interfaces

import (
	"context"
	"time"

	"adventure-server/internal/models"

	"github.com/google/uuid"
)

// GameSessionRepository persists player sessions. Every mutating method is a
// single conditional statement scoped by session id and owner.
//
//go:generate mockery --name GameSessionRepository --output ./mocks --outpkg mocks --case=underscore
type GameSessionRepository interface {
	// GetByPlayerAndStory returns the session for the pair regardless of status,
	// or models.ErrNotFound.
	GetByPlayerAndStory(ctx context.Context, playerID, storyID uuid.UUID) (*models.GameSession, error)

	// GetOwned returns the session if it belongs to playerID, whatever its status.
	// Returns models.ErrNotFound otherwise.
	GetOwned(ctx context.Context, sessionID, playerID uuid.UUID) (*models.GameSession, error)

	// GetOwnedActive is GetOwned restricted to active sessions.
	GetOwnedActive(ctx context.Context, sessionID, playerID uuid.UUID) (*models.GameSession, error)

	// ResetForPlay creates the (player, story) session or resets a finished one
	// to the given start state in a single upsert. When the existing row is still
	// active nothing is written and applied is false; id is then the active row.
	ResetForPlay(ctx context.Context, session *models.GameSession) (id uuid.UUID, applied bool, err error)

	// ApplyTransition performs the conditional navigation update and returns the
	// updated row. Returns models.ErrNotFound when the condition did not match.
	ApplyTransition(ctx context.Context, t models.SessionTransition) (*models.GameSession, error)

	// ReplaceItems overwrites the item set of an active owned session while its
	// current items still equal expected. Returns models.ErrNotFound otherwise.
	ReplaceItems(ctx context.Context, sessionID, playerID uuid.UUID, expected, items models.KeywordSet) (*models.GameSession, error)

	// MarkAbandoned moves an active owned session to abandoned.
	// Returns models.ErrNotFound when nothing was updated.
	MarkAbandoned(ctx context.Context, sessionID, playerID uuid.UUID, at time.Time) (*models.GameSession, error)
}

// SceneVisitRepository appends and counts audit records.
type SceneVisitRepository interface {
	Append(ctx context.Context, visit *models.SceneVisit) error

	// CountSince counts the visits of a session recorded at or after since.
	CountSince(ctx context.Context, sessionID uuid.UUID, since time.Time) (int, error)
}
