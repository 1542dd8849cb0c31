package interfaces

import (
	"context"

	"adventure-server/internal/models"

	"github.com/google/uuid"
)

// StoryRepository gives read access to authored stories.
type StoryRepository interface {
	// GetByID returns models.ErrNotFound if the story does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*models.Story, error)
}

// SceneRepository gives read access to the scenes of a story graph.
type SceneRepository interface {
	// GetByID returns models.ErrNotFound if the scene does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*models.Scene, error)

	// FindStartScene returns the scene flagged as start for the story,
	// or models.ErrNotFound when the story has none.
	FindStartScene(ctx context.Context, storyID uuid.UUID) (*models.Scene, error)

	// ListByIDs returns the scenes that exist among ids, in no particular order.
	ListByIDs(ctx context.Context, ids []uuid.UUID) ([]*models.Scene, error)
}

// ChoiceRepository gives read access to the edges of a story graph.
type ChoiceRepository interface {
	// GetByID returns models.ErrNotFound if the choice does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*models.Choice, error)

	// ListFromScene returns the outgoing choices of a scene ordered by order_index.
	// Returns an empty slice when there are none.
	ListFromScene(ctx context.Context, sceneID uuid.UUID) ([]models.Choice, error)
}
