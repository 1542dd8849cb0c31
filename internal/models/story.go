package models

import (
	"time"

	"github.com/google/uuid"
)

// Story is the authored container of scenes and choices. Only the fields the
// gameplay engine reads are mapped here; authoring lives in another service.
type Story struct {
	ID          uuid.UUID `json:"id" db:"id"`
	Title       string    `json:"title" db:"title"`
	Description *string   `json:"description,omitempty" db:"description"`
	AuthorID    uuid.UUID `json:"authorId" db:"author_id"`
	IsPublished bool      `json:"isPublished" db:"is_published"`
	CreatedAt   time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt   time.Time `json:"updatedAt" db:"updated_at"`
}

// PlayableBy reports whether the player may open a session on the story:
// published stories are open to everyone, drafts only to their author.
func (s *Story) PlayableBy(playerID uuid.UUID) bool {
	return s.IsPublished || s.AuthorID == playerID
}

// Scene is a node of the story graph.
type Scene struct {
	ID               uuid.UUID   `json:"id"`
	StoryID          uuid.UUID   `json:"storyId"`
	Title            string      `json:"title"`
	Content          string      `json:"content"`
	IsStart          bool        `json:"isStart"`
	IsEnding         bool        `json:"isEnding"`
	EndingType       *EndingType `json:"endingType,omitempty"`
	Keywords         KeywordSet  `json:"keywords"`         // granted to the journal on arrival
	RequiredKeywords KeywordSet  `json:"requiredKeywords"` // must already be in the journal to enter
	VisualURL        *string     `json:"visualUrl,omitempty"`
	ItemLabels       KeywordSet  `json:"itemLabels"` // items the player may pick up here
	CreatedAt        time.Time   `json:"createdAt"`
	UpdatedAt        time.Time   `json:"updatedAt"`
}

// Choice is a directed, labeled edge between two scenes of the same story.
type Choice struct {
	ID          uuid.UUID `json:"id" db:"id"`
	StoryID     uuid.UUID `json:"storyId" db:"story_id"`
	FromSceneID uuid.UUID `json:"fromSceneId" db:"from_scene_id"`
	ToSceneID   uuid.UUID `json:"toSceneId" db:"to_scene_id"`
	Label       string    `json:"label" db:"label"`
	OrderIndex  int       `json:"orderIndex" db:"order_index"`
	CreatedAt   time.Time `json:"createdAt" db:"created_at"`
}

// SceneWithChoices is a scene together with its outgoing choices sorted by OrderIndex.
type SceneWithChoices struct {
	Scene
	Choices []Choice `json:"choices"`
}
