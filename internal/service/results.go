package service

import (
	"adventure-server/internal/models"

	"github.com/google/uuid"
)

type StartSessionResult struct {
	SessionID uuid.UUID `json:"sessionId"`
	IsNew     bool      `json:"isNew"`
}

type NavigateResult struct {
	Session  *models.GameSession     `json:"session"`
	Scene    models.SceneWithChoices `json:"scene"`
	IsEnding bool                    `json:"isEnding"`
}

// ChoiceView is a choice as shown to the player. Locked choices cannot be
// taken until MissingKeywords are in the journal.
type ChoiceView struct {
	models.Choice
	Locked          bool     `json:"locked"`
	MissingKeywords []string `json:"missingKeywords"`
}

// PlayState is the screen for one session: the current scene, its choices
// with lock info, and the ending once the session is completed.
type PlayState struct {
	Session        *models.GameSession        `json:"session"`
	Story          *models.Story              `json:"story"`
	Scene          *models.Scene              `json:"scene"`
	Choices        []ChoiceView               `json:"choices"`
	AvailableItems []string                   `json:"availableItems"`
	VisitCount     int                        `json:"visitCount"`
	Ending         *models.EndingPresentation `json:"ending,omitempty"`
}
