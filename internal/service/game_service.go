package service

import (
	"context"
	"time"

	"adventure-server/internal/interfaces"
	"adventure-server/internal/messaging"
	"adventure-server/internal/models"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// GameService is the traversal engine: it opens sessions on stories and moves
// players through the scene graph.
type GameService interface {
	// StartOrResumeSession returns the player's active session on the story or
	// resets their single session row to the start scene.
	StartOrResumeSession(ctx context.Context, storyID, playerID uuid.UUID) (*StartSessionResult, error)

	// Navigate follows choiceID from the session's current scene.
	Navigate(ctx context.Context, sessionID, choiceID, playerID uuid.UUID) (*NavigateResult, error)

	// GetPlayState returns what the player sees for a session in any status.
	GetPlayState(ctx context.Context, sessionID, playerID uuid.UUID) (*PlayState, error)

	// CollectItem adds an item offered by the current scene to the inventory.
	CollectItem(ctx context.Context, sessionID, playerID uuid.UUID, item string) (*models.GameSession, error)

	// RemoveItem drops an item from the inventory.
	RemoveItem(ctx context.Context, sessionID, playerID uuid.UUID, item string) (*models.GameSession, error)

	// AbandonSession ends an active session without an ending.
	AbandonSession(ctx context.Context, sessionID, playerID uuid.UUID) (*models.GameSession, error)
}

type gameServiceImpl struct {
	storyRepo   interfaces.StoryRepository
	sceneRepo   interfaces.SceneRepository
	choiceRepo  interfaces.ChoiceRepository
	sessionRepo interfaces.GameSessionRepository
	visitRepo   interfaces.SceneVisitRepository
	publisher   messaging.EventPublisher
	logger      *zap.Logger
	now         func() time.Time
}

var _ GameService = (*gameServiceImpl)(nil)

// NewGameService wires the engine. A nil publisher disables game events.
func NewGameService(
	storyRepo interfaces.StoryRepository,
	sceneRepo interfaces.SceneRepository,
	choiceRepo interfaces.ChoiceRepository,
	sessionRepo interfaces.GameSessionRepository,
	visitRepo interfaces.SceneVisitRepository,
	publisher messaging.EventPublisher,
	logger *zap.Logger,
) GameService {
	if publisher == nil {
		publisher = messaging.NoopEventPublisher{}
	}
	return &gameServiceImpl{
		storyRepo:   storyRepo,
		sceneRepo:   sceneRepo,
		choiceRepo:  choiceRepo,
		sessionRepo: sessionRepo,
		visitRepo:   visitRepo,
		publisher:   publisher,
		logger:      logger.Named("GameService"),
		now:         time.Now,
	}
}

// recordVisit appends the audit row. Failures are logged and swallowed.
func (s *gameServiceImpl) recordVisit(ctx context.Context, sessionID, sceneID uuid.UUID, choiceID *uuid.UUID, at time.Time) {
	visit := &models.SceneVisit{
		ID:        uuid.New(),
		SessionID: sessionID,
		SceneID:   sceneID,
		ChoiceID:  choiceID,
		VisitedAt: at,
	}
	if err := s.visitRepo.Append(ctx, visit); err != nil {
		visitAuditFailuresTotal.Inc()
		s.logger.Warn("Failed to record scene visit",
			zap.String("sessionID", sessionID.String()),
			zap.String("sceneID", sceneID.String()),
			zap.Error(err),
		)
	}
}

// publishEvent sends a game event. Failures are logged and swallowed.
func (s *gameServiceImpl) publishEvent(ctx context.Context, event messaging.GameEvent) {
	if err := s.publisher.PublishGameEvent(ctx, event); err != nil {
		eventPublishFailuresTotal.Inc()
		s.logger.Warn("Failed to publish game event",
			zap.String("type", string(event.Type)),
			zap.String("sessionID", event.SessionID.String()),
			zap.Error(err),
		)
	}
}
