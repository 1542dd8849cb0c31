package service

import (
	"context"
	"errors"
	"fmt"

	"adventure-server/internal/messaging"
	"adventure-server/internal/models"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

func (s *gameServiceImpl) StartOrResumeSession(ctx context.Context, storyID, playerID uuid.UUID) (*StartSessionResult, error) {
	log := s.logger.With(zap.String("storyID", storyID.String()), zap.String("playerID", playerID.String()))

	story, err := s.storyRepo.GetByID(ctx, storyID)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return nil, ErrStoryNotFound
		}
		return nil, fmt.Errorf("failed to load story %s: %w", storyID, err)
	}
	if !story.PlayableBy(playerID) {
		log.Info("Start refused: story is not published and player is not the author")
		return nil, ErrStoryForbidden
	}

	existing, err := s.sessionRepo.GetByPlayerAndStory(ctx, playerID, storyID)
	switch {
	case err == nil && existing.IsActive():
		sessionsResumedTotal.Inc()
		log.Debug("Resuming active session", zap.String("sessionID", existing.ID.String()))
		return &StartSessionResult{SessionID: existing.ID, IsNew: false}, nil
	case err != nil && !errors.Is(err, models.ErrNotFound):
		return nil, fmt.Errorf("failed to look up session: %w", err)
	}

	startScene, err := s.sceneRepo.FindStartScene(ctx, storyID)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			log.Warn("Story has no start scene")
			return nil, ErrStartSceneNotFound
		}
		return nil, fmt.Errorf("failed to load start scene: %w", err)
	}

	now := s.now().UTC()
	session := &models.GameSession{
		ID:             uuid.New(),
		PlayerID:       playerID,
		StoryID:        storyID,
		CurrentSceneID: startScene.ID,
		Status:         models.SessionStatusActive,
		Journal:        startScene.Keywords.Clone(),
		Items:          models.NewKeywordSet(),
		StartedAt:      now,
		UpdatedAt:      now,
	}
	sessionID, applied, err := s.sessionRepo.ResetForPlay(ctx, session)
	if err != nil {
		log.Error("Failed to upsert session", zap.Error(err))
		return nil, persistenceError(err)
	}
	if !applied {
		// A concurrent start activated the row first.
		sessionsResumedTotal.Inc()
		log.Info("Concurrent start detected, resuming", zap.String("sessionID", sessionID.String()))
		return &StartSessionResult{SessionID: sessionID, IsNew: false}, nil
	}

	s.recordVisit(ctx, sessionID, startScene.ID, nil, now)
	s.publishEvent(ctx, messaging.GameEvent{
		Type:       messaging.EventSessionStarted,
		SessionID:  sessionID,
		PlayerID:   playerID,
		StoryID:    storyID,
		SceneID:    startScene.ID,
		OccurredAt: now,
	})
	sessionsStartedTotal.Inc()
	log.Info("Session started", zap.String("sessionID", sessionID.String()))

	return &StartSessionResult{SessionID: sessionID, IsNew: true}, nil
}
