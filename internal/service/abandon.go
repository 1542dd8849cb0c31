package service

import (
	"context"
	"errors"

	"adventure-server/internal/messaging"
	"adventure-server/internal/models"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

func (s *gameServiceImpl) AbandonSession(ctx context.Context, sessionID, playerID uuid.UUID) (*models.GameSession, error) {
	now := s.now().UTC()
	session, err := s.sessionRepo.MarkAbandoned(ctx, sessionID, playerID, now)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return nil, ErrSessionNotFound
		}
		return nil, persistenceError(err)
	}

	s.publishEvent(ctx, messaging.GameEvent{
		Type:       messaging.EventSessionAbandoned,
		SessionID:  session.ID,
		PlayerID:   session.PlayerID,
		StoryID:    session.StoryID,
		SceneID:    session.CurrentSceneID,
		OccurredAt: now,
	})
	sessionsAbandonedTotal.Inc()
	s.logger.Info("Session abandoned", zap.String("sessionID", sessionID.String()), zap.String("playerID", playerID.String()))
	return session, nil
}
