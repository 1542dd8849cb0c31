package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"adventure-server/internal/models"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

func (s *gameServiceImpl) CollectItem(ctx context.Context, sessionID, playerID uuid.UUID, item string) (*models.GameSession, error) {
	item = strings.TrimSpace(item)
	if item == "" {
		return nil, ErrInvalidItem
	}
	session, err := s.loadActive(ctx, sessionID, playerID)
	if err != nil {
		return nil, err
	}

	scene, err := s.sceneRepo.GetByID(ctx, session.CurrentSceneID)
	if err != nil {
		return nil, fmt.Errorf("failed to load current scene %s: %w", session.CurrentSceneID, err)
	}
	if !scene.ItemLabels.Contains(item) {
		return nil, ErrItemNotOffered
	}
	if session.Items.Contains(item) {
		return session, nil
	}

	items := session.Items.Clone()
	items.Add(item)
	return s.replaceItems(ctx, session, items)
}

func (s *gameServiceImpl) RemoveItem(ctx context.Context, sessionID, playerID uuid.UUID, item string) (*models.GameSession, error) {
	item = strings.TrimSpace(item)
	if item == "" {
		return nil, ErrInvalidItem
	}
	session, err := s.loadActive(ctx, sessionID, playerID)
	if err != nil {
		return nil, err
	}
	if !session.Items.Contains(item) {
		return session, nil
	}

	items := session.Items.Clone()
	items.Remove(item)
	return s.replaceItems(ctx, session, items)
}

func (s *gameServiceImpl) loadActive(ctx context.Context, sessionID, playerID uuid.UUID) (*models.GameSession, error) {
	session, err := s.sessionRepo.GetOwnedActive(ctx, sessionID, playerID)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return nil, ErrSessionNotFound
		}
		return nil, fmt.Errorf("failed to load session: %w", err)
	}
	return session, nil
}

// replaceItems writes items only if the stored inventory still equals session.Items.
func (s *gameServiceImpl) replaceItems(ctx context.Context, session *models.GameSession, items models.KeywordSet) (*models.GameSession, error) {
	updated, err := s.sessionRepo.ReplaceItems(ctx, session.ID, session.PlayerID, session.Items, items)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			s.logger.Warn("Inventory changed concurrently", zap.String("sessionID", session.ID.String()))
			return nil, ErrPersistenceFailure
		}
		return nil, persistenceError(err)
	}
	return updated, nil
}
