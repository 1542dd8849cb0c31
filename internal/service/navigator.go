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

// Navigate validates the move, then persists it with a write conditioned on
// the session still sitting on the scene the choice leaves from. Validation
// failures never write.
func (s *gameServiceImpl) Navigate(ctx context.Context, sessionID, choiceID, playerID uuid.UUID) (*NavigateResult, error) {
	log := s.logger.With(
		zap.String("sessionID", sessionID.String()),
		zap.String("choiceID", choiceID.String()),
		zap.String("playerID", playerID.String()),
	)

	session, err := s.sessionRepo.GetOwnedActive(ctx, sessionID, playerID)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			navigationsTotal.WithLabelValues("session_not_found").Inc()
			return nil, ErrSessionNotFound
		}
		return nil, fmt.Errorf("failed to load session: %w", err)
	}

	choice, err := s.choiceRepo.GetByID(ctx, choiceID)
	if err != nil && !errors.Is(err, models.ErrNotFound) {
		return nil, fmt.Errorf("failed to load choice: %w", err)
	}
	if err != nil || choice.FromSceneID != session.CurrentSceneID {
		navigationsTotal.WithLabelValues("invalid_choice").Inc()
		log.Info("Choice does not leave the current scene", zap.String("currentSceneID", session.CurrentSceneID.String()))
		return nil, ErrInvalidChoice
	}

	dest, err := s.sceneRepo.GetByID(ctx, choice.ToSceneID)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			navigationsTotal.WithLabelValues("destination_not_found").Inc()
			log.Error("Choice points to a missing scene", zap.String("toSceneID", choice.ToSceneID.String()))
			return nil, ErrDestinationNotFound
		}
		return nil, fmt.Errorf("failed to load destination scene: %w", err)
	}

	if missing := ComputeMissingKeywords(dest.RequiredKeywords, session.Journal); !missing.IsEmpty() {
		navigationsTotal.WithLabelValues("missing_keywords").Inc()
		log.Info("Destination gated", zap.Strings("missing", missing.Values()))
		return nil, &MissingKeywordsError{Missing: missing.Values()}
	}

	now := s.now().UTC()
	transition := models.SessionTransition{
		SessionID:       session.ID,
		PlayerID:        playerID,
		ExpectedSceneID: session.CurrentSceneID,
		NextSceneID:     dest.ID,
		Status:          models.SessionStatusActive,
		Journal:         MergeJournal(session.Journal, dest.Keywords),
	}
	if dest.IsEnding {
		transition.Status = models.SessionStatusCompleted
		transition.CompletedAt = &now
	}

	updated, err := s.sessionRepo.ApplyTransition(ctx, transition)
	if err != nil {
		navigationsTotal.WithLabelValues("persistence_failure").Inc()
		if errors.Is(err, models.ErrNotFound) {
			log.Warn("Session changed concurrently, transition not applied")
			return nil, ErrPersistenceFailure
		}
		log.Error("Failed to persist transition", zap.Error(err))
		return nil, persistenceError(err)
	}

	s.recordVisit(ctx, session.ID, dest.ID, &choice.ID, now)

	choices := []models.Choice{}
	if !dest.IsEnding {
		next, err := s.choiceRepo.ListFromScene(ctx, dest.ID)
		if err != nil {
			return nil, fmt.Errorf("transition saved but failed to load choices of scene %s: %w", dest.ID, err)
		}
		if next != nil {
			choices = next
		}
	}

	if dest.IsEnding {
		ending := models.ClassifyEnding(dest.EndingType)
		endingsReachedTotal.WithLabelValues(string(ending.Type)).Inc()
		s.publishEvent(ctx, messaging.GameEvent{
			Type:       messaging.EventSessionCompleted,
			SessionID:  session.ID,
			PlayerID:   playerID,
			StoryID:    session.StoryID,
			SceneID:    dest.ID,
			EndingType: string(ending.Type),
			OccurredAt: now,
		})
		log.Info("Session completed", zap.String("endingType", string(ending.Type)))
	}
	navigationsTotal.WithLabelValues("success").Inc()

	return &NavigateResult{
		Session:  updated,
		Scene:    models.SceneWithChoices{Scene: *dest, Choices: choices},
		IsEnding: dest.IsEnding,
	}, nil
}
