package service

import (
	"context"
	"errors"
	"fmt"

	"adventure-server/internal/models"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

func (s *gameServiceImpl) GetPlayState(ctx context.Context, sessionID, playerID uuid.UUID) (*PlayState, error) {
	session, err := s.sessionRepo.GetOwned(ctx, sessionID, playerID)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return nil, ErrSessionNotFound
		}
		return nil, fmt.Errorf("failed to load session: %w", err)
	}

	story, err := s.storyRepo.GetByID(ctx, session.StoryID)
	if err != nil {
		return nil, fmt.Errorf("failed to load story %s: %w", session.StoryID, err)
	}
	scene, err := s.sceneRepo.GetByID(ctx, session.CurrentSceneID)
	if err != nil {
		return nil, fmt.Errorf("failed to load current scene %s: %w", session.CurrentSceneID, err)
	}

	views := []ChoiceView{}
	if !scene.IsEnding {
		views, err = s.choiceViews(ctx, scene.ID, session.Journal)
		if err != nil {
			return nil, err
		}
	}

	visits, err := s.visitRepo.CountSince(ctx, session.ID, session.StartedAt)
	if err != nil {
		s.logger.Warn("Failed to count visits", zap.String("sessionID", session.ID.String()), zap.Error(err))
		visits = 0
	}

	state := &PlayState{
		Session:        session,
		Story:          story,
		Scene:          scene,
		Choices:        views,
		AvailableItems: scene.ItemLabels.Difference(session.Items).Values(),
		VisitCount:     visits,
	}
	if session.Status == models.SessionStatusCompleted {
		ending := models.ClassifyEnding(scene.EndingType)
		state.Ending = &ending
	}
	return state, nil
}

// choiceViews annotates the scene's choices with the keywords each destination
// still requires. A choice whose destination is gone is shown as locked.
func (s *gameServiceImpl) choiceViews(ctx context.Context, sceneID uuid.UUID, journal models.KeywordSet) ([]ChoiceView, error) {
	choices, err := s.choiceRepo.ListFromScene(ctx, sceneID)
	if err != nil {
		return nil, fmt.Errorf("failed to load choices of scene %s: %w", sceneID, err)
	}
	if len(choices) == 0 {
		return []ChoiceView{}, nil
	}

	destIDs := make([]uuid.UUID, 0, len(choices))
	for _, c := range choices {
		destIDs = append(destIDs, c.ToSceneID)
	}
	dests, err := s.sceneRepo.ListByIDs(ctx, destIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to load destination scenes: %w", err)
	}
	byID := make(map[uuid.UUID]*models.Scene, len(dests))
	for _, d := range dests {
		byID[d.ID] = d
	}

	views := make([]ChoiceView, 0, len(choices))
	for _, c := range choices {
		view := ChoiceView{Choice: c, MissingKeywords: []string{}}
		dest, ok := byID[c.ToSceneID]
		if !ok {
			view.Locked = true
		} else if missing := ComputeMissingKeywords(dest.RequiredKeywords, journal); !missing.IsEmpty() {
			view.Locked = true
			view.MissingKeywords = missing.Values()
		}
		views = append(views, view)
	}
	return views, nil
}
