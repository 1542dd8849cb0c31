package mocks

import (
	"context"

	"adventure-server/internal/models"
	"adventure-server/internal/service"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// GameService is a testify mock of service.GameService.
type GameService struct {
	mock.Mock
}

var _ service.GameService = (*GameService)(nil)

func (m *GameService) StartOrResumeSession(ctx context.Context, storyID, playerID uuid.UUID) (*service.StartSessionResult, error) {
	args := m.Called(ctx, storyID, playerID)
	res, _ := args.Get(0).(*service.StartSessionResult)
	return res, args.Error(1)
}

func (m *GameService) Navigate(ctx context.Context, sessionID, choiceID, playerID uuid.UUID) (*service.NavigateResult, error) {
	args := m.Called(ctx, sessionID, choiceID, playerID)
	res, _ := args.Get(0).(*service.NavigateResult)
	return res, args.Error(1)
}

func (m *GameService) GetPlayState(ctx context.Context, sessionID, playerID uuid.UUID) (*service.PlayState, error) {
	args := m.Called(ctx, sessionID, playerID)
	res, _ := args.Get(0).(*service.PlayState)
	return res, args.Error(1)
}

func (m *GameService) CollectItem(ctx context.Context, sessionID, playerID uuid.UUID, item string) (*models.GameSession, error) {
	args := m.Called(ctx, sessionID, playerID, item)
	res, _ := args.Get(0).(*models.GameSession)
	return res, args.Error(1)
}

func (m *GameService) RemoveItem(ctx context.Context, sessionID, playerID uuid.UUID, item string) (*models.GameSession, error) {
	args := m.Called(ctx, sessionID, playerID, item)
	res, _ := args.Get(0).(*models.GameSession)
	return res, args.Error(1)
}

func (m *GameService) AbandonSession(ctx context.Context, sessionID, playerID uuid.UUID) (*models.GameSession, error) {
	args := m.Called(ctx, sessionID, playerID)
	res, _ := args.Get(0).(*models.GameSession)
	return res, args.Error(1)
}
