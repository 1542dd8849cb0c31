package mocks

import (
	"context"
	"time"

	"adventure-server/internal/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// GameSessionRepository is a testify mock of interfaces.GameSessionRepository.
type GameSessionRepository struct {
	mock.Mock
}

func (m *GameSessionRepository) GetByPlayerAndStory(ctx context.Context, playerID, storyID uuid.UUID) (*models.GameSession, error) {
	args := m.Called(ctx, playerID, storyID)
	session, _ := args.Get(0).(*models.GameSession)
	return session, args.Error(1)
}

func (m *GameSessionRepository) GetOwned(ctx context.Context, sessionID, playerID uuid.UUID) (*models.GameSession, error) {
	args := m.Called(ctx, sessionID, playerID)
	session, _ := args.Get(0).(*models.GameSession)
	return session, args.Error(1)
}

func (m *GameSessionRepository) GetOwnedActive(ctx context.Context, sessionID, playerID uuid.UUID) (*models.GameSession, error) {
	args := m.Called(ctx, sessionID, playerID)
	session, _ := args.Get(0).(*models.GameSession)
	return session, args.Error(1)
}

func (m *GameSessionRepository) ResetForPlay(ctx context.Context, session *models.GameSession) (uuid.UUID, bool, error) {
	args := m.Called(ctx, session)
	id, _ := args.Get(0).(uuid.UUID)
	return id, args.Bool(1), args.Error(2)
}

func (m *GameSessionRepository) ApplyTransition(ctx context.Context, t models.SessionTransition) (*models.GameSession, error) {
	args := m.Called(ctx, t)
	session, _ := args.Get(0).(*models.GameSession)
	return session, args.Error(1)
}

func (m *GameSessionRepository) ReplaceItems(ctx context.Context, sessionID, playerID uuid.UUID, expected, items models.KeywordSet) (*models.GameSession, error) {
	args := m.Called(ctx, sessionID, playerID, expected, items)
	session, _ := args.Get(0).(*models.GameSession)
	return session, args.Error(1)
}

func (m *GameSessionRepository) MarkAbandoned(ctx context.Context, sessionID, playerID uuid.UUID, at time.Time) (*models.GameSession, error) {
	args := m.Called(ctx, sessionID, playerID, at)
	session, _ := args.Get(0).(*models.GameSession)
	return session, args.Error(1)
}

// SceneVisitRepository is a testify mock of interfaces.SceneVisitRepository.
type SceneVisitRepository struct {
	mock.Mock
}

func (m *SceneVisitRepository) Append(ctx context.Context, visit *models.SceneVisit) error {
	args := m.Called(ctx, visit)
	return args.Error(0)
}

func (m *SceneVisitRepository) CountSince(ctx context.Context, sessionID uuid.UUID, since time.Time) (int, error) {
	args := m.Called(ctx, sessionID, since)
	return args.Int(0), args.Error(1)
}

// TokenRevocationRepository is a testify mock of interfaces.TokenRevocationRepository.
type TokenRevocationRepository struct {
	mock.Mock
}

func (m *TokenRevocationRepository) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	args := m.Called(ctx, tokenID)
	return args.Bool(0), args.Error(1)
}
