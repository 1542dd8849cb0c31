package mocks

import (
	"context"

	"adventure-server/internal/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// StoryRepository is a testify mock of interfaces.StoryRepository.
type StoryRepository struct {
	mock.Mock
}

func (m *StoryRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Story, error) {
	args := m.Called(ctx, id)
	story, _ := args.Get(0).(*models.Story)
	return story, args.Error(1)
}

// SceneRepository is a testify mock of interfaces.SceneRepository.
type SceneRepository struct {
	mock.Mock
}

func (m *SceneRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Scene, error) {
	args := m.Called(ctx, id)
	scene, _ := args.Get(0).(*models.Scene)
	return scene, args.Error(1)
}

func (m *SceneRepository) FindStartScene(ctx context.Context, storyID uuid.UUID) (*models.Scene, error) {
	args := m.Called(ctx, storyID)
	scene, _ := args.Get(0).(*models.Scene)
	return scene, args.Error(1)
}

func (m *SceneRepository) ListByIDs(ctx context.Context, ids []uuid.UUID) ([]*models.Scene, error) {
	args := m.Called(ctx, ids)
	scenes, _ := args.Get(0).([]*models.Scene)
	return scenes, args.Error(1)
}

// ChoiceRepository is a testify mock of interfaces.ChoiceRepository.
type ChoiceRepository struct {
	mock.Mock
}

func (m *ChoiceRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Choice, error) {
	args := m.Called(ctx, id)
	choice, _ := args.Get(0).(*models.Choice)
	return choice, args.Error(1)
}

func (m *ChoiceRepository) ListFromScene(ctx context.Context, sceneID uuid.UUID) ([]models.Choice, error) {
	args := m.Called(ctx, sceneID)
	choices, _ := args.Get(0).([]models.Choice)
	return choices, args.Error(1)
}
