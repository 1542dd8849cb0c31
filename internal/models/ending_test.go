package models_test

import (
	"testing"

	"adventure-server/internal/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestClassifyEnding(t *testing.T) {
	victory := models.EndingVictory
	defeat := models.EndingDefeat
	neutral := models.EndingNeutral
	unknown := models.EndingType("stalemate")

	tests := []struct {
		name  string
		input *models.EndingType
		want  models.EndingType
		title string
	}{
		{"victory", &victory, models.EndingVictory, "Victory!"},
		{"defeat", &defeat, models.EndingDefeat, "Defeat..."},
		{"neutral", &neutral, models.EndingNeutral, "The End"},
		{"nil defaults to neutral", nil, models.EndingNeutral, "The End"},
		{"unknown defaults to neutral", &unknown, models.EndingNeutral, "The End"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := models.ClassifyEnding(tt.input)
			assert.Equal(t, tt.want, got.Type)
			assert.Equal(t, tt.title, got.Title)
			assert.NotEmpty(t, got.Message)
			assert.NotEmpty(t, got.Icon)
		})
	}
}

func TestStoryPlayableBy(t *testing.T) {
	author := uuid.New()
	other := uuid.New()

	draft := &models.Story{AuthorID: author, IsPublished: false}
	assert.True(t, draft.PlayableBy(author))
	assert.False(t, draft.PlayableBy(other))

	published := &models.Story{AuthorID: author, IsPublished: true}
	assert.True(t, published.PlayableBy(other))
}

func TestEndingTypeIsValid(t *testing.T) {
	for _, v := range []models.EndingType{models.EndingVictory, models.EndingDefeat, models.EndingNeutral} {
		assert.True(t, v.IsValid(), v)
	}
	assert.False(t, models.EndingType("stalemate").IsValid())
	assert.False(t, models.EndingType("").IsValid())
}

func TestSessionStatusIsValid(t *testing.T) {
	for _, v := range []models.SessionStatus{models.SessionStatusActive, models.SessionStatusCompleted, models.SessionStatusAbandoned} {
		assert.True(t, v.IsValid(), v)
	}
	assert.False(t, models.SessionStatus("paused").IsValid())
}
