package mocks

import (
	"context"

	"adventure-server/internal/messaging"

	"github.com/stretchr/testify/mock"
)

// EventPublisher is a testify mock of messaging.EventPublisher.
type EventPublisher struct {
	mock.Mock
}

func (m *EventPublisher) PublishGameEvent(ctx context.Context, event messaging.GameEvent) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}
