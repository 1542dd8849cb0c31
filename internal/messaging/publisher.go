package messaging

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
)

const publishTimeout = 5 * time.Second

// EventPublisher publishes game lifecycle events.
type EventPublisher interface {
	PublishGameEvent(ctx context.Context, event GameEvent) error
}

// RabbitMQEventPublisher publishes to a durable queue through the default exchange.
type RabbitMQEventPublisher struct {
	mu        sync.Mutex
	channel   *amqp.Channel
	queueName string
	appID     string
	logger    *zap.Logger
}

var _ EventPublisher = (*RabbitMQEventPublisher)(nil)

// NewRabbitMQEventPublisher opens a channel on conn and declares queueName.
func NewRabbitMQEventPublisher(conn *amqp.Connection, queueName string, logger *zap.Logger) (*RabbitMQEventPublisher, error) {
	ch, err := conn.Channel()
	if err != nil {
		return nil, fmt.Errorf("event publisher: failed to open channel: %w", err)
	}
	if _, err = ch.QueueDeclare(queueName, true, false, false, false, nil); err != nil {
		ch.Close()
		return nil, fmt.Errorf("event publisher: failed to declare queue '%s': %w", queueName, err)
	}
	logger = logger.Named("EventPublisher")
	logger.Info("Game events queue declared", zap.String("queue", queueName))
	return &RabbitMQEventPublisher{
		channel:   ch,
		queueName: queueName,
		appID:     "adventure-server",
		logger:    logger,
	}, nil
}

// PublishGameEvent sends one persistent JSON message. EventID and OccurredAt
// are filled when empty. There is a single attempt; callers treat failures as
// best-effort.
func (p *RabbitMQEventPublisher) PublishGameEvent(ctx context.Context, event GameEvent) error {
	if event.EventID == "" {
		event.EventID = uuid.NewString()
	}
	if event.OccurredAt.IsZero() {
		event.OccurredAt = time.Now().UTC()
	}
	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal game event %s: %w", event.Type, err)
	}
	if err := p.publishMessage(ctx, event.EventID, body); err != nil {
		p.logger.Warn("Failed to publish game event",
			zap.String("type", string(event.Type)),
			zap.String("sessionID", event.SessionID.String()),
			zap.Error(err),
		)
		return fmt.Errorf("failed to publish game event %s: %w", event.Type, err)
	}
	p.logger.Debug("Game event published",
		zap.String("type", string(event.Type)),
		zap.String("sessionID", event.SessionID.String()),
	)
	return nil
}

func (p *RabbitMQEventPublisher) publishMessage(ctx context.Context, messageID string, body []byte) error {
	if p.channel == nil {
		return errors.New("rabbitmq channel is not initialized")
	}
	ctx, cancel := context.WithTimeout(ctx, publishTimeout)
	defer cancel()

	p.mu.Lock()
	defer p.mu.Unlock()
	return p.channel.PublishWithContext(ctx,
		"",          // default exchange
		p.queueName, // routing key
		false,       // mandatory
		false,       // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			MessageId:    messageID,
			Body:         body,
			Timestamp:    time.Now(),
			AppId:        p.appID,
		},
	)
}

// Close closes the publisher's channel.
func (p *RabbitMQEventPublisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.channel == nil {
		return nil
	}
	err := p.channel.Close()
	p.channel = nil
	return err
}

// NoopEventPublisher drops events; used when no broker is configured.
type NoopEventPublisher struct{}

func (NoopEventPublisher) PublishGameEvent(context.Context, GameEvent) error { return nil }

// Dial connects to RabbitMQ, retrying maxRetries times with retryDelay between attempts.
func Dial(ctx context.Context, url string, maxRetries int, retryDelay time.Duration, logger *zap.Logger) (*amqp.Connection, error) {
	var lastErr error
	for attempt := 1; attempt <= maxRetries; attempt++ {
		conn, err := amqp.Dial(url)
		if err == nil {
			return conn, nil
		}
		lastErr = err
		logger.Warn("Failed to connect to RabbitMQ",
			zap.Int("attempt", attempt),
			zap.Int("max_attempts", maxRetries),
			zap.Duration("retry_delay", retryDelay),
			zap.Error(err),
		)
		if attempt == maxRetries {
			break
		}
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(retryDelay):
		}
	}
	return nil, fmt.Errorf("rabbitmq unreachable after %d attempts: %w", maxRetries, lastErr)
}
