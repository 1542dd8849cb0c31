package repository

import (
	"context"
	"fmt"

	"adventure-server/internal/interfaces"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// RevokedTokenKeyPrefix is the key namespace the auth service writes revoked
// access token ids under. Keys expire together with the token.
const RevokedTokenKeyPrefix = "revoked_jti:"

// Compile-time check to ensure redisRevocationRepository implements the interface
var _ interfaces.TokenRevocationRepository = (*redisRevocationRepository)(nil)

type redisRevocationRepository struct {
	client *redis.Client
	logger *zap.Logger
}

// NewRedisRevocationRepository creates a Redis-backed TokenRevocationRepository.
func NewRedisRevocationRepository(client *redis.Client, logger *zap.Logger) interfaces.TokenRevocationRepository {
	return &redisRevocationRepository{
		client: client,
		logger: logger.Named("RedisRevocationRepo"),
	}
}

func (r *redisRevocationRepository) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	if tokenID == "" {
		return false, nil
	}
	key := RevokedTokenKeyPrefix + tokenID
	n, err := r.client.Exists(ctx, key).Result()
	if err != nil {
		r.logger.Error("Failed to check token revocation in redis", zap.String("key", key), zap.Error(err))
		return false, fmt.Errorf("failed to check token revocation: %w", err)
	}
	return n > 0, nil
}
