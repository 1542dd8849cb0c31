package middleware

import (
	"net/http"
	"time"

	"adventure-server/internal/models"

	ratelimit "github.com/JGLTechnologies/gin-rate-limit"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// RateLimitConfig allows Limit requests per Rate window for each key.
type RateLimitConfig struct {
	Rate  time.Duration
	Limit uint
}

// RedisRateLimiter limits requests per authenticated player, falling back to
// the client IP. It must run after Auth to see the player.
func RedisRateLimiter(client *redis.Client, cfg RateLimitConfig, logger *zap.Logger) gin.HandlerFunc {
	store := ratelimit.RedisStore(&ratelimit.RedisOptions{
		RedisClient: client,
		Rate:        cfg.Rate,
		Limit:       cfg.Limit,
	})
	return newRateLimiter(store, logger)
}

// InMemoryRateLimiter is the single-instance variant, used when no shared
// store is configured and in tests.
func InMemoryRateLimiter(cfg RateLimitConfig, logger *zap.Logger) gin.HandlerFunc {
	store := ratelimit.InMemoryStore(&ratelimit.InMemoryOptions{
		Rate:  cfg.Rate,
		Limit: cfg.Limit,
	})
	return newRateLimiter(store, logger)
}

func newRateLimiter(store ratelimit.Store, logger *zap.Logger) gin.HandlerFunc {
	logger = logger.Named("RateLimiter")
	return ratelimit.RateLimiter(store, &ratelimit.Options{
		ErrorHandler: func(c *gin.Context, info ratelimit.Info) {
			rateLimitedTotal.Inc()
			logger.Warn("Rate limit exceeded",
				zap.String("key", rateLimitKey(c)),
				zap.String("path", c.Request.URL.Path),
				zap.Time("resetTime", info.ResetTime),
			)
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"error": "Too many requests. Try again in " + time.Until(info.ResetTime).Round(time.Second).String(),
			})
		},
		KeyFunc: rateLimitKey,
	})
}

func rateLimitKey(c *gin.Context) string {
	if userID, ok := models.GetUserIDFromContext(c.Request.Context()); ok {
		return "player:" + userID.String()
	}
	return "ip:" + c.ClientIP()
}
