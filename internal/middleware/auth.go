package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"adventure-server/internal/models"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// TokenVerifier checks a bearer token and returns its claims. Token problems
// are reported as models.ErrToken* errors.
type TokenVerifier func(ctx context.Context, tokenString string) (*models.Claims, error)

// Auth authenticates the request with verifier and stores the player id and
// roles in the request context (see models.GetUserIDFromContext).
func Auth(verifier TokenVerifier, logger *zap.Logger) gin.HandlerFunc {
	logger = logger.Named("AuthMiddleware")
	return func(c *gin.Context) {
		log := logger.With(zap.String("path", c.Request.URL.Path))

		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			log.Warn("Authorization header missing")
			tokenVerificationsTotal.WithLabelValues("failure").Inc()
			abortUnauthorized(c, "Unauthorized: missing token")
			return
		}
		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" || parts[1] == "" {
			log.Warn("Malformed Authorization header")
			tokenVerificationsTotal.WithLabelValues("failure").Inc()
			abortUnauthorized(c, "Unauthorized: malformed token header")
			return
		}

		claims, err := verifier(c.Request.Context(), parts[1])
		if err != nil {
			tokenVerificationsTotal.WithLabelValues("failure").Inc()
			switch {
			case errors.Is(err, models.ErrTokenExpired):
				abortUnauthorized(c, "Unauthorized: token expired")
			case errors.Is(err, models.ErrTokenRevoked):
				abortUnauthorized(c, "Unauthorized: token revoked")
			case errors.Is(err, models.ErrTokenMalformed), errors.Is(err, models.ErrTokenInvalid):
				abortUnauthorized(c, "Unauthorized: invalid token")
			default:
				log.Error("Unexpected token verification error", zap.Error(err))
				c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Internal server error during token verification"})
			}
			return
		}

		tokenVerificationsTotal.WithLabelValues("success").Inc()
		c.Request = c.Request.WithContext(models.WithUser(c.Request.Context(), claims.UserID, claims.Roles))
		log.Debug("User authorized", zap.String("userID", claims.UserID.String()))
		c.Next()
	}
}

func abortUnauthorized(c *gin.Context, msg string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": msg})
}
