package auth

import (
	"fmt"
	"time"

	"adventure-server/internal/models"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// GenerateTestJWT signs an HS256 access token for userID with a fresh jti.
// It exists for tests and local tooling; tokens in production come from the
// auth service.
func GenerateTestJWT(userID uuid.UUID, secretKey string, validity time.Duration) (string, string, error) {
	now := time.Now()
	jti := uuid.NewString()
	claims := &models.Claims{
		UserID: userID,
		Roles:  []string{models.RolePlayer},
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(validity)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ID:        jti,
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secretKey))
	if err != nil {
		return "", "", fmt.Errorf("failed to sign test JWT: %w", err)
	}
	return signed, jti, nil
}
