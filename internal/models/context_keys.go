package models

import (
	"context"

	"github.com/google/uuid"
)

// contextKey is private to avoid collisions with other packages.
type contextKey string

const (
	// UserContextKey stores the authenticated player's uuid.UUID.
	UserContextKey contextKey = "userID"
	// RolesContextKey stores the authenticated player's []string roles.
	RolesContextKey contextKey = "userRoles"
)

// WithUser returns a copy of ctx carrying the user id and roles.
func WithUser(ctx context.Context, userID uuid.UUID, roles []string) context.Context {
	ctx = context.WithValue(ctx, UserContextKey, userID)
	return context.WithValue(ctx, RolesContextKey, roles)
}

// GetUserIDFromContext returns the user id stored by the auth middleware.
func GetUserIDFromContext(ctx context.Context) (uuid.UUID, bool) {
	userID, ok := ctx.Value(UserContextKey).(uuid.UUID)
	if !ok || userID == uuid.Nil {
		return uuid.Nil, false
	}
	return userID, true
}

func GetRolesFromContext(ctx context.Context) ([]string, bool) {
	roles, ok := ctx.Value(RolesContextKey).([]string)
	return roles, ok
}
