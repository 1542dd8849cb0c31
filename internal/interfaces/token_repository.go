package interfaces

import "context"

// TokenRevocationRepository answers whether an access token id (jti) was revoked
// by the auth service before its expiry.
type TokenRevocationRepository interface {
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}
