package ports

import (
	"context"
	"time"

	"github.com/insight-nexus/auth-system/internal/core/domain"
)

// TokenService mints and revokes signed session tokens.
type TokenService interface {
	Issue(user *domain.User) (TokenPair, error)
	// Revoke adds the refresh token's ID to the deny-list until the
	// token would have expired on its own.
	Revoke(ctx context.Context, refreshToken string) error
}

// TokenDenylist records revoked refresh-token IDs until they expire.
type TokenDenylist interface {
	Revoke(ctx context.Context, jti string, ttl time.Duration) error
	IsRevoked(ctx context.Context, jti string) (bool, error)
}
