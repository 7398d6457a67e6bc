package service

import (
	"context"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/insight-nexus/auth-system/internal/core/domain"
	"github.com/insight-nexus/auth-system/internal/core/ports"
)

const (
	// AdminTokenTTL applies only to the account whose email equals the
	// configured administrator address.
	AdminTokenTTL = 365 * 24 * time.Hour
	// UserTokenTTL applies to every other account, regardless of role.
	UserTokenTTL = 20 * time.Minute
)

// TokenService mints HS256-signed access/refresh token pairs and
// revokes refresh tokens via a deny-list.
type TokenService struct {
	secret     string
	adminEmail string
	denylist   ports.TokenDenylist
}

func NewTokenService(secret, adminEmail string, denylist ports.TokenDenylist) *TokenService {
	return &TokenService{secret: secret, adminEmail: adminEmail, denylist: denylist}
}

// Issue mints a token pair for user. Lifetime is keyed on identity, not
// role: the administrator email gets AdminTokenTTL, everyone else
// UserTokenTTL. Failure here means the signer is misconfigured and is
// not a user-facing condition.
func (s *TokenService) Issue(user *domain.User) (ports.TokenPair, error) {
	ttl := UserTokenTTL
	if user.Email == s.adminEmail {
		ttl = AdminTokenTTL
	}

	now := time.Now()
	exp := now.Add(ttl)

	access := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"email": user.Email,
		"role":  user.Role,
		"iat":   now.Unix(),
		"exp":   exp.Unix(),
	})
	accessToken, err := access.SignedString([]byte(s.secret))
	if err != nil {
		return ports.TokenPair{}, fmt.Errorf("sign access token: %w", err)
	}

	refresh := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"email": user.Email,
		"role":  user.Role,
		"jti":   uuid.NewString(),
		"typ":   "refresh",
		"iat":   now.Unix(),
		"exp":   exp.Unix(),
	})
	refreshToken, err := refresh.SignedString([]byte(s.secret))
	if err != nil {
		return ports.TokenPair{}, fmt.Errorf("sign refresh token: %w", err)
	}

	return ports.TokenPair{AccessToken: accessToken, RefreshToken: refreshToken}, nil
}

// Revoke verifies the refresh token and puts its ID on the deny-list
// for the token's remaining lifetime. An already-expired token is a
// no-op.
func (s *TokenService) Revoke(ctx context.Context, refreshToken string) error {
	claims := jwt.MapClaims{}
	tkn, err := jwt.ParseWithClaims(refreshToken, claims, func(token *jwt.Token) (any, error) {
		if token.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return []byte(s.secret), nil
	})
	if err != nil || !tkn.Valid {
		return fmt.Errorf("parse refresh token: %w", jwt.ErrTokenMalformed)
	}

	jti, _ := claims["jti"].(string)
	if jti == "" {
		return jwt.ErrTokenInvalidId
	}

	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return jwt.ErrTokenInvalidClaims
	}
	ttl := time.Until(exp.Time)
	if ttl <= 0 {
		return nil
	}
	return s.denylist.Revoke(ctx, jti, ttl)
}
