package ports

import (
	"context"

	"github.com/insight-nexus/auth-system/internal/core/domain"
)

// RegisterInput carries the fields needed to create an account.
type RegisterInput struct {
	Email     string
	FirstName string
	LastName  string
	Password  string
	Role      string
}

// TokenPair is the signed session material returned on login.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
}

type AuthService interface {
	// Register creates an unverified account and returns it together
	// with the freshly issued email verification code.
	Register(ctx context.Context, in RegisterInput) (*domain.User, string, error)
	VerifyEmail(ctx context.Context, email, code string) error
	Login(ctx context.Context, email, password string) (TokenPair, *domain.User, error)
	ChangePassword(ctx context.Context, email, currentPassword, newPassword string) error
	// Logout revokes the refresh token when one is supplied and
	// well-formed. It never fails: a malformed or missing token still
	// terminates the session from the client's point of view.
	Logout(ctx context.Context, refreshToken string) error
	Me(ctx context.Context, email string) (*domain.User, error)
}
