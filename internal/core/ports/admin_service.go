package ports

import (
	"context"

	"github.com/insight-nexus/auth-system/internal/core/domain"
)

// SetupInput carries the one-time administrator bootstrap request.
type SetupInput struct {
	Email     string
	Password  string
	FirstName string
	LastName  string
	SetupKey  string
}

type AdminService interface {
	// Setup creates the administrator account. It fails permanently
	// once an account with the configured admin email exists.
	Setup(ctx context.Context, in SetupInput) (*domain.User, error)
	// CreateUser creates a pre-verified account on behalf of the
	// administrator.
	CreateUser(ctx context.Context, in RegisterInput) (*domain.User, error)
	ListUsers(ctx context.Context) ([]domain.User, error)
}
