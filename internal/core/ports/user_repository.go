package ports

import (
	"context"
	"time"

	"github.com/insight-nexus/auth-system/internal/core/domain"
)

// UserRepository defines the persistence interface for user accounts.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	List(ctx context.Context) ([]domain.User, error)
	// SetVerified marks the email as verified and clears the pending
	// verification challenge in a single write.
	SetVerified(ctx context.Context, email string) error
	UpdatePassword(ctx context.Context, email, passwordHash string) error
	UpdateLastLogin(ctx context.Context, email string, at time.Time) error
}
