package ports

import (
	"context"

	"github.com/insight-nexus/auth-system/internal/core/domain"
)

// Decision is the outcome of evaluating one login attempt against the
// lockout state machine.
type Decision struct {
	// Allowed is true when the password was correct and the account is
	// not locked.
	Allowed bool
	// Blocked is true when the attempt was refused because the account
	// is locked, or when this attempt crossed the block threshold.
	Blocked bool
	// Remaining is the number of wrong-password attempts left before
	// the account blocks. Only meaningful when Allowed and Blocked are
	// both false.
	Remaining int
}

// LockoutService is the login-attempt tracker.
type LockoutService interface {
	Evaluate(ctx context.Context, email string, passwordCorrect bool) (Decision, error)
	// RequestApproval issues a single-use approval token for a blocked
	// account (counter at or past the threshold).
	RequestApproval(ctx context.Context, email string) (string, error)
	Approve(ctx context.Context, email, token string) error
	// Status returns the tracker state for email, or a zeroed clean
	// record when none exists.
	Status(ctx context.Context, email string) (domain.LoginAttempt, error)
}
