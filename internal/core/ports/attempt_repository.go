package ports

import (
	"context"
	"time"

	"github.com/insight-nexus/auth-system/internal/core/domain"
)

// AttemptRepository persists per-email login attempt records.
//
// RecordFailure and RecordSuccess must be atomic with respect to
// concurrent calls for the same email: two simultaneous failures may
// never under-count the attempt counter.
type AttemptRepository interface {
	FindByEmail(ctx context.Context, email string) (*domain.LoginAttempt, error)
	// RecordFailure increments the counter, refreshes the last-attempt
	// timestamp, blocks the record once the counter reaches
	// domain.MaxFailedAttempts, and returns the post-update state.
	// The record is created when absent.
	RecordFailure(ctx context.Context, email string, at time.Time) (*domain.LoginAttempt, error)
	// RecordSuccess resets the counter to zero and clears the blocked
	// flag. The record is created when absent.
	RecordSuccess(ctx context.Context, email string, at time.Time) error
	SetApprovalToken(ctx context.Context, email, token string) error
	// Approve consumes the stored approval token. The token must match
	// exactly; on match the record is unblocked, the counter reset and
	// the token invalidated in one atomic write.
	Approve(ctx context.Context, email, token string) error
}
