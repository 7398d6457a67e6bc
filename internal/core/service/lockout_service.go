package service

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"github.com/insight-nexus/auth-system/internal/core/domain"
	"github.com/insight-nexus/auth-system/internal/core/ports"
)

// LockoutService implements the login-attempt tracker: a per-email
// state machine running from clean (counter 0) through warning
// (1..threshold-1) to blocked, with admin approval as the only way out
// of blocked.
type LockoutService struct {
	repo ports.AttemptRepository
	log  zerolog.Logger
}

func NewLockoutService(repo ports.AttemptRepository, log zerolog.Logger) *LockoutService {
	return &LockoutService{repo: repo, log: log}
}

// Evaluate applies one login attempt to the state machine.
//
// A locked record refuses the attempt without mutation, even when the
// password was correct. Otherwise a correct password resets the record
// to clean, and a wrong password increments the counter, blocking the
// record once it reaches the threshold. Mutating evaluations refresh
// the last-attempt timestamp.
func (s *LockoutService) Evaluate(ctx context.Context, email string, passwordCorrect bool) (ports.Decision, error) {
	email = NormalizeEmail(email)
	current, err := s.repo.FindByEmail(ctx, email)
	if err != nil && !errors.Is(err, domain.ErrAttemptNotFound) {
		return ports.Decision{}, err
	}
	if current != nil && current.Locked() {
		return ports.Decision{Blocked: true}, nil
	}

	now := time.Now().UTC()
	if passwordCorrect {
		if err := s.repo.RecordSuccess(ctx, email, now); err != nil {
			return ports.Decision{}, err
		}
		return ports.Decision{Allowed: true}, nil
	}

	updated, err := s.repo.RecordFailure(ctx, email, now)
	if err != nil {
		return ports.Decision{}, err
	}
	if updated.Blocked {
		s.log.Warn().Str("email", email).Int("attempts", updated.Attempts).Msg("account blocked")
		return ports.Decision{Blocked: true}, nil
	}
	return ports.Decision{Remaining: updated.Remaining()}, nil
}

// RequestApproval issues a fresh single-use approval token for an
// account whose counter has reached the block threshold. Delivery of
// the token to an administrator is out of scope here; the caller
// decides whether to surface it.
func (s *LockoutService) RequestApproval(ctx context.Context, email string) (string, error) {
	email = NormalizeEmail(email)
	attempt, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		return "", err
	}
	if attempt.Attempts < domain.MaxFailedAttempts {
		return "", domain.ErrNotBlocked
	}

	token := NewApprovalToken()
	if err := s.repo.SetApprovalToken(ctx, email, token); err != nil {
		return "", err
	}
	s.log.Info().Str("email", email).Msg("approval token issued")
	return token, nil
}

// Approve consumes an approval token. The comparison is exact and
// case-sensitive; a mismatch leaves the record untouched.
func (s *LockoutService) Approve(ctx context.Context, email, token string) error {
	email = NormalizeEmail(email)
	if err := s.repo.Approve(ctx, email, token); err != nil {
		return err
	}
	s.log.Info().Str("email", email).Msg("account unblocked by admin approval")
	return nil
}

// Status reads the tracker state for email. A missing record is
// reported as a zeroed clean record, not an error.
func (s *LockoutService) Status(ctx context.Context, email string) (domain.LoginAttempt, error) {
	email = NormalizeEmail(email)
	attempt, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrAttemptNotFound) {
			return domain.LoginAttempt{Email: email}, nil
		}
		return domain.LoginAttempt{}, err
	}
	return *attempt, nil
}
