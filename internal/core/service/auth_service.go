package service

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/insight-nexus/auth-system/internal/core/domain"
	"github.com/insight-nexus/auth-system/internal/core/ports"
)

// AuthService orchestrates registration, verification, login and
// account management. It holds no state of its own.
type AuthService struct {
	users   ports.UserRepository
	lockout ports.LockoutService
	tokens  ports.TokenService
	codeTTL time.Duration
	log     zerolog.Logger
}

func NewAuthService(
	users ports.UserRepository,
	lockout ports.LockoutService,
	tokens ports.TokenService,
	codeTTL time.Duration,
	log zerolog.Logger,
) *AuthService {
	if codeTTL <= 0 {
		codeTTL = DefaultVerificationTTL
	}
	return &AuthService{users: users, lockout: lockout, tokens: tokens, codeTTL: codeTTL, log: log}
}

// Register creates an unverified account with a fresh verification
// code attached. The code is returned so the transport layer can
// decide whether to expose it (non-production only).
func (s *AuthService) Register(ctx context.Context, in ports.RegisterInput) (*domain.User, string, error) {
	email := NormalizeEmail(in.Email)
	if email == "" || len(in.Password) < 6 {
		return nil, "", domain.ErrInvalidCredentials
	}
	role := in.Role
	if role == "" {
		role = domain.DefaultRole
	}
	if !domain.ValidRole(role) {
		return nil, "", domain.ErrInvalidCredentials
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", err
	}

	code := NewVerificationCode()
	user := &domain.User{
		Email:        email,
		FirstName:    in.FirstName,
		LastName:     in.LastName,
		PasswordHash: string(hash),
		Role:         role,
		Verification: &domain.Verification{
			Code:      code,
			ExpiresAt: time.Now().UTC().Add(s.codeTTL),
		},
		CreatedAt: time.Now().UTC(),
	}

	created, err := s.users.Create(ctx, user)
	if err != nil {
		return nil, "", err
	}

	s.log.Info().Str("email", email).Str("role", role).Msg("user registered")
	return created, code, nil
}

// VerifyEmail consumes a verification code. The three failure modes
// (already verified, wrong code, expired code) are reported
// distinguishably for user-facing messaging.
func (s *AuthService) VerifyEmail(ctx context.Context, email, code string) error {
	user, err := s.users.FindByEmail(ctx, NormalizeEmail(email))
	if err != nil {
		return err
	}
	if user.EmailVerified {
		return domain.ErrAlreadyVerified
	}
	if err := user.Verification.Accepts(code, time.Now().UTC()); err != nil {
		return err
	}
	if err := s.users.SetVerified(ctx, user.Email); err != nil {
		return err
	}
	s.log.Info().Str("email", user.Email).Msg("email verified")
	return nil
}

// Login evaluates credentials against the lockout state machine and
// issues a token pair on success. Unknown and unverified users are
// rejected before the tracker is consulted, so failed attempts against
// unknown emails never create tracker records.
func (s *AuthService) Login(ctx context.Context, email, password string) (ports.TokenPair, *domain.User, error) {
	user, err := s.users.FindByEmail(ctx, NormalizeEmail(email))
	if err != nil {
		return ports.TokenPair{}, nil, err
	}
	if !user.EmailVerified {
		return ports.TokenPair{}, nil, domain.ErrEmailNotVerified
	}

	correct := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) == nil

	decision, err := s.lockout.Evaluate(ctx, user.Email, correct)
	if err != nil {
		return ports.TokenPair{}, nil, err
	}
	if decision.Blocked {
		return ports.TokenPair{}, nil, domain.ErrAccountBlocked
	}
	if !decision.Allowed {
		return ports.TokenPair{}, nil, &domain.RemainingAttemptsError{Remaining: decision.Remaining}
	}

	now := time.Now().UTC()
	if err := s.users.UpdateLastLogin(ctx, user.Email, now); err != nil {
		s.log.Warn().Err(err).Str("email", user.Email).Msg("failed to update last login")
	}
	user.LastLoginAt = &now

	pair, err := s.tokens.Issue(user)
	if err != nil {
		return ports.TokenPair{}, nil, err
	}

	s.log.Info().Str("email", user.Email).Str("role", user.Role).Msg("login successful")
	return pair, user, nil
}

// ChangePassword rotates the password hash after checking the current
// password.
func (s *AuthService) ChangePassword(ctx context.Context, email, currentPassword, newPassword string) error {
	user, err := s.users.FindByEmail(ctx, NormalizeEmail(email))
	if err != nil {
		return err
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(currentPassword)) != nil {
		return domain.ErrInvalidCredentials
	}
	if len(newPassword) < 6 {
		return domain.ErrInvalidCredentials
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	if err := s.users.UpdatePassword(ctx, user.Email, string(hash)); err != nil {
		return err
	}
	s.log.Info().Str("email", user.Email).Msg("password changed")
	return nil
}

// Logout revokes the supplied refresh token when possible. Errors from
// malformed tokens are swallowed on purpose: a client must always be
// able to terminate its local session.
func (s *AuthService) Logout(ctx context.Context, refreshToken string) error {
	if refreshToken == "" {
		return nil
	}
	if err := s.tokens.Revoke(ctx, refreshToken); err != nil {
		s.log.Debug().Err(err).Msg("ignoring unrevokable refresh token on logout")
	}
	return nil
}

// Me returns the caller's profile.
func (s *AuthService) Me(ctx context.Context, email string) (*domain.User, error) {
	return s.users.FindByEmail(ctx, NormalizeEmail(email))
}

// NormalizeEmail lowercases and trims an email so it can serve as the
// primary lookup key.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
