package service

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/insight-nexus/auth-system/internal/core/domain"
	"github.com/insight-nexus/auth-system/internal/core/ports"
)

var ErrAdminExists = errors.New("admin user already exists")
var ErrInvalidSetupKey = errors.New("invalid setup key")

// AdminService implements the administrator-only operations plus the
// one-time bootstrap.
type AdminService struct {
	users      ports.UserRepository
	adminEmail string
	setupKey   string
	log        zerolog.Logger
}

func NewAdminService(users ports.UserRepository, adminEmail, setupKey string, log zerolog.Logger) *AdminService {
	return &AdminService{users: users, adminEmail: adminEmail, setupKey: setupKey, log: log}
}

// Setup creates the first (and only) administrator account. The
// endpoint self-disables once a user with the configured admin email
// exists; there is no path to re-enable it.
func (s *AdminService) Setup(ctx context.Context, in ports.SetupInput) (*domain.User, error) {
	exists, err := s.users.ExistsByEmail(ctx, s.adminEmail)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrAdminExists
	}
	if in.SetupKey != s.setupKey {
		return nil, ErrInvalidSetupKey
	}
	if len(in.Password) < 6 {
		return nil, domain.ErrInvalidCredentials
	}

	email := NormalizeEmail(in.Email)
	if email == "" {
		email = s.adminEmail
	}
	firstName := in.FirstName
	if firstName == "" {
		firstName = "System"
	}
	lastName := in.LastName
	if lastName == "" {
		lastName = "Administrator"
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	admin := &domain.User{
		Email:         email,
		FirstName:     firstName,
		LastName:      lastName,
		PasswordHash:  string(hash),
		Role:          domain.RoleExecutive,
		EmailVerified: true,
		CreatedAt:     time.Now().UTC(),
	}
	created, err := s.users.Create(ctx, admin)
	if err != nil {
		return nil, err
	}

	s.log.Info().Str("email", email).Msg("administrator account bootstrapped")
	return created, nil
}

// CreateUser creates a pre-verified account. Only reachable through
// the admin-gated route.
func (s *AdminService) CreateUser(ctx context.Context, in ports.RegisterInput) (*domain.User, error) {
	email := NormalizeEmail(in.Email)
	if email == "" || len(in.Password) < 6 {
		return nil, domain.ErrInvalidCredentials
	}
	role := in.Role
	if role == "" {
		role = domain.DefaultRole
	}
	if !domain.ValidRole(role) {
		return nil, domain.ErrInvalidCredentials
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		Email:         email,
		FirstName:     in.FirstName,
		LastName:      in.LastName,
		PasswordHash:  string(hash),
		Role:          role,
		EmailVerified: true,
		CreatedAt:     time.Now().UTC(),
	}
	created, err := s.users.Create(ctx, user)
	if err != nil {
		return nil, err
	}

	s.log.Info().Str("email", email).Str("role", role).Msg("user created by admin")
	return created, nil
}

// ListUsers returns every account. Password hashes never leave the
// domain type's JSON representation.
func (s *AdminService) ListUsers(ctx context.Context) ([]domain.User, error) {
	return s.users.List(ctx)
}
