package handler

import (
	"time"

	"github.com/insight-nexus/auth-system/internal/core/domain"
)

// messageResponse is the bare envelope returned when an endpoint has no
// payload beyond its outcome.
type messageResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// --- Request types ---

type registerRequest struct {
	Email     string `json:"email"      validate:"required,email"`
	FirstName string `json:"first_name" validate:"required"`
	LastName  string `json:"last_name"  validate:"required"`
	Password  string `json:"password"   validate:"required,min=6"`
	Role      string `json:"role"       validate:"omitempty,oneof=maintenance cafeteria security executive iot-engineer"`
}

type verifyEmailRequest struct {
	Email string `json:"email" validate:"required,email"`
	Code  string `json:"code"  validate:"required"`
}

type loginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type changePasswordRequest struct {
	CurrentPassword string `json:"current_password" validate:"required"`
	NewPassword     string `json:"new_password"     validate:"required,min=6"`
}

// logoutRequest carries an optional refresh token; logout succeeds with
// or without one.
type logoutRequest struct {
	RefreshToken string `json:"refresh_token"`
}

type setupAdminRequest struct {
	Email     string `json:"email"      validate:"omitempty,email"`
	Password  string `json:"password"   validate:"required,min=6"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	SetupKey  string `json:"setup_key"  validate:"required"`
}

type requestApprovalRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type approveUserRequest struct {
	Email      string `json:"email"       validate:"required,email"`
	AdminToken string `json:"admin_token" validate:"required"`
}

// --- Response types ---

type userResponse struct {
	ID            string     `json:"id,omitempty"`
	Email         string     `json:"email"`
	FirstName     string     `json:"first_name"`
	LastName      string     `json:"last_name"`
	Role          string     `json:"role"`
	EmailVerified bool       `json:"is_email_verified"`
	CreatedAt     time.Time  `json:"date_joined"`
	LastLoginAt   *time.Time `json:"last_login_at"`
}

func toUserResponse(u *domain.User) userResponse {
	return userResponse{
		ID:            u.ID,
		Email:         u.Email,
		FirstName:     u.FirstName,
		LastName:      u.LastName,
		Role:          u.Role,
		EmailVerified: u.EmailVerified,
		CreatedAt:     u.CreatedAt,
		LastLoginAt:   u.LastLoginAt,
	}
}

type registerResponse struct {
	Success bool         `json:"success"`
	Message string       `json:"message"`
	User    userResponse `json:"user"`
	// VerificationCode is only populated outside production.
	VerificationCode string `json:"verification_code,omitempty"`
}

type loginResponse struct {
	Success bool         `json:"success"`
	Message string       `json:"message"`
	Token   string       `json:"token"`
	Refresh string       `json:"refresh"`
	User    userResponse `json:"user"`
}

type meResponse struct {
	Success bool         `json:"success"`
	User    userResponse `json:"user"`
}

type usersResponse struct {
	Success bool           `json:"success"`
	Users   []userResponse `json:"users"`
}

type createdUserResponse struct {
	Success bool         `json:"success"`
	Message string       `json:"message"`
	User    userResponse `json:"user"`
}

type attemptsResponse struct {
	Success       bool       `json:"success"`
	Email         string     `json:"email"`
	Attempts      int        `json:"attempts"`
	Blocked       bool       `json:"blocked"`
	AdminApproved bool       `json:"admin_approved"`
	LastAttempt   *time.Time `json:"last_attempt"`
}

type approvalRequestResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	// AdminToken is only populated outside production.
	AdminToken string `json:"admin_token,omitempty"`
}
