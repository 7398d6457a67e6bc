package domain

import (
	"errors"
	"time"
)

const (
	RoleMaintenance = "maintenance"
	RoleCafeteria   = "cafeteria"
	RoleSecurity    = "security"
	RoleExecutive   = "executive"
	RoleIoTEngineer = "iot-engineer"
)

// DefaultRole is assigned when a registration omits the role field.
const DefaultRole = RoleMaintenance

var ErrUserNotFound = errors.New("user not found")
var ErrUserExists = errors.New("user already exists")
var ErrInvalidCredentials = errors.New("invalid credentials")
var ErrEmailNotVerified = errors.New("email not verified")
var ErrAlreadyVerified = errors.New("email already verified")
var ErrCodeMismatch = errors.New("invalid verification code")
var ErrCodeExpired = errors.New("verification code expired")
var ErrForbidden = errors.New("access forbidden")

// ValidRole reports whether role is one of the known role values.
func ValidRole(role string) bool {
	switch role {
	case RoleMaintenance, RoleCafeteria, RoleSecurity, RoleExecutive, RoleIoTEngineer:
		return true
	}
	return false
}

// Verification is a pending email-verification challenge. A nil
// *Verification on a User means no challenge is outstanding: either one
// was never issued or it has already been consumed.
type Verification struct {
	Code      string
	ExpiresAt time.Time
}

// Accepts reports whether the supplied code clears the challenge at
// time now. The code must match exactly and now must be strictly before
// the expiry.
func (v *Verification) Accepts(code string, now time.Time) error {
	if v == nil || v.Code != code {
		return ErrCodeMismatch
	}
	if !now.Before(v.ExpiresAt) {
		return ErrCodeExpired
	}
	return nil
}

// User models an account identified by its email address.
type User struct {
	ID            string        `json:"id,omitempty"`
	Email         string        `json:"email"`
	FirstName     string        `json:"first_name"`
	LastName      string        `json:"last_name"`
	PasswordHash  string        `json:"-"`
	Role          string        `json:"role"`
	EmailVerified bool          `json:"is_email_verified"`
	Verification  *Verification `json:"-"`
	CreatedAt     time.Time     `json:"date_joined"`
	LastLoginAt   *time.Time    `json:"last_login_at"`
}
