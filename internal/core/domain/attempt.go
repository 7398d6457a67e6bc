package domain

import (
	"errors"
	"fmt"
	"time"
)

// MaxFailedAttempts is the number of consecutive wrong-password logins
// after which an account is blocked.
const MaxFailedAttempts = 5

var ErrAccountBlocked = errors.New("account blocked")
var ErrNotBlocked = errors.New("account is not blocked")
var ErrInvalidApprovalToken = errors.New("invalid approval token")
var ErrAttemptNotFound = errors.New("no login attempt record found")

// RemainingAttemptsError reports a wrong password along with how many
// attempts are left before the account blocks.
type RemainingAttemptsError struct {
	Remaining int
}

func (e *RemainingAttemptsError) Error() string {
	return fmt.Sprintf("invalid credentials: %d attempts remaining", e.Remaining)
}

// Is makes errors.Is(err, ErrInvalidCredentials) hold for this error.
func (e *RemainingAttemptsError) Is(target error) bool {
	return target == ErrInvalidCredentials
}

// LoginAttempt tracks consecutive failed logins for one email address.
// AdminToken is nil unless an approval request is outstanding; a
// consumed token is set back to nil and cannot be replayed.
type LoginAttempt struct {
	Email         string     `json:"email"`
	Attempts      int        `json:"attempts"`
	Blocked       bool       `json:"blocked"`
	AdminApproved bool       `json:"admin_approved"`
	AdminToken    *string    `json:"-"`
	LastAttempt   *time.Time `json:"last_attempt"`
}

// Locked reports whether logins must be refused regardless of password
// correctness. An admin approval lifts the block.
func (a LoginAttempt) Locked() bool {
	return a.Blocked && !a.AdminApproved
}

// Remaining returns how many wrong-password attempts are left before
// the account blocks.
func (a LoginAttempt) Remaining() int {
	r := MaxFailedAttempts - a.Attempts
	if r < 0 {
		return 0
	}
	return r
}
