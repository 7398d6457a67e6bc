package handler

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/insight-nexus/auth-system/internal/core/domain"
	"github.com/insight-nexus/auth-system/internal/core/ports"
)

func testUser(email string) *domain.User {
	return &domain.User{
		ID:        "u-1",
		Email:     email,
		FirstName: "Test",
		LastName:  "User",
		Role:      domain.RoleMaintenance,
		CreatedAt: time.Now().UTC(),
	}
}

func TestRegisterHandler_ExposesCodeOutsideProduction(t *testing.T) {
	auth := &stubAuthService{
		registerFn: func(_ context.Context, in ports.RegisterInput) (*domain.User, string, error) {
			return testUser(in.Email), "ABC123", nil
		},
	}
	h := NewAuthHandler(auth, false)

	c, rec := newTestContext(http.MethodPost, "/auth/register",
		`{"email":"new@x.com","first_name":"New","last_name":"User","password":"secret1"}`)
	if err := h.Register(c); err != nil {
		t.Fatalf("handler: %v", err)
	}

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	body := decodeBody(t, rec)
	if body["success"] != true {
		t.Fatalf("expected success envelope, got %v", body)
	}
	if body["message"] != "User registered successfully. Please verify your email." {
		t.Fatalf("unexpected message %q", body["message"])
	}
	if body["verification_code"] != "ABC123" {
		t.Fatalf("expected verification code in dev mode, got %v", body["verification_code"])
	}
}

func TestRegisterHandler_HidesCodeInProduction(t *testing.T) {
	auth := &stubAuthService{
		registerFn: func(_ context.Context, in ports.RegisterInput) (*domain.User, string, error) {
			return testUser(in.Email), "ABC123", nil
		},
	}
	h := NewAuthHandler(auth, true)

	c, rec := newTestContext(http.MethodPost, "/auth/register",
		`{"email":"new@x.com","first_name":"New","last_name":"User","password":"secret1"}`)
	if err := h.Register(c); err != nil {
		t.Fatalf("handler: %v", err)
	}

	body := decodeBody(t, rec)
	if _, present := body["verification_code"]; present {
		t.Fatalf("verification code must not leak in production: %v", body)
	}
}

func TestRegisterHandler_ValidationFailure(t *testing.T) {
	h := NewAuthHandler(&stubAuthService{}, false)

	c, rec := newTestContext(http.MethodPost, "/auth/register",
		`{"email":"not-an-email","first_name":"A","last_name":"B","password":"secret1"}`)
	if err := h.Register(c); err != nil {
		t.Fatalf("handler: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestRegisterHandler_DuplicateEmail(t *testing.T) {
	auth := &stubAuthService{
		registerFn: func(context.Context, ports.RegisterInput) (*domain.User, string, error) {
			return nil, "", domain.ErrUserExists
		},
	}
	h := NewAuthHandler(auth, false)

	c, rec := newTestContext(http.MethodPost, "/auth/register",
		`{"email":"dup@x.com","first_name":"A","last_name":"B","password":"secret1"}`)
	if err := h.Register(c); err != nil {
		t.Fatalf("handler: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	if body := decodeBody(t, rec); body["message"] != "User with this email already exists." {
		t.Fatalf("unexpected message %q", body["message"])
	}
}

func TestVerifyEmailHandler_DistinguishesFailures(t *testing.T) {
	cases := []struct {
		name    string
		err     error
		message string
	}{
		{"not found", domain.ErrUserNotFound, "User not found."},
		{"already verified", domain.ErrAlreadyVerified, "Email is already verified."},
		{"wrong code", domain.ErrCodeMismatch, "Invalid verification code."},
		{"expired", domain.ErrCodeExpired, "Verification code has expired. Please request a new one."},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			auth := &stubAuthService{
				verifyEmailFn: func(context.Context, string, string) error { return tc.err },
			}
			h := NewAuthHandler(auth, false)

			c, rec := newTestContext(http.MethodPost, "/auth/verify-email",
				`{"email":"v@x.com","code":"ABC123"}`)
			if err := h.VerifyEmail(c); err != nil {
				t.Fatalf("handler: %v", err)
			}
			if rec.Code != http.StatusBadRequest {
				t.Fatalf("expected 400, got %d", rec.Code)
			}
			if body := decodeBody(t, rec); body["message"] != tc.message {
				t.Fatalf("expected %q, got %q", tc.message, body["message"])
			}
		})
	}
}

func TestLoginHandler_Success(t *testing.T) {
	auth := &stubAuthService{
		loginFn: func(_ context.Context, email, _ string) (ports.TokenPair, *domain.User, error) {
			return ports.TokenPair{AccessToken: "acc", RefreshToken: "ref"}, testUser(email), nil
		},
	}
	h := NewAuthHandler(auth, false)

	c, rec := newTestContext(http.MethodPost, "/auth/login",
		`{"email":"u@x.com","password":"secret1"}`)
	if err := h.Login(c); err != nil {
		t.Fatalf("handler: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	body := decodeBody(t, rec)
	if body["token"] != "acc" || body["refresh"] != "ref" {
		t.Fatalf("token pair missing: %v", body)
	}
}

func TestLoginHandler_RemainingAttempts(t *testing.T) {
	auth := &stubAuthService{
		loginFn: func(context.Context, string, string) (ports.TokenPair, *domain.User, error) {
			return ports.TokenPair{}, nil, &domain.RemainingAttemptsError{Remaining: 3}
		},
	}
	h := NewAuthHandler(auth, false)

	c, rec := newTestContext(http.MethodPost, "/auth/login",
		`{"email":"u@x.com","password":"wrong"}`)
	if err := h.Login(c); err != nil {
		t.Fatalf("handler: %v", err)
	}
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
	if body := decodeBody(t, rec); body["message"] != "Invalid credentials. 3 attempts remaining." {
		t.Fatalf("unexpected message %q", body["message"])
	}
}

func TestLoginHandler_Blocked(t *testing.T) {
	auth := &stubAuthService{
		loginFn: func(context.Context, string, string) (ports.TokenPair, *domain.User, error) {
			return ports.TokenPair{}, nil, domain.ErrAccountBlocked
		},
	}
	h := NewAuthHandler(auth, false)

	c, rec := newTestContext(http.MethodPost, "/auth/login",
		`{"email":"u@x.com","password":"secret1"}`)
	if err := h.Login(c); err != nil {
		t.Fatalf("handler: %v", err)
	}
	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", rec.Code)
	}
	if body := decodeBody(t, rec); body["message"] != "Account is blocked due to too many failed login attempts. Please contact admin for approval." {
		t.Fatalf("unexpected message %q", body["message"])
	}
}

func TestLoginHandler_Unverified(t *testing.T) {
	auth := &stubAuthService{
		loginFn: func(context.Context, string, string) (ports.TokenPair, *domain.User, error) {
			return ports.TokenPair{}, nil, domain.ErrEmailNotVerified
		},
	}
	h := NewAuthHandler(auth, false)

	c, rec := newTestContext(http.MethodPost, "/auth/login",
		`{"email":"u@x.com","password":"secret1"}`)
	if err := h.Login(c); err != nil {
		t.Fatalf("handler: %v", err)
	}
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
	if body := decodeBody(t, rec); body["message"] != "Please verify your email before logging in." {
		t.Fatalf("unexpected message %q", body["message"])
	}
}

func TestLogoutHandler_AlwaysSucceeds(t *testing.T) {
	auth := &stubAuthService{
		logoutFn: func(context.Context, string) error {
			return errors.New("broken revocation backend")
		},
	}
	h := NewAuthHandler(auth, false)

	c, rec := newTestContext(http.MethodPost, "/auth/logout",
		`{"refresh_token":"whatever"}`)
	if err := h.Logout(c); err != nil {
		t.Fatalf("handler: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if body := decodeBody(t, rec); body["message"] != "Logged out successfully" {
		t.Fatalf("unexpected message %q", body["message"])
	}
}

func TestMeHandler_RequiresClaims(t *testing.T) {
	h := NewAuthHandler(&stubAuthService{}, false)

	c, _ := newTestContext(http.MethodGet, "/auth/me", "")
	err := h.Me(c)
	if err == nil {
		t.Fatalf("expected 401 error without claims")
	}
}

func TestMeHandler_ReturnsProfile(t *testing.T) {
	auth := &stubAuthService{
		meFn: func(_ context.Context, email string) (*domain.User, error) {
			return testUser(email), nil
		},
	}
	h := NewAuthHandler(auth, false)

	c, rec := newTestContext(http.MethodGet, "/auth/me", "")
	c.Set("email", "u@x.com")
	if err := h.Me(c); err != nil {
		t.Fatalf("handler: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	body := decodeBody(t, rec)
	user, _ := body["user"].(map[string]any)
	if user["email"] != "u@x.com" {
		t.Fatalf("unexpected profile %v", body)
	}
}

func TestChangePasswordHandler_WrongCurrent(t *testing.T) {
	auth := &stubAuthService{
		changePasswordFn: func(context.Context, string, string, string) error {
			return domain.ErrInvalidCredentials
		},
	}
	h := NewAuthHandler(auth, false)

	c, rec := newTestContext(http.MethodPost, "/auth/change-password",
		`{"current_password":"wrong","new_password":"newsecret"}`)
	c.Set("email", "u@x.com")
	if err := h.ChangePassword(c); err != nil {
		t.Fatalf("handler: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	if body := decodeBody(t, rec); body["message"] != "Current password is incorrect." {
		t.Fatalf("unexpected message %q", body["message"])
	}
}

func TestChangePasswordHandler_Success(t *testing.T) {
	auth := &stubAuthService{
		changePasswordFn: func(context.Context, string, string, string) error { return nil },
	}
	h := NewAuthHandler(auth, false)

	c, rec := newTestContext(http.MethodPost, "/auth/change-password",
		`{"current_password":"secret1","new_password":"newsecret"}`)
	c.Set("email", "u@x.com")
	if err := h.ChangePassword(c); err != nil {
		t.Fatalf("handler: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if body := decodeBody(t, rec); body["message"] != "Password changed successfully!" {
		t.Fatalf("unexpected message %q", body["message"])
	}
}
