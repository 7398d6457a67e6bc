package handler

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/insight-nexus/auth-system/internal/core/domain"
)

func TestGetAttempts_ReturnsState(t *testing.T) {
	last := time.Now().UTC()
	lockout := &stubLockoutService{
		statusFn: func(_ context.Context, email string) (domain.LoginAttempt, error) {
			return domain.LoginAttempt{
				Email:       email,
				Attempts:    3,
				LastAttempt: &last,
			}, nil
		},
	}
	h := NewAttemptsHandler(lockout, false)

	c, rec := newTestContext(http.MethodGet, "/auth/login-attempts/u@x.com", "")
	c.SetParamNames("email")
	c.SetParamValues("u@x.com")
	if err := h.GetAttempts(c); err != nil {
		t.Fatalf("handler: %v", err)
	}

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	body := decodeBody(t, rec)
	if body["email"] != "u@x.com" || body["attempts"] != float64(3) || body["blocked"] != false {
		t.Fatalf("unexpected state %v", body)
	}
}

func TestGetAttempts_UnknownEmailReadsClean(t *testing.T) {
	lockout := &stubLockoutService{
		statusFn: func(_ context.Context, email string) (domain.LoginAttempt, error) {
			return domain.LoginAttempt{Email: email}, nil
		},
	}
	h := NewAttemptsHandler(lockout, false)

	c, rec := newTestContext(http.MethodGet, "/auth/login-attempts/ghost@x.com", "")
	c.SetParamNames("email")
	c.SetParamValues("ghost@x.com")
	if err := h.GetAttempts(c); err != nil {
		t.Fatalf("handler: %v", err)
	}

	body := decodeBody(t, rec)
	if body["attempts"] != float64(0) || body["blocked"] != false || body["admin_approved"] != false {
		t.Fatalf("expected zeroed record, got %v", body)
	}
}

func TestRequestApproval_ExposesTokenOutsideProduction(t *testing.T) {
	lockout := &stubLockoutService{
		requestApprovalFn: func(context.Context, string) (string, error) {
			return "admin_1700000000_abcdef1234", nil
		},
	}
	h := NewAttemptsHandler(lockout, false)

	c, rec := newTestContext(http.MethodPost, "/auth/request-admin-approval",
		`{"email":"blocked@x.com"}`)
	if err := h.RequestApproval(c); err != nil {
		t.Fatalf("handler: %v", err)
	}

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	body := decodeBody(t, rec)
	if body["message"] != "Admin approval request sent. Please wait for approval." {
		t.Fatalf("unexpected message %q", body["message"])
	}
	if body["admin_token"] != "admin_1700000000_abcdef1234" {
		t.Fatalf("expected token in dev mode, got %v", body["admin_token"])
	}
}

func TestRequestApproval_HidesTokenInProduction(t *testing.T) {
	lockout := &stubLockoutService{
		requestApprovalFn: func(context.Context, string) (string, error) {
			return "admin_1700000000_abcdef1234", nil
		},
	}
	h := NewAttemptsHandler(lockout, true)

	c, rec := newTestContext(http.MethodPost, "/auth/request-admin-approval",
		`{"email":"blocked@x.com"}`)
	if err := h.RequestApproval(c); err != nil {
		t.Fatalf("handler: %v", err)
	}

	body := decodeBody(t, rec)
	if _, present := body["admin_token"]; present {
		t.Fatalf("approval token must not leak in production: %v", body)
	}
}

func TestRequestApproval_NotBlocked(t *testing.T) {
	lockout := &stubLockoutService{
		requestApprovalFn: func(context.Context, string) (string, error) {
			return "", domain.ErrNotBlocked
		},
	}
	h := NewAttemptsHandler(lockout, false)

	c, rec := newTestContext(http.MethodPost, "/auth/request-admin-approval",
		`{"email":"fine@x.com"}`)
	if err := h.RequestApproval(c); err != nil {
		t.Fatalf("handler: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	if body := decodeBody(t, rec); body["message"] != "Account is not blocked." {
		t.Fatalf("unexpected message %q", body["message"])
	}
}

func TestRequestApproval_NoRecord(t *testing.T) {
	lockout := &stubLockoutService{
		requestApprovalFn: func(context.Context, string) (string, error) {
			return "", domain.ErrAttemptNotFound
		},
	}
	h := NewAttemptsHandler(lockout, false)

	c, rec := newTestContext(http.MethodPost, "/auth/request-admin-approval",
		`{"email":"ghost@x.com"}`)
	if err := h.RequestApproval(c); err != nil {
		t.Fatalf("handler: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	if body := decodeBody(t, rec); body["message"] != "No login attempt record found for this email." {
		t.Fatalf("unexpected message %q", body["message"])
	}
}
