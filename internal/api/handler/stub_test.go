package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/insight-nexus/auth-system/internal/core/domain"
	"github.com/insight-nexus/auth-system/internal/core/ports"
)

// stubAuthService lets each test pin down just the calls it expects.
type stubAuthService struct {
	registerFn       func(ctx context.Context, in ports.RegisterInput) (*domain.User, string, error)
	verifyEmailFn    func(ctx context.Context, email, code string) error
	loginFn          func(ctx context.Context, email, password string) (ports.TokenPair, *domain.User, error)
	changePasswordFn func(ctx context.Context, email, currentPassword, newPassword string) error
	logoutFn         func(ctx context.Context, refreshToken string) error
	meFn             func(ctx context.Context, email string) (*domain.User, error)
}

func (s *stubAuthService) Register(ctx context.Context, in ports.RegisterInput) (*domain.User, string, error) {
	return s.registerFn(ctx, in)
}

func (s *stubAuthService) VerifyEmail(ctx context.Context, email, code string) error {
	return s.verifyEmailFn(ctx, email, code)
}

func (s *stubAuthService) Login(ctx context.Context, email, password string) (ports.TokenPair, *domain.User, error) {
	return s.loginFn(ctx, email, password)
}

func (s *stubAuthService) ChangePassword(ctx context.Context, email, currentPassword, newPassword string) error {
	return s.changePasswordFn(ctx, email, currentPassword, newPassword)
}

func (s *stubAuthService) Logout(ctx context.Context, refreshToken string) error {
	if s.logoutFn == nil {
		return nil
	}
	return s.logoutFn(ctx, refreshToken)
}

func (s *stubAuthService) Me(ctx context.Context, email string) (*domain.User, error) {
	return s.meFn(ctx, email)
}

type stubLockoutService struct {
	evaluateFn        func(ctx context.Context, email string, passwordCorrect bool) (ports.Decision, error)
	requestApprovalFn func(ctx context.Context, email string) (string, error)
	approveFn         func(ctx context.Context, email, token string) error
	statusFn          func(ctx context.Context, email string) (domain.LoginAttempt, error)
}

func (s *stubLockoutService) Evaluate(ctx context.Context, email string, passwordCorrect bool) (ports.Decision, error) {
	return s.evaluateFn(ctx, email, passwordCorrect)
}

func (s *stubLockoutService) RequestApproval(ctx context.Context, email string) (string, error) {
	return s.requestApprovalFn(ctx, email)
}

func (s *stubLockoutService) Approve(ctx context.Context, email, token string) error {
	return s.approveFn(ctx, email, token)
}

func (s *stubLockoutService) Status(ctx context.Context, email string) (domain.LoginAttempt, error) {
	return s.statusFn(ctx, email)
}

type stubAdminService struct {
	setupFn      func(ctx context.Context, in ports.SetupInput) (*domain.User, error)
	createUserFn func(ctx context.Context, in ports.RegisterInput) (*domain.User, error)
	listUsersFn  func(ctx context.Context) ([]domain.User, error)
}

func (s *stubAdminService) Setup(ctx context.Context, in ports.SetupInput) (*domain.User, error) {
	return s.setupFn(ctx, in)
}

func (s *stubAdminService) CreateUser(ctx context.Context, in ports.RegisterInput) (*domain.User, error) {
	return s.createUserFn(ctx, in)
}

func (s *stubAdminService) ListUsers(ctx context.Context) ([]domain.User, error) {
	return s.listUsersFn(ctx)
}

// newTestContext builds an Echo context with the project's validator
// installed, ready for a single handler call.
func newTestContext(method, path, body string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	e.Validator = NewValidator()

	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	out := map[string]any{}
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode response %q: %v", rec.Body.String(), err)
	}
	return out
}
