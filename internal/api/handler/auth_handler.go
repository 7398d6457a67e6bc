package handler

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/insight-nexus/auth-system/internal/api/metrics"
	"github.com/insight-nexus/auth-system/internal/core/domain"
	"github.com/insight-nexus/auth-system/internal/core/ports"
)

// AuthHandler serves the open and authenticated /auth routes.
type AuthHandler struct {
	auth       ports.AuthService
	production bool
}

func NewAuthHandler(auth ports.AuthService, production bool) *AuthHandler {
	return &AuthHandler{auth: auth, production: production}
}

// Register creates an unverified account.
//
// @Summary      Register a new user
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      registerRequest  true  "User registration details"
// @Success      201   {object}  registerResponse
// @Failure      400   {object}  messageResponse
// @Router       /auth/register [post]
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, messageResponse{Message: "Invalid data provided."})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, messageResponse{Message: err.Error()})
	}

	user, code, err := h.auth.Register(c.Request().Context(), ports.RegisterInput{
		Email:     req.Email,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Password:  req.Password,
		Role:      req.Role,
	})
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrUserExists):
			return c.JSON(http.StatusBadRequest, messageResponse{Message: "User with this email already exists."})
		case errors.Is(err, domain.ErrInvalidCredentials):
			return c.JSON(http.StatusBadRequest, messageResponse{Message: "Invalid data provided."})
		}
		return err
	}

	metrics.RegistrationsTotal.WithLabelValues("self").Inc()

	resp := registerResponse{
		Success: true,
		Message: "User registered successfully. Please verify your email.",
		User:    toUserResponse(user),
	}
	if !h.production {
		resp.VerificationCode = code
	}
	return c.JSON(http.StatusCreated, resp)
}

// VerifyEmail consumes a verification code and marks the email verified.
//
// @Summary      Verify email with a code
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      verifyEmailRequest  true  "Email and verification code"
// @Success      200   {object}  messageResponse
// @Failure      400   {object}  messageResponse
// @Router       /auth/verify-email [post]
func (h *AuthHandler) VerifyEmail(c echo.Context) error {
	var req verifyEmailRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, messageResponse{Message: "Invalid data provided."})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, messageResponse{Message: err.Error()})
	}

	if err := h.auth.VerifyEmail(c.Request().Context(), req.Email, req.Code); err != nil {
		switch {
		case errors.Is(err, domain.ErrUserNotFound):
			return c.JSON(http.StatusBadRequest, messageResponse{Message: "User not found."})
		case errors.Is(err, domain.ErrAlreadyVerified):
			return c.JSON(http.StatusBadRequest, messageResponse{Message: "Email is already verified."})
		case errors.Is(err, domain.ErrCodeMismatch):
			return c.JSON(http.StatusBadRequest, messageResponse{Message: "Invalid verification code."})
		case errors.Is(err, domain.ErrCodeExpired):
			return c.JSON(http.StatusBadRequest, messageResponse{Message: "Verification code has expired. Please request a new one."})
		}
		return err
	}

	return c.JSON(http.StatusOK, messageResponse{Success: true, Message: "Email verified successfully! You can now log in."})
}

// Login evaluates credentials and the lockout state, issuing a token
// pair on success.
//
// @Summary      Login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Login credentials"
// @Success      200   {object}  loginResponse
// @Failure      400   {object}  messageResponse
// @Failure      401   {object}  messageResponse
// @Failure      403   {object}  messageResponse
// @Router       /auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, messageResponse{Message: "Invalid data provided."})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, messageResponse{Message: err.Error()})
	}

	start := time.Now()
	pair, user, err := h.auth.Login(c.Request().Context(), req.Email, req.Password)
	metrics.LoginDuration.Observe(time.Since(start).Seconds())

	if err != nil {
		var remaining *domain.RemainingAttemptsError
		switch {
		case errors.Is(err, domain.ErrUserNotFound):
			metrics.LoginsTotal.WithLabelValues("unknown_user").Inc()
			return c.JSON(http.StatusUnauthorized, messageResponse{Message: "User not found. Please register first."})
		case errors.Is(err, domain.ErrEmailNotVerified):
			metrics.LoginsTotal.WithLabelValues("unverified").Inc()
			return c.JSON(http.StatusUnauthorized, messageResponse{Message: "Please verify your email before logging in."})
		case errors.Is(err, domain.ErrAccountBlocked):
			metrics.LoginsTotal.WithLabelValues("blocked").Inc()
			return c.JSON(http.StatusForbidden, messageResponse{Message: "Account is blocked due to too many failed login attempts. Please contact admin for approval."})
		case errors.As(err, &remaining):
			metrics.LoginsTotal.WithLabelValues("wrong_password").Inc()
			return c.JSON(http.StatusUnauthorized, messageResponse{
				Message: fmt.Sprintf("Invalid credentials. %d attempts remaining.", remaining.Remaining),
			})
		}
		return err
	}

	metrics.LoginsTotal.WithLabelValues("success").Inc()
	metrics.TokensIssuedTotal.WithLabelValues(user.Role).Inc()

	return c.JSON(http.StatusOK, loginResponse{
		Success: true,
		Message: "Login successful",
		Token:   pair.AccessToken,
		Refresh: pair.RefreshToken,
		User:    toUserResponse(user),
	})
}

// Me returns the caller's profile.
//
// @Summary      Current user profile
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      200   {object}  meResponse
// @Failure      401   {object}  messageResponse
// @Router       /auth/me [get]
func (h *AuthHandler) Me(c echo.Context) error {
	email, err := ctxEmail(c)
	if err != nil {
		return err
	}

	user, err := h.auth.Me(c.Request().Context(), email)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, meResponse{Success: true, User: toUserResponse(user)})
}

// Logout revokes the supplied refresh token if any. It always reports
// success: a client can never be prevented from ending its session.
//
// @Summary      Logout
// @Tags         auth
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      logoutRequest  false  "Optional refresh token to revoke"
// @Success      200   {object}  messageResponse
// @Router       /auth/logout [post]
func (h *AuthHandler) Logout(c echo.Context) error {
	var req logoutRequest
	_ = c.Bind(&req)

	_ = h.auth.Logout(c.Request().Context(), req.RefreshToken)

	return c.JSON(http.StatusOK, messageResponse{Success: true, Message: "Logged out successfully"})
}

// ChangePassword rotates the caller's password.
//
// @Summary      Change password
// @Tags         auth
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      changePasswordRequest  true  "Current and new password"
// @Success      200   {object}  messageResponse
// @Failure      400   {object}  messageResponse
// @Failure      401   {object}  messageResponse
// @Router       /auth/change-password [post]
func (h *AuthHandler) ChangePassword(c echo.Context) error {
	email, err := ctxEmail(c)
	if err != nil {
		return err
	}

	var req changePasswordRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, messageResponse{Message: "Invalid data provided."})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, messageResponse{Message: err.Error()})
	}

	if err := h.auth.ChangePassword(c.Request().Context(), email, req.CurrentPassword, req.NewPassword); err != nil {
		if errors.Is(err, domain.ErrInvalidCredentials) {
			return c.JSON(http.StatusBadRequest, messageResponse{Message: "Current password is incorrect."})
		}
		return err
	}

	return c.JSON(http.StatusOK, messageResponse{Success: true, Message: "Password changed successfully!"})
}
