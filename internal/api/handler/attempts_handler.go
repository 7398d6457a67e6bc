package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/insight-nexus/auth-system/internal/api/metrics"
	"github.com/insight-nexus/auth-system/internal/core/domain"
	"github.com/insight-nexus/auth-system/internal/core/ports"
)

// AttemptsHandler serves the open login-attempt tracker routes.
type AttemptsHandler struct {
	lockout    ports.LockoutService
	production bool
}

func NewAttemptsHandler(lockout ports.LockoutService, production bool) *AttemptsHandler {
	return &AttemptsHandler{lockout: lockout, production: production}
}

// GetAttempts reads the tracker state for an email. A missing record
// reads as a zeroed clean record, not an error.
//
// @Summary      Login attempt state for an email
// @Tags         attempts
// @Produce      json
// @Param        email  path      string  true  "Email address"
// @Success      200    {object}  attemptsResponse
// @Router       /auth/login-attempts/{email} [get]
func (h *AttemptsHandler) GetAttempts(c echo.Context) error {
	email := c.Param("email")

	attempt, err := h.lockout.Status(c.Request().Context(), email)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, attemptsResponse{
		Success:       true,
		Email:         attempt.Email,
		Attempts:      attempt.Attempts,
		Blocked:       attempt.Blocked,
		AdminApproved: attempt.AdminApproved,
		LastAttempt:   attempt.LastAttempt,
	})
}

// RequestApproval issues an approval token for a blocked account.
//
// @Summary      Request admin approval for a blocked account
// @Tags         attempts
// @Accept       json
// @Produce      json
// @Param        body  body      requestApprovalRequest  true  "Email address"
// @Success      200   {object}  approvalRequestResponse
// @Failure      400   {object}  messageResponse
// @Router       /auth/request-admin-approval [post]
func (h *AttemptsHandler) RequestApproval(c echo.Context) error {
	var req requestApprovalRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, messageResponse{Message: "Invalid data provided."})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, messageResponse{Message: err.Error()})
	}

	token, err := h.lockout.RequestApproval(c.Request().Context(), req.Email)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrAttemptNotFound):
			return c.JSON(http.StatusBadRequest, messageResponse{Message: "No login attempt record found for this email."})
		case errors.Is(err, domain.ErrNotBlocked):
			return c.JSON(http.StatusBadRequest, messageResponse{Message: "Account is not blocked."})
		}
		return err
	}

	metrics.ApprovalRequestsTotal.Inc()

	resp := approvalRequestResponse{
		Success: true,
		Message: "Admin approval request sent. Please wait for approval.",
	}
	if !h.production {
		resp.AdminToken = token
	}
	return c.JSON(http.StatusOK, resp)
}
