package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/insight-nexus/auth-system/internal/api/metrics"
	"github.com/insight-nexus/auth-system/internal/core/domain"
	"github.com/insight-nexus/auth-system/internal/core/ports"
	"github.com/insight-nexus/auth-system/internal/core/service"
)

// AdminHandler serves the /admin routes. Every route except Setup sits
// behind the Auth and AdminOnly middleware.
type AdminHandler struct {
	admin   ports.AdminService
	lockout ports.LockoutService
}

func NewAdminHandler(admin ports.AdminService, lockout ports.LockoutService) *AdminHandler {
	return &AdminHandler{admin: admin, lockout: lockout}
}

// Setup bootstraps the first administrator account. Open but gated by
// the setup key, and permanently disabled once an administrator exists.
//
// @Summary      One-time administrator bootstrap
// @Tags         admin
// @Accept       json
// @Produce      json
// @Param        body  body      setupAdminRequest  true  "Admin credentials and setup key"
// @Success      201   {object}  createdUserResponse
// @Failure      400   {object}  messageResponse
// @Failure      403   {object}  messageResponse
// @Router       /admin/setup [post]
func (h *AdminHandler) Setup(c echo.Context) error {
	var req setupAdminRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, messageResponse{Message: "Invalid data provided."})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, messageResponse{Message: err.Error()})
	}

	admin, err := h.admin.Setup(c.Request().Context(), ports.SetupInput{
		Email:     req.Email,
		Password:  req.Password,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		SetupKey:  req.SetupKey,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrAdminExists):
			return c.JSON(http.StatusBadRequest, messageResponse{Message: "Admin user already exists. This endpoint is disabled."})
		case errors.Is(err, service.ErrInvalidSetupKey):
			return c.JSON(http.StatusForbidden, messageResponse{Message: "Invalid setup key."})
		case errors.Is(err, domain.ErrUserExists):
			return c.JSON(http.StatusBadRequest, messageResponse{Message: "User with this email already exists."})
		case errors.Is(err, domain.ErrInvalidCredentials):
			return c.JSON(http.StatusBadRequest, messageResponse{Message: "Password is required."})
		}
		return err
	}

	return c.JSON(http.StatusCreated, createdUserResponse{
		Success: true,
		Message: "Admin user created successfully! You can now login.",
		User:    toUserResponse(admin),
	})
}

// ListUsers returns every account.
//
// @Summary      List all users
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Success      200   {object}  usersResponse
// @Failure      401   {object}  messageResponse
// @Failure      403   {object}  messageResponse
// @Router       /admin/users [get]
func (h *AdminHandler) ListUsers(c echo.Context) error {
	users, err := h.admin.ListUsers(c.Request().Context())
	if err != nil {
		return err
	}

	resp := usersResponse{Success: true, Users: make([]userResponse, 0, len(users))}
	for i := range users {
		resp.Users = append(resp.Users, toUserResponse(&users[i]))
	}
	return c.JSON(http.StatusOK, resp)
}

// CreateUser creates a pre-verified account.
//
// @Summary      Create a pre-verified user
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      registerRequest  true  "User details"
// @Success      201   {object}  createdUserResponse
// @Failure      400   {object}  messageResponse
// @Failure      401   {object}  messageResponse
// @Failure      403   {object}  messageResponse
// @Router       /admin/create-user [post]
func (h *AdminHandler) CreateUser(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, messageResponse{Message: "Invalid data provided."})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, messageResponse{Message: err.Error()})
	}

	user, err := h.admin.CreateUser(c.Request().Context(), ports.RegisterInput{
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

	metrics.RegistrationsTotal.WithLabelValues("admin").Inc()

	return c.JSON(http.StatusCreated, createdUserResponse{
		Success: true,
		Message: "User created successfully!",
		User:    toUserResponse(user),
	})
}

// ApproveUser clears a block by consuming a single-use approval token.
//
// @Summary      Approve a blocked user
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      approveUserRequest  true  "Email and approval token"
// @Success      200   {object}  messageResponse
// @Failure      400   {object}  messageResponse
// @Failure      401   {object}  messageResponse
// @Failure      403   {object}  messageResponse
// @Router       /admin/approve-user [post]
func (h *AdminHandler) ApproveUser(c echo.Context) error {
	var req approveUserRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, messageResponse{Message: "Invalid data provided."})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, messageResponse{Message: err.Error()})
	}

	if err := h.lockout.Approve(c.Request().Context(), req.Email, req.AdminToken); err != nil {
		switch {
		case errors.Is(err, domain.ErrAttemptNotFound):
			return c.JSON(http.StatusBadRequest, messageResponse{Message: "No login attempt record found for this email."})
		case errors.Is(err, domain.ErrInvalidApprovalToken):
			return c.JSON(http.StatusBadRequest, messageResponse{Message: "Invalid admin token."})
		}
		return err
	}

	metrics.ApprovalsTotal.Inc()

	return c.JSON(http.StatusOK, messageResponse{Success: true, Message: "User approved successfully."})
}
