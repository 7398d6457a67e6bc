package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoswagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/insight-nexus/auth-system/internal/api/handler"
	"github.com/insight-nexus/auth-system/internal/api/middleware"
	"github.com/insight-nexus/auth-system/internal/core/service"
	"github.com/insight-nexus/auth-system/internal/infrastructure/config"
	mongodb "github.com/insight-nexus/auth-system/internal/infrastructure/db/mongo"
	redisdb "github.com/insight-nexus/auth-system/internal/infrastructure/db/redis"
)

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(cfg *config.Config, db *mongo.Database, rdb *redis.Client, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echoprometheus.NewMiddleware("auth"))

	// --- Dependencies ---
	userRepo := mongodb.NewUserRepository(db)
	attemptRepo := mongodb.NewAttemptRepository(db)
	denylist := redisdb.NewDenylist(rdb)

	lockoutService := service.NewLockoutService(attemptRepo, log)
	tokenService := service.NewTokenService(cfg.JWTSecret, cfg.AdminEmail, denylist)
	authService := service.NewAuthService(userRepo, lockoutService, tokenService, cfg.VerificationTTL, log)
	adminService := service.NewAdminService(userRepo, cfg.AdminEmail, cfg.AdminSetupKey, log)

	authHandler := handler.NewAuthHandler(authService, cfg.Production())
	adminHandler := handler.NewAdminHandler(adminService, lockoutService)
	attemptsHandler := handler.NewAttemptsHandler(lockoutService, cfg.Production())

	authRequired := middleware.Auth(cfg.JWTSecret, denylist)
	adminOnly := middleware.AdminOnly(cfg.AdminEmail)

	// --- Auth routes ---
	e.POST("/auth/register", authHandler.Register)
	e.POST("/auth/verify-email", authHandler.VerifyEmail)
	e.POST("/auth/login", authHandler.Login)
	e.GET("/auth/me", authHandler.Me, authRequired)
	e.POST("/auth/logout", authHandler.Logout, authRequired)
	e.POST("/auth/change-password", authHandler.ChangePassword, authRequired)

	// --- Login attempt routes ---
	e.GET("/auth/login-attempts/:email", attemptsHandler.GetAttempts)
	e.POST("/auth/request-admin-approval", attemptsHandler.RequestApproval)

	// --- Admin routes ---
	e.POST("/admin/setup", adminHandler.Setup) // one-time, self-disabling
	e.GET("/admin/users", adminHandler.ListUsers, authRequired, adminOnly)
	e.POST("/admin/create-user", adminHandler.CreateUser, authRequired, adminOnly)
	e.POST("/admin/approve-user", adminHandler.ApproveUser, authRequired, adminOnly)

	// --- Health probes (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", readinessHandler.Readiness)

	// --- Observability & docs ---
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoswagger.WrapHandler)

	return e
}
