// Package auth provides the authentication bounded context module.
// This file defines the module that encapsulates all auth setup and route registration.
package auth

import (
	"backoffice_portal_backend/internal/auth/handler"
	"backoffice_portal_backend/internal/auth/repository"
	"backoffice_portal_backend/internal/auth/service"
	"backoffice_portal_backend/internal/events"
	apphttp "backoffice_portal_backend/internal/http"
	"backoffice_portal_backend/platform/config"
	"backoffice_portal_backend/platform/logger"
	"backoffice_portal_backend/platform/validator"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Module is the auth bounded context module implementing http.Module.
type Module struct {
	handler *handler.Handler
	service *service.Service
}

// NewModule creates and initializes the auth module with all its dependencies.
func NewModule(pool *pgxpool.Pool, cfg config.AuthServiceConfig, eventBus events.Bus, log *logger.Logger, val *validator.Validator) *Module {
	repo := repository.New(pool)
	svc := service.New(repo, cfg, eventBus, log)
	h := handler.New(svc, val)

	return &Module{
		handler: h,
		service: svc,
	}
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "auth"
}

// Service returns the auth service for use by other modules.
func (m *Module) Service() *service.Service {
	return m.service
}

// RegisterRoutes mounts auth routes on the provided router context.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	// Public auth routes with stricter rate limiting
	authGroup := ctx.V1.Group("/auth")
	authGroup.Use(ctx.AuthRateLimiter.RateLimit())
	authGroup.POST("/signup-superadmin", m.handler.SignupSuperadmin)
	authGroup.POST("/login", m.handler.Login)
	authGroup.POST("/forgot-password", m.handler.ForgotPassword)
	authGroup.POST("/verify-otp", m.handler.VerifyOTP)
	authGroup.POST("/verify-token", m.handler.VerifyToken)

	// Public endpoint, rate limited like the rest of auth
	setPassword := ctx.V1.Group("/user")
	setPassword.Use(ctx.AuthRateLimiter.RateLimit())
	setPassword.POST("/add/password", m.handler.SetPassword)
}

// Compile-time check that Module implements http.Module
var _ apphttp.Module = (*Module)(nil)
