// Package users provides the user-profile and role bounded context module.
package users

import (
	"backoffice_portal_backend/internal/auth/rbac"
	apphttp "backoffice_portal_backend/internal/http"
	"backoffice_portal_backend/internal/users/handler"
	"backoffice_portal_backend/internal/users/repository"
	"backoffice_portal_backend/internal/users/service"
	"backoffice_portal_backend/platform/logger"
	"backoffice_portal_backend/platform/validator"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Module is the users bounded context module implementing http.Module.
type Module struct {
	handler *handler.Handler
	log     *logger.Logger
}

// NewModule creates and initializes the users module with all its dependencies.
func NewModule(pool *pgxpool.Pool, log *logger.Logger, val *validator.Validator) *Module {
	repo := repository.New(pool)
	svc := service.New(repo, log)
	h := handler.New(svc, val)

	return &Module{handler: h, log: log}
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "users"
}

// RegisterRoutes mounts user and role routes on the provided router context.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	ctx.Protected.GET("/user/profile", m.handler.GetProfile)

	admin := ctx.Protected.Group("/admin")
	admin.Use(rbac.Require(rbac.PermUserAdminRead, m.log))
	admin.GET("/all/users", m.handler.ListUsers)
	admin.GET("/single/user/:id", m.handler.GetUser)

	// Role management stays public; CreateRole only accepts known role names.
	roleGroup := ctx.V1.Group("/role")
	roleGroup.POST("/add", m.handler.CreateRole)
	roleGroup.GET("/all", m.handler.ListRoles)
}

// Compile-time check that Module implements http.Module
var _ apphttp.Module = (*Module)(nil)
