// Package assignments provides the lead assignment bounded context module.
package assignments

import (
	"backoffice_portal_backend/internal/assignments/handler"
	"backoffice_portal_backend/internal/assignments/repository"
	"backoffice_portal_backend/internal/assignments/service"
	"backoffice_portal_backend/internal/auth/rbac"
	"backoffice_portal_backend/internal/events"
	apphttp "backoffice_portal_backend/internal/http"
	"backoffice_portal_backend/platform/logger"
	"backoffice_portal_backend/platform/validator"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Module is the assignments bounded context module implementing http.Module.
type Module struct {
	handler *handler.Handler
	log     *logger.Logger
}

// NewModule creates and initializes the assignments module.
func NewModule(pool *pgxpool.Pool, eventBus events.Bus, log *logger.Logger, val *validator.Validator) *Module {
	repo := repository.New(pool)
	svc := service.New(repo, eventBus, log)
	h := handler.New(svc, val)

	return &Module{handler: h, log: log}
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "assignments"
}

// RegisterRoutes mounts assignment routes on the provided router context.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	assign := ctx.Protected.Group("/leadsassign")

	assign.POST("/assign", rbac.Require(rbac.PermLeadAssign, m.log), m.handler.Assign)
	assign.GET("/history/:leadId", m.handler.History)
}

// Compile-time check that Module implements http.Module
var _ apphttp.Module = (*Module)(nil)
