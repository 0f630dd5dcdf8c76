// Package vendors provides the vendor bounded context module: client
// onboarding and order tracking.
package vendors

import (
	"backoffice_portal_backend/internal/auth/rbac"
	apphttp "backoffice_portal_backend/internal/http"
	"backoffice_portal_backend/internal/vendors/handler"
	"backoffice_portal_backend/internal/vendors/repository"
	"backoffice_portal_backend/internal/vendors/service"
	"backoffice_portal_backend/platform/logger"
	"backoffice_portal_backend/platform/validator"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Module is the vendors bounded context module implementing http.Module.
type Module struct {
	handler *handler.Handler
	log     *logger.Logger
}

// NewModule creates and initializes the vendors module.
func NewModule(pool *pgxpool.Pool, log *logger.Logger, val *validator.Validator) *Module {
	repo := repository.New(pool)
	svc := service.New(repo, log)
	h := handler.New(svc, val)

	return &Module{handler: h, log: log}
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "vendors"
}

// RegisterRoutes mounts vendor routes on the provided router context.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	vendor := ctx.Protected.Group("/vendor")

	vendor.POST("/onboard/client", rbac.Require(rbac.PermVendorOnboard, m.log), m.handler.OnboardClient)
	vendor.GET("/clients", m.handler.ListClients)
	vendor.POST("/order/status", m.handler.UpdateOrderStatus)
}

// Compile-time check that Module implements http.Module
var _ apphttp.Module = (*Module)(nil)
