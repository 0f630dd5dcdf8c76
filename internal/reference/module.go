// Package reference provides the reference data module: countries with
// nested states and cities, visa types, and CSR fulfillment lookups.
package reference

import (
	"backoffice_portal_backend/internal/auth/rbac"
	apphttp "backoffice_portal_backend/internal/http"
	"backoffice_portal_backend/internal/reference/handler"
	"backoffice_portal_backend/internal/reference/repository"
	"backoffice_portal_backend/internal/reference/service"
	"backoffice_portal_backend/platform/logger"
	"backoffice_portal_backend/platform/validator"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Module is the reference data module implementing http.Module.
type Module struct {
	handler *handler.Handler
	log     *logger.Logger
}

// NewModule creates and initializes the reference data module.
func NewModule(pool *pgxpool.Pool, log *logger.Logger, val *validator.Validator) *Module {
	repo := repository.New(pool)
	svc := service.New(repo, log)
	h := handler.New(svc, val)

	return &Module{handler: h, log: log}
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "reference"
}

// RegisterRoutes mounts reference data routes on the provided router
// context. Reads are open to any authenticated user; writes need the
// reference management permission.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	manage := rbac.Require(rbac.PermReferenceManage, m.log)

	ctx.Protected.POST("/country/add", manage, m.handler.CreateCountry)
	ctx.Protected.POST("/country/state/add", manage, m.handler.CreateState)
	ctx.Protected.POST("/country/city/add", manage, m.handler.CreateCity)
	ctx.Protected.GET("/country/all", m.handler.ListCountries)

	ctx.Protected.POST("/visa/add", manage, m.handler.CreateVisaType)
	ctx.Protected.GET("/visa/all", m.handler.ListVisaTypes)

	reference := ctx.Protected.Group("/reference")
	reference.POST("/company/add", manage, m.handler.CreateShippingCompany)
	reference.GET("/company/all", m.handler.ListShippingCompanies)
	reference.POST("/driver/add", manage, m.handler.CreateDriver)
	reference.GET("/driver/all", m.handler.ListDrivers)
}

// Compile-time check that Module implements http.Module
var _ apphttp.Module = (*Module)(nil)
