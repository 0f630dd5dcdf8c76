// Package leads provides the lead lifecycle bounded context module:
// leads, spreadsheet import, activities, and discussions.
package leads

import (
	"backoffice_portal_backend/internal/auth/rbac"
	"backoffice_portal_backend/internal/events"
	apphttp "backoffice_portal_backend/internal/http"
	"backoffice_portal_backend/internal/leads/handler"
	"backoffice_portal_backend/internal/leads/repository"
	"backoffice_portal_backend/internal/leads/service"
	"backoffice_portal_backend/platform/logger"
	"backoffice_portal_backend/platform/validator"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Module is the leads bounded context module implementing http.Module.
type Module struct {
	handler *handler.Handler
	service *service.Service
	log     *logger.Logger
}

// NewModule creates and initializes the leads module with all its dependencies.
func NewModule(pool *pgxpool.Pool, eventBus events.Bus, archiver service.ImportArchiver, log *logger.Logger, val *validator.Validator) *Module {
	repo := repository.New(pool)
	svc := service.New(repo, eventBus, archiver, log)
	h := handler.New(svc, val)

	return &Module{handler: h, service: svc, log: log}
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "leads"
}

// Service returns the leads service for use by other modules.
func (m *Module) Service() *service.Service {
	return m.service
}

// RegisterRoutes mounts lead routes on the provided router context.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	leads := ctx.Protected.Group("/leads")

	leads.GET("", m.handler.List)
	leads.GET("/remarketing", m.handler.ListRemarketing)
	leads.GET("/filter", m.handler.Filter)
	leads.GET("/counts", m.handler.Counts)

	leads.POST("/add", rbac.Require(rbac.PermLeadCreate, m.log), m.handler.Create)
	leads.POST("/import", rbac.Require(rbac.PermLeadImport, m.log), m.handler.Import)
	leads.PUT("/update/:id", rbac.Require(rbac.PermLeadUpdate, m.log), m.handler.Update)
	leads.PUT("/qualified-status/:leadId", rbac.Require(rbac.PermLeadQualify, m.log), m.handler.SetQualifiedStatus)
	leads.PUT("/toggle-remarketing/:id", rbac.Require(rbac.PermLeadRemarketing, m.log), m.handler.ToggleRemarketing)

	leads.POST("/discussion/add", m.handler.AddDiscussion)
	leads.GET("/discussion/:leadId", m.handler.ListDiscussions)
	leads.POST("/activity/add", m.handler.AddActivity)
	leads.GET("/activity/:leadId", m.handler.ListActivities)
	leads.GET("/my-followups", m.handler.MyFollowUps)
}

// Compile-time check that Module implements http.Module
var _ apphttp.Module = (*Module)(nil)
