// Package tickets provides the ticketing bounded context module: CSR
// tickets, customer-submitted tickets, attend, and conversion.
package tickets

import (
	"backoffice_portal_backend/internal/auth/rbac"
	"backoffice_portal_backend/internal/events"
	apphttp "backoffice_portal_backend/internal/http"
	"backoffice_portal_backend/internal/tickets/handler"
	"backoffice_portal_backend/internal/tickets/repository"
	"backoffice_portal_backend/internal/tickets/service"
	"backoffice_portal_backend/platform/logger"
	"backoffice_portal_backend/platform/validator"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Module is the tickets bounded context module implementing http.Module.
type Module struct {
	handler *handler.Handler
	log     *logger.Logger
}

// NewModule creates and initializes the tickets module.
func NewModule(pool *pgxpool.Pool, eventBus events.Bus, log *logger.Logger, val *validator.Validator) *Module {
	repo := repository.New(pool)
	svc := service.New(repo, eventBus, log)
	h := handler.New(svc, val)

	return &Module{handler: h, log: log}
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "tickets"
}

// RegisterRoutes mounts ticket routes on the provided router context.
// Customer ticket submission is deliberately public.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	ctx.V1.POST("/ticket/user/add", m.handler.CreateUserTicket)

	ticket := ctx.Protected.Group("/ticket")
	ticket.POST("/csr/add", m.handler.CreateCsr)
	ticket.GET("/csr/getall", m.handler.ListCsr)
	ticket.GET("/user/getall", m.handler.ListUserTickets)
	ticket.POST("/csr/updatestatus/:ticketId", m.handler.CompletePending)
	ticket.POST("/csr/attend/:ticketId", rbac.Require(rbac.PermTicketAttend, m.log), m.handler.Attend)
	ticket.POST("/csr/generateFromUser/:userTicketId", rbac.Require(rbac.PermTicketConvert, m.log), m.handler.Convert)
	ticket.GET("/stats/counts", m.handler.Counts)
}

// Compile-time check that Module implements http.Module
var _ apphttp.Module = (*Module)(nil)
