// Package notifications provides the notification bounded context module:
// direct and role-broadcast notifications plus the event-driven fan-out.
package notifications

import (
	"backoffice_portal_backend/internal/auth/rbac"
	"backoffice_portal_backend/internal/events"
	apphttp "backoffice_portal_backend/internal/http"
	"backoffice_portal_backend/internal/notifications/handler"
	"backoffice_portal_backend/internal/notifications/repository"
	"backoffice_portal_backend/internal/notifications/service"
	"backoffice_portal_backend/platform/logger"
	"backoffice_portal_backend/platform/validator"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Module is the notifications bounded context module implementing http.Module.
type Module struct {
	handler *handler.Handler
	service *service.Service
	log     *logger.Logger
}

// NewModule creates the notifications module and subscribes its fan-out
// handlers to the event bus.
func NewModule(pool *pgxpool.Pool, eventBus events.Bus, log *logger.Logger, val *validator.Validator) *Module {
	repo := repository.New(pool)
	svc := service.New(repo, log)
	svc.RegisterEventHandlers(eventBus)
	h := handler.New(svc, val)

	return &Module{handler: h, service: svc, log: log}
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "notifications"
}

// Service returns the notifications service for use by the scheduler worker.
func (m *Module) Service() *service.Service {
	return m.service
}

// RegisterRoutes mounts notification routes on the provided router context.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	ctx.Protected.GET("/ticket/csr/notifications", m.handler.ListUnread)
	ctx.Protected.POST("/ticket/csr/notifications/mark-as-read/:notificationId", m.handler.MarkRead)
	ctx.Protected.POST("/notifications/add", rbac.Require(rbac.PermNotificationCreate, m.log), m.handler.Create)
}

// Compile-time check that Module implements http.Module
var _ apphttp.Module = (*Module)(nil)
