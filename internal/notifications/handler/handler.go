package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"backoffice_portal_backend/internal/notifications/service"
	"backoffice_portal_backend/internal/notifications/transport"
	"backoffice_portal_backend/platform/httpkit"
	"backoffice_portal_backend/platform/validator"
)

const (
	msgInvalidRequest   = "invalid request"
	msgValidationFailed = "validation failed"
)

// Handler handles HTTP requests for notifications.
type Handler struct {
	svc *service.Service
	val *validator.Validator
}

// New creates a new notifications handler.
func New(svc *service.Service, val *validator.Validator) *Handler {
	return &Handler{svc: svc, val: val}
}

// ListUnread returns the caller's unread notifications.
// GET /api/v1/ticket/csr/notifications
func (h *Handler) ListUnread(c *gin.Context) {
	identity := httpkit.MustGetIdentity(c)
	result, err := h.svc.ListUnread(c.Request.Context(), identity.UserID(), identity.Role())
	if err != nil {
		httpkit.HandleError(c, err)
		return
	}
	httpkit.OK(c, "notifications fetched", result)
}

// MarkRead flags a notification as read for the caller.
// POST /api/v1/ticket/csr/notifications/mark-as-read/:notificationId
func (h *Handler) MarkRead(c *gin.Context) {
	identity := httpkit.MustGetIdentity(c)
	err := h.svc.MarkRead(c.Request.Context(), c.Param("notificationId"), identity.UserID(), identity.Role())
	if err != nil {
		httpkit.HandleError(c, err)
		return
	}
	httpkit.OK(c, "notification marked as read", nil)
}

// Create manually inserts a notification.
// POST /api/v1/notifications/add
func (h *Handler) Create(c *gin.Context) {
	var req transport.CreateNotificationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}

	identity := httpkit.MustGetIdentity(c)
	result, err := h.svc.Create(c.Request.Context(), identity.UserID(), req)
	if err != nil {
		httpkit.HandleError(c, err)
		return
	}
	httpkit.Created(c, "notification created", result)
}
