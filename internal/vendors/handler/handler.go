package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"backoffice_portal_backend/internal/vendors/service"
	"backoffice_portal_backend/internal/vendors/transport"
	"backoffice_portal_backend/platform/httpkit"
	"backoffice_portal_backend/platform/validator"
)

const (
	msgInvalidRequest   = "invalid request"
	msgValidationFailed = "validation failed"
)

// Handler handles HTTP requests for vendor client onboarding and orders.
type Handler struct {
	svc *service.Service
	val *validator.Validator
}

// New creates a new vendors handler.
func New(svc *service.Service, val *validator.Validator) *Handler {
	return &Handler{svc: svc, val: val}
}

// OnboardClient creates a client account plus their first order.
// POST /api/v1/vendor/onboard/client
func (h *Handler) OnboardClient(c *gin.Context) {
	var req transport.OnboardClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}

	identity := httpkit.MustGetIdentity(c)
	result, err := h.svc.OnboardClient(c.Request.Context(), identity.UserID(), req)
	if err != nil {
		httpkit.HandleError(c, err)
		return
	}
	httpkit.Created(c, "client onboarded", result)
}

// ListClients returns the caller's client orders.
// GET /api/v1/vendor/clients
func (h *Handler) ListClients(c *gin.Context) {
	identity := httpkit.MustGetIdentity(c)
	result, err := h.svc.ListClients(c.Request.Context(), identity.UserID())
	if err != nil {
		httpkit.HandleError(c, err)
		return
	}
	httpkit.OK(c, "clients fetched", result)
}

// UpdateOrderStatus changes an order's status.
// POST /api/v1/vendor/order/status
func (h *Handler) UpdateOrderStatus(c *gin.Context) {
	var req transport.UpdateOrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}

	identity := httpkit.MustGetIdentity(c)
	result, err := h.svc.UpdateOrderStatus(c.Request.Context(), identity.UserID(), req)
	if err != nil {
		httpkit.HandleError(c, err)
		return
	}
	httpkit.OK(c, "order status updated", result)
}
