package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"backoffice_portal_backend/internal/assignments/service"
	"backoffice_portal_backend/internal/assignments/transport"
	"backoffice_portal_backend/platform/httpkit"
	"backoffice_portal_backend/platform/validator"
)

const (
	msgInvalidRequest   = "invalid request"
	msgValidationFailed = "validation failed"
)

// Handler handles HTTP requests for lead assignments.
type Handler struct {
	svc *service.Service
	val *validator.Validator
}

// New creates a new assignments handler.
func New(svc *service.Service, val *validator.Validator) *Handler {
	return &Handler{svc: svc, val: val}
}

// Assign hands a lead to a user.
// POST /api/v1/leadsassign/assign
func (h *Handler) Assign(c *gin.Context) {
	var req transport.AssignLeadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}

	identity := httpkit.MustGetIdentity(c)
	result, err := h.svc.Assign(c.Request.Context(), identity.UserID(), req)
	if err != nil {
		httpkit.HandleError(c, err)
		return
	}
	httpkit.Created(c, "lead assigned", result)
}

// History returns a lead's assignment trail.
// GET /api/v1/leadsassign/history/:leadId
func (h *Handler) History(c *gin.Context) {
	result, err := h.svc.History(c.Request.Context(), c.Param("leadId"))
	if err != nil {
		httpkit.HandleError(c, err)
		return
	}
	httpkit.OK(c, "assignments fetched", result)
}
