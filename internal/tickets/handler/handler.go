package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"backoffice_portal_backend/internal/tickets/service"
	"backoffice_portal_backend/internal/tickets/transport"
	"backoffice_portal_backend/platform/httpkit"
	"backoffice_portal_backend/platform/validator"
)

const (
	msgInvalidRequest   = "invalid request"
	msgValidationFailed = "validation failed"
)

// Handler handles HTTP requests for CSR and customer tickets.
type Handler struct {
	svc *service.Service
	val *validator.Validator
}

// New creates a new tickets handler.
func New(svc *service.Service, val *validator.Validator) *Handler {
	return &Handler{svc: svc, val: val}
}

// CreateCsr opens a CSR ticket.
// POST /api/v1/ticket/csr/add
func (h *Handler) CreateCsr(c *gin.Context) {
	var req transport.CreateCsrTicketRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}

	identity := httpkit.MustGetIdentity(c)
	result, err := h.svc.CreateCsr(c.Request.Context(), identity.UserID(), req)
	if err != nil {
		httpkit.HandleError(c, err)
		return
	}
	httpkit.Created(c, "ticket created", result)
}

// ListCsr returns all CSR tickets.
// GET /api/v1/ticket/csr/getall
func (h *Handler) ListCsr(c *gin.Context) {
	result, err := h.svc.ListCsr(c.Request.Context())
	if err != nil {
		httpkit.HandleError(c, err)
		return
	}
	httpkit.OK(c, "tickets fetched", result)
}

// CompletePending flips a pending ticket to completed.
// POST /api/v1/ticket/csr/updatestatus/:ticketId
func (h *Handler) CompletePending(c *gin.Context) {
	result, err := h.svc.CompletePending(c.Request.Context(), c.Param("ticketId"))
	if err != nil {
		httpkit.HandleError(c, err)
		return
	}
	httpkit.OK(c, "ticket completed", result)
}

// Attend marks a ticket as attended by the caller.
// POST /api/v1/ticket/csr/attend/:ticketId
func (h *Handler) Attend(c *gin.Context) {
	var req transport.AttendTicketRequest
	// The fulfillment fields are optional, so an empty body is legal.
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
			return
		}
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}

	identity := httpkit.MustGetIdentity(c)
	result, err := h.svc.Attend(c.Request.Context(), identity.UserID(), c.Param("ticketId"), req)
	if err != nil {
		httpkit.HandleError(c, err)
		return
	}
	httpkit.OK(c, "ticket attended", result)
}

// CreateUserTicket records a customer-submitted ticket.
// POST /api/v1/ticket/user/add
func (h *Handler) CreateUserTicket(c *gin.Context) {
	var req transport.CreateUserTicketRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}

	result, err := h.svc.CreateUserTicket(c.Request.Context(), req)
	if err != nil {
		httpkit.HandleError(c, err)
		return
	}
	httpkit.Created(c, "ticket submitted", result)
}

// ListUserTickets returns all customer-submitted tickets.
// GET /api/v1/ticket/user/getall
func (h *Handler) ListUserTickets(c *gin.Context) {
	result, err := h.svc.ListUserTickets(c.Request.Context())
	if err != nil {
		httpkit.HandleError(c, err)
		return
	}
	httpkit.OK(c, "tickets fetched", result)
}

// Convert generates a CSR ticket from a user ticket.
// POST /api/v1/ticket/csr/generateFromUser/:userTicketId
func (h *Handler) Convert(c *gin.Context) {
	var req transport.ConvertTicketRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
			return
		}
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}

	identity := httpkit.MustGetIdentity(c)
	result, err := h.svc.Convert(c.Request.Context(), identity.UserID(), c.Param("userTicketId"), req)
	if err != nil {
		httpkit.HandleError(c, err)
		return
	}
	httpkit.Created(c, "ticket generated", result)
}

// Counts returns ticket statistics.
// GET /api/v1/ticket/stats/counts
func (h *Handler) Counts(c *gin.Context) {
	result, err := h.svc.Counts(c.Request.Context())
	if err != nil {
		httpkit.HandleError(c, err)
		return
	}
	httpkit.OK(c, "counts fetched", result)
}
