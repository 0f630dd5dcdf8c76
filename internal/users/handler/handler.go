package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"backoffice_portal_backend/internal/users/service"
	"backoffice_portal_backend/internal/users/transport"
	"backoffice_portal_backend/platform/httpkit"
	"backoffice_portal_backend/platform/validator"
)

const (
	msgInvalidRequest   = "invalid request"
	msgValidationFailed = "validation failed"
	msgInvalidID        = "invalid user ID"
)

// Handler handles HTTP requests for users and roles.
type Handler struct {
	svc *service.Service
	val *validator.Validator
}

// New creates a new users handler.
func New(svc *service.Service, val *validator.Validator) *Handler {
	return &Handler{svc: svc, val: val}
}

// GetProfile returns the caller's profile.
// GET /api/v1/user/profile
func (h *Handler) GetProfile(c *gin.Context) {
	identity := httpkit.MustGetIdentity(c)
	if identity == nil {
		return
	}

	result, err := h.svc.GetProfile(c.Request.Context(), identity.UserID())
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, "profile fetched", result)
}

// ListUsers returns all users.
// GET /api/v1/admin/all/users
func (h *Handler) ListUsers(c *gin.Context) {
	result, err := h.svc.ListUsers(c.Request.Context())
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, "users fetched", result)
}

// GetUser returns a single user.
// GET /api/v1/admin/single/user/:id
func (h *Handler) GetUser(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidID, nil)
		return
	}

	result, err := h.svc.GetUser(c.Request.Context(), id)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, "user fetched", result)
}

// CreateRole registers a role name.
// POST /api/v1/role/add
func (h *Handler) CreateRole(c *gin.Context) {
	var req transport.CreateRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}

	result, err := h.svc.CreateRole(c.Request.Context(), req.Name)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.Created(c, "role created", result)
}

// ListRoles returns all roles.
// GET /api/v1/role/all
func (h *Handler) ListRoles(c *gin.Context) {
	result, err := h.svc.ListRoles(c.Request.Context())
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, "roles fetched", result)
}
