package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"backoffice_portal_backend/internal/auth/rbac"
	"backoffice_portal_backend/internal/leads/service"
	"backoffice_portal_backend/internal/leads/transport"
	"backoffice_portal_backend/platform/httpkit"
	"backoffice_portal_backend/platform/validator"
)

const (
	msgInvalidRequest   = "invalid request"
	msgValidationFailed = "validation failed"
	msgInvalidID        = "invalid lead ID"
)

// Handler handles HTTP requests for leads, activities, and discussions.
type Handler struct {
	svc *service.Service
	val *validator.Validator
}

// New creates a new leads handler.
func New(svc *service.Service, val *validator.Validator) *Handler {
	return &Handler{svc: svc, val: val}
}

func callerFrom(c *gin.Context) (service.Caller, bool) {
	identity := httpkit.MustGetIdentity(c)
	if identity == nil {
		return service.Caller{}, false
	}
	role, _ := rbac.Parse(identity.Role())
	return service.Caller{UserID: identity.UserID(), Role: role}, true
}

// Create inserts a single lead.
// POST /api/v1/leads/add
func (h *Handler) Create(c *gin.Context) {
	caller, ok := callerFrom(c)
	if !ok {
		return
	}

	var req transport.CreateLeadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}

	result, err := h.svc.Create(c.Request.Context(), caller, req)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.Created(c, "lead created", result)
}

// Import inserts leads from an uploaded spreadsheet.
// POST /api/v1/leads/import
func (h *Handler) Import(c *gin.Context) {
	caller, ok := callerFrom(c)
	if !ok {
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, "missing file upload", nil)
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, "could not open upload", nil)
		return
	}
	defer file.Close()

	result, err := h.svc.Import(c.Request.Context(), caller, fileHeader.Filename, file)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.Created(c, "leads imported", result)
}

// List returns non-remarketing leads visible to the caller.
// GET /api/v1/leads
func (h *Handler) List(c *gin.Context) {
	caller, ok := callerFrom(c)
	if !ok {
		return
	}

	result, err := h.svc.List(c.Request.Context(), caller)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, "leads fetched", result)
}

// ListRemarketing returns remarketing leads visible to the caller.
// GET /api/v1/leads/remarketing
func (h *Handler) ListRemarketing(c *gin.Context) {
	caller, ok := callerFrom(c)
	if !ok {
		return
	}

	result, err := h.svc.ListRemarketing(c.Request.Context(), caller)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, "remarketing leads fetched", result)
}

// Filter returns leads matching the query filters.
// GET /api/v1/leads/filter
func (h *Handler) Filter(c *gin.Context) {
	caller, ok := callerFrom(c)
	if !ok {
		return
	}

	var req transport.FilterLeadsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}

	result, err := h.svc.Filter(c.Request.Context(), caller, req)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, "leads fetched", result)
}

// Counts returns the dashboard counters.
// GET /api/v1/leads/counts
func (h *Handler) Counts(c *gin.Context) {
	caller, ok := callerFrom(c)
	if !ok {
		return
	}

	result, err := h.svc.Counts(c.Request.Context(), caller)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, "lead counts fetched", result)
}

// Update applies a partial update to a lead.
// PUT /api/v1/leads/update/:id
func (h *Handler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidID, nil)
		return
	}

	var req transport.UpdateLeadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}

	result, err := h.svc.Update(c.Request.Context(), id, req)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, "lead updated", result)
}

// SetQualifiedStatus updates a lead's qualification flag.
// PUT /api/v1/leads/qualified-status/:leadId
func (h *Handler) SetQualifiedStatus(c *gin.Context) {
	id, err := uuid.Parse(c.Param("leadId"))
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidID, nil)
		return
	}

	var req transport.SetQualifiedStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}

	result, err := h.svc.SetQualifiedStatus(c.Request.Context(), id, req.QualifiedStatus)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, "qualified status updated", result)
}

// ToggleRemarketing flips a lead's remarketing flag.
// PUT /api/v1/leads/toggle-remarketing/:id
func (h *Handler) ToggleRemarketing(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidID, nil)
		return
	}

	result, err := h.svc.ToggleRemarketing(c.Request.Context(), id)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, "remarketing toggled", result)
}

// AddDiscussion appends a discussion message to a lead.
// POST /api/v1/leads/discussion/add
func (h *Handler) AddDiscussion(c *gin.Context) {
	identity := httpkit.MustGetIdentity(c)
	if identity == nil {
		return
	}

	var req transport.AddDiscussionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}

	result, err := h.svc.AddDiscussion(c.Request.Context(), identity.UserID(), req)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.Created(c, "discussion added", result)
}

// ListDiscussions returns a lead's discussions.
// GET /api/v1/leads/discussion/:leadId
func (h *Handler) ListDiscussions(c *gin.Context) {
	id, err := uuid.Parse(c.Param("leadId"))
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidID, nil)
		return
	}

	result, err := h.svc.ListDiscussions(c.Request.Context(), id)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, "discussions fetched", result)
}

// AddActivity appends an activity to a lead.
// POST /api/v1/leads/activity/add
func (h *Handler) AddActivity(c *gin.Context) {
	identity := httpkit.MustGetIdentity(c)
	if identity == nil {
		return
	}

	var req transport.AddActivityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}

	result, err := h.svc.AddActivity(c.Request.Context(), identity.UserID(), req)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.Created(c, "activity added", result)
}

// ListActivities returns a lead's activities.
// GET /api/v1/leads/activity/:leadId
func (h *Handler) ListActivities(c *gin.Context) {
	id, err := uuid.Parse(c.Param("leadId"))
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidID, nil)
		return
	}

	result, err := h.svc.ListActivities(c.Request.Context(), id)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, "activities fetched", result)
}

// MyFollowUps returns all activities created by the caller.
// GET /api/v1/leads/my-followups
func (h *Handler) MyFollowUps(c *gin.Context) {
	identity := httpkit.MustGetIdentity(c)
	if identity == nil {
		return
	}

	result, err := h.svc.MyFollowUps(c.Request.Context(), identity.UserID())
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, "follow-ups fetched", result)
}
