package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"backoffice_portal_backend/internal/auth/service"
	"backoffice_portal_backend/internal/auth/transport"
	"backoffice_portal_backend/platform/httpkit"
	"backoffice_portal_backend/platform/validator"
)

const (
	msgInvalidRequest   = "invalid request"
	msgValidationFailed = "validation failed"
)

// Handler handles HTTP requests for authentication.
type Handler struct {
	svc *service.Service
	val *validator.Validator
}

// New creates a new auth handler.
func New(svc *service.Service, val *validator.Validator) *Handler {
	return &Handler{svc: svc, val: val}
}

// SignupSuperadmin bootstraps the first superadmin account.
// POST /api/v1/auth/signup-superadmin
func (h *Handler) SignupSuperadmin(c *gin.Context) {
	var req transport.SignupSuperadminRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}

	result, err := h.svc.SignupSuperadmin(c.Request.Context(), req)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.Created(c, "superadmin created", result)
}

// Login verifies credentials and issues an access token.
// POST /api/v1/auth/login
func (h *Handler) Login(c *gin.Context) {
	var req transport.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}

	result, err := h.svc.Login(c.Request.Context(), req.Email, req.Password)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, "login successful", result)
}

// ForgotPassword generates a password-reset OTP.
// POST /api/v1/auth/forgot-password
func (h *Handler) ForgotPassword(c *gin.Context) {
	var req transport.ForgotPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}

	if err := h.svc.ForgotPassword(c.Request.Context(), req.Email); httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, "if the account exists, an otp will be sent", nil)
}

// VerifyOTP checks a password-reset OTP.
// POST /api/v1/auth/verify-otp
func (h *Handler) VerifyOTP(c *gin.Context) {
	var req transport.VerifyOTPRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}

	if err := h.svc.VerifyOTP(c.Request.Context(), req.Email, req.OTP); httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, "otp verified", nil)
}

// VerifyToken reports whether an access token is still valid.
// POST /api/v1/auth/verify-token
func (h *Handler) VerifyToken(c *gin.Context) {
	var req transport.VerifyTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}

	httpkit.OK(c, "token checked", h.svc.VerifyToken(req.Token))
}

// SetPassword replaces a user's password by email.
// POST /api/v1/user/add/password
func (h *Handler) SetPassword(c *gin.Context) {
	var req transport.SetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}

	if err := h.svc.SetPassword(c.Request.Context(), req.Email, req.Password); httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, "password updated", nil)
}
