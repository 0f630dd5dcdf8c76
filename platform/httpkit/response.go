// Package httpkit provides HTTP response utilities.
// This is part of the platform layer and contains no business logic.
package httpkit

import (
	"errors"
	"net/http"

	"backoffice_portal_backend/platform/apperr"

	"github.com/gin-gonic/gin"
)

// Envelope is the standard success response format.
type Envelope struct {
	Status  int         `json:"status"`
	Message string      `json:"message"`
	Result  interface{} `json:"result,omitempty"`
}

// ErrorResponse is the standard error response format.
type ErrorResponse struct {
	Error   string      `json:"error"`
	Details interface{} `json:"details,omitempty"`
}

// Success sends a response wrapped in the standard envelope.
func Success(c *gin.Context, status int, message string, result interface{}) {
	c.JSON(status, Envelope{Status: status, Message: message, Result: result})
}

// OK sends a 200 OK response with the given message and result.
func OK(c *gin.Context, message string, result interface{}) {
	Success(c, http.StatusOK, message, result)
}

// Created sends a 201 Created response with the given message and result.
func Created(c *gin.Context, message string, result interface{}) {
	Success(c, http.StatusCreated, message, result)
}

// Error sends an error response with the given status code and message.
func Error(c *gin.Context, status int, message string, details interface{}) {
	c.JSON(status, ErrorResponse{Error: message, Details: details})
}

// HandleError maps domain errors to HTTP responses.
// A typed *apperr.Error (possibly wrapped) uses the error's Kind to determine
// the HTTP status code. Anything else is an unhandled failure: the caller
// gets a generic 500 and the underlying error goes to the request log only.
// Returns true if an error was handled, false otherwise.
func HandleError(c *gin.Context, err error) bool {
	if err == nil {
		return false
	}

	var domainErr *apperr.Error
	if errors.As(err, &domainErr) {
		c.JSON(domainErr.HTTPStatus(), ErrorResponse{
			Error:   domainErr.Message,
			Details: domainErr.Details,
		})
		return true
	}

	_ = c.Error(err)
	c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal server error"})
	return true
}
