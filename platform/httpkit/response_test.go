package httpkit

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"backoffice_portal_backend/platform/apperr"
)

func newTestContext(t *testing.T) (*gin.Context, *httptest.ResponseRecorder) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	return c, rec
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) ErrorResponse {
	t.Helper()
	var resp ErrorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode body %q: %v", rec.Body.String(), err)
	}
	return resp
}

func TestHandleError(t *testing.T) {
	t.Run("typed domain error keeps its status and message", func(t *testing.T) {
		c, rec := newTestContext(t)
		HandleError(c, apperr.NotFound("lead not found"))

		if rec.Code != http.StatusNotFound {
			t.Fatalf("status = %d, want %d", rec.Code, http.StatusNotFound)
		}
		if resp := decodeError(t, rec); resp.Error != "lead not found" {
			t.Errorf("error = %q, want %q", resp.Error, "lead not found")
		}
	})

	t.Run("wrapped domain error still maps through its kind", func(t *testing.T) {
		c, rec := newTestContext(t)
		HandleError(c, fmt.Errorf("assign lead: %w", apperr.Conflict("lead already assigned")))

		if rec.Code != http.StatusConflict {
			t.Fatalf("status = %d, want %d", rec.Code, http.StatusConflict)
		}
	})

	t.Run("untyped error is a generic 500 without internal detail", func(t *testing.T) {
		c, rec := newTestContext(t)
		internal := errors.New(`create lead: ERROR: relation "leads" does not exist (SQLSTATE 42P01)`)
		HandleError(c, internal)

		if rec.Code != http.StatusInternalServerError {
			t.Fatalf("status = %d, want %d", rec.Code, http.StatusInternalServerError)
		}
		resp := decodeError(t, rec)
		if resp.Error != "internal server error" {
			t.Errorf("error = %q, want generic message", resp.Error)
		}
		if strings.Contains(rec.Body.String(), "SQLSTATE") {
			t.Errorf("response body leaks internal detail: %s", rec.Body.String())
		}
		// The underlying error stays available for the request logger.
		if len(c.Errors) != 1 || !errors.Is(c.Errors[0].Err, internal) {
			t.Errorf("expected the error attached to the context, got %v", c.Errors)
		}
	})

	t.Run("nil error is not handled", func(t *testing.T) {
		c, _ := newTestContext(t)
		if HandleError(c, nil) {
			t.Error("HandleError(nil) = true, want false")
		}
	})
}
