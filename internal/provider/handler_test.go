package provider

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/picthaisky/jobmarket/pkg/middleware"
)

func TestVerifyRequiresAdminRole(t *testing.T) {
	h := NewHandler(nil)

	t.Run("rejects requests without a role", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/1/verify", nil)
		rec := httptest.NewRecorder()

		h.Routes().ServeHTTP(rec, req)
		assert.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("rejects non-admin roles", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/1/verify", nil)
		req = req.WithContext(context.WithValue(req.Context(), middleware.UserRoleKey, "PROVIDER"))
		rec := httptest.NewRecorder()

		h.Routes().ServeHTTP(rec, req)
		assert.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("lets admins past the gate", func(t *testing.T) {
		// An unparsable ID keeps the request away from the service while
		// still proving the role check passed.
		req := httptest.NewRequest(http.MethodPost, "/abc/verify", nil)
		req = req.WithContext(context.WithValue(req.Context(), middleware.UserRoleKey, "ADMIN"))
		rec := httptest.NewRecorder()

		h.Routes().ServeHTTP(rec, req)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}
