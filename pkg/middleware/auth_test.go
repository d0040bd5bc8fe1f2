package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTestUserMiddleware(t *testing.T) {
	var gotID int64
	var gotRole string
	var roleSet bool

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotID, _ = GetUserID(r.Context())
		gotRole, roleSet = GetUserRole(r.Context())
	})

	t.Run("reads the test headers", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("X-Test-User-ID", "42")
		req.Header.Set("X-Test-User-Role", "ADMIN")

		TestUserMiddleware(next).ServeHTTP(httptest.NewRecorder(), req)
		assert.Equal(t, int64(42), gotID)
		assert.Equal(t, "ADMIN", gotRole)
	})

	t.Run("defaults to user 1 with no role", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)

		TestUserMiddleware(next).ServeHTTP(httptest.NewRecorder(), req)
		assert.Equal(t, int64(1), gotID)
		assert.False(t, roleSet)
	})
}
