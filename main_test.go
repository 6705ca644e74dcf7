package main

import (
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestBuildRouterHealth(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := buildRouter()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"ok":true}`, w.Body.String())
}

func TestProtectedRoutesRequireAuth(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := buildRouter()

	for _, path := range []string{"/api/users", "/api/appointments", "/api/prescriptions"} {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, path, nil)
		r.ServeHTTP(w, req)
		assert.Equal(t, http.StatusUnauthorized, w.Code, path)
	}
}

// Boots the full startup path with the listener swapped out. Needs a
// running MongoDB; without MONGO_URI it skips.
func TestRunUsesConfiguredPort(t *testing.T) {
	if os.Getenv("MONGO_URI") == "" {
		t.Skip("MONGO_URI not set; skipping startup test")
	}
	gin.SetMode(gin.TestMode)
	t.Setenv("PORT", "9123")

	orig := startServer
	defer func() { startServer = orig }()

	var gotAddr string
	startServer = func(r *gin.Engine, addr string) error {
		gotAddr = addr
		return nil
	}

	run()
	assert.Equal(t, ":9123", gotAddr)
}
