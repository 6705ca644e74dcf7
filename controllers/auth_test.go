package controllers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"MedConnect/util"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func authRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	api := r.Group("/api")
	Auth(api)
	return r
}

func postJSON(r *gin.Engine, path, body string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	return w
}

func TestSignupRejectsInvalidRole(t *testing.T) {
	w := postJSON(authRouter(), "/api/auth/signup",
		`{"name":"Test User","email":"test@example.com","password":"password123","role":"wizard"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSignupRejectsMissingFields(t *testing.T) {
	w := postJSON(authRouter(), "/api/auth/signup", `{"email":"test@example.com"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSignupRejectsShortPassword(t *testing.T) {
	w := postJSON(authRouter(), "/api/auth/signup",
		`{"name":"Test User","email":"test@example.com","password":"short","role":"patient"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

// Admin signup with no ADMIN_SECRET configured is a server configuration
// error, distinct from Forbidden.
func TestAdminSignupNotConfigured(t *testing.T) {
	t.Setenv("ADMIN_SECRET", "")
	w := postJSON(authRouter(), "/api/auth/signup",
		`{"name":"Admin Amy","email":"amy@admin.test","password":"password123","role":"admin"}`)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), util.ADMIN_SIGNUP_NOT_CONFIGURED)
}

func TestAdminSignupWrongSecret(t *testing.T) {
	t.Setenv("ADMIN_SECRET", "the-real-secret")
	w := postJSON(authRouter(), "/api/auth/signup",
		`{"name":"Admin Amy","email":"amy@admin.test","password":"password123","role":"admin","adminSecret":"guess"}`)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestLoginRejectsMissingRole(t *testing.T) {
	w := postJSON(authRouter(), "/api/auth/login",
		`{"email":"test@example.com","password":"password123"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
