package util

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatusOf(t *testing.T) {
	cases := []struct {
		err    error
		status int
	}{
		{ValidationError("bad"), http.StatusBadRequest},
		{Unauthenticated("no"), http.StatusUnauthorized},
		{Forbidden("no"), http.StatusForbidden},
		{NotFound("gone"), http.StatusNotFound},
		{Conflict("dup"), http.StatusConflict},
		{InvalidTransition("nope", "pending"), http.StatusBadRequest},
		{ServiceUnavailable("down"), http.StatusServiceUnavailable},
		{ServerError("boom"), http.StatusInternalServerError},
		{errors.New("anything else"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.status, StatusOf(tc.err), tc.err.Error())
	}
}

func TestStatusOfWrapped(t *testing.T) {
	wrapped := fmt.Errorf("context: %w", Forbidden("no"))
	assert.Equal(t, http.StatusForbidden, StatusOf(wrapped))
}

func TestInvalidTransitionCarriesCurrentStatus(t *testing.T) {
	err := InvalidTransition("Only pending appointments can be approved", "confirmed")
	body := FailedResponse(err)
	details, ok := body["details"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "confirmed", details["currentStatus"])
}

func TestFailedResponseHidesInternalsInProduction(t *testing.T) {
	internal := errors.New("dial tcp 127.0.0.1:27017: connection refused")

	t.Setenv("APP_ENV", "production")
	body := FailedResponse(internal)
	assert.Equal(t, "Internal server error", body["message"])
	assert.NotContains(t, body, "details")

	t.Setenv("APP_ENV", "development")
	body = FailedResponse(internal)
	assert.Equal(t, internal.Error(), body["details"])
}

func TestFailedResponseEnvelope(t *testing.T) {
	body := FailedResponse(NotFound("Appointment not found"))
	assert.Equal(t, false, body["success"])
	assert.Equal(t, "Appointment not found", body["message"])
}
