package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestGenerateAndVerifyJWT(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	id := primitive.NewObjectID().Hex()

	token, err := GenerateJWT(id, "doctor")
	require.NoError(t, err)

	claims, err := VerifyJWT(token)
	require.NoError(t, err)
	assert.Equal(t, id, claims.UserID)
	assert.Equal(t, "doctor", claims.Role)
}

func TestVerifyJWTExpired(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	token, err := generateJWTWithTTL(primitive.NewObjectID().Hex(), "patient", -time.Minute)
	require.NoError(t, err)

	_, err = VerifyJWT(token)
	assert.Error(t, err)
}

func TestVerifyJWTWrongSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	token, err := GenerateJWT(primitive.NewObjectID().Hex(), "admin")
	require.NoError(t, err)

	t.Setenv("JWT_SECRET", "another-secret")
	_, err = VerifyJWT(token)
	assert.Error(t, err)
}

func TestVerifyJWTGarbage(t *testing.T) {
	_, err := VerifyJWT("not.a.token")
	assert.Error(t, err)
}
