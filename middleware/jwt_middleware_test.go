package middleware

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndParseToken(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	token, refreshToken, err := GenerateJWT("abc123", "ama@example.com", "marketer")
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.NotEmpty(t, refreshToken)
	assert.NotEqual(t, token, refreshToken)

	claims, err := ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, "abc123", claims.UserID)
	assert.Equal(t, "ama@example.com", claims.Email)
	assert.Equal(t, "marketer", claims.Role)

	refreshClaims, err := ParseToken(refreshToken)
	require.NoError(t, err)
	assert.Equal(t, "abc123", refreshClaims.UserID)
	assert.Greater(t, refreshClaims.ExpiresAt, claims.ExpiresAt)
}

func TestParseTokenRejectsGarbage(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	_, err := ParseToken("not.a.token")
	assert.Error(t, err)
}

func TestParseTokenRejectsWrongSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "first-secret")
	token, _, err := GenerateJWT("abc123", "ama@example.com", "marketer")
	require.NoError(t, err)

	t.Setenv("JWT_SECRET", "other-secret")
	_, err = ParseToken(token)
	assert.Error(t, err)
}

func TestGenerateJWTRequiresSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")

	_, _, err := GenerateJWT("abc123", "ama@example.com", "marketer")
	assert.Error(t, err)
}
