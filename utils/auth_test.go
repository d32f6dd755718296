package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetAuthErrorMessage(t *testing.T) {
	tests := []struct {
		code string
		want string
	}{
		{AuthErrInvalidEmail, "Invalid email address"},
		{AuthErrUserDisabled, "This account has been disabled"},
		{AuthErrUserNotFound, "No account found with this email"},
		{AuthErrWrongPassword, "Invalid password"},
		{"auth/something-else", "An error occurred during authentication"},
		{"", "An error occurred during authentication"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, GetAuthErrorMessage(tt.code))
	}
}

func TestAuthErrorError(t *testing.T) {
	err := NewAuthError(AuthErrWrongPassword)
	assert.Equal(t, "Invalid password", err.Error())
}

func TestHashAndCheckPassword(t *testing.T) {
	hash, err := HashPassword("secret1")
	require.NoError(t, err)
	assert.NotEqual(t, "secret1", hash)

	assert.NoError(t, CheckPassword("secret1", hash))
	assert.Error(t, CheckPassword("wrong", hash))
}
