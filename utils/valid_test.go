package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsValidPhone(t *testing.T) {
	tests := []struct {
		name  string
		phone string
		want  bool
	}{
		{"valid 02 prefix", "0241234567", true},
		{"valid 05 prefix", "0551234567", true},
		{"too short", "024123456", false},
		{"too long", "02412345678", false},
		{"wrong prefix", "0341234567", false},
		{"already E.164", "+233241234567", false},
		{"letters", "02412345ab", false},
		{"empty", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsValidPhone(tt.phone))
		})
	}
}

func TestFormatPhoneNumber(t *testing.T) {
	tests := []struct {
		name  string
		phone string
		want  string
	}{
		{"local leading zero", "0241234567", "+233241234567"},
		{"country code without plus", "233241234567", "+233241234567"},
		{"spaces and dashes stripped", "024-123 4567", "+233241234567"},
		{"bare subscriber number", "241234567", "+233241234567"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatPhoneNumber(tt.phone))
		})
	}
}

func TestIsValidEmail(t *testing.T) {
	assert.True(t, IsValidEmail("ama@example.com"))
	assert.True(t, IsValidEmail("kofi.mensah@mail.co.uk"))
	assert.False(t, IsValidEmail("not-an-email"))
	assert.False(t, IsValidEmail("has space@example.com"))
	assert.False(t, IsValidEmail("missing@tld"))
	assert.False(t, IsValidEmail(""))
}

func TestValidateUserRegistration(t *testing.T) {
	valid := ValidateUserRegistration("Ama Serwaa", "ama@example.com", "0241234567", "secret1", "secret1")
	assert.True(t, valid.IsValid)
	assert.Empty(t, valid.Errors)

	tests := []struct {
		name            string
		userName        string
		email           string
		phone           string
		password        string
		confirmPassword string
		field           string
		message         string
	}{
		{"missing name", "", "ama@example.com", "0241234567", "secret1", "secret1", "name", "Name is required"},
		{"empty email reports format", "Ama", "", "0241234567", "secret1", "secret1", "email", "Invalid email format"},
		{"bad email", "Ama", "nope", "0241234567", "secret1", "secret1", "email", "Invalid email format"},
		{"empty phone reports format", "Ama", "ama@example.com", "", "secret1", "secret1", "phone", "Invalid Ghana phone number format"},
		{"bad phone", "Ama", "ama@example.com", "12345", "secret1", "secret1", "phone", "Invalid Ghana phone number format"},
		{"empty password reports length", "Ama", "ama@example.com", "0241234567", "", "", "password", "Password must be at least 6 characters"},
		{"short password", "Ama", "ama@example.com", "0241234567", "abc", "abc", "password", "Password must be at least 6 characters"},
		{"mismatched confirmation", "Ama", "ama@example.com", "0241234567", "secret1", "secret2", "confirmPassword", "Passwords do not match"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := ValidateUserRegistration(tt.userName, tt.email, tt.phone, tt.password, tt.confirmPassword)
			assert.False(t, result.IsValid)
			assert.Equal(t, tt.message, result.Errors[tt.field])
		})
	}
}

func TestSanitizeEmail(t *testing.T) {
	email, err := SanitizeEmail("  Ama@Example.COM ")
	assert.NoError(t, err)
	assert.Equal(t, "ama@example.com", email)

	_, err = SanitizeEmail("not an email")
	assert.Error(t, err)
}

func TestSanitizeInput(t *testing.T) {
	assert.Equal(t, "&lt;b&gt;bold&lt;/b&gt;", SanitizeInput("<b>bold</b>"))
	assert.Equal(t, "plain", SanitizeInput("  plain  "))
}
