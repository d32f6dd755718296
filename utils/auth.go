// utils/auth.go
package utils

import (
	"golang.org/x/crypto/bcrypt"
)

// Provider error codes surfaced by the auth gateway. The set is fixed;
// anything else maps to the generic message.
const (
	AuthErrInvalidEmail  = "auth/invalid-email"
	AuthErrUserDisabled  = "auth/user-disabled"
	AuthErrUserNotFound  = "auth/user-not-found"
	AuthErrWrongPassword = "auth/wrong-password"
)

// AuthError carries a provider error code plus its user-facing message
type AuthError struct {
	Code string
}

func (e *AuthError) Error() string {
	return GetAuthErrorMessage(e.Code)
}

// NewAuthError wraps a provider error code
func NewAuthError(code string) *AuthError {
	return &AuthError{Code: code}
}

// GetAuthErrorMessage maps a provider error code to a user-facing message
func GetAuthErrorMessage(errorCode string) string {
	switch errorCode {
	case AuthErrInvalidEmail:
		return "Invalid email address"
	case AuthErrUserDisabled:
		return "This account has been disabled"
	case AuthErrUserNotFound:
		return "No account found with this email"
	case AuthErrWrongPassword:
		return "Invalid password"
	default:
		return "An error occurred during authentication"
	}
}

// HashPassword hashes a plaintext password with bcrypt
func HashPassword(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

// CheckPassword compares a plaintext password against a bcrypt hash
func CheckPassword(password, hash string) error {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
}
