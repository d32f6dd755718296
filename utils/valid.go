// utils/valid.go
package utils

import (
	"errors"
	"html"
	"regexp"
	"strings"
	"unicode"
)

var (
	emailRegex = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	// Ghana phone number format: 02XXXXXXXX or 05XXXXXXXX
	ghanaPhoneRegex = regexp.MustCompile(`^(02|05)\d{8}$`)
	nonDigitRegex   = regexp.MustCompile(`\D`)
)

// IsValidEmail reports whether email has a plausible address shape
func IsValidEmail(email string) bool {
	return emailRegex.MatchString(email)
}

// IsValidPhone reports whether phone is a valid Ghana local-format number
func IsValidPhone(phone string) bool {
	return ghanaPhoneRegex.MatchString(phone)
}

// FormatPhoneNumber normalizes a Ghana phone number to E.164 (+233...)
func FormatPhoneNumber(phone string) string {
	cleaned := nonDigitRegex.ReplaceAllString(phone, "")

	if strings.HasPrefix(cleaned, "0") {
		return "+233" + cleaned[1:]
	}
	if strings.HasPrefix(cleaned, "233") {
		return "+" + cleaned
	}
	return "+233" + cleaned
}

// ValidationResult carries per-field registration errors
type ValidationResult struct {
	IsValid bool
	Errors  map[string]string
}

// ValidateUserRegistration checks the signup form fields. Later checks for
// the same field overwrite earlier ones, so an empty email reports the
// format message just like the original form.
func ValidateUserRegistration(name, email, phone, password, confirmPassword string) ValidationResult {
	errs := make(map[string]string)

	if strings.TrimSpace(name) == "" {
		errs["name"] = "Name is required"
	}
	if email == "" {
		errs["email"] = "Email is required"
	}
	if !IsValidEmail(email) {
		errs["email"] = "Invalid email format"
	}
	if phone == "" {
		errs["phone"] = "Phone number is required"
	}
	if !IsValidPhone(phone) {
		errs["phone"] = "Invalid Ghana phone number format"
	}
	if password == "" {
		errs["password"] = "Password is required"
	}
	if len(password) < 6 {
		errs["password"] = "Password must be at least 6 characters"
	}
	if password != confirmPassword {
		errs["confirmPassword"] = "Passwords do not match"
	}

	return ValidationResult{
		IsValid: len(errs) == 0,
		Errors:  errs,
	}
}

// SanitizeInput sanitizes user input to prevent XSS and injection attacks
func SanitizeInput(input string) string {
	input = strings.TrimSpace(input)
	input = html.EscapeString(input)

	input = strings.Map(func(r rune) rune {
		if unicode.IsControl(r) {
			return -1
		}
		return r
	}, input)

	return input
}

// SanitizeEmail sanitizes and validates an email address
func SanitizeEmail(email string) (string, error) {
	email = strings.TrimSpace(email)
	email = strings.ToLower(email)

	if !IsValidEmail(email) {
		return "", errors.New("invalid email format")
	}

	return email, nil
}
