package models

// AuthSession is the provider-side session: an opaque identity plus the token
// pair the client presents on subsequent requests. Mirrored to the Redis
// session cache so a client can rehydrate without a fresh login.
type AuthSession struct {
	UserID       string `json:"userId"`
	Email        string `json:"email"`
	Role         string `json:"role"`
	Token        string `json:"token"`
	RefreshToken string `json:"refreshToken"`
}

// RefreshTokenRequest carries the refresh token to exchange
type RefreshTokenRequest struct {
	RefreshToken string `json:"refreshToken"`
}

// ForgetPasswordRequest starts the password-reset flow
type ForgetPasswordRequest struct {
	Email string `json:"email"`
}

// VerifyOTPRequest checks a reset OTP
type VerifyOTPRequest struct {
	Email string `json:"email"`
	OTP   string `json:"otp"`
}

// ResetPasswordRequest completes the password-reset flow
type ResetPasswordRequest struct {
	Email           string `json:"email"`
	OTP             string `json:"otp"`
	NewPassword     string `json:"newPassword"`
	ConfirmPassword string `json:"confirmPassword"`
}
