// models/user.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User roles
const (
	RoleMarketer    = "marketer"
	RoleDistributor = "distributor"
	RoleAdmin       = "admin"
)

// User model. One document per member of the network; ancestors holds the
// upline chain ordered from direct referrer to root, so a downline lookup is
// a single array-contains query instead of a tree walk.
type User struct {
	ID                primitive.ObjectID   `json:"id,omitempty" bson:"_id,omitempty"`
	UserID            string               `json:"userId" bson:"userId"`
	BusinessID        string               `json:"businessId" bson:"businessId"`
	Name              string               `json:"name" bson:"name"`
	Email             string               `json:"email" bson:"email"`
	Password          string               `json:"password,omitempty" bson:"password"`
	Phone             string               `json:"phone" bson:"phone"` // E.164, +233...
	Role              string               `json:"role" bson:"role"`
	Stock             map[string]int       `json:"stock" bson:"stock"` // productId -> quantity on hand
	Commission        float64              `json:"commission" bson:"commission"`
	ReferrerID        *primitive.ObjectID  `json:"referrerId,omitempty" bson:"referrerId,omitempty"`
	Ancestors         []primitive.ObjectID `json:"ancestors" bson:"ancestors"`
	DirectDescendants []primitive.ObjectID `json:"directDescendants" bson:"directDescendants"`
	FCMToken          string               `json:"fcmToken,omitempty" bson:"fcmToken,omitempty"`
	IsActive          bool                 `json:"isActive" bson:"isActive"`
	OTPInfo           *OTPInfo             `json:"-" bson:"otpInfo,omitempty"`
	CreatedAt         time.Time            `json:"createdAt" bson:"createdAt"`
	UpdatedAt         time.Time            `json:"updatedAt" bson:"updatedAt"`
	LastPurchaseDate  *time.Time           `json:"lastPurchaseDate,omitempty" bson:"lastPurchaseDate,omitempty"`
}

// OTPInfo holds a pending password-reset OTP
type OTPInfo struct {
	OTP       string    `json:"otp" bson:"otp"`
	ExpiresAt time.Time `json:"expiresAt" bson:"expiresAt"`
}

// RegisterRequest is the signup payload for a new marketer
type RegisterRequest struct {
	Name            string `json:"name"`
	Email           string `json:"email"`
	Phone           string `json:"phone"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirmPassword"`
	ReferralCode    string `json:"referralCode,omitempty"`
}

// LoginRequest models
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// UpdateProfileRequest carries the mutable profile fields
type UpdateProfileRequest struct {
	Name     string `json:"name,omitempty"`
	Phone    string `json:"phone,omitempty"`
	FCMToken string `json:"fcmToken,omitempty"`
}

// Response is the standard API envelope
type Response struct {
	Status  int         `json:"status"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// ValidationErrorResponse carries per-field validation messages
type ValidationErrorResponse struct {
	Status  int               `json:"status"`
	Message string            `json:"message"`
	Errors  map[string]string `json:"errors"`
}
