// controllers/password_controller.go
package controllers

import (
	"context"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/viva4all/viva4all_backend/config"
	"github.com/viva4all/viva4all_backend/models"
	"github.com/viva4all/viva4all_backend/utils"
)

const otpTTL = 10 * time.Minute

// PasswordController handles the forget/verify/reset password flow
type PasswordController struct {
	DB     *mongo.Client
	Redis  *redis.Client
	logger *log.Logger
}

// NewPasswordController creates a new password controller
func NewPasswordController(db *mongo.Client, rdb *redis.Client) *PasswordController {
	return &PasswordController{
		DB:     db,
		Redis:  rdb,
		logger: log.New(os.Stdout, "[PASSWORD] ", log.LstdFlags),
	}
}

// ForgetPassword generates an OTP, stores it on the profile, and emails it.
// Responds identically whether or not the email exists.
func (pc *PasswordController) ForgetPassword(c echo.Context) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var req models.ForgetPasswordRequest
	if err := c.Bind(&req); err != nil || req.Email == "" {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Email is required",
		})
	}

	email, err := utils.SanitizeEmail(req.Email)
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: utils.GetAuthErrorMessage(utils.AuthErrInvalidEmail),
		})
	}

	genericResponse := models.Response{
		Status:  http.StatusOK,
		Message: "If an account exists for this email, a reset code has been sent",
	}

	collection := config.GetCollection(pc.DB, "users")

	var user models.User
	if err := collection.FindOne(ctx, bson.M{"email": email}).Decode(&user); err != nil {
		if err == mongo.ErrNoDocuments {
			return c.JSON(http.StatusOK, genericResponse)
		}
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to process request",
		})
	}

	otp, err := utils.GenerateNumericOTP()
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to generate reset code",
		})
	}

	update := bson.M{
		"$set": bson.M{
			"otpInfo": models.OTPInfo{
				OTP:       otp,
				ExpiresAt: time.Now().Add(otpTTL),
			},
			"updatedAt": time.Now(),
		},
	}
	if _, err := collection.UpdateOne(ctx, bson.M{"_id": user.ID}, update); err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to store reset code",
		})
	}

	go func() {
		if err := utils.SendPasswordResetEmail(user.Email, user.Name, otp); err != nil {
			pc.logger.Printf("Failed to email reset code to %s: %v", user.Email, err)
		}
	}()

	return c.JSON(http.StatusOK, genericResponse)
}

// VerifyOTP checks a reset code without consuming it
func (pc *PasswordController) VerifyOTP(c echo.Context) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var req models.VerifyOTPRequest
	if err := c.Bind(&req); err != nil || req.Email == "" || req.OTP == "" {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Email and OTP are required",
		})
	}

	email, err := utils.SanitizeEmail(req.Email)
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: utils.GetAuthErrorMessage(utils.AuthErrInvalidEmail),
		})
	}

	if _, err := pc.findUserWithValidOTP(ctx, email, req.OTP); err != nil {
		return c.JSON(http.StatusUnauthorized, models.Response{
			Status:  http.StatusUnauthorized,
			Message: err.Error(),
		})
	}

	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "OTP verified",
	})
}

// ResetPassword consumes a valid OTP and sets a new password
func (pc *PasswordController) ResetPassword(c echo.Context) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var req models.ResetPasswordRequest
	if err := c.Bind(&req); err != nil || req.Email == "" || req.OTP == "" {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Email, OTP and new password are required",
		})
	}

	if len(req.NewPassword) < 6 {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Password must be at least 6 characters",
		})
	}
	if req.NewPassword != req.ConfirmPassword {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Passwords do not match",
		})
	}

	email, err := utils.SanitizeEmail(req.Email)
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: utils.GetAuthErrorMessage(utils.AuthErrInvalidEmail),
		})
	}

	user, err := pc.findUserWithValidOTP(ctx, email, req.OTP)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, models.Response{
			Status:  http.StatusUnauthorized,
			Message: err.Error(),
		})
	}

	hashedPassword, err := utils.HashPassword(req.NewPassword)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to process password",
		})
	}

	collection := config.GetCollection(pc.DB, "users")
	update := bson.M{
		"$set":   bson.M{"password": hashedPassword, "updatedAt": time.Now()},
		"$unset": bson.M{"otpInfo": ""},
	}
	if _, err := collection.UpdateOne(ctx, bson.M{"_id": user.ID}, update); err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to update password",
		})
	}

	// Any mirrored session for the old credentials is now stale
	utils.ClearSession(ctx, pc.Redis, user.ID.Hex())

	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "Password reset successful",
	})
}

func (pc *PasswordController) findUserWithValidOTP(ctx context.Context, email, otp string) (*models.User, error) {
	collection := config.GetCollection(pc.DB, "users")

	var user models.User
	if err := collection.FindOne(ctx, bson.M{"email": email}).Decode(&user); err != nil {
		return nil, errInvalidOTP
	}

	if pc.Redis != nil {
		if err := utils.ValidateOTPAttempts(user.ID.Hex(), pc.Redis); err != nil {
			return nil, err
		}
	}

	if user.OTPInfo == nil || user.OTPInfo.OTP != otp || time.Now().After(user.OTPInfo.ExpiresAt) {
		return nil, errInvalidOTP
	}

	return &user, nil
}

var errInvalidOTP = &otpError{}

type otpError struct{}

func (*otpError) Error() string { return "Invalid or expired OTP" }
