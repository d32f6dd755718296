// controllers/referral_controller.go
package controllers

import (
	"bytes"
	"context"
	"encoding/base64"
	"image/png"
	"net/http"
	"time"

	"github.com/boombuler/barcode"
	"github.com/boombuler/barcode/qr"
	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/viva4all/viva4all_backend/middleware"
	"github.com/viva4all/viva4all_backend/models"
	"github.com/viva4all/viva4all_backend/repositories"
)

const referralScheme = "viva4all://referral/"

// ReferralController shares a member's referral code as a link and QR image
type ReferralController struct {
	DB       *mongo.Client
	userRepo *repositories.UserRepository
}

// NewReferralController creates a new referral controller
func NewReferralController(db *mongo.Client) *ReferralController {
	return &ReferralController{
		DB:       db,
		userRepo: repositories.NewUserRepository(db),
	}
}

// GetReferralInfo returns the member's business id and shareable link
func (rc *ReferralController) GetReferralInfo(c echo.Context) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	user, err := rc.authedProfile(ctx, c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, models.Response{
			Status:  http.StatusUnauthorized,
			Message: "Authentication required",
		})
	}

	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "Referral info loaded",
		Data: map[string]string{
			"businessId":   user.BusinessID,
			"referralLink": referralScheme + user.BusinessID,
		},
	})
}

// GetReferralQR renders the referral link as a PNG QR code. With
// ?format=base64 the image is returned as a JSON-wrapped data URI instead.
func (rc *ReferralController) GetReferralQR(c echo.Context) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	user, err := rc.authedProfile(ctx, c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, models.Response{
			Status:  http.StatusUnauthorized,
			Message: "Authentication required",
		})
	}

	code, err := qr.Encode(referralScheme+user.BusinessID, qr.M, qr.Auto)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to generate QR code",
		})
	}

	code, err = barcode.Scale(code, 256, 256)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to scale QR code",
		})
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, code); err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to encode QR code",
		})
	}

	if c.QueryParam("format") == "base64" {
		return c.JSON(http.StatusOK, models.Response{
			Status:  http.StatusOK,
			Message: "QR code generated",
			Data: map[string]string{
				"businessId": user.BusinessID,
				"image":      "data:image/png;base64," + base64.StdEncoding.EncodeToString(buf.Bytes()),
			},
		})
	}

	return c.Blob(http.StatusOK, "image/png", buf.Bytes())
}

func (rc *ReferralController) authedProfile(ctx context.Context, c echo.Context) (*models.User, error) {
	userID := middleware.GetUserIDFromToken(c)
	objID, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return nil, err
	}
	return rc.userRepo.FindByID(ctx, objID)
}
