// controllers/user_controller.go
package controllers

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/viva4all/viva4all_backend/config"
	"github.com/viva4all/viva4all_backend/middleware"
	"github.com/viva4all/viva4all_backend/models"
	"github.com/viva4all/viva4all_backend/repositories"
	"github.com/viva4all/viva4all_backend/store"
	"github.com/viva4all/viva4all_backend/utils"
	"github.com/viva4all/viva4all_backend/websocket"
)

// StockTransferRequest moves stock from a distributor to a downline marketer
type StockTransferRequest struct {
	MarketerID string `json:"marketerId"`
	ProductID  string `json:"productId"`
	Quantity   int    `json:"quantity"`
}

// CreateDistributorRequest is the admin payload for provisioning a
// distributor account
type CreateDistributorRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Password string `json:"password"`
}

// UserController handles profile and member management
type UserController struct {
	DB       *mongo.Client
	Store    *store.Store
	Hub      *websocket.Hub
	userRepo *repositories.UserRepository
	logger   *log.Logger
}

// NewUserController creates a new user controller
func NewUserController(db *mongo.Client, appStore *store.Store, hub *websocket.Hub) *UserController {
	return &UserController{
		DB:       db,
		Store:    appStore,
		Hub:      hub,
		userRepo: repositories.NewUserRepository(db),
		logger:   log.New(os.Stdout, "[USER] ", log.LstdFlags),
	}
}

// GetProfile returns the authenticated member's profile
func (uc *UserController) GetProfile(c echo.Context) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	objID, errResp := uc.authedObjectID(c)
	if errResp != nil {
		return errResp(c)
	}

	user, err := uc.userRepo.FindByID(ctx, objID)
	if err != nil {
		return c.JSON(http.StatusNotFound, models.Response{
			Status:  http.StatusNotFound,
			Message: "Profile not found",
		})
	}
	user.Password = ""

	uc.Store.Dispatch(store.SetUser{User: user})

	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "Profile loaded",
		Data:    user,
	})
}

// UpdateProfile updates the mutable profile fields (name, phone, FCM token)
func (uc *UserController) UpdateProfile(c echo.Context) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	objID, errResp := uc.authedObjectID(c)
	if errResp != nil {
		return errResp(c)
	}

	var req models.UpdateProfileRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Invalid request body",
		})
	}

	set := bson.M{"updatedAt": time.Now()}
	if req.Name != "" {
		set["name"] = utils.SanitizeInput(req.Name)
	}
	if req.Phone != "" {
		if !utils.IsValidPhone(req.Phone) {
			return c.JSON(http.StatusBadRequest, models.Response{
				Status:  http.StatusBadRequest,
				Message: "Invalid Ghana phone number format",
			})
		}
		set["phone"] = utils.FormatPhoneNumber(req.Phone)
	}
	if req.FCMToken != "" {
		set["fcmToken"] = req.FCMToken
	}

	_, err := config.GetCollection(uc.DB, "users").
		UpdateOne(ctx, bson.M{"_id": objID}, bson.M{"$set": set})
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to update profile",
		})
	}

	user, err := uc.userRepo.FindByID(ctx, objID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to reload profile",
		})
	}
	user.Password = ""

	uc.Store.Dispatch(store.SetUserData{User: user})

	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "Profile updated",
		Data:    user,
	})
}

// GetNetwork lists the authenticated member's full downline
func (uc *UserController) GetNetwork(c echo.Context) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	objID, errResp := uc.authedObjectID(c)
	if errResp != nil {
		return errResp(c)
	}

	cursor, err := config.GetCollection(uc.DB, "users").Find(ctx, bson.M{"ancestors": objID})
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to load network",
		})
	}
	defer cursor.Close(ctx)

	downline := []models.User{}
	if err := cursor.All(ctx, &downline); err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to decode network",
		})
	}

	for i := range downline {
		downline[i].Password = ""
	}

	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "Network loaded",
		Data: map[string]interface{}{
			"totalDownline": len(downline),
			"members":       downline,
		},
	})
}

// ListMarketers returns a distributor's directly referred marketers
func (uc *UserController) ListMarketers(c echo.Context) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	objID, errResp := uc.authedObjectID(c)
	if errResp != nil {
		return errResp(c)
	}

	filter := bson.M{
		"referrerId": objID,
		"role":       models.RoleMarketer,
	}

	cursor, err := config.GetCollection(uc.DB, "users").Find(ctx, filter)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to load marketers",
		})
	}
	defer cursor.Close(ctx)

	marketers := []models.User{}
	if err := cursor.All(ctx, &marketers); err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to decode marketers",
		})
	}

	for i := range marketers {
		marketers[i].Password = ""
	}

	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "Marketers loaded",
		Data:    marketers,
	})
}

// TransferStock moves stock from the authenticated distributor to one of
// their direct marketers
func (uc *UserController) TransferStock(c echo.Context) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	objID, errResp := uc.authedObjectID(c)
	if errResp != nil {
		return errResp(c)
	}

	var req StockTransferRequest
	if err := c.Bind(&req); err != nil || req.Quantity <= 0 {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Marketer, product and a positive quantity are required",
		})
	}

	marketerID, err := primitive.ObjectIDFromHex(req.MarketerID)
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Invalid marketer ID",
		})
	}

	distributor, err := uc.userRepo.FindByID(ctx, objID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to load profile",
		})
	}

	if distributor.Stock[req.ProductID] < req.Quantity {
		return c.JSON(http.StatusConflict, models.Response{
			Status:  http.StatusConflict,
			Message: fmt.Sprintf("Insufficient stock: %d on hand", distributor.Stock[req.ProductID]),
		})
	}

	marketer, err := uc.userRepo.FindByID(ctx, marketerID)
	if err != nil || marketer.ReferrerID == nil || *marketer.ReferrerID != objID {
		return c.JSON(http.StatusNotFound, models.Response{
			Status:  http.StatusNotFound,
			Message: "Marketer not found in your network",
		})
	}

	users := config.GetCollection(uc.DB, "users")
	now := time.Now()

	_, err = users.UpdateOne(ctx, bson.M{"_id": objID}, bson.M{
		"$inc": bson.M{"stock." + req.ProductID: -req.Quantity},
		"$set": bson.M{"updatedAt": now},
	})
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to transfer stock",
		})
	}

	_, err = users.UpdateOne(ctx, bson.M{"_id": marketerID}, bson.M{
		"$inc": bson.M{"stock." + req.ProductID: req.Quantity},
		"$set": bson.M{"updatedAt": now},
	})
	if err != nil {
		// Roll the debit back so the two stock maps stay consistent
		users.UpdateOne(ctx, bson.M{"_id": objID}, bson.M{
			"$inc": bson.M{"stock." + req.ProductID: req.Quantity},
		})
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to transfer stock",
		})
	}

	if notification, err := utils.SaveNotification(uc.DB, marketerID, models.NotificationInfo,
		fmt.Sprintf("You received %d units of stock from %s", req.Quantity, distributor.Name)); err == nil {
		uc.Store.Dispatch(store.AddNotification{Notification: *notification})
	}
	uc.Hub.NotifyUser(marketerID, models.NotificationInfo, "Stock transfer received")

	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "Stock transferred",
	})
}

// ListUsers returns all members, optionally filtered by role (?role=)
func (uc *UserController) ListUsers(c echo.Context) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	filter := bson.M{}
	if role := c.QueryParam("role"); role != "" {
		filter["role"] = role
	}

	opts := options.Find().SetSort(bson.M{"createdAt": -1})
	cursor, err := config.GetCollection(uc.DB, "users").Find(ctx, filter, opts)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to load users",
		})
	}
	defer cursor.Close(ctx)

	users := []models.User{}
	if err := cursor.All(ctx, &users); err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to decode users",
		})
	}

	for i := range users {
		users[i].Password = ""
	}

	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "Users loaded",
		Data:    users,
	})
}

// SetUserActive toggles a member's account on or off. A disabled member
// fails login with the disabled-account message.
func (uc *UserController) SetUserActive(c echo.Context) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Invalid user ID",
		})
	}

	var req struct {
		IsActive bool `json:"isActive"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Invalid request body",
		})
	}

	result, err := config.GetCollection(uc.DB, "users").UpdateOne(ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{"isActive": req.IsActive, "updatedAt": time.Now()}})
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to update user",
		})
	}
	if result.MatchedCount == 0 {
		return c.JSON(http.StatusNotFound, models.Response{
			Status:  http.StatusNotFound,
			Message: "User not found",
		})
	}

	message := "Account deactivated"
	if req.IsActive {
		message = "Account activated"
	}
	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: message,
	})
}

// CreateDistributor provisions a distributor account. Admin only; there is
// no self-service distributor signup.
func (uc *UserController) CreateDistributor(c echo.Context) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var req CreateDistributorRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Invalid request body",
		})
	}

	validation := utils.ValidateUserRegistration(req.Name, req.Email, req.Phone, req.Password, req.Password)
	if !validation.IsValid {
		return c.JSON(http.StatusBadRequest, models.ValidationErrorResponse{
			Status:  http.StatusBadRequest,
			Message: "Validation failed",
			Errors:  validation.Errors,
		})
	}

	email, err := utils.SanitizeEmail(req.Email)
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: utils.GetAuthErrorMessage(utils.AuthErrInvalidEmail),
		})
	}

	users := config.GetCollection(uc.DB, "users")

	count, err := users.CountDocuments(ctx, bson.M{"email": email})
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to check existing accounts",
		})
	}
	if count > 0 {
		return c.JSON(http.StatusConflict, models.Response{
			Status:  http.StatusConflict,
			Message: "An account with this email already exists",
		})
	}

	hashedPassword, err := utils.HashPassword(req.Password)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to process password",
		})
	}

	now := time.Now()
	user := models.User{
		ID:                primitive.NewObjectID(),
		BusinessID:        utils.GenerateBusinessID(utils.DistributorType),
		Name:              utils.SanitizeInput(req.Name),
		Email:             email,
		Password:          hashedPassword,
		Phone:             utils.FormatPhoneNumber(req.Phone),
		Role:              models.RoleDistributor,
		Stock:             map[string]int{},
		Commission:        0,
		Ancestors:         []primitive.ObjectID{},
		DirectDescendants: []primitive.ObjectID{},
		IsActive:          true,
		CreatedAt:         now,
		UpdatedAt:         now,
	}
	user.UserID = user.ID.Hex()

	if _, err := users.InsertOne(ctx, user); err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to create account",
		})
	}

	user.Password = ""
	return c.JSON(http.StatusCreated, models.Response{
		Status:  http.StatusCreated,
		Message: "Distributor created",
		Data:    user,
	})
}

func (uc *UserController) authedObjectID(c echo.Context) (primitive.ObjectID, func(echo.Context) error) {
	userID := middleware.GetUserIDFromToken(c)
	objID, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return primitive.NilObjectID, func(c echo.Context) error {
			return c.JSON(http.StatusUnauthorized, models.Response{
				Status:  http.StatusUnauthorized,
				Message: "Authentication required",
			})
		}
	}
	return objID, nil
}
