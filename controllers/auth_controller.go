// controllers/auth_controller.go
package controllers

import (
	"context"
	"log"
	"net/http"
	"os"
	"sync"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/viva4all/viva4all_backend/config"
	"github.com/viva4all/viva4all_backend/middleware"
	"github.com/viva4all/viva4all_backend/models"
	"github.com/viva4all/viva4all_backend/repositories"
	"github.com/viva4all/viva4all_backend/store"
	"github.com/viva4all/viva4all_backend/utils"
	"github.com/viva4all/viva4all_backend/websocket"
)

type loginAttempt struct {
	count       int
	lastAttempt time.Time
}

// AuthController contains authentication logic
type AuthController struct {
	DB              *mongo.Client
	Redis           *redis.Client
	Store           *store.Store
	Hub             *websocket.Hub
	userRepo        *repositories.UserRepository
	logger          *log.Logger
	loginAttempts   map[string]loginAttempt
	loginAttemptsMu sync.RWMutex
}

// NewAuthController creates a new auth controller
func NewAuthController(db *mongo.Client, rdb *redis.Client, appStore *store.Store, hub *websocket.Hub) *AuthController {
	ac := &AuthController{
		DB:            db,
		Redis:         rdb,
		Store:         appStore,
		Hub:           hub,
		userRepo:      repositories.NewUserRepository(db),
		logger:        log.New(os.Stdout, "[AUTH] ", log.LstdFlags),
		loginAttempts: make(map[string]loginAttempt),
	}

	go ac.startLoginAttemptCleanupRoutine()

	return ac
}

// Register handles marketer signup. Every self-service registration creates
// a marketer profile; distributor and admin accounts are provisioned by an
// admin.
func (ac *AuthController) Register(c echo.Context) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var req models.RegisterRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Invalid request body",
		})
	}

	validation := utils.ValidateUserRegistration(req.Name, req.Email, req.Phone, req.Password, req.ConfirmPassword)
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
	req.Email = email

	collection := config.GetCollection(ac.DB, "users")

	count, err := collection.CountDocuments(ctx, bson.M{"email": req.Email})
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

	// Optional referral: the new member hangs below the referrer, and the
	// ancestors chain stays prefix-consistent by construction.
	var referrer *models.User
	ancestors := []primitive.ObjectID{}
	var referrerID *primitive.ObjectID
	if req.ReferralCode != "" {
		referrer, err = ac.userRepo.FindByBusinessID(ctx, req.ReferralCode)
		if err != nil {
			if err == mongo.ErrNoDocuments {
				return c.JSON(http.StatusNotFound, models.Response{
					Status:  http.StatusNotFound,
					Message: "Invalid referral code",
				})
			}
			return c.JSON(http.StatusInternalServerError, models.Response{
				Status:  http.StatusInternalServerError,
				Message: "Failed to verify referral code",
			})
		}
		referrerID = &referrer.ID
		ancestors = append([]primitive.ObjectID{referrer.ID}, referrer.Ancestors...)
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
		BusinessID:        utils.GenerateMarketerBusinessID(),
		Name:              utils.SanitizeInput(req.Name),
		Email:             req.Email,
		Password:          hashedPassword,
		Phone:             utils.FormatPhoneNumber(req.Phone),
		Role:              models.RoleMarketer,
		Stock:             map[string]int{},
		Commission:        0,
		ReferrerID:        referrerID,
		Ancestors:         ancestors,
		DirectDescendants: []primitive.ObjectID{},
		IsActive:          true,
		CreatedAt:         now,
		UpdatedAt:         now,
	}
	user.UserID = user.ID.Hex()

	if _, err := collection.InsertOne(ctx, user); err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to create account",
		})
	}

	if referrer != nil {
		if err := ac.userRepo.AppendDirectDescendant(ctx, referrer.ID, user.ID); err != nil {
			ac.logger.Printf("Failed to link descendant %s to referrer %s: %v", user.ID.Hex(), referrer.ID.Hex(), err)
		}
	}

	token, refreshToken, err := middleware.GenerateJWT(user.ID.Hex(), user.Email, user.Role)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to generate token",
		})
	}

	session := &models.AuthSession{
		UserID:       user.ID.Hex(),
		Email:        user.Email,
		Role:         user.Role,
		Token:        token,
		RefreshToken: refreshToken,
	}

	user.Password = ""

	if err := utils.StoreSession(ctx, ac.Redis, session, &user); err != nil {
		ac.logger.Printf("Failed to mirror session for %s: %v", user.ID.Hex(), err)
	}

	ac.Store.Dispatch(store.SetAuthUser{Session: session})
	ac.Store.Dispatch(store.SetUserData{User: &user})

	if notification, err := utils.SaveNotification(ac.DB, user.ID, models.NotificationSuccess, "Registration successful! Welcome to Viva4all."); err == nil {
		ac.Store.Dispatch(store.AddNotification{Notification: *notification})
	}

	return c.JSON(http.StatusCreated, models.Response{
		Status:  http.StatusCreated,
		Message: "Registration successful",
		Data: map[string]interface{}{
			"token":        token,
			"refreshToken": refreshToken,
			"user":         user,
		},
	})
}

// Login handler
func (ac *AuthController) Login(c echo.Context) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var loginReq models.LoginRequest
	if err := c.Bind(&loginReq); err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Invalid request body",
		})
	}

	if loginReq.Email == "" || loginReq.Password == "" {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Email and password are required",
		})
	}

	email, err := utils.SanitizeEmail(loginReq.Email)
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: utils.GetAuthErrorMessage(utils.AuthErrInvalidEmail),
		})
	}
	loginReq.Email = email

	ac.loginAttemptsMu.RLock()
	attempts, exists := ac.loginAttempts[email]
	ac.loginAttemptsMu.RUnlock()

	if exists && attempts.count >= 5 && time.Since(attempts.lastAttempt) < 30*time.Minute {
		return c.JSON(http.StatusTooManyRequests, models.Response{
			Status:  http.StatusTooManyRequests,
			Message: "Too many failed login attempts. Please try again later.",
		})
	}

	collection := config.GetCollection(ac.DB, "users")

	var user models.User
	err = collection.FindOne(ctx, bson.M{"email": loginReq.Email}).Decode(&user)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return c.JSON(http.StatusUnauthorized, models.Response{
				Status:  http.StatusUnauthorized,
				Message: utils.GetAuthErrorMessage(utils.AuthErrUserNotFound),
			})
		}
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: utils.GetAuthErrorMessage(""),
		})
	}

	if !user.IsActive {
		return c.JSON(http.StatusForbidden, models.Response{
			Status:  http.StatusForbidden,
			Message: utils.GetAuthErrorMessage(utils.AuthErrUserDisabled),
		})
	}

	if err := utils.CheckPassword(loginReq.Password, user.Password); err != nil {
		ac.loginAttemptsMu.Lock()
		ac.loginAttempts[email] = loginAttempt{count: attempts.count + 1, lastAttempt: time.Now()}
		ac.loginAttemptsMu.Unlock()

		return c.JSON(http.StatusUnauthorized, models.Response{
			Status:  http.StatusUnauthorized,
			Message: utils.GetAuthErrorMessage(utils.AuthErrWrongPassword),
		})
	}

	ac.loginAttemptsMu.Lock()
	delete(ac.loginAttempts, email)
	ac.loginAttemptsMu.Unlock()

	token, refreshToken, err := middleware.GenerateJWT(user.ID.Hex(), user.Email, user.Role)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to generate token",
		})
	}

	// The profile returned to the client is looked up by email, not by the
	// session identity. Kept that way deliberately; see DESIGN.md before
	// changing it.
	profile, err := ac.userRepo.FindByEmail(ctx, user.Email)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "User data not found",
		})
	}
	profile.Password = ""

	session := &models.AuthSession{
		UserID:       user.ID.Hex(),
		Email:        user.Email,
		Role:         user.Role,
		Token:        token,
		RefreshToken: refreshToken,
	}

	if err := utils.StoreSession(ctx, ac.Redis, session, profile); err != nil {
		ac.logger.Printf("Failed to mirror session for %s: %v", user.ID.Hex(), err)
	}

	ac.Store.Dispatch(store.SetAuthUser{Session: session})
	ac.Store.Dispatch(store.SetUserData{User: profile})

	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "Login successful",
		Data: map[string]interface{}{
			"token":        token,
			"refreshToken": refreshToken,
			"user":         profile,
		},
	})
}

// Logout clears the session mirror and the in-process session slices
func (ac *AuthController) Logout(c echo.Context) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	userID := middleware.GetUserIDFromToken(c)
	if userID != "" {
		utils.ClearSession(ctx, ac.Redis, userID)
	}

	ac.Store.Dispatch(store.SetAuthUser{Session: nil})
	ac.Store.Dispatch(store.SetUserData{User: nil})

	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "Logout successful",
	})
}

// ValidateToken checks the Authorization header token and returns the
// matching profile
func (ac *AuthController) ValidateToken(c echo.Context) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	authHeader := c.Request().Header.Get("Authorization")
	if len(authHeader) < 8 || authHeader[:7] != "Bearer " {
		return c.JSON(http.StatusUnauthorized, models.Response{
			Status:  http.StatusUnauthorized,
			Message: "No token provided",
		})
	}

	claims, err := middleware.ParseToken(authHeader[7:])
	if err != nil {
		return c.JSON(http.StatusUnauthorized, models.Response{
			Status:  http.StatusUnauthorized,
			Message: "Invalid or expired token",
		})
	}

	objID, err := primitive.ObjectIDFromHex(claims.UserID)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, models.Response{
			Status:  http.StatusUnauthorized,
			Message: "Invalid user ID in token",
		})
	}

	user, err := ac.userRepo.FindByID(ctx, objID)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, models.Response{
			Status:  http.StatusUnauthorized,
			Message: utils.GetAuthErrorMessage(utils.AuthErrUserNotFound),
		})
	}
	user.Password = ""

	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "Token is valid",
		Data:    user,
	})
}

// RefreshToken exchanges a refresh token for a new token pair
func (ac *AuthController) RefreshToken(c echo.Context) error {
	var req models.RefreshTokenRequest
	if err := c.Bind(&req); err != nil || req.RefreshToken == "" {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Refresh token is required",
		})
	}

	claims, err := middleware.ParseToken(req.RefreshToken)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, models.Response{
			Status:  http.StatusUnauthorized,
			Message: "Invalid or expired refresh token",
		})
	}

	token, refreshToken, err := middleware.GenerateJWT(claims.UserID, claims.Email, claims.Role)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to generate token",
		})
	}

	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "Token refreshed",
		Data: map[string]string{
			"token":        token,
			"refreshToken": refreshToken,
		},
	})
}

// RehydrateSession restores session + profile from the Redis mirror. A
// corrupt mirror forces re-login.
func (ac *AuthController) RehydrateSession(c echo.Context) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	userID := middleware.GetUserIDFromToken(c)
	if userID == "" {
		return c.JSON(http.StatusUnauthorized, models.Response{
			Status:  http.StatusUnauthorized,
			Message: "Authentication required",
		})
	}

	if err := ac.Store.Rehydrate(ctx, ac.Redis, userID); err != nil {
		if err == utils.ErrCorruptCache {
			return c.JSON(http.StatusUnauthorized, models.Response{
				Status:  http.StatusUnauthorized,
				Message: "Stored session is invalid, please log in again",
			})
		}
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to restore session",
		})
	}

	state := ac.Store.State()
	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "Session restored",
		Data: map[string]interface{}{
			"authUser": state.AuthUser,
			"userData": state.UserData,
		},
	})
}

func (ac *AuthController) startLoginAttemptCleanupRoutine() {
	for {
		time.Sleep(30 * time.Minute)
		ac.loginAttemptsMu.Lock()
		now := time.Now()
		for key, attempt := range ac.loginAttempts {
			if now.Sub(attempt.lastAttempt) > 30*time.Minute {
				delete(ac.loginAttempts, key)
			}
		}
		ac.loginAttemptsMu.Unlock()
	}
}
