package routes

import (
	"github.com/go-redis/redis/v8"
	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/viva4all/viva4all_backend/controllers"
	"github.com/viva4all/viva4all_backend/middleware"
)

// RegisterAuthRoutes sets up the public authentication routes plus the
// token-protected session endpoints
func RegisterAuthRoutes(e *echo.Echo, db *mongo.Client, rdb *redis.Client, authController *controllers.AuthController) {
	passwordController := controllers.NewPasswordController(db, rdb)

	// Public authentication routes
	e.POST("/api/auth/register", authController.Register)
	e.POST("/api/auth/login", authController.Login)
	e.POST("/api/auth/refresh-token", authController.RefreshToken)
	e.GET("/api/auth/validate-token", authController.ValidateToken)
	e.POST("/api/auth/forget-password", passwordController.ForgetPassword)
	e.POST("/api/auth/verify-otp", passwordController.VerifyOTP)
	e.POST("/api/auth/reset-password", passwordController.ResetPassword)

	// Session endpoints require a valid token
	session := e.Group("/api/auth")
	session.Use(middleware.JWTMiddleware())
	session.POST("/logout", authController.Logout)
	session.POST("/rehydrate", authController.RehydrateSession)
}
