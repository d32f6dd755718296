package routes

import (
	"net/http"

	"github.com/go-redis/redis/v8"
	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/viva4all/viva4all_backend/controllers"
	"github.com/viva4all/viva4all_backend/middleware"
	"github.com/viva4all/viva4all_backend/models"
	"github.com/viva4all/viva4all_backend/store"
	"github.com/viva4all/viva4all_backend/websocket"
)

// SetupRoutes configures all API routes by calling the individual route
// registration functions
func SetupRoutes(e *echo.Echo, db *mongo.Client, rdb *redis.Client, appStore *store.Store, hub *websocket.Hub) {
	authController := controllers.NewAuthController(db, rdb, appStore, hub)
	dashboardController := controllers.NewDashboardController(db, appStore)
	productController := controllers.NewProductController(db, appStore)
	userController := controllers.NewUserController(db, appStore, hub)
	notificationController := controllers.NewNotificationController(db, appStore)

	RegisterAuthRoutes(e, db, rdb, authController)
	RegisterMarketerRoutes(e, db, appStore, hub, dashboardController)
	RegisterDistributorRoutes(e, db, appStore, hub, dashboardController)
	RegisterAdminRoutes(e, db, appStore, hub, dashboardController)

	// Public product catalog
	e.GET("/api/products", productController.ListProducts)

	// Routes shared by every authenticated role
	r := e.Group("/api")
	r.Use(middleware.JWTMiddleware())

	r.GET("/users/profile", userController.GetProfile)
	r.PUT("/users/profile", userController.UpdateProfile)

	r.GET("/notifications", notificationController.ListNotifications)
	r.PUT("/notifications/:id/read", notificationController.MarkNotificationRead)
	r.DELETE("/notifications/:id", notificationController.DeleteNotification)

	// WebSocket endpoint for dashboard push events
	r.GET("/ws", func(c echo.Context) error {
		userID := middleware.GetUserIDFromToken(c)
		objID, err := primitive.ObjectIDFromHex(userID)
		if err != nil {
			return c.JSON(http.StatusUnauthorized, models.Response{
				Status:  http.StatusUnauthorized,
				Message: "Authentication required",
			})
		}
		return websocket.HandleWebSocket(c, hub, objID)
	})
}
