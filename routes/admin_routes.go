package routes

import (
	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/viva4all/viva4all_backend/controllers"
	"github.com/viva4all/viva4all_backend/middleware"
	"github.com/viva4all/viva4all_backend/models"
	"github.com/viva4all/viva4all_backend/store"
	"github.com/viva4all/viva4all_backend/websocket"
)

// RegisterAdminRoutes sets up the admin subtree: platform dashboard, member
// management and product catalog CRUD
func RegisterAdminRoutes(e *echo.Echo, db *mongo.Client, appStore *store.Store, hub *websocket.Hub, dashboardController *controllers.DashboardController) {
	userController := controllers.NewUserController(db, appStore, hub)
	productController := controllers.NewProductController(db, appStore)

	a := e.Group("/api/admin")
	a.Use(middleware.JWTMiddleware())
	a.Use(middleware.RequireRole(models.RoleAdmin))

	a.GET("/dashboard", dashboardController.AdminDashboard)

	a.GET("/users", userController.ListUsers)
	a.PUT("/users/:id/active", userController.SetUserActive)
	a.POST("/distributors", userController.CreateDistributor)

	a.GET("/products", productController.ListProducts)
	a.GET("/products/:id", productController.GetProduct)
	a.POST("/products", productController.CreateProduct)
	a.PUT("/products/:id", productController.UpdateProduct)
	a.DELETE("/products/:id", productController.DeleteProduct)
}
