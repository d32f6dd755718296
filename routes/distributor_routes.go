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

// RegisterDistributorRoutes sets up the distributor dashboard subtree
func RegisterDistributorRoutes(e *echo.Echo, db *mongo.Client, appStore *store.Store, hub *websocket.Hub, dashboardController *controllers.DashboardController) {
	userController := controllers.NewUserController(db, appStore, hub)
	commissionController := controllers.NewCommissionController(db, appStore)
	referralController := controllers.NewReferralController(db)

	d := e.Group("/api/distributor")
	d.Use(middleware.JWTMiddleware())
	d.Use(middleware.RequireRole(models.RoleDistributor))

	d.GET("/dashboard", dashboardController.DistributorDashboard)
	d.GET("/marketers", userController.ListMarketers)
	d.POST("/stock/transfer", userController.TransferStock)
	d.GET("/commissions", commissionController.ListCommissions)
	d.GET("/earnings", dashboardController.Earnings)
	d.GET("/referral", referralController.GetReferralInfo)
	d.GET("/referral/qr", referralController.GetReferralQR)
}
