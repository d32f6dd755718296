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

// RegisterMarketerRoutes sets up the marketer dashboard subtree. Every route
// is role gated; a non-marketer session is redirected away.
func RegisterMarketerRoutes(e *echo.Echo, db *mongo.Client, appStore *store.Store, hub *websocket.Hub, dashboardController *controllers.DashboardController) {
	salesController := controllers.NewSalesController(db, appStore, hub)
	commissionController := controllers.NewCommissionController(db, appStore)
	referralController := controllers.NewReferralController(db)
	userController := controllers.NewUserController(db, appStore, hub)

	m := e.Group("/api/marketer")
	m.Use(middleware.JWTMiddleware())
	m.Use(middleware.RequireRole(models.RoleMarketer))

	m.GET("/dashboard", dashboardController.MarketerDashboard)
	m.GET("/network", userController.GetNetwork)
	m.GET("/network/stats", dashboardController.NetworkStats)

	m.POST("/sales", salesController.CreateSale)
	m.GET("/sales", salesController.ListSales)

	m.GET("/commissions", commissionController.ListCommissions)
	m.GET("/earnings", dashboardController.Earnings)

	m.GET("/referral", referralController.GetReferralInfo)
	m.GET("/referral/qr", referralController.GetReferralQR)
}
