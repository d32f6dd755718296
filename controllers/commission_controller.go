// controllers/commission_controller.go
package controllers

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/viva4all/viva4all_backend/config"
	"github.com/viva4all/viva4all_backend/middleware"
	"github.com/viva4all/viva4all_backend/models"
	"github.com/viva4all/viva4all_backend/services"
	"github.com/viva4all/viva4all_backend/store"
	"github.com/viva4all/viva4all_backend/utils"
)

// CommissionController lists commission records
type CommissionController struct {
	DB             *mongo.Client
	Store          *store.Store
	networkService *services.NetworkService
}

// NewCommissionController creates a new commission controller
func NewCommissionController(db *mongo.Client, appStore *store.Store) *CommissionController {
	return &CommissionController{
		DB:             db,
		Store:          appStore,
		networkService: services.NewNetworkService(db),
	}
}

// ListCommissions returns commissions received by the authenticated member,
// newest first (?limit=, default 50)
func (cc *CommissionController) ListCommissions(c echo.Context) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	userID := middleware.GetUserIDFromToken(c)
	objID, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, models.Response{
			Status:  http.StatusUnauthorized,
			Message: "Authentication required",
		})
	}

	limit := int64(50)
	if raw := c.QueryParam("limit"); raw != "" {
		if parsed, err := strconv.ParseInt(raw, 10, 64); err == nil && parsed > 0 && parsed <= 500 {
			limit = parsed
		}
	}

	opts := options.Find().
		SetSort(bson.M{"timestamp": -1}).
		SetLimit(limit)

	cursor, err := config.GetCollection(cc.DB, "commissions").Find(ctx, bson.M{"receiverId": objID}, opts)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to load commissions",
		})
	}
	defer cursor.Close(ctx)

	commissions := []models.Commission{}
	if err := cursor.All(ctx, &commissions); err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to decode commissions",
		})
	}

	cc.Store.Dispatch(store.SetCommissions{Commissions: commissions})

	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "Commissions loaded",
		Data: map[string]interface{}{
			"commissions":    commissions,
			"total":          services.SumCommissionAmounts(commissions),
			"totalFormatted": utils.FormatCurrency(services.SumCommissionAmounts(commissions)),
		},
	})
}
