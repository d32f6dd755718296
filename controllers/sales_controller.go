// controllers/sales_controller.go
package controllers

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/google/uuid"
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

// uplineCommissionRate is the share of a sale credited to the direct referrer
const uplineCommissionRate = 0.10

// SalesController records and lists marketer sales
type SalesController struct {
	DB       *mongo.Client
	Store    *store.Store
	Hub      *websocket.Hub
	userRepo *repositories.UserRepository
	logger   *log.Logger
}

// NewSalesController creates a new sales controller
func NewSalesController(db *mongo.Client, appStore *store.Store, hub *websocket.Hub) *SalesController {
	return &SalesController{
		DB:       db,
		Store:    appStore,
		Hub:      hub,
		userRepo: repositories.NewUserRepository(db),
		logger:   log.New(os.Stdout, "[SALES] ", log.LstdFlags),
	}
}

// CreateSale records a sale for the authenticated marketer: inserts the sale
// document, decrements the marketer's stock on hand, stamps
// lastPurchaseDate, and credits the direct referrer's commission.
func (sc *SalesController) CreateSale(c echo.Context) error {
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

	var req models.CreateSaleRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Invalid request body",
		})
	}

	if req.Quantity <= 0 {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Quantity must be greater than zero",
		})
	}

	productID, err := primitive.ObjectIDFromHex(req.ProductID)
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Invalid product ID",
		})
	}

	var product models.Product
	err = config.GetCollection(sc.DB, "products").
		FindOne(ctx, bson.M{"_id": productID}).Decode(&product)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return c.JSON(http.StatusNotFound, models.Response{
				Status:  http.StatusNotFound,
				Message: "Product not found",
			})
		}
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to load product",
		})
	}

	seller, err := sc.userRepo.FindByID(ctx, objID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to load profile",
		})
	}

	if seller.Stock[req.ProductID] < req.Quantity {
		return c.JSON(http.StatusConflict, models.Response{
			Status:  http.StatusConflict,
			Message: fmt.Sprintf("Insufficient stock: %d on hand", seller.Stock[req.ProductID]),
		})
	}

	now := time.Now()
	sale := models.Sale{
		ID:         primitive.NewObjectID(),
		ReceiptNo:  "RCP-" + uuid.New().String(),
		MarketerID: objID,
		ProductID:  productID,
		Quantity:   req.Quantity,
		Total:      product.Price * float64(req.Quantity),
		Timestamp:  now,
	}

	if _, err := config.GetCollection(sc.DB, "sales").InsertOne(ctx, sale); err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to record sale",
		})
	}

	if err := sc.userRepo.RecordPurchase(ctx, objID, req.ProductID, req.Quantity, now); err != nil {
		sc.logger.Printf("Failed to update stock for %s after sale %s: %v", userID, sale.ReceiptNo, err)
	}

	sc.creditUpline(ctx, seller, sale)

	if notification, err := utils.SaveNotification(sc.DB, objID, models.NotificationSuccess,
		fmt.Sprintf("Sale recorded: %s x%d for %s", product.Name, sale.Quantity, utils.FormatCurrency(sale.Total))); err == nil {
		sc.Store.Dispatch(store.AddNotification{Notification: *notification})
	}

	sc.Hub.SendToUser(objID, websocket.Event{
		Type:    websocket.EventSaleRecorded,
		Message: "Sale recorded",
		Data:    sale,
		UserID:  userID,
	})

	return c.JSON(http.StatusCreated, models.Response{
		Status:  http.StatusCreated,
		Message: "Sale recorded",
		Data:    sale,
	})
}

// ListSales returns the marketer's sales newest first (?limit=, default 50)
func (sc *SalesController) ListSales(c echo.Context) error {
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

	cursor, err := config.GetCollection(sc.DB, "sales").Find(ctx, bson.M{"marketerId": objID}, opts)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to load sales",
		})
	}
	defer cursor.Close(ctx)

	sales := []models.Sale{}
	if err := cursor.All(ctx, &sales); err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to decode sales",
		})
	}

	sc.Store.Dispatch(store.SetSales{Sales: sales})

	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "Sales loaded",
		Data:    sales,
	})
}

// creditUpline writes a commission record for the seller's direct referrer
// and bumps the referrer's running commission total. Best effort: a failed
// credit is logged for reconciliation, the sale itself stands.
func (sc *SalesController) creditUpline(ctx context.Context, seller *models.User, sale models.Sale) {
	if seller.ReferrerID == nil {
		return
	}

	amount := sale.Total * uplineCommissionRate
	commission := models.Commission{
		ID:         primitive.NewObjectID(),
		ReceiverID: *seller.ReferrerID,
		SourceID:   sale.MarketerID,
		Amount:     amount,
		Timestamp:  sale.Timestamp,
	}

	if _, err := config.GetCollection(sc.DB, "commissions").InsertOne(ctx, commission); err != nil {
		sc.logger.Printf("Failed to record commission for sale %s: %v", sale.ReceiptNo, err)
		return
	}

	_, err := config.GetCollection(sc.DB, "users").UpdateOne(ctx,
		bson.M{"_id": *seller.ReferrerID},
		bson.M{
			"$inc": bson.M{"commission": amount},
			"$set": bson.M{"updatedAt": time.Now()},
		})
	if err != nil {
		sc.logger.Printf("Failed to bump commission total for %s: %v", seller.ReferrerID.Hex(), err)
		return
	}

	if notification, err := utils.SaveNotification(sc.DB, *seller.ReferrerID, models.NotificationInfo,
		fmt.Sprintf("You earned %s commission from a downline sale", utils.FormatCurrency(amount))); err == nil {
		sc.Store.Dispatch(store.AddNotification{Notification: *notification})
	}
	sc.Hub.NotifyUser(*seller.ReferrerID, models.NotificationInfo, "You earned a downline commission")
	go utils.SendPushNotification(sc.DB, *seller.ReferrerID, "Commission earned",
		fmt.Sprintf("You earned %s from a downline sale", utils.FormatCurrency(amount)))
}
