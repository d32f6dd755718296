// controllers/dashboard_controller.go
package controllers

import (
	"context"
	"log"
	"net/http"
	"os"
	"sync"
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

// DashboardController aggregates the per-role dashboard figures
type DashboardController struct {
	DB             *mongo.Client
	Store          *store.Store
	networkService *services.NetworkService
	logger         *log.Logger
}

// NewDashboardController creates a new dashboard controller
func NewDashboardController(db *mongo.Client, appStore *store.Store) *DashboardController {
	return &DashboardController{
		DB:             db,
		Store:          appStore,
		networkService: services.NewNetworkService(db),
		logger:         log.New(os.Stdout, "[DASHBOARD] ", log.LstdFlags),
	}
}

// MarketerDashboard returns the marketer's headline figures: today's sales,
// the month's sales, accumulated commission, network stats, and the five most
// recent sales. Each block is fetched independently; a failed block degrades
// to its zero value and surfaces as an error notification instead of failing
// the whole dashboard.
func (dc *DashboardController) MarketerDashboard(c echo.Context) error {
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	userID, objID, errResp := dc.authedUser(c)
	if errResp != nil {
		return errResp(c)
	}

	var (
		wg           sync.WaitGroup
		dailySales   float64
		monthlySales float64
		commission   float64
		netStats     services.NetworkStats
		recentSales  []models.Sale
		degraded     []string
		mu           sync.Mutex
	)

	markDegraded := func(block string, err error) {
		dc.logger.Printf("%s block failed for %s: %v", block, userID, err)
		mu.Lock()
		degraded = append(degraded, block)
		mu.Unlock()
	}

	wg.Add(5)

	go func() {
		defer wg.Done()
		total, err := dc.sumSalesSince(ctx, objID, utils.GetDateRange(utils.RangeToday))
		if err != nil {
			markDegraded("dailySales", err)
			return
		}
		dailySales = total
	}()

	go func() {
		defer wg.Done()
		total, err := dc.sumSalesSince(ctx, objID, utils.GetDateRange(utils.RangeMonth))
		if err != nil {
			markDegraded("monthlySales", err)
			return
		}
		monthlySales = total
	}()

	go func() {
		defer wg.Done()
		var user struct {
			Commission float64 `bson:"commission"`
		}
		err := config.GetCollection(dc.DB, "users").
			FindOne(ctx, bson.M{"_id": objID}).Decode(&user)
		if err != nil {
			markDegraded("commission", err)
			return
		}
		commission = user.Commission
	}()

	go func() {
		defer wg.Done()
		stats, err := dc.networkService.GetNetworkStats(ctx, objID)
		if err != nil {
			markDegraded("network", err)
			return
		}
		netStats = stats
	}()

	go func() {
		defer wg.Done()
		sales, err := dc.fetchRecentSales(ctx, objID, 5)
		if err != nil {
			markDegraded("recentSales", err)
			return
		}
		recentSales = sales
	}()

	wg.Wait()

	if len(degraded) > 0 {
		if notification, err := utils.SaveNotification(dc.DB, objID, models.NotificationError,
			"Some dashboard figures could not be loaded"); err == nil {
			dc.Store.Dispatch(store.AddNotification{Notification: *notification})
		}
	}

	if recentSales == nil {
		recentSales = []models.Sale{}
	}

	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "Dashboard loaded",
		Data: map[string]interface{}{
			"dailySales":            dailySales,
			"dailySalesFormatted":   utils.FormatCurrency(dailySales),
			"monthlySales":          monthlySales,
			"monthlySalesFormatted": utils.FormatCurrency(monthlySales),
			"commission":            commission,
			"commissionFormatted":   utils.FormatCurrency(commission),
			"network":               netStats,
			"recentSales":           recentSales,
			"degraded":              degraded,
		},
	})
}

// DistributorDashboard returns stock on hand, downline network stats, and
// recent commissions for a distributor
func (dc *DashboardController) DistributorDashboard(c echo.Context) error {
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	userID, objID, errResp := dc.authedUser(c)
	if errResp != nil {
		return errResp(c)
	}

	var (
		wg          sync.WaitGroup
		profile     models.User
		netStats    services.NetworkStats
		commissions []models.Commission
		degraded    []string
		mu          sync.Mutex
	)

	markDegraded := func(block string, err error) {
		dc.logger.Printf("%s block failed for %s: %v", block, userID, err)
		mu.Lock()
		degraded = append(degraded, block)
		mu.Unlock()
	}

	wg.Add(3)

	go func() {
		defer wg.Done()
		err := config.GetCollection(dc.DB, "users").
			FindOne(ctx, bson.M{"_id": objID}).Decode(&profile)
		if err != nil {
			markDegraded("profile", err)
		}
	}()

	go func() {
		defer wg.Done()
		stats, err := dc.networkService.GetNetworkStats(ctx, objID)
		if err != nil {
			markDegraded("network", err)
			return
		}
		netStats = stats
	}()

	go func() {
		defer wg.Done()
		list, err := dc.fetchRecentCommissions(ctx, objID, 10)
		if err != nil {
			markDegraded("commissions", err)
			return
		}
		commissions = list
	}()

	wg.Wait()

	if commissions == nil {
		commissions = []models.Commission{}
	}
	stock := profile.Stock
	if stock == nil {
		stock = map[string]int{}
	}

	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "Dashboard loaded",
		Data: map[string]interface{}{
			"stock":               stock,
			"commission":          profile.Commission,
			"commissionFormatted": utils.FormatCurrency(profile.Commission),
			"network":             netStats,
			"recentCommissions":   commissions,
			"degraded":            degraded,
		},
	})
}

// AdminDashboard returns platform-wide counts and totals
func (dc *DashboardController) AdminDashboard(c echo.Context) error {
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	var (
		wg            sync.WaitGroup
		totalUsers    int64
		marketers     int64
		distributors  int64
		totalSales    float64
		totalProducts int64
		degraded      []string
		mu            sync.Mutex
	)

	markDegraded := func(block string, err error) {
		dc.logger.Printf("%s block failed: %v", block, err)
		mu.Lock()
		degraded = append(degraded, block)
		mu.Unlock()
	}

	users := config.GetCollection(dc.DB, "users")

	wg.Add(5)

	go func() {
		defer wg.Done()
		n, err := users.CountDocuments(ctx, bson.M{})
		if err != nil {
			markDegraded("totalUsers", err)
			return
		}
		totalUsers = n
	}()

	go func() {
		defer wg.Done()
		n, err := users.CountDocuments(ctx, bson.M{"role": models.RoleMarketer})
		if err != nil {
			markDegraded("marketers", err)
			return
		}
		marketers = n
	}()

	go func() {
		defer wg.Done()
		n, err := users.CountDocuments(ctx, bson.M{"role": models.RoleDistributor})
		if err != nil {
			markDegraded("distributors", err)
			return
		}
		distributors = n
	}()

	go func() {
		defer wg.Done()
		cursor, err := config.GetCollection(dc.DB, "sales").Find(ctx, bson.M{})
		if err != nil {
			markDegraded("totalSales", err)
			return
		}
		defer cursor.Close(ctx)

		var sales []models.Sale
		if err := cursor.All(ctx, &sales); err != nil {
			markDegraded("totalSales", err)
			return
		}
		totalSales = services.SumSaleTotals(sales)
	}()

	go func() {
		defer wg.Done()
		n, err := config.GetCollection(dc.DB, "products").CountDocuments(ctx, bson.M{})
		if err != nil {
			markDegraded("totalProducts", err)
			return
		}
		totalProducts = n
	}()

	wg.Wait()

	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "Dashboard loaded",
		Data: map[string]interface{}{
			"totalUsers":          totalUsers,
			"marketers":           marketers,
			"distributors":        distributors,
			"totalSales":          totalSales,
			"totalSalesFormatted": utils.FormatCurrency(totalSales),
			"totalProducts":       totalProducts,
			"degraded":            degraded,
		},
	})
}

// NetworkStats exposes the aggregator on its own endpoint
func (dc *DashboardController) NetworkStats(c echo.Context) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	_, objID, errResp := dc.authedUser(c)
	if errResp != nil {
		return errResp(c)
	}

	stats, err := dc.networkService.GetNetworkStats(ctx, objID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to compute network stats",
		})
	}

	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "Network stats loaded",
		Data:    stats,
	})
}

// Earnings sums commissions received inside a symbolic date range
// (?range=today|week|month|year)
func (dc *DashboardController) Earnings(c echo.Context) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	_, objID, errResp := dc.authedUser(c)
	if errResp != nil {
		return errResp(c)
	}

	rangeName := c.QueryParam("range")
	if rangeName == "" {
		rangeName = utils.RangeMonth
	}
	dateRange := utils.GetDateRange(rangeName)

	earnings, err := dc.networkService.CalculateEarnings(ctx, objID, dateRange.Start, dateRange.End)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to calculate earnings",
		})
	}

	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "Earnings calculated",
		Data: map[string]interface{}{
			"range":             rangeName,
			"start":             dateRange.Start,
			"end":               dateRange.End,
			"earnings":          earnings,
			"earningsFormatted": utils.FormatCurrency(earnings),
		},
	})
}

func (dc *DashboardController) authedUser(c echo.Context) (string, primitive.ObjectID, func(echo.Context) error) {
	userID := middleware.GetUserIDFromToken(c)
	if userID == "" {
		return "", primitive.NilObjectID, func(c echo.Context) error {
			return c.JSON(http.StatusUnauthorized, models.Response{
				Status:  http.StatusUnauthorized,
				Message: "Authentication required",
			})
		}
	}

	objID, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return "", primitive.NilObjectID, func(c echo.Context) error {
			return c.JSON(http.StatusBadRequest, models.Response{
				Status:  http.StatusBadRequest,
				Message: "Invalid user ID",
			})
		}
	}

	return userID, objID, nil
}

func (dc *DashboardController) sumSalesSince(ctx context.Context, userID primitive.ObjectID, r utils.DateRange) (float64, error) {
	collection := config.GetCollection(dc.DB, "sales")

	filter := bson.M{
		"marketerId": userID,
		"timestamp":  bson.M{"$gte": r.Start, "$lte": r.End},
	}

	cursor, err := collection.Find(ctx, filter)
	if err != nil {
		return 0, err
	}
	defer cursor.Close(ctx)

	var sales []models.Sale
	if err := cursor.All(ctx, &sales); err != nil {
		return 0, err
	}
	return services.SumSaleTotals(sales), nil
}

func (dc *DashboardController) fetchRecentSales(ctx context.Context, userID primitive.ObjectID, limit int64) ([]models.Sale, error) {
	collection := config.GetCollection(dc.DB, "sales")

	opts := options.Find().
		SetSort(bson.M{"timestamp": -1}).
		SetLimit(limit)

	cursor, err := collection.Find(ctx, bson.M{"marketerId": userID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var sales []models.Sale
	if err := cursor.All(ctx, &sales); err != nil {
		return nil, err
	}
	return sales, nil
}

func (dc *DashboardController) fetchRecentCommissions(ctx context.Context, userID primitive.ObjectID, limit int64) ([]models.Commission, error) {
	collection := config.GetCollection(dc.DB, "commissions")

	opts := options.Find().
		SetSort(bson.M{"timestamp": -1}).
		SetLimit(limit)

	cursor, err := collection.Find(ctx, bson.M{"receiverId": userID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var commissions []models.Commission
	if err := cursor.All(ctx, &commissions); err != nil {
		return nil, err
	}
	return commissions, nil
}
