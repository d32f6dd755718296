// services/network_service.go
package services

import (
	"context"
	"fmt"
	"log"
	"os"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/viva4all/viva4all_backend/config"
	"github.com/viva4all/viva4all_backend/models"
	"github.com/viva4all/viva4all_backend/utils"
)

// NetworkStats summarizes a marketer's referral network
type NetworkStats struct {
	TotalDownline   int     `json:"totalDownline"`
	ActiveMarketers int     `json:"activeMarketers"`
	TotalSales      float64 `json:"totalSales"`
}

// AggregationError reports a failed aggregation sub-query. Callers are
// expected to substitute zero-valued defaults and continue; it is never
// fatal to a request.
type AggregationError struct {
	Op  string
	Err error
}

func (e *AggregationError) Error() string {
	return fmt.Sprintf("aggregation %s failed: %v", e.Op, e.Err)
}

func (e *AggregationError) Unwrap() error {
	return e.Err
}

// NetworkService computes downline and commission aggregates. Read-only; it
// never retries, a failed sub-query degrades to zero values.
type NetworkService struct {
	DB     *mongo.Client
	logger *log.Logger
}

// NewNetworkService creates a new network service
func NewNetworkService(db *mongo.Client) *NetworkService {
	return &NetworkService{
		DB:     db,
		logger: log.New(os.Stdout, "[NETWORK] ", log.LstdFlags),
	}
}

// GetNetworkStats computes the size of userID's downline, the number of
// downline members active this month, and the total of the user's own sales.
//
// Downline membership is the backend's array-contains filter over ancestors,
// not a client-side tree walk. Note the sales total sums only the queried
// user's own sales, not the downline's combined sales; kept as-is until the
// business owners decide otherwise.
func (ns *NetworkService) GetNetworkStats(ctx context.Context, userID primitive.ObjectID) (NetworkStats, error) {
	var (
		wg          sync.WaitGroup
		downline    []models.User
		sales       []models.Sale
		downlineErr error
		salesErr    error
	)

	wg.Add(2)

	go func() {
		defer wg.Done()
		downline, downlineErr = ns.fetchDownline(ctx, userID)
	}()

	go func() {
		defer wg.Done()
		sales, salesErr = ns.fetchOwnSales(ctx, userID)
	}()

	wg.Wait()

	if downlineErr != nil {
		ns.logger.Printf("downline query failed for %s: %v", userID.Hex(), downlineErr)
		return NetworkStats{}, &AggregationError{Op: "downline", Err: downlineErr}
	}
	if salesErr != nil {
		ns.logger.Printf("sales query failed for %s: %v", userID.Hex(), salesErr)
		return NetworkStats{}, &AggregationError{Op: "sales", Err: salesErr}
	}

	monthStart := utils.StartOfMonth(time.Now())

	return NetworkStats{
		TotalDownline:   len(downline),
		ActiveMarketers: CountActiveSince(downline, monthStart),
		TotalSales:      SumSaleTotals(sales),
	}, nil
}

// CalculateEarnings sums commission amounts received by userID in
// [start, end], boundaries inclusive. Zero when nothing matches.
func (ns *NetworkService) CalculateEarnings(ctx context.Context, userID primitive.ObjectID, start, end time.Time) (float64, error) {
	collection := config.GetCollection(ns.DB, "commissions")

	filter := bson.M{
		"receiverId": userID,
		"timestamp": bson.M{
			"$gte": start,
			"$lte": end,
		},
	}

	cursor, err := collection.Find(ctx, filter)
	if err != nil {
		ns.logger.Printf("commissions query failed for %s: %v", userID.Hex(), err)
		return 0, &AggregationError{Op: "commissions", Err: err}
	}
	defer cursor.Close(ctx)

	var commissions []models.Commission
	if err := cursor.All(ctx, &commissions); err != nil {
		ns.logger.Printf("commissions decode failed for %s: %v", userID.Hex(), err)
		return 0, &AggregationError{Op: "commissions", Err: err}
	}

	return SumCommissionAmounts(commissions), nil
}

func (ns *NetworkService) fetchDownline(ctx context.Context, userID primitive.ObjectID) ([]models.User, error) {
	collection := config.GetCollection(ns.DB, "users")

	cursor, err := collection.Find(ctx, bson.M{"ancestors": userID})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var downline []models.User
	if err := cursor.All(ctx, &downline); err != nil {
		return nil, err
	}
	return downline, nil
}

func (ns *NetworkService) fetchOwnSales(ctx context.Context, userID primitive.ObjectID) ([]models.Sale, error) {
	collection := config.GetCollection(ns.DB, "sales")

	cursor, err := collection.Find(ctx, bson.M{"marketerId": userID})
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

// CountActiveSince counts members whose last purchase is strictly after the
// threshold
func CountActiveSince(members []models.User, threshold time.Time) int {
	active := 0
	for _, m := range members {
		if m.LastPurchaseDate != nil && m.LastPurchaseDate.After(threshold) {
			active++
		}
	}
	return active
}

// SumSaleTotals sums the total amounts of a set of sales
func SumSaleTotals(sales []models.Sale) float64 {
	var sum float64
	for _, s := range sales {
		sum += s.Total
	}
	return sum
}

// SumCommissionAmounts sums the amounts of a set of commissions
func SumCommissionAmounts(commissions []models.Commission) float64 {
	var sum float64
	for _, c := range commissions {
		sum += c.Amount
	}
	return sum
}
