package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/viva4all/viva4all_backend/models"
)

func userWithLastPurchase(at *time.Time) models.User {
	return models.User{
		ID:               primitive.NewObjectID(),
		LastPurchaseDate: at,
	}
}

func TestCountActiveSince(t *testing.T) {
	threshold := time.Date(2025, time.June, 1, 0, 0, 0, 0, time.Local)
	before := threshold.Add(-time.Hour)
	after := threshold.Add(time.Hour)

	tests := []struct {
		name    string
		members []models.User
		want    int
	}{
		{"no members", nil, 0},
		{"never purchased", []models.User{userWithLastPurchase(nil)}, 0},
		{"purchase before threshold", []models.User{userWithLastPurchase(&before)}, 0},
		{"purchase exactly at threshold is not active", []models.User{userWithLastPurchase(&threshold)}, 0},
		{"purchase after threshold", []models.User{userWithLastPurchase(&after)}, 1},
		{
			"mixed",
			[]models.User{
				userWithLastPurchase(nil),
				userWithLastPurchase(&before),
				userWithLastPurchase(&after),
				userWithLastPurchase(&after),
			},
			2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CountActiveSince(tt.members, threshold))
		})
	}
}

func TestSumSaleTotals(t *testing.T) {
	assert.Equal(t, 0.0, SumSaleTotals(nil))
	assert.Equal(t, 0.0, SumSaleTotals([]models.Sale{}))

	sales := []models.Sale{
		{Total: 100.50},
		{Total: 49.50},
		{Total: 200},
	}
	assert.Equal(t, 350.0, SumSaleTotals(sales))
}

func TestSumCommissionAmounts(t *testing.T) {
	assert.Equal(t, 0.0, SumCommissionAmounts(nil))

	commissions := []models.Commission{
		{Amount: 10.25},
		{Amount: 5.75},
	}
	assert.Equal(t, 16.0, SumCommissionAmounts(commissions))
}

func TestAggregationError(t *testing.T) {
	inner := assert.AnError
	err := &AggregationError{Op: "downline", Err: inner}

	assert.Contains(t, err.Error(), "downline")
	assert.ErrorIs(t, err, inner)
}
