package repositories

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/viva4all/viva4all_backend/config"
	"github.com/viva4all/viva4all_backend/models"
)

type UserRepository struct {
	collection *mongo.Collection
}

func NewUserRepository(db *mongo.Client) *UserRepository {
	return &UserRepository{
		collection: config.GetCollection(db, "users"),
	}
}

// FindByEmail looks a profile up by email address
func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	err := r.collection.FindOne(ctx, bson.M{"email": email}).Decode(&user)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// FindByID looks a profile up by document id
func (r *UserRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	var user models.User
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&user)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// FindByBusinessID looks a profile up by its shareable business code
func (r *UserRepository) FindByBusinessID(ctx context.Context, businessID string) (*models.User, error) {
	var user models.User
	err := r.collection.FindOne(ctx, bson.M{"businessId": businessID}).Decode(&user)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// AppendDirectDescendant records a newly referred member on the referrer
func (r *UserRepository) AppendDirectDescendant(ctx context.Context, referrerID, newUserID primitive.ObjectID) error {
	update := bson.M{
		"$addToSet": bson.M{"directDescendants": newUserID},
		"$set":      bson.M{"updatedAt": time.Now()},
	}
	_, err := r.collection.UpdateOne(ctx, bson.M{"_id": referrerID}, update)
	return err
}

// RecordPurchase stamps the member's last purchase time and decrements the
// product's stock on hand
func (r *UserRepository) RecordPurchase(ctx context.Context, userID primitive.ObjectID, productID string, quantity int, at time.Time) error {
	update := bson.M{
		"$set": bson.M{
			"lastPurchaseDate": at,
			"updatedAt":        at,
		},
		"$inc": bson.M{"stock." + productID: -quantity},
	}
	_, err := r.collection.UpdateOne(ctx, bson.M{"_id": userID}, update)
	return err
}
