// utils/notification_utils.go
package utils

import (
	"context"
	"log"
	"time"

	"firebase.google.com/go/v4/messaging"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/viva4all/viva4all_backend/config"
	"github.com/viva4all/viva4all_backend/models"
)

// SaveNotification saves a notification to the database
func SaveNotification(db *mongo.Client, userID primitive.ObjectID, notifType, message string) (*models.Notification, error) {
	collection := config.GetCollection(db, "notifications")

	notification := models.Notification{
		ID:        primitive.NewObjectID(),
		UserID:    userID,
		Type:      notifType,
		Message:   message,
		IsRead:    false,
		CreatedAt: time.Now(),
	}

	_, err := collection.InsertOne(context.Background(), notification)
	if err != nil {
		return nil, err
	}
	return &notification, nil
}

// SendPushNotification delivers a notification to the member's device via
// FCM. Best effort: failures are logged, never propagated.
func SendPushNotification(db *mongo.Client, userID primitive.ObjectID, title, body string) {
	if config.FirebaseApp == nil {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var user struct {
		FCMToken string `bson:"fcmToken"`
	}
	err := config.GetCollection(db, "users").FindOne(ctx, bson.M{"_id": userID}).Decode(&user)
	if err != nil || user.FCMToken == "" {
		return
	}

	client, err := config.FirebaseApp.Messaging(ctx)
	if err != nil {
		log.Printf("Failed to get FCM client: %v", err)
		return
	}

	msg := &messaging.Message{
		Token: user.FCMToken,
		Notification: &messaging.Notification{
			Title: title,
			Body:  body,
		},
	}

	if _, err := client.Send(ctx, msg); err != nil {
		log.Printf("Failed to send push notification: %v", err)
	}
}
