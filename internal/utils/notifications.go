package utils

import (
	"context"
	"log"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"lumio_back_end/internal/database"
	"lumio_back_end/internal/models"
)

// NotifChannel retourne le canal Redis du fil de notifications d'un
// utilisateur. Les abonnés WebSocket rechargent le fil complet à chaque
// publication.
func NotifChannel(userID string) string {
	return "notifications:" + userID
}

// AddNotification insère une notification et réveille les abonnés temps réel.
func AddNotification(ctx context.Context, userID, senderName, message, notifType, link string) error {
	if notifType == "" {
		notifType = "system"
	}

	notif := models.Notification{
		ID:         primitive.NewObjectID().Hex(),
		UserID:     userID,
		SenderName: senderName,
		Message:    message,
		Type:       notifType,
		Link:       link,
		Read:       false,
		CreatedAt:  time.Now(),
	}

	if _, err := database.Notifications().InsertOne(ctx, notif); err != nil {
		log.Printf("❌ Erreur insertion notification pour %s: %v", userID, err)
		return err
	}

	PublishNotifChange(ctx, userID)
	return nil
}

// SendBulkNotification écrit une notification par destinataire (une écriture
// par document, pas de batch).
func SendBulkNotification(ctx context.Context, userIDs []string, senderName, message, notifType, link string) error {
	for _, uid := range userIDs {
		if err := AddNotification(ctx, uid, senderName, message, notifType, link); err != nil {
			return err
		}
	}
	return nil
}

// PublishNotifChange signale un changement du fil aux abonnés WebSocket.
// Best effort : un échec de publication n'invalide pas l'écriture.
func PublishNotifChange(ctx context.Context, userID string) {
	if err := database.Redis.Publish(ctx, NotifChannel(userID), "changed").Err(); err != nil {
		log.Printf("⚠️ Erreur publication notification %s: %v", userID, err)
	}
}
