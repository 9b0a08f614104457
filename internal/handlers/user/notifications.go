package user

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"

	"lumio_back_end/internal/database"
	"lumio_back_end/internal/models"
	"lumio_back_end/internal/utils"
)

// fetchNotifications charge le fil complet d'un utilisateur, plus récent en
// premier.
func fetchNotifications(ctx context.Context, userID string) ([]models.Notification, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := database.Notifications().Find(ctx, bson.M{"user_id": userID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	notifs := []models.Notification{}
	if err := cursor.All(ctx, &notifs); err != nil {
		return nil, err
	}
	return notifs, nil
}

func unreadCount(notifs []models.Notification) int {
	count := 0
	for _, n := range notifs {
		if !n.Read {
			count++
		}
	}
	return count
}

//
// 🟢 GET /api/notifications
//
func GetNotifications(c *gin.Context) {
	userID := c.GetString("user_id")
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "non authentifié"})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	notifs, err := fetchNotifications(ctx, userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur récupération notifications"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"notifications": notifs,
		"unread":        unreadCount(notifs),
	})
}

//
// 🟡 POST /api/notifications/read
//
// Marque les notifications passées comme lues : une écriture par identifiant,
// pas de batch.
func MarkNotificationsRead(c *gin.Context) {
	userID := c.GetString("user_id")
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "non authentifié"})
		return
	}

	var input struct {
		IDs []string `json:"ids" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Données invalides"})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	for _, id := range input.IDs {
		_, err := database.Notifications().UpdateOne(ctx,
			bson.M{"_id": id, "user_id": userID},
			bson.M{"$set": bson.M{"read": true}})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur mise à jour notifications"})
			return
		}
	}

	utils.PublishNotifChange(ctx, userID)
	c.JSON(http.StatusOK, gin.H{"message": "Notifications marquées comme lues"})
}
