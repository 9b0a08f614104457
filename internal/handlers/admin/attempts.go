package admin

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"

	"lumio_back_end/internal/database"
	"lumio_back_end/internal/models"
)

//
// 🟢 GET /api/admin/login-attempts?status=
//
// Journal d'audit des connexions, plus récent en premier, filtre de statut
// optionnel (success | failed | blocked).
func GetLoginAttempts(c *gin.Context) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	filter := bson.M{}
	switch status := c.Query("status"); status {
	case "":
		// pas de filtre
	case models.AttemptSuccess, models.AttemptFailed, models.AttemptBlocked:
		filter["status"] = status
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "Statut de filtre invalide"})
		return
	}

	opts := options.Find().SetSort(bson.D{{Key: "timestamp", Value: -1}}).SetLimit(500)
	cursor, err := database.LoginAttempts().Find(ctx, filter, opts)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur récupération journal"})
		return
	}
	defer cursor.Close(ctx)

	attempts := []models.LoginAttempt{}
	if err := cursor.All(ctx, &attempts); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur décodage journal"})
		return
	}

	c.JSON(http.StatusOK, attempts)
}
