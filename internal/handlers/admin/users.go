package admin

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"

	"lumio_back_end/internal/database"
	"lumio_back_end/internal/models"
	"lumio_back_end/internal/utils"
)

//
// 🟢 GET /api/admin/users
//
func GetUsers(c *gin.Context) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	cursor, err := database.Users().Find(ctx, bson.M{})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur récupération utilisateurs"})
		return
	}
	defer cursor.Close(ctx)

	users := []models.User{}
	if err := cursor.All(ctx, &users); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur décodage utilisateurs"})
		return
	}

	c.JSON(http.StatusOK, users)
}

// roleChangeDenied applique les règles de changement de rôle. Retourne le
// motif du refus, ou une chaîne vide si le changement est permis.
//
// Invariant : au plus un compte admin. La vérification adminExists est une
// lecture-puis-écriture sans verrou — fenêtre de course connue.
func roleChangeDenied(actorID string, target models.User, newRole string, adminExists bool) string {
	if target.ID == actorID {
		return "Impossible de modifier son propre rôle"
	}
	if target.Role == models.RoleAdmin {
		return "Impossible de retirer le rôle admin"
	}
	if newRole == models.RoleAdmin && adminExists {
		return "Un seul administrateur est autorisé"
	}
	return ""
}

//
// 🟡 PUT /api/admin/users/:id/role
//
func ChangeUserRole(c *gin.Context) {
	actorID := c.GetString("user_id")
	targetID := c.Param("id")

	var input struct {
		Role string `json:"role" binding:"required,oneof=user admin"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var target models.User
	if err := database.Users().FindOne(ctx, bson.M{"_id": targetID}).Decode(&target); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Utilisateur introuvable"})
		return
	}

	adminExists := false
	if input.Role == models.RoleAdmin {
		count, err := database.Users().CountDocuments(ctx, bson.M{"role": models.RoleAdmin})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur vérification admin"})
			return
		}
		adminExists = count > 0
	}

	if reason := roleChangeDenied(actorID, target, input.Role, adminExists); reason != "" {
		c.JSON(http.StatusForbidden, gin.H{"error": reason})
		return
	}

	_, err := database.Users().UpdateOne(ctx,
		bson.M{"_id": targetID},
		bson.M{"$set": bson.M{"role": input.Role}})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur mise à jour rôle"})
		return
	}

	log.Printf("✅ Rôle de %s changé en %s", target.Username, input.Role)
	c.JSON(http.StatusOK, gin.H{"message": "Rôle mis à jour", "role": input.Role})
}

// activeToggleDenied : le statut d'un compte admin n'est jamais modifiable.
func activeToggleDenied(target models.User) string {
	if target.Role == models.RoleAdmin {
		return "Impossible de modifier le statut d'un administrateur"
	}
	return ""
}

//
// 🟡 PATCH /api/admin/users/:id/active
//
func ToggleUserActive(c *gin.Context) {
	targetID := c.Param("id")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var target models.User
	if err := database.Users().FindOne(ctx, bson.M{"_id": targetID}).Decode(&target); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Utilisateur introuvable"})
		return
	}

	if reason := activeToggleDenied(target); reason != "" {
		c.JSON(http.StatusForbidden, gin.H{"error": reason})
		return
	}

	newActive := !target.Active
	_, err := database.Users().UpdateOne(ctx,
		bson.M{"_id": targetID},
		bson.M{"$set": bson.M{"active": newActive}})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur mise à jour statut"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"active": newActive})
}

//
// 📣 POST /api/admin/notifications — notification groupée
//
func SendBulkNotification(c *gin.Context) {
	var input struct {
		UserIDs []string `json:"userIds" binding:"required,min=1"`
		Message string   `json:"message" binding:"required"`
		Type    string   `json:"type"`
		Link    string   `json:"link"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Sélectionnez des utilisateurs et un message"})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	senderName := "Admin"
	actorID := c.GetString("user_id")
	var actor models.User
	if err := database.Users().FindOne(ctx, bson.M{"_id": actorID}).Decode(&actor); err == nil {
		senderName = actor.Username
	}

	notifType := input.Type
	if notifType == "" {
		notifType = "message"
	}

	if err := utils.SendBulkNotification(ctx, input.UserIDs, senderName, input.Message, notifType, input.Link); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur envoi notifications"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Notifications envoyées",
		"count":   len(input.UserIDs),
	})
}

//
// 🟢 GET /api/admin/users/:id/activity — historique connexions + commandes
//
func GetUserActivity(c *gin.Context) {
	targetID := c.Param("id")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var target models.User
	if err := database.Users().FindOne(ctx, bson.M{"_id": targetID}).Decode(&target); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Utilisateur introuvable"})
		return
	}

	attempts := []models.LoginAttempt{}
	attemptOpts := options.Find().SetSort(bson.D{{Key: "timestamp", Value: -1}}).SetLimit(50)
	if cursor, err := database.LoginAttempts().Find(ctx, bson.M{"uid": targetID}, attemptOpts); err == nil {
		cursor.All(ctx, &attempts)
		cursor.Close(ctx)
	}

	orders := []models.Order{}
	orderOpts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}).SetLimit(20)
	if cursor, err := database.Orders().Find(ctx, bson.M{"user_id": targetID}, orderOpts); err == nil {
		cursor.All(ctx, &orders)
		cursor.Close(ctx)
	}

	c.JSON(http.StatusOK, gin.H{
		"logins": attempts,
		"orders": orders,
	})
}
