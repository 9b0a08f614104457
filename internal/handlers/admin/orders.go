package admin

import (
	"context"
	"fmt"
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

// fetchOrdersWithUsernames charge toutes les commandes et joint le nom
// d'utilisateur via une table users chargée en mémoire.
func fetchOrdersWithUsernames(ctx context.Context) ([]models.Order, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := database.Orders().Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	orders := []models.Order{}
	if err := cursor.All(ctx, &orders); err != nil {
		return nil, err
	}

	usersCursor, err := database.Users().Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer usersCursor.Close(ctx)

	usernames := map[string]string{}
	var user models.User
	for usersCursor.Next(ctx) {
		if err := usersCursor.Decode(&user); err == nil {
			usernames[user.ID] = user.Username
		}
	}

	for i := range orders {
		if name, ok := usernames[orders[i].UserID]; ok {
			orders[i].Username = name
		} else {
			orders[i].Username = "Unknown"
		}
	}
	return orders, nil
}

//
// 🟢 GET /api/admin/orders
//
func GetAllOrders(c *gin.Context) {
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	orders, err := fetchOrdersWithUsernames(ctx)
	if err != nil {
		log.Println("❌ Erreur récupération commandes:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur récupération commandes"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"orders": orders})
}

//
// 🟡 PUT /api/admin/orders/:id/status
//
// Aucune machine à états : tout statut peut passer à tout autre. Le
// propriétaire reçoit une notification et un email, best effort.
func UpdateOrderStatus(c *gin.Context) {
	orderID := c.Param("id")

	var input struct {
		Status string `json:"status" binding:"required,oneof=pending shipped cancelled"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	var order models.Order
	if err := database.Orders().FindOne(ctx, bson.M{"_id": orderID}).Decode(&order); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Commande introuvable"})
		return
	}

	_, err := database.Orders().UpdateOne(ctx,
		bson.M{"_id": orderID},
		bson.M{"$set": bson.M{"status": input.Status}})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur mise à jour statut"})
		return
	}
	order.Status = input.Status

	// Notification au propriétaire, best effort
	senderName := "Admin"
	var actor models.User
	if err := database.Users().FindOne(ctx, bson.M{"_id": c.GetString("user_id")}).Decode(&actor); err == nil {
		senderName = actor.Username
	}
	if err := utils.AddNotification(ctx, order.UserID, senderName,
		"Your order is now "+input.Status, "order", "/orders"); err != nil {
		log.Printf("⚠️ Notification non envoyée pour la commande %s: %v", orderID, err)
	}

	// Email au propriétaire, best effort
	var owner models.User
	if err := database.Users().FindOne(ctx, bson.M{"_id": order.UserID}).Decode(&owner); err == nil {
		go func() {
			if err := utils.SendOrderStatusEmail(order, owner.Email, input.Status); err != nil {
				log.Printf("⚠️ Email de statut non envoyé: %v", err)
			}
		}()
	}

	c.JSON(http.StatusOK, gin.H{"message": "Statut mis à jour", "status": input.Status})
}

//
// 📄 GET /api/admin/orders/export — export CSV
//
func ExportOrdersCSV(c *gin.Context) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	orders, err := fetchOrdersWithUsernames(ctx)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur récupération commandes"})
		return
	}

	data, err := utils.OrdersCSV(orders)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur génération CSV"})
		return
	}

	filename := fmt.Sprintf("orders_%d.csv", time.Now().Unix())
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, "text/csv; charset=utf-8", data)
}

//
// 📊 GET /api/admin/orders/stats
//
func GetOrderStats(c *gin.Context) {
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	orders, err := fetchOrdersWithUsernames(ctx)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur récupération commandes"})
		return
	}

	totalRevenue := 0.0
	ordersByUser := map[string]int{}
	for _, o := range orders {
		totalRevenue += o.TotalPrice
		ordersByUser[o.Username]++
	}

	c.JSON(http.StatusOK, gin.H{
		"totalOrders":  len(orders),
		"totalRevenue": totalRevenue,
		"ordersByUser": ordersByUser,
	})
}
