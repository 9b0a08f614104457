package user

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"lumio_back_end/internal/database"
	"lumio_back_end/internal/models"
	"lumio_back_end/internal/utils"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		// Autoriser toutes les origines (à ajuster en production)
		return true
	},
}

// NotificationsWebSocket pousse le fil complet de notifications à chaque
// changement (dernier instantané gagnant). L'abonnement Redis est détruit à
// la fermeture du socket.
func NotificationsWebSocket(c *gin.Context) {
	userID := c.GetString("user_id")
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Non authentifié"})
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("❌ Erreur upgrade WebSocket: %v", err)
		return
	}
	defer conn.Close()

	ctx := context.Background()

	pubsub := database.Redis.Subscribe(ctx, utils.NotifChannel(userID))
	defer pubsub.Close()
	ch := pubsub.Channel()

	// Instantané initial
	if err := pushNotifSnapshot(ctx, conn, userID); err != nil {
		return
	}

	for {
		select {
		case <-ch:
			if err := pushNotifSnapshot(ctx, conn, userID); err != nil {
				log.Printf("❌ Erreur envoi WebSocket: %v", err)
				return
			}
		case <-time.After(30 * time.Second):
			// Ping pour garder la connexion active
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

func pushNotifSnapshot(ctx context.Context, conn *websocket.Conn, userID string) error {
	notifs, err := fetchNotifications(ctx, userID)
	if err != nil {
		notifs = []models.Notification{}
	}

	return conn.WriteJSON(map[string]interface{}{
		"type":          "notifications",
		"notifications": notifs,
		"unread":        unreadCount(notifs),
	})
}
