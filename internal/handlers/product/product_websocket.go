package product

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"lumio_back_end/internal/database"
	"lumio_back_end/internal/models"
	"lumio_back_end/internal/services"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// ProductsWebSocket pousse la liste complète des produits actifs à chaque
// mutation du catalogue : l'abonné remplace son état par l'instantané reçu.
func ProductsWebSocket(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("❌ Erreur upgrade WebSocket: %v", err)
		return
	}
	defer conn.Close()

	ctx := context.Background()

	pubsub := database.Redis.Subscribe(ctx, services.ProductsChannel)
	defer pubsub.Close()
	ch := pubsub.Channel()

	// Instantané initial
	if err := pushProductSnapshot(ctx, conn); err != nil {
		return
	}

	for {
		select {
		case <-ch:
			if err := pushProductSnapshot(ctx, conn); err != nil {
				log.Printf("❌ Erreur envoi WebSocket: %v", err)
				return
			}
		case <-time.After(30 * time.Second):
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

func pushProductSnapshot(ctx context.Context, conn *websocket.Conn) error {
	products, err := fetchActiveProducts(ctx)
	if err != nil {
		products = []models.Product{}
	}

	return conn.WriteJSON(map[string]interface{}{
		"type":     "products",
		"products": products,
	})
}
