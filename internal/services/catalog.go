package services

import (
	"context"
	"log"
	"time"

	"lumio_back_end/internal/database"
)

// Clés Redis du catalogue, partagées entre les handlers produit et le
// checkout : toute mutation de stock passe par le même cache et le même
// canal temps réel.
const (
	ProductsCacheKey = "products:active"
	ProductsChannel  = "products:changed"
	ProductsCacheTTL = 5 * time.Minute
)

// NotifyCatalogChange invalide le cache et réveille les abonnés temps réel.
func NotifyCatalogChange(ctx context.Context) {
	database.RedisClient.Del(ctx, ProductsCacheKey)
	if err := database.Redis.Publish(ctx, ProductsChannel, "changed").Err(); err != nil {
		log.Printf("⚠️ Erreur publication changement catalogue: %v", err)
	}
}
