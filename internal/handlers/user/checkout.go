package user

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"lumio_back_end/internal/database"
	"lumio_back_end/internal/models"
	"lumio_back_end/internal/services"
)

// mongoProducts branche la validation et le décrément de stock sur la
// collection products.
type mongoProducts struct{}

func (mongoProducts) FetchProduct(ctx context.Context, productID string) (models.Product, error) {
	var product models.Product
	err := database.Products().FindOne(ctx, bson.M{"_id": productID}).Decode(&product)
	if err == mongo.ErrNoDocuments {
		return product, services.ErrProductNotFound
	}
	return product, err
}

func (mongoProducts) SetStock(ctx context.Context, productID string, stock int) error {
	_, err := database.Products().UpdateOne(ctx,
		bson.M{"_id": productID},
		bson.M{"$set": bson.M{"stock": stock}})
	return err
}

// Checkout valide le panier, décrémente les stocks, crée la commande puis
// vide le panier.
//
// Phase 1 : toute erreur (produit disparu, stock insuffisant) annule la
// commande entière sans aucune écriture. Phase 2 : les décréments de stock
// sont des écritures indépendantes, sans transaction ; toute erreur de
// lecture ou d'écriture pendant les décréments, comme un échec à l'insertion
// de la commande, interrompt la commande sans compenser les décréments déjà
// appliqués, et le panier est conservé pour permettre une nouvelle tentative.
func Checkout(c *gin.Context) {
	userID := c.GetString("user_id")
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Utilisateur non authentifié"})
		return
	}

	var input struct {
		Name          string `json:"name" binding:"required"`
		Email         string `json:"email" binding:"required,email"`
		Address       string `json:"address" binding:"required"`
		City          string `json:"city" binding:"required"`
		PostalCode    string `json:"postalCode" binding:"required"`
		Country       string `json:"country" binding:"required"`
		PaymentMethod string `json:"paymentMethod" binding:"required,oneof=cash credit"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Données invalides", "details": err.Error()})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	cart := loadCart(ctx, userID)
	if len(cart) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Panier vide"})
		return
	}

	// ✅ 1. Vérifier le stock de chaque item (rejet atomique)
	if err := services.ValidateStock(ctx, cart, mongoProducts{}); err != nil {
		var stockErr *services.StockError
		var notFoundErr *services.NotFoundError
		switch {
		case errors.As(err, &stockErr):
			c.JSON(http.StatusBadRequest, gin.H{
				"error":     "Stock insuffisant pour " + stockErr.Item,
				"product":   stockErr.Item,
				"available": stockErr.Available,
				"requested": stockErr.Requested,
			})
		case errors.As(err, &notFoundErr):
			c.JSON(http.StatusNotFound, gin.H{"error": notFoundErr.Error()})
		default:
			log.Printf("❌ Erreur validation stock pour %s: %v", userID, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur vérification du stock"})
		}
		return
	}

	// ✅ 2. Décrémenter les stocks. Lecture puis écriture par produit : deux
	// checkouts simultanés peuvent tous deux passer la validation — survente
	// possible, limitation connue du magasin de documents. Toute erreur de
	// lecture ou d'écriture interrompt la commande : les décréments déjà
	// appliqués sont conservés et le panier n'est pas vidé.
	touched, err := services.ApplyStockDecrements(ctx, cart, mongoProducts{})
	if err != nil {
		log.Printf("❌ Erreur décrément stock pour %s: %v", userID, err)
		refreshCatalog(ctx, touched)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lors de la mise à jour des stocks"})
		return
	}

	// ✅ 3. Créer le document commande
	address := fmt.Sprintf("%s, %s, %s", input.Address, input.City, input.Country)
	order := services.BuildOrder(userID, cart, address, input.PostalCode, input.PaymentMethod)

	if _, err := database.Orders().InsertOne(ctx, order); err != nil {
		// Pas de compensation des décréments déjà appliqués ; le panier
		// n'est pas vidé pour permettre une nouvelle tentative.
		log.Printf("❌ Erreur création commande pour %s: %v", userID, err)
		refreshCatalog(ctx, touched)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur création commande"})
		return
	}

	// ✅ 4. Vider le panier
	if err := database.RedisClient.Del(ctx, cartKey(userID)).Err(); err != nil {
		log.Printf("⚠️ Erreur vidage panier %s: %v", userID, err)
	}

	// Répercute les stocks modifiés sur le cache, le flux temps réel et
	// l'index de recherche
	refreshCatalog(ctx, touched)

	log.Printf("✅ Commande %s créée pour %s (%.2f€)", order.ID, userID, order.TotalPrice)
	c.JSON(http.StatusCreated, gin.H{
		"message": "Commande créée avec succès",
		"order":   order,
	})
}

// refreshCatalog pousse les produits dont le stock a changé vers l'index de
// recherche puis invalide le cache et réveille les abonnés temps réel.
func refreshCatalog(ctx context.Context, touched []models.Product) {
	if len(touched) == 0 {
		return
	}
	for _, product := range touched {
		go services.IndexProduct(product)
	}
	services.NotifyCatalogChange(ctx)
}
