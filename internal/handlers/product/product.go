package product

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"

	"lumio_back_end/internal/database"
	"lumio_back_end/internal/models"
	"lumio_back_end/internal/services"
)

// productInput accepte price/stock en nombre ou en chaîne (les formulaires
// envoient des chaînes) et les convertit en types numériques.
type productInput struct {
	Title       string      `json:"title" binding:"required"`
	Description string      `json:"description"`
	Price       json.Number `json:"price" binding:"required"`
	Category    string      `json:"category"`
	Stock       json.Number `json:"stock"`
	Image       string      `json:"image"`
}

func (in *productInput) parse() (price float64, stock int, err error) {
	price, err = in.Price.Float64()
	if err != nil || price < 0 {
		return 0, 0, errInvalidPrice
	}
	if in.Stock == "" {
		return price, 0, nil
	}
	stock64, err := strconv.ParseInt(in.Stock.String(), 10, 64)
	if err != nil || stock64 < 0 {
		return 0, 0, errInvalidStock
	}
	return price, int(stock64), nil
}

var (
	errInvalidPrice = jsonError("prix invalide")
	errInvalidStock = jsonError("stock invalide")
)

type jsonError string

func (e jsonError) Error() string { return string(e) }

// fetchActiveProducts charge le catalogue visible côté boutique.
func fetchActiveProducts(ctx context.Context) ([]models.Product, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := database.Products().Find(ctx, bson.M{"active": true}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	products := []models.Product{}
	if err := cursor.All(ctx, &products); err != nil {
		return nil, err
	}
	return products, nil
}

//
// 🟢 GET /api/products — catalogue public (produits actifs, cache Redis)
//
func GetProducts(c *gin.Context) {
	ctx := context.Background()

	// ✅ Vérifie le cache Redis
	if val, err := database.RedisClient.Get(ctx, services.ProductsCacheKey).Result(); err == nil && val != "" {
		var cached []models.Product
		if err := json.Unmarshal([]byte(val), &cached); err == nil {
			c.JSON(http.StatusOK, cached)
			return
		}
	}

	products, err := fetchActiveProducts(ctx)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lecture produits"})
		return
	}

	// ✅ Met en cache
	if data, err := json.Marshal(products); err == nil {
		database.RedisClient.Set(ctx, services.ProductsCacheKey, data, services.ProductsCacheTTL)
	}

	c.JSON(http.StatusOK, products)
}

//
// 🟢 GET /api/admin/products — catalogue complet (admin)
//
func GetAllProducts(c *gin.Context) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := database.Products().Find(ctx, bson.M{}, opts)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lecture produits"})
		return
	}
	defer cursor.Close(ctx)

	products := []models.Product{}
	if err := cursor.All(ctx, &products); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur décodage produits"})
		return
	}

	c.JSON(http.StatusOK, products)
}

//
// 🟢 POST /api/admin/products
//
func CreateProduct(c *gin.Context) {
	var input productInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	price, stock, err := input.parse()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	product := models.Product{
		ID:          primitive.NewObjectID().Hex(),
		Title:       input.Title,
		Description: input.Description,
		Price:       price,
		Category:    input.Category,
		Stock:       stock,
		Image:       input.Image,
		Active:      true,
		CreatedAt:   time.Now(),
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if _, err := database.Products().InsertOne(ctx, product); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur création produit"})
		return
	}

	// 🔄 Indexation Elasticsearch
	go services.IndexProduct(product)
	services.NotifyCatalogChange(ctx)

	log.Printf("✅ Produit créé : %s", product.Title)
	c.JSON(http.StatusCreated, product)
}

//
// 🟡 PUT /api/admin/products/:id
//
func UpdateProduct(c *gin.Context) {
	productID := c.Param("id")

	var input productInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	price, stock, err := input.parse()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	now := time.Now()
	update := bson.M{"$set": bson.M{
		"title":       input.Title,
		"description": input.Description,
		"price":       price,
		"category":    input.Category,
		"stock":       stock,
		"image":       input.Image,
		"updated_at":  now,
	}}

	result, err := database.Products().UpdateOne(ctx, bson.M{"_id": productID}, update)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur mise à jour produit"})
		return
	}
	if result.MatchedCount == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Produit introuvable"})
		return
	}

	var product models.Product
	if err := database.Products().FindOne(ctx, bson.M{"_id": productID}).Decode(&product); err == nil {
		go services.IndexProduct(product)
	}
	services.NotifyCatalogChange(ctx)

	c.JSON(http.StatusOK, gin.H{"message": "Produit mis à jour"})
}

//
// ❌ DELETE /api/admin/products/:id — suppression définitive
//
func DeleteProduct(c *gin.Context) {
	productID := c.Param("id")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	result, err := database.Products().DeleteOne(ctx, bson.M{"_id": productID})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur suppression produit"})
		return
	}
	if result.DeletedCount == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Produit introuvable"})
		return
	}

	go services.RemoveProductFromIndex(productID)
	services.NotifyCatalogChange(ctx)

	log.Printf("🗑️ Produit supprimé : %s", productID)
	c.JSON(http.StatusOK, gin.H{"message": "Produit supprimé"})
}

//
// 🟡 PATCH /api/admin/products/:id/active
//
func ToggleProductActive(c *gin.Context) {
	productID := c.Param("id")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var product models.Product
	if err := database.Products().FindOne(ctx, bson.M{"_id": productID}).Decode(&product); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Produit introuvable"})
		return
	}

	now := time.Now()
	newActive := !product.Active
	_, err := database.Products().UpdateOne(ctx,
		bson.M{"_id": productID},
		bson.M{"$set": bson.M{"active": newActive, "updated_at": now}})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur mise à jour produit"})
		return
	}

	product.Active = newActive
	product.UpdatedAt = &now
	go services.IndexProduct(product)
	services.NotifyCatalogChange(ctx)

	c.JSON(http.StatusOK, gin.H{"active": newActive})
}
