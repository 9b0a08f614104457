package product

import (
	"context"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"lumio_back_end/internal/services"
)

// =========================
// 🟢 UPLOAD IMAGE PRODUIT
// =========================
//
// L'URL n'est renvoyée (et donc référencée par la fiche produit) qu'après un
// aller-retour MinIO réussi.
func UploadProductImage(c *gin.Context) {
	_, header, err := c.Request.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Fichier manquant"})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	imageURL, objectName, err := services.UploadImage(ctx, header, "products", services.MaxProductSize)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrNotAnImage):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Le fichier doit être une image"})
		case errors.Is(err, services.ErrImageTooLarge):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Image trop volumineuse"})
		default:
			log.Printf("❌ Erreur upload MinIO: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur upload image"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":   "✅ Image uploadée avec succès",
		"image_url": imageURL,
		"object":    objectName,
	})
}
