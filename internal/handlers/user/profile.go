package user

import (
	"context"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"

	"lumio_back_end/internal/database"
	"lumio_back_end/internal/models"
	"lumio_back_end/internal/services"
)

// GetProfile retourne le profil de l'utilisateur connecté.
func GetProfile(c *gin.Context) {
	Me(c)
}

// UploadAvatar remplace l'avatar du profil. Le fichier est validé (image,
// max 3 MB) avant l'upload ; le document profil n'est mis à jour qu'après un
// aller-retour MinIO réussi.
func UploadAvatar(c *gin.Context) {
	userID := c.GetString("user_id")
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Utilisateur non authentifié"})
		return
	}

	_, header, err := c.Request.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Fichier manquant"})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	var user models.User
	if err := database.Users().FindOne(ctx, bson.M{"_id": userID}).Decode(&user); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Utilisateur introuvable"})
		return
	}

	imageURL, objectName, err := services.UploadImage(ctx, header, "avatars/"+userID, services.MaxAvatarSize)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrNotAnImage):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Le fichier doit être une image (jpg, png, ...)"})
		case errors.Is(err, services.ErrImageTooLarge):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Image trop volumineuse (max 3 MB)"})
		default:
			log.Printf("❌ Erreur upload avatar: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur upload avatar"})
		}
		return
	}

	update := bson.M{"$set": bson.M{
		"avatar_url":  imageURL,
		"avatar_path": objectName,
	}}
	if _, err := database.Users().UpdateOne(ctx, bson.M{"_id": userID}, update); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur mise à jour profil"})
		return
	}

	// Supprime l'ancien objet, best effort
	if user.AvatarPath != "" && user.AvatarPath != objectName {
		if err := services.RemoveImage(ctx, user.AvatarPath); err != nil {
			log.Printf("⚠️ Erreur suppression ancien avatar: %v", err)
		}
	}

	log.Printf("✅ Avatar mis à jour pour %s", userID)
	c.JSON(http.StatusOK, gin.H{"avatarUrl": imageURL})
}
