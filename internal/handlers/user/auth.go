package user

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"lumio_back_end/internal/config"
	"lumio_back_end/internal/database"
	"lumio_back_end/internal/models"
	"lumio_back_end/internal/utils"
)

// ================== INSCRIPTION ==================

func Register(c *gin.Context) {
	var input struct {
		Username string `json:"username" binding:"required"`
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"required,min=6"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// email déjà pris ?
	var existing models.User
	err := database.Users().FindOne(ctx, bson.M{"email": input.Email}).Decode(&existing)
	if err == nil {
		c.JSON(http.StatusConflict, gin.H{"error": "Un compte avec cet email existe déjà"})
		return
	}

	hashedPassword, err := utils.HashPassword(input.Password)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur création utilisateur"})
		return
	}

	// Le rôle admin est réservé à l'email configuré
	role := models.RoleUser
	if input.Email == config.AdminEmail() {
		role = models.RoleAdmin
	}

	user := models.User{
		ID:       primitive.NewObjectID().Hex(),
		Username: input.Username,
		Email:    input.Email,
		Password: hashedPassword,
		Role:     role,
		Active:   true,
		AvatarURL: fmt.Sprintf(
			"https://ui-avatars.com/api/?name=%s&background=111827&color=FBBF24&size=256",
			url.QueryEscape(input.Username)),
		CreatedAt: time.Now(),
	}

	if _, err := database.Users().InsertOne(ctx, user); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur création utilisateur"})
		return
	}

	token, err := utils.GenerateJWT(user)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur génération token"})
		return
	}

	log.Printf("🆕 Utilisateur créé : %s (%s)", user.Username, user.Role)
	c.JSON(http.StatusCreated, gin.H{
		"token":     token,
		"userId":    user.ID,
		"username":  user.Username,
		"email":     user.Email,
		"role":      user.Role,
		"avatarUrl": user.AvatarURL,
	})
}

// ================== CONNEXION ==================

func Login(c *gin.Context) {
	var input struct {
		Email    string `json:"email" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var user models.User
	err := database.Users().FindOne(ctx, bson.M{"email": input.Email}).Decode(&user)
	if err == mongo.ErrNoDocuments {
		recordAttempt(ctx, input.Email, models.AttemptFailed, "user profile not found", "")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Email ou mot de passe incorrect"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur connexion base de données"})
		return
	}

	ok, err := utils.VerifyPassword(input.Password, user.Password)
	if err != nil || !ok {
		recordAttempt(ctx, input.Email, models.AttemptFailed, "invalid credentials", "")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Email ou mot de passe incorrect"})
		return
	}

	if !user.Active {
		recordAttempt(ctx, input.Email, models.AttemptFailed, "inactive account", "")
		c.JSON(http.StatusForbidden, gin.H{"error": "Compte désactivé. Contactez un administrateur"})
		return
	}

	token, err := utils.GenerateJWT(user)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur génération token"})
		return
	}

	recordAttempt(ctx, input.Email, models.AttemptSuccess, "", user.ID)
	c.JSON(http.StatusOK, gin.H{
		"token":     token,
		"userId":    user.ID,
		"username":  user.Username,
		"email":     user.Email,
		"role":      user.Role,
		"avatarUrl": user.AvatarURL,
	})
}

// ================== DÉCONNEXION ==================

// Logout côté serveur est un simple acquittement : la session est un JWT que
// le client jette.
func Logout(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "Déconnecté"})
}

// ================== PROFIL COURANT ==================

func Me(c *gin.Context) {
	userID := c.GetString("user_id")
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Utilisateur non authentifié"})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var user models.User
	if err := database.Users().FindOne(ctx, bson.M{"_id": userID}).Decode(&user); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Utilisateur introuvable"})
		return
	}

	c.JSON(http.StatusOK, user)
}

// ================== AUDIT DES CONNEXIONS ==================

// recordAttempt journalise chaque tentative de connexion (append-only).
// Best effort : un échec d'audit ne bloque pas la connexion.
func recordAttempt(ctx context.Context, email, status, reason, uid string) {
	attempt := models.LoginAttempt{
		ID:        primitive.NewObjectID().Hex(),
		Email:     email,
		Status:    status,
		Reason:    reason,
		UID:       uid,
		Timestamp: time.Now(),
	}
	if _, err := database.LoginAttempts().InsertOne(ctx, attempt); err != nil {
		log.Printf("⚠️ Erreur journalisation tentative de connexion: %v", err)
	}
}
