package middleware

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"lumio_back_end/internal/database"
	"lumio_back_end/internal/models"
)

const (
	LoginMaxAttempts = 5
	LoginCooldown    = 15 * time.Minute
)

// LoginRateLimit limite les tentatives de connexion par email. Pendant le
// cooldown chaque tentative est journalisée en "blocked" dans l'audit.
func LoginRateLimit() gin.HandlerFunc {
	return func(c *gin.Context) {
		// Lire le body sans le consommer
		bodyBytes, _ := io.ReadAll(c.Request.Body)

		var input struct {
			Email string `json:"email"`
		}
		if err := json.Unmarshal(bodyBytes, &input); err != nil || input.Email == "" {
			c.Request.Body = io.NopCloser(bytes.NewBuffer(bodyBytes))
			c.Next()
			return
		}

		// Remettre le body pour les handlers suivants
		c.Request.Body = io.NopCloser(bytes.NewBuffer(bodyBytes))

		ctx := context.Background()
		key := "login_attempts:" + input.Email
		cooldownKey := "login_cooldown:" + input.Email

		// Utilisateur en cooldown ?
		if database.Redis.Exists(ctx, cooldownKey).Val() > 0 {
			ttl := database.Redis.TTL(ctx, cooldownKey).Val()
			recordBlockedAttempt(ctx, input.Email)
			c.JSON(http.StatusTooManyRequests, gin.H{
				"error":       fmt.Sprintf("Trop de tentatives échouées. Réessayez dans %d minutes", int(ttl.Minutes())+1),
				"retry_after": int(ttl.Seconds()),
			})
			c.Abort()
			return
		}

		// Seuil de tentatives atteint ?
		attempts, _ := database.Redis.Get(ctx, key).Int()
		if attempts >= LoginMaxAttempts {
			database.Redis.Set(ctx, cooldownKey, "1", LoginCooldown)
			database.Redis.Del(ctx, key)
			recordBlockedAttempt(ctx, input.Email)
			c.JSON(http.StatusTooManyRequests, gin.H{
				"error":       fmt.Sprintf("Trop de tentatives échouées. Compte bloqué pendant %d minutes", int(LoginCooldown.Minutes())),
				"retry_after": int(LoginCooldown.Seconds()),
			})
			c.Abort()
			return
		}

		c.Next()

		// Après traitement : échec → incrément, succès → remise à zéro
		switch {
		case c.Writer.Status() == http.StatusUnauthorized || c.Writer.Status() == http.StatusForbidden:
			database.Redis.Incr(ctx, key)
			database.Redis.Expire(ctx, key, LoginCooldown)
		case c.Writer.Status() == http.StatusOK:
			database.Redis.Del(ctx, key)
		}
	}
}

func recordBlockedAttempt(ctx context.Context, email string) {
	attempt := models.LoginAttempt{
		ID:        primitive.NewObjectID().Hex(),
		Email:     email,
		Status:    models.AttemptBlocked,
		Reason:    "too many failed attempts",
		Timestamp: time.Now(),
	}
	if _, err := database.LoginAttempts().InsertOne(ctx, attempt); err != nil {
		log.Printf("⚠️ Erreur journalisation tentative bloquée: %v", err)
	}
}
