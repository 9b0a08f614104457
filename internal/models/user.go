package models

import "time"

type User struct {
	ID         string    `bson:"_id,omitempty" json:"id"`
	Username   string    `bson:"username" json:"username"`
	Email      string    `bson:"email" json:"email"`
	Password   string    `bson:"password" json:"-"`
	Role       string    `bson:"role" json:"role"` // "user" ou "admin"
	Active     bool      `bson:"active" json:"active"`
	AvatarURL  string    `bson:"avatar_url" json:"avatarUrl"`
	AvatarPath string    `bson:"avatar_path,omitempty" json:"-"`
	CreatedAt  time.Time `bson:"created_at" json:"createdAt"`
}

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)
