package models

import "time"

type Notification struct {
	ID         string    `bson:"_id,omitempty" json:"id"`
	UserID     string    `bson:"user_id" json:"userId"`
	SenderName string    `bson:"sender_name" json:"senderName"`
	Message    string    `bson:"message" json:"message"`
	Type       string    `bson:"type" json:"type"` // order | message | system
	Link       string    `bson:"link,omitempty" json:"link,omitempty"`
	Read       bool      `bson:"read" json:"read"`
	CreatedAt  time.Time `bson:"created_at" json:"createdAt"`
}
