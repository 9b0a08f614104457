package models

import "time"

type Product struct {
	ID          string     `bson:"_id,omitempty" json:"id"`
	Title       string     `bson:"title" json:"title"`
	Description string     `bson:"description" json:"description"`
	Price       float64    `bson:"price" json:"price"`
	Category    string     `bson:"category" json:"category"`
	Stock       int        `bson:"stock" json:"stock"`
	Image       string     `bson:"image" json:"image"`
	Active      bool       `bson:"active" json:"active"`
	CreatedAt   time.Time  `bson:"created_at" json:"createdAt"`
	UpdatedAt   *time.Time `bson:"updated_at,omitempty" json:"updatedAt,omitempty"`
}
