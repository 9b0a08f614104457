package models

import "time"

type OrderItem struct {
	ProductID string  `bson:"product_id" json:"productId"`
	Name      string  `bson:"name" json:"name"`
	Price     float64 `bson:"price" json:"price"`
	Quantity  int     `bson:"quantity" json:"quantity"`
	Image     string  `bson:"image" json:"image"`
}

type Order struct {
	ID            string      `bson:"_id,omitempty" json:"id"`
	UserID        string      `bson:"user_id" json:"userId"`
	Username      string      `bson:"-" json:"username,omitempty"` // joint côté admin
	Items         []OrderItem `bson:"items" json:"items"`
	TotalPrice    float64     `bson:"total_price" json:"totalPrice"`
	Address       string      `bson:"address" json:"address"`
	PostalCode    string      `bson:"postal_code" json:"postalCode"`
	PaymentMethod string      `bson:"payment_method" json:"paymentMethod"`
	Status        string      `bson:"status" json:"status"` // pending | shipped | cancelled
	CreatedAt     time.Time   `bson:"created_at" json:"createdAt"`
}

const (
	OrderStatusPending   = "pending"
	OrderStatusShipped   = "shipped"
	OrderStatusCancelled = "cancelled"
)
