package entity

import (
	"time"
)

// Review is a buyer's rating of a product. One review per (product, user).
type Review struct {
	ID        string    `json:"id" firestore:"id"`
	ProductID string    `json:"product_id" firestore:"productId"`
	UserID    string    `json:"user_id" firestore:"userId"`
	Rating    int       `json:"rating" firestore:"rating"` // 1-5
	Comment   string    `json:"comment" firestore:"comment"`
	CreatedAt time.Time `json:"created_at" firestore:"createdAt"`
	UpdatedAt time.Time `json:"updated_at" firestore:"updatedAt"`
}
