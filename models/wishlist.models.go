package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type WishlistItem struct {
	ProductID primitive.ObjectID `bson:"product_id" json:"productId"`
	Name      string             `bson:"name" json:"name"`
	Category  string             `bson:"category" json:"category"`
	Weight    string             `bson:"weight" json:"weight"`
	ImageURL  string             `bson:"image_url" json:"imageUrl"`
	Price     float64            `bson:"price" json:"price"`
	AddedAt   time.Time          `bson:"added_at" json:"addedAt"`
}

// Wishlist holds distinct products a shopper saved for later.
type Wishlist struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	UserID     string             `bson:"user_id" json:"userId"`
	Items      []WishlistItem     `bson:"items" json:"items"`
	TotalItems int                `bson:"total_items" json:"totalItems"`
	CreatedAt  time.Time          `bson:"created_at" json:"createdAt"`
	UpdatedAt  time.Time          `bson:"updated_at" json:"updatedAt"`
}

func (w *Wishlist) IndexOf(productID primitive.ObjectID) int {
	for i, item := range w.Items {
		if item.ProductID == productID {
			return i
		}
	}
	return -1
}
