package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CartItem is one line of a cart. Name, Category, Weight, ImageURL and Price are
// copied from the product when the line is first added and are not re-synced.
type CartItem struct {
	ProductID primitive.ObjectID `bson:"product_id" json:"productId"`
	Name      string             `bson:"name" json:"name"`
	Category  string             `bson:"category" json:"category"`
	Weight    string             `bson:"weight" json:"weight"`
	ImageURL  string             `bson:"image_url" json:"imageUrl"`
	Price     float64            `bson:"price" json:"price"`
	Quantity  int                `bson:"quantity" json:"quantity"`
}

// Cart is a guest shopper's cart, keyed by the client-generated user id.
type Cart struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	UserID     string             `bson:"user_id" json:"userId"`
	Items      []CartItem         `bson:"items" json:"items"`
	TotalItems int                `bson:"total_items" json:"totalItems"`
	Subtotal   float64            `bson:"subtotal" json:"subtotal"`
	Shipping   float64            `bson:"shipping" json:"shipping"`
	Tax        float64            `bson:"tax" json:"tax"`
	Total      float64            `bson:"total" json:"total"`
	Version    int64              `bson:"version" json:"version"`
	CreatedAt  time.Time          `bson:"created_at" json:"createdAt"`
	UpdatedAt  time.Time          `bson:"updated_at" json:"updatedAt"`
}

// IndexOf returns the position of the line for productID, or -1.
func (c *Cart) IndexOf(productID primitive.ObjectID) int {
	for i, item := range c.Items {
		if item.ProductID == productID {
			return i
		}
	}
	return -1
}

// NewCartItem snapshots the product's current attributes into a cart line.
func NewCartItem(product *Product, quantity int) CartItem {
	return CartItem{
		ProductID: product.ID,
		Name:      product.Name,
		Category:  product.Category,
		Weight:    product.Weight,
		ImageURL:  product.ImageURL,
		Price:     product.Price,
		Quantity:  quantity,
	}
}
