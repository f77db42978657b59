package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Product represents an item in the frozen food catalog
type Product struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Name        string             `bson:"name" json:"name"`
	Description string             `bson:"description" json:"description"`
	Price       float64            `bson:"price" json:"price"`
	Category    string             `bson:"category" json:"category"`
	Weight      string             `bson:"weight" json:"weight"`
	ImageURL    string             `bson:"image_url" json:"imageUrl"`
	InStock     bool               `bson:"in_stock" json:"inStock"`
	Featured    bool               `bson:"featured" json:"featured"`
	CreatedAt   time.Time          `bson:"created_at" json:"createdAt"`
	UpdatedAt   time.Time          `bson:"updated_at" json:"updatedAt"`
}

// ProductFilter narrows catalog listings. Nil pointers mean "any".
type ProductFilter struct {
	Category string
	Featured *bool
	InStock  *bool
	Search   string
}
