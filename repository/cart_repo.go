package repository

import (
	"context"
	"time"

	"frozo-api/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// CartRepository stores one document per user in the carts collection.
type CartRepository struct {
	Collection *mongo.Collection
	Timeout    time.Duration
}

func NewCartRepository(db *mongo.Database) *CartRepository {
	return &CartRepository{Collection: db.Collection(CartsCollection), Timeout: defaultOpTimeout}
}

func (r *CartRepository) FindByUserID(ctx context.Context, userID string) (*models.Cart, error) {
	ctx, cancel := withTimeout(ctx, r.Timeout)
	defer cancel()

	var cart models.Cart
	err := r.Collection.FindOne(ctx, bson.M{"user_id": userID}).Decode(&cart)
	if err != nil {
		return nil, translate(err, "cart not found", "cart conflict", "failed to load cart")
	}
	return &cart, nil
}

// Save replaces the whole cart document, inserting it if the user has none. With
// checkVersion the filter also pins the version that was loaded; a stale write then
// misses, its upsert collides with the unique user_id index and comes back as a conflict.
func (r *CartRepository) Save(ctx context.Context, cart *models.Cart, checkVersion bool) error {
	ctx, cancel := withTimeout(ctx, r.Timeout)
	defer cancel()

	filter := bson.M{"user_id": cart.UserID}
	if checkVersion {
		filter["version"] = cart.Version
	}
	next := *cart
	next.Version = cart.Version + 1

	result, err := r.Collection.ReplaceOne(ctx, filter, next, options.Replace().SetUpsert(true))
	if err != nil {
		return translate(err, "cart not found", "cart was modified by another request", "failed to save cart")
	}
	if id, ok := result.UpsertedID.(primitive.ObjectID); ok {
		cart.ID = id
	}
	cart.Version = next.Version
	return nil
}
