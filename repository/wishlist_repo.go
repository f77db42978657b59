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

type WishlistRepository struct {
	Collection *mongo.Collection
	Timeout    time.Duration
}

func NewWishlistRepository(db *mongo.Database) *WishlistRepository {
	return &WishlistRepository{Collection: db.Collection(WishlistsCollection), Timeout: defaultOpTimeout}
}

func (r *WishlistRepository) FindByUserID(ctx context.Context, userID string) (*models.Wishlist, error) {
	ctx, cancel := withTimeout(ctx, r.Timeout)
	defer cancel()

	var list models.Wishlist
	if err := r.Collection.FindOne(ctx, bson.M{"user_id": userID}).Decode(&list); err != nil {
		return nil, translate(err, "wishlist not found", "wishlist conflict", "failed to load wishlist")
	}
	return &list, nil
}

// Save replaces the wishlist document, last write wins.
func (r *WishlistRepository) Save(ctx context.Context, list *models.Wishlist) error {
	ctx, cancel := withTimeout(ctx, r.Timeout)
	defer cancel()

	result, err := r.Collection.ReplaceOne(ctx, bson.M{"user_id": list.UserID}, list, options.Replace().SetUpsert(true))
	if err != nil {
		return translate(err, "wishlist not found", "wishlist was modified by another request", "failed to save wishlist")
	}
	if id, ok := result.UpsertedID.(primitive.ObjectID); ok {
		list.ID = id
	}
	return nil
}
