package repository

import (
	"context"
	"errors"
	"time"

	"frozo-api/apperrors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	CartsCollection     = "carts"
	ProductsCollection  = "products"
	WishlistsCollection = "wishlists"
	AdminsCollection    = "admins"
	ContactsCollection  = "contacts"

	defaultOpTimeout = 5 * time.Second
)

// withTimeout bounds a single store call.
func withTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if timeout <= 0 {
		timeout = defaultOpTimeout
	}
	return context.WithTimeout(ctx, timeout)
}

// translate maps driver errors onto the application taxonomy.
func translate(err error, notFound, conflict, op string) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, mongo.ErrNoDocuments):
		return apperrors.NotFound(notFound)
	case mongo.IsDuplicateKeyError(err):
		return apperrors.Wrap(apperrors.CodeConflict, err, conflict)
	default:
		return apperrors.Internal(err, op)
	}
}

// EnsureIndexes creates the unique indexes the stores rely on.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	ctx, cancel := withTimeout(ctx, 30*time.Second)
	defer cancel()

	unique := func(coll, field string) error {
		_, err := db.Collection(coll).Indexes().CreateOne(ctx, mongo.IndexModel{
			Keys:    bson.D{{Key: field, Value: 1}},
			Options: options.Index().SetUnique(true),
		})
		return err
	}
	if err := unique(CartsCollection, "user_id"); err != nil {
		return err
	}
	if err := unique(WishlistsCollection, "user_id"); err != nil {
		return err
	}
	if err := unique(AdminsCollection, "email"); err != nil {
		return err
	}
	_, err := db.Collection(ProductsCollection).Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "category", Value: 1}}},
		{Keys: bson.D{{Key: "featured", Value: 1}}},
	})
	return err
}
