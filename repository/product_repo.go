package repository

import (
	"context"
	"regexp"
	"time"

	"frozo-api/apperrors"
	"frozo-api/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type ProductRepository struct {
	Collection *mongo.Collection
	Timeout    time.Duration
}

func NewProductRepository(db *mongo.Database) *ProductRepository {
	return &ProductRepository{Collection: db.Collection(ProductsCollection), Timeout: defaultOpTimeout}
}

func (r *ProductRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Product, error) {
	ctx, cancel := withTimeout(ctx, r.Timeout)
	defer cancel()

	var product models.Product
	if err := r.Collection.FindOne(ctx, bson.M{"_id": id}).Decode(&product); err != nil {
		return nil, translate(err, "product not found", "product conflict", "failed to load product")
	}
	return &product, nil
}

// List returns products matching filter, newest first.
func (r *ProductRepository) List(ctx context.Context, filter models.ProductFilter) ([]models.Product, error) {
	ctx, cancel := withTimeout(ctx, r.Timeout)
	defer cancel()

	cursor, err := r.Collection.Find(ctx, productQuery(filter), options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}))
	if err != nil {
		return nil, apperrors.Internal(err, "failed to list products")
	}
	defer cursor.Close(ctx)

	products := []models.Product{}
	if err := cursor.All(ctx, &products); err != nil {
		return nil, apperrors.Internal(err, "failed to decode products")
	}
	return products, nil
}

func productQuery(filter models.ProductFilter) bson.M {
	query := bson.M{}
	if filter.Category != "" {
		query["category"] = filter.Category
	}
	if filter.Featured != nil {
		query["featured"] = *filter.Featured
	}
	if filter.InStock != nil {
		query["in_stock"] = *filter.InStock
	}
	if filter.Search != "" {
		query["name"] = primitive.Regex{Pattern: regexp.QuoteMeta(filter.Search), Options: "i"}
	}
	return query
}

func (r *ProductRepository) Create(ctx context.Context, product *models.Product) error {
	ctx, cancel := withTimeout(ctx, r.Timeout)
	defer cancel()

	result, err := r.Collection.InsertOne(ctx, product)
	if err != nil {
		return translate(err, "product not found", "product already exists", "failed to create product")
	}
	if id, ok := result.InsertedID.(primitive.ObjectID); ok {
		product.ID = id
	}
	return nil
}

func (r *ProductRepository) Replace(ctx context.Context, product *models.Product) error {
	ctx, cancel := withTimeout(ctx, r.Timeout)
	defer cancel()

	result, err := r.Collection.ReplaceOne(ctx, bson.M{"_id": product.ID}, product)
	if err != nil {
		return translate(err, "product not found", "product already exists", "failed to update product")
	}
	if result.MatchedCount == 0 {
		return apperrors.NotFound("product not found")
	}
	return nil
}

func (r *ProductRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	ctx, cancel := withTimeout(ctx, r.Timeout)
	defer cancel()

	result, err := r.Collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return apperrors.Internal(err, "failed to delete product")
	}
	if result.DeletedCount == 0 {
		return apperrors.NotFound("product not found")
	}
	return nil
}
