package repository

import (
	"context"
	"time"

	"frozo-api/apperrors"
	"frozo-api/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type AdminRepository struct {
	Collection *mongo.Collection
	Timeout    time.Duration
}

func NewAdminRepository(db *mongo.Database) *AdminRepository {
	return &AdminRepository{Collection: db.Collection(AdminsCollection), Timeout: defaultOpTimeout}
}

func (r *AdminRepository) FindByEmail(ctx context.Context, email string) (*models.Admin, error) {
	ctx, cancel := withTimeout(ctx, r.Timeout)
	defer cancel()

	var admin models.Admin
	if err := r.Collection.FindOne(ctx, bson.M{"email": email}).Decode(&admin); err != nil {
		return nil, translate(err, "admin not found", "admin already exists", "failed to load admin")
	}
	return &admin, nil
}

func (r *AdminRepository) Create(ctx context.Context, admin *models.Admin) error {
	ctx, cancel := withTimeout(ctx, r.Timeout)
	defer cancel()

	result, err := r.Collection.InsertOne(ctx, admin)
	if err != nil {
		return translate(err, "admin not found", "admin already exists", "error creating admin")
	}
	if id, ok := result.InsertedID.(primitive.ObjectID); ok {
		admin.ID = id
	}
	return nil
}

func (r *AdminRepository) TouchLastLogin(ctx context.Context, id primitive.ObjectID) error {
	ctx, cancel := withTimeout(ctx, r.Timeout)
	defer cancel()

	_, err := r.Collection.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{"last_login": time.Now().UTC()}})
	if err != nil {
		return apperrors.Internal(err, "failed to record login")
	}
	return nil
}
