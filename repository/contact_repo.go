package repository

import (
	"context"
	"time"

	"frozo-api/apperrors"
	"frozo-api/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type ContactRepository struct {
	Collection *mongo.Collection
	Timeout    time.Duration
}

func NewContactRepository(db *mongo.Database) *ContactRepository {
	return &ContactRepository{Collection: db.Collection(ContactsCollection), Timeout: defaultOpTimeout}
}

func (r *ContactRepository) Create(ctx context.Context, msg *models.ContactMessage) error {
	ctx, cancel := withTimeout(ctx, r.Timeout)
	defer cancel()

	result, err := r.Collection.InsertOne(ctx, msg)
	if err != nil {
		return apperrors.Internal(err, "failed to save message")
	}
	if id, ok := result.InsertedID.(primitive.ObjectID); ok {
		msg.ID = id
	}
	return nil
}

// List returns messages newest first.
func (r *ContactRepository) List(ctx context.Context, unreadOnly bool) ([]models.ContactMessage, error) {
	ctx, cancel := withTimeout(ctx, r.Timeout)
	defer cancel()

	filter := bson.M{}
	if unreadOnly {
		filter["read"] = false
	}
	cursor, err := r.Collection.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}))
	if err != nil {
		return nil, apperrors.Internal(err, "failed to list messages")
	}
	defer cursor.Close(ctx)

	messages := []models.ContactMessage{}
	if err := cursor.All(ctx, &messages); err != nil {
		return nil, apperrors.Internal(err, "failed to decode messages")
	}
	return messages, nil
}

func (r *ContactRepository) MarkRead(ctx context.Context, id primitive.ObjectID) (*models.ContactMessage, error) {
	ctx, cancel := withTimeout(ctx, r.Timeout)
	defer cancel()

	var msg models.ContactMessage
	err := r.Collection.FindOneAndUpdate(ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{"read": true}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&msg)
	if err != nil {
		return nil, translate(err, "message not found", "message conflict", "failed to update message")
	}
	return &msg, nil
}
