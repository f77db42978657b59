package services

import (
	"context"

	"frozo-api/models"
	"frozo-api/utils"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CartStore persists whole cart aggregates. Save replaces the stored document; when
// checkVersion is set the write only succeeds if the stored version still matches cart.Version.
type CartStore interface {
	FindByUserID(ctx context.Context, userID string) (*models.Cart, error)
	Save(ctx context.Context, cart *models.Cart, checkVersion bool) error
}

// ProductCatalog resolves product snapshots for cart and wishlist lines.
type ProductCatalog interface {
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.Product, error)
}

type ProductStore interface {
	ProductCatalog
	List(ctx context.Context, filter models.ProductFilter) ([]models.Product, error)
	Create(ctx context.Context, product *models.Product) error
	Replace(ctx context.Context, product *models.Product) error
	Delete(ctx context.Context, id primitive.ObjectID) error
}

// CacheInvalidator drops cached product snapshots after catalog writes.
type CacheInvalidator interface {
	Invalidate(ctx context.Context, id primitive.ObjectID) error
}

type WishlistStore interface {
	FindByUserID(ctx context.Context, userID string) (*models.Wishlist, error)
	Save(ctx context.Context, wishlist *models.Wishlist) error
}

type AdminStore interface {
	FindByEmail(ctx context.Context, email string) (*models.Admin, error)
	Create(ctx context.Context, admin *models.Admin) error
	TouchLastLogin(ctx context.Context, id primitive.ObjectID) error
}

type ContactStore interface {
	Create(ctx context.Context, msg *models.ContactMessage) error
	List(ctx context.Context, unreadOnly bool) ([]models.ContactMessage, error)
	MarkRead(ctx context.Context, id primitive.ObjectID) (*models.ContactMessage, error)
}

type Mailer interface {
	Send(ctx context.Context, email utils.Email) error
}

type TokenIssuer interface {
	Generate(email, role string) (string, error)
}
