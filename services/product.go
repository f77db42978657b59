package services

import (
	"context"
	"strings"
	"time"

	"frozo-api/apperrors"
	"frozo-api/models"

	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ProductInput is the writable part of a catalog product.
type ProductInput struct {
	Name        string  `json:"name" validate:"required,max=200"`
	Description string  `json:"description" validate:"max=4000"`
	Price       float64 `json:"price" validate:"gte=0"`
	Category    string  `json:"category" validate:"required,max=100"`
	Weight      string  `json:"weight" validate:"max=50"`
	ImageURL    string  `json:"imageUrl" validate:"omitempty,url"`
	InStock     *bool   `json:"inStock"`
	Featured    bool    `json:"featured"`
}

type ProductService struct {
	products ProductStore
	cache    CacheInvalidator
	now      func() time.Time
}

// NewProductService serves the catalog from products and drops cached snapshots after
// writes. cache may be nil.
func NewProductService(products ProductStore, cache CacheInvalidator) *ProductService {
	return &ProductService{
		products: products,
		cache:    cache,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

func (s *ProductService) List(ctx context.Context, filter models.ProductFilter) ([]models.Product, error) {
	filter.Category = strings.TrimSpace(filter.Category)
	filter.Search = strings.TrimSpace(filter.Search)
	products, err := s.products.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	if products == nil {
		products = []models.Product{}
	}
	return products, nil
}

func (s *ProductService) Get(ctx context.Context, id string) (*models.Product, error) {
	oid, err := parseProductID(id)
	if err != nil {
		return nil, err
	}
	return s.products.GetByID(ctx, oid)
}

func (s *ProductService) Create(ctx context.Context, in ProductInput) (*models.Product, error) {
	if err := validateProductInput(in); err != nil {
		return nil, err
	}
	now := s.now()
	product := &models.Product{CreatedAt: now}
	applyProductInput(product, in)
	product.UpdatedAt = now

	if err := s.products.Create(ctx, product); err != nil {
		return nil, err
	}
	return product, nil
}

// Update replaces the product's writable fields. Existing cart and wishlist lines keep
// their snapshot of the old values.
func (s *ProductService) Update(ctx context.Context, id string, in ProductInput) (*models.Product, error) {
	oid, err := parseProductID(id)
	if err != nil {
		return nil, err
	}
	if err := validateProductInput(in); err != nil {
		return nil, err
	}
	product, err := s.products.GetByID(ctx, oid)
	if err != nil {
		return nil, err
	}
	applyProductInput(product, in)
	product.UpdatedAt = s.now()

	if err := s.products.Replace(ctx, product); err != nil {
		return nil, err
	}
	s.invalidate(ctx, oid)
	return product, nil
}

func (s *ProductService) Delete(ctx context.Context, id string) error {
	oid, err := parseProductID(id)
	if err != nil {
		return err
	}
	if err := s.products.Delete(ctx, oid); err != nil {
		return err
	}
	s.invalidate(ctx, oid)
	return nil
}

// invalidate is best effort; a stale entry expires with the cache TTL.
func (s *ProductService) invalidate(ctx context.Context, id primitive.ObjectID) {
	if s.cache == nil {
		return
	}
	_ = s.cache.Invalidate(ctx, id)
}

func parseProductID(id string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(strings.TrimSpace(id))
	if err != nil {
		return primitive.NilObjectID, apperrors.NotFound("product not found")
	}
	return oid, nil
}

func validateProductInput(in ProductInput) error {
	switch {
	case strings.TrimSpace(in.Name) == "":
		return apperrors.Validation("name is required")
	case strings.TrimSpace(in.Category) == "":
		return apperrors.Validation("category is required")
	case in.Price < 0:
		return apperrors.Validation("price must not be negative")
	}
	return nil
}

func applyProductInput(product *models.Product, in ProductInput) {
	product.Name = strings.TrimSpace(in.Name)
	product.Description = strings.TrimSpace(in.Description)
	product.Price = decimal.NewFromFloat(in.Price).Round(2).InexactFloat64()
	product.Category = strings.TrimSpace(in.Category)
	product.Weight = strings.TrimSpace(in.Weight)
	product.ImageURL = strings.TrimSpace(in.ImageURL)
	product.Featured = in.Featured
	product.InStock = true
	if in.InStock != nil {
		product.InStock = *in.InStock
	}
}
