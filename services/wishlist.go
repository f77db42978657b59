package services

import (
	"context"
	"strings"
	"time"

	"frozo-api/apperrors"
	"frozo-api/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CartAdder is the slice of CartService the wishlist needs for move-to-cart.
type CartAdder interface {
	AddItem(ctx context.Context, in AddItemInput) (*models.Cart, error)
}

type WishlistService struct {
	lists   WishlistStore
	catalog ProductCatalog
	carts   CartAdder
	now     func() time.Time
}

func NewWishlistService(lists WishlistStore, catalog ProductCatalog, carts CartAdder) *WishlistService {
	return &WishlistService{
		lists:   lists,
		catalog: catalog,
		carts:   carts,
		now:     func() time.Time { return time.Now().UTC() },
	}
}

// Get returns the user's wishlist, creating an empty one on first access.
func (s *WishlistService) Get(ctx context.Context, userID string) (*models.Wishlist, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return nil, apperrors.Validation("userId is required")
	}
	list, err := s.lists.FindByUserID(ctx, userID)
	switch {
	case err == nil:
		ensureWishlistItems(list)
		return list, nil
	case !apperrors.IsCode(err, apperrors.CodeNotFound):
		return nil, err
	}

	list = s.newWishlist(userID)
	if err := s.save(ctx, list); err != nil {
		return nil, err
	}
	return list, nil
}

// Add snapshots the product into the wishlist. Adding a product that is already
// present leaves the wishlist as it is.
func (s *WishlistService) Add(ctx context.Context, userID, productID string) (*models.Wishlist, error) {
	userID = strings.TrimSpace(userID)
	productID = strings.TrimSpace(productID)
	switch {
	case userID == "":
		return nil, apperrors.Validation("userId is required")
	case productID == "":
		return nil, apperrors.Validation("productId is required")
	}

	oid, err := primitive.ObjectIDFromHex(productID)
	if err != nil {
		return nil, apperrors.NotFound("product not found")
	}
	product, err := s.catalog.GetByID(ctx, oid)
	if err != nil {
		return nil, err
	}

	list, err := s.lists.FindByUserID(ctx, userID)
	switch {
	case apperrors.IsCode(err, apperrors.CodeNotFound):
		list = s.newWishlist(userID)
	case err != nil:
		return nil, err
	}
	ensureWishlistItems(list)

	if list.IndexOf(oid) >= 0 {
		return list, nil
	}
	list.Items = append(list.Items, models.WishlistItem{
		ProductID: product.ID,
		Name:      product.Name,
		Category:  product.Category,
		Weight:    product.Weight,
		ImageURL:  product.ImageURL,
		Price:     product.Price,
		AddedAt:   s.now(),
	})

	if err := s.save(ctx, list); err != nil {
		return nil, err
	}
	return list, nil
}

func (s *WishlistService) Remove(ctx context.Context, userID, productID string) (*models.Wishlist, error) {
	list, idx, err := s.loadLine(ctx, userID, productID)
	if err != nil {
		return nil, err
	}
	list.Items = append(list.Items[:idx:idx], list.Items[idx+1:]...)

	if err := s.save(ctx, list); err != nil {
		return nil, err
	}
	return list, nil
}

func (s *WishlistService) Clear(ctx context.Context, userID string) (*models.Wishlist, error) {
	list, err := s.loadExisting(ctx, userID)
	if err != nil {
		return nil, err
	}
	list.Items = []models.WishlistItem{}

	if err := s.save(ctx, list); err != nil {
		return nil, err
	}
	return list, nil
}

// MoveToCart adds one unit of a wishlisted product to the cart, then drops it from
// the wishlist. If the cart write fails the wishlist is left untouched.
func (s *WishlistService) MoveToCart(ctx context.Context, userID, productID string) (*models.Cart, *models.Wishlist, error) {
	if _, _, err := s.loadLine(ctx, userID, productID); err != nil {
		return nil, nil, err
	}

	cart, err := s.carts.AddItem(ctx, AddItemInput{UserID: userID, ProductID: productID, Quantity: 1})
	if err != nil {
		return nil, nil, err
	}

	list, err := s.Remove(ctx, userID, productID)
	if err != nil {
		return nil, nil, err
	}
	return cart, list, nil
}

func (s *WishlistService) loadExisting(ctx context.Context, userID string) (*models.Wishlist, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return nil, apperrors.Validation("userId is required")
	}
	list, err := s.lists.FindByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	ensureWishlistItems(list)
	return list, nil
}

func (s *WishlistService) loadLine(ctx context.Context, userID, productID string) (*models.Wishlist, int, error) {
	list, err := s.loadExisting(ctx, userID)
	if err != nil {
		return nil, -1, err
	}
	oid, err := primitive.ObjectIDFromHex(strings.TrimSpace(productID))
	if err != nil {
		return nil, -1, apperrors.NotFound("item not found in wishlist")
	}
	idx := list.IndexOf(oid)
	if idx < 0 {
		return nil, -1, apperrors.NotFound("item not found in wishlist")
	}
	return list, idx, nil
}

func (s *WishlistService) save(ctx context.Context, list *models.Wishlist) error {
	list.TotalItems = len(list.Items)
	list.UpdatedAt = s.now()
	return s.lists.Save(ctx, list)
}

func (s *WishlistService) newWishlist(userID string) *models.Wishlist {
	now := s.now()
	return &models.Wishlist{
		UserID:    userID,
		Items:     []models.WishlistItem{},
		CreatedAt: now,
	}
}

func ensureWishlistItems(list *models.Wishlist) {
	if list.Items == nil {
		list.Items = []models.WishlistItem{}
	}
}
