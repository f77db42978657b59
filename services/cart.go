package services

import (
	"context"
	"strings"
	"time"

	"frozo-api/apperrors"
	"frozo-api/metrics"
	"frozo-api/models"
	"frozo-api/pricing"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CartService owns every mutation of a cart's items. Each mutation is a read-modify-write
// of the whole cart followed by a pricing recompute and a full-document save, so
// concurrent writers for the same user are last-write-wins unless optimistic locking is on.
type CartService struct {
	carts      CartStore
	catalog    ProductCatalog
	policy     pricing.Policy
	optimistic bool
	metrics    *metrics.Metrics
	now        func() time.Time
}

type CartOption func(*CartService)

// WithOptimisticLocking makes saves fail with CodeConflict when the stored cart changed
// since it was loaded.
func WithOptimisticLocking(enabled bool) CartOption {
	return func(s *CartService) { s.optimistic = enabled }
}

func WithCartMetrics(m *metrics.Metrics) CartOption {
	return func(s *CartService) { s.metrics = m }
}

func WithCartClock(now func() time.Time) CartOption {
	return func(s *CartService) {
		if now != nil {
			s.now = now
		}
	}
}

func NewCartService(carts CartStore, catalog ProductCatalog, policy pricing.Policy, opts ...CartOption) *CartService {
	svc := &CartService{
		carts:   carts,
		catalog: catalog,
		policy:  policy,
		now:     func() time.Time { return time.Now().UTC() },
	}
	for _, opt := range opts {
		if opt != nil {
			opt(svc)
		}
	}
	return svc
}

type AddItemInput struct {
	UserID    string
	ProductID string
	Quantity  int
}

// GetOrCreate returns the user's cart, creating and persisting an empty one if needed.
func (s *CartService) GetOrCreate(ctx context.Context, userID string) (*models.Cart, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return nil, apperrors.Validation("userId is required")
	}

	cart, err := s.carts.FindByUserID(ctx, userID)
	if err == nil {
		ensureCartItems(cart)
		return cart, nil
	}
	if !apperrors.IsCode(err, apperrors.CodeNotFound) {
		return nil, err
	}

	// Insert only: version 0 never matches a stored cart, so a concurrent create
	// surfaces as a conflict instead of being overwritten. Not counted as a mutation.
	cart = s.newCart(userID)
	if err := s.persist(ctx, cart, true); err != nil {
		if apperrors.IsCode(err, apperrors.CodeConflict) {
			// another request created it first
			existing, err := s.carts.FindByUserID(ctx, userID)
			if err != nil {
				return nil, err
			}
			ensureCartItems(existing)
			return existing, nil
		}
		return nil, err
	}
	return cart, nil
}

// AddItem merges quantity into an existing line for the product or appends a new
// snapshot line.
func (s *CartService) AddItem(ctx context.Context, in AddItemInput) (*models.Cart, error) {
	userID := strings.TrimSpace(in.UserID)
	productID := strings.TrimSpace(in.ProductID)
	switch {
	case userID == "":
		return nil, apperrors.Validation("userId is required")
	case productID == "":
		return nil, apperrors.Validation("productId is required")
	case in.Quantity < 1:
		return nil, apperrors.Validation("quantity must be at least 1")
	}

	oid, err := primitive.ObjectIDFromHex(productID)
	if err != nil {
		return nil, apperrors.NotFound("product not found")
	}
	product, err := s.catalog.GetByID(ctx, oid)
	if err != nil {
		return nil, err
	}

	cart, err := s.carts.FindByUserID(ctx, userID)
	switch {
	case apperrors.IsCode(err, apperrors.CodeNotFound):
		cart = s.newCart(userID)
	case err != nil:
		return nil, err
	}
	ensureCartItems(cart)

	if idx := cart.IndexOf(oid); idx >= 0 {
		cart.Items[idx].Quantity += in.Quantity
	} else {
		cart.Items = append(cart.Items, models.NewCartItem(product, in.Quantity))
	}

	return s.save(ctx, cart, "add")
}

// UpdateItemQuantity sets an existing line to an absolute quantity.
func (s *CartService) UpdateItemQuantity(ctx context.Context, userID, productID string, quantity int) (*models.Cart, error) {
	if quantity < 1 {
		return nil, apperrors.Validation("quantity must be at least 1")
	}

	cart, idx, err := s.loadLine(ctx, userID, productID)
	if err != nil {
		return nil, err
	}
	cart.Items[idx].Quantity = quantity

	return s.save(ctx, cart, "update")
}

func (s *CartService) RemoveItem(ctx context.Context, userID, productID string) (*models.Cart, error) {
	cart, idx, err := s.loadLine(ctx, userID, productID)
	if err != nil {
		return nil, err
	}

	kept := make([]models.CartItem, 0, len(cart.Items)-1)
	kept = append(kept, cart.Items[:idx]...)
	kept = append(kept, cart.Items[idx+1:]...)
	cart.Items = kept

	return s.save(ctx, cart, "remove")
}

// Clear empties the cart. The cart document itself is kept.
func (s *CartService) Clear(ctx context.Context, userID string) (*models.Cart, error) {
	cart, err := s.loadExisting(ctx, userID)
	if err != nil {
		return nil, err
	}
	cart.Items = []models.CartItem{}

	return s.save(ctx, cart, "clear")
}

func (s *CartService) loadExisting(ctx context.Context, userID string) (*models.Cart, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return nil, apperrors.Validation("userId is required")
	}
	cart, err := s.carts.FindByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	ensureCartItems(cart)
	return cart, nil
}

func (s *CartService) loadLine(ctx context.Context, userID, productID string) (*models.Cart, int, error) {
	cart, err := s.loadExisting(ctx, userID)
	if err != nil {
		return nil, -1, err
	}
	oid, err := primitive.ObjectIDFromHex(strings.TrimSpace(productID))
	if err != nil {
		return nil, -1, apperrors.NotFound("item not found in cart")
	}
	idx := cart.IndexOf(oid)
	if idx < 0 {
		return nil, -1, apperrors.NotFound("item not found in cart")
	}
	return cart, idx, nil
}

func (s *CartService) save(ctx context.Context, cart *models.Cart, op string) (*models.Cart, error) {
	err := s.persist(ctx, cart, s.optimistic)
	s.metrics.CartMutation(op, err)
	if err != nil {
		return nil, err
	}
	return cart, nil
}

func (s *CartService) persist(ctx context.Context, cart *models.Cart, checkVersion bool) error {
	s.policy.Apply(cart)
	cart.UpdatedAt = s.now()
	return s.carts.Save(ctx, cart, checkVersion)
}

func (s *CartService) newCart(userID string) *models.Cart {
	return &models.Cart{
		UserID:    userID,
		Items:     []models.CartItem{},
		CreatedAt: s.now(),
	}
}

func ensureCartItems(cart *models.Cart) {
	if cart.Items == nil {
		cart.Items = []models.CartItem{}
	}
}
