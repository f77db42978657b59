package controllers

import (
	"context"
	"net/http"

	"frozo-api/logger"
	"frozo-api/models"
	"frozo-api/responses"
	"frozo-api/services"
	"frozo-api/validators"

	"github.com/gorilla/mux"
)

type CartService interface {
	GetOrCreate(ctx context.Context, userID string) (*models.Cart, error)
	AddItem(ctx context.Context, in services.AddItemInput) (*models.Cart, error)
	UpdateItemQuantity(ctx context.Context, userID, productID string, quantity int) (*models.Cart, error)
	RemoveItem(ctx context.Context, userID, productID string) (*models.Cart, error)
	Clear(ctx context.Context, userID string) (*models.Cart, error)
}

// CartController handles cart-related requests
type CartController struct {
	Carts CartService
	Log   *logger.Logger
}

func NewCartController(carts CartService, log *logger.Logger) *CartController {
	return &CartController{Carts: carts, Log: log}
}

type addToCartRequest struct {
	UserID    string `json:"userId" validate:"required"`
	ProductID string `json:"productId" validate:"required"`
	Quantity  *int   `json:"quantity"`
}

type updateQuantityRequest struct {
	Quantity *int `json:"quantity" validate:"required"`
}

// GetCart returns the cart for the path's userId, creating it on first access
func (cc *CartController) GetCart(w http.ResponseWriter, r *http.Request) {
	userID := mux.Vars(r)["userId"]
	ctx := cc.Log.WithUserID(r.Context(), userID)

	cart, err := cc.Carts.GetOrCreate(ctx, userID)
	if err != nil {
		responses.WriteError(ctx, cc.Log, w, err)
		return
	}
	responses.WriteSuccess(w, responses.Payload{"cart": cart})
}

// AddToCart adds a product to the user's cart. quantity defaults to 1.
func (cc *CartController) AddToCart(w http.ResponseWriter, r *http.Request) {
	var req addToCartRequest
	if err := validators.DecodeJSONBody(w, r, &req); err != nil {
		responses.WriteError(r.Context(), cc.Log, w, err)
		return
	}
	quantity := 1
	if req.Quantity != nil {
		quantity = *req.Quantity
	}
	ctx := cc.Log.WithUserID(r.Context(), req.UserID)

	cart, err := cc.Carts.AddItem(ctx, services.AddItemInput{
		UserID:    req.UserID,
		ProductID: req.ProductID,
		Quantity:  quantity,
	})
	if err != nil {
		responses.WriteError(ctx, cc.Log, w, err)
		return
	}
	responses.WriteSuccess(w, responses.Payload{"message": "Item added to cart", "cart": cart})
}

func (cc *CartController) UpdateItem(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	ctx := cc.Log.WithUserID(r.Context(), vars["userId"])

	var req updateQuantityRequest
	if err := validators.DecodeJSONBody(w, r, &req); err != nil {
		responses.WriteError(ctx, cc.Log, w, err)
		return
	}

	cart, err := cc.Carts.UpdateItemQuantity(ctx, vars["userId"], vars["productId"], *req.Quantity)
	if err != nil {
		responses.WriteError(ctx, cc.Log, w, err)
		return
	}
	responses.WriteSuccess(w, responses.Payload{"message": "Cart updated", "cart": cart})
}

func (cc *CartController) RemoveItem(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	ctx := cc.Log.WithUserID(r.Context(), vars["userId"])

	cart, err := cc.Carts.RemoveItem(ctx, vars["userId"], vars["productId"])
	if err != nil {
		responses.WriteError(ctx, cc.Log, w, err)
		return
	}
	responses.WriteSuccess(w, responses.Payload{"message": "Item removed from cart", "cart": cart})
}

func (cc *CartController) ClearCart(w http.ResponseWriter, r *http.Request) {
	userID := mux.Vars(r)["userId"]
	ctx := cc.Log.WithUserID(r.Context(), userID)

	cart, err := cc.Carts.Clear(ctx, userID)
	if err != nil {
		responses.WriteError(ctx, cc.Log, w, err)
		return
	}
	responses.WriteSuccess(w, responses.Payload{"message": "Cart cleared", "cart": cart})
}
