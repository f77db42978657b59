package controllers

import (
	"context"
	"net/http"

	"frozo-api/logger"
	"frozo-api/models"
	"frozo-api/responses"
	"frozo-api/validators"

	"github.com/gorilla/mux"
)

type WishlistService interface {
	Get(ctx context.Context, userID string) (*models.Wishlist, error)
	Add(ctx context.Context, userID, productID string) (*models.Wishlist, error)
	Remove(ctx context.Context, userID, productID string) (*models.Wishlist, error)
	Clear(ctx context.Context, userID string) (*models.Wishlist, error)
	MoveToCart(ctx context.Context, userID, productID string) (*models.Cart, *models.Wishlist, error)
}

type WishlistController struct {
	Wishlists WishlistService
	Log       *logger.Logger
}

func NewWishlistController(wishlists WishlistService, log *logger.Logger) *WishlistController {
	return &WishlistController{Wishlists: wishlists, Log: log}
}

type addToWishlistRequest struct {
	UserID    string `json:"userId" validate:"required"`
	ProductID string `json:"productId" validate:"required"`
}

func (wc *WishlistController) GetWishlist(w http.ResponseWriter, r *http.Request) {
	userID := mux.Vars(r)["userId"]
	ctx := wc.Log.WithUserID(r.Context(), userID)

	list, err := wc.Wishlists.Get(ctx, userID)
	if err != nil {
		responses.WriteError(ctx, wc.Log, w, err)
		return
	}
	responses.WriteSuccess(w, responses.Payload{"wishlist": list})
}

func (wc *WishlistController) AddToWishlist(w http.ResponseWriter, r *http.Request) {
	var req addToWishlistRequest
	if err := validators.DecodeJSONBody(w, r, &req); err != nil {
		responses.WriteError(r.Context(), wc.Log, w, err)
		return
	}
	ctx := wc.Log.WithUserID(r.Context(), req.UserID)

	list, err := wc.Wishlists.Add(ctx, req.UserID, req.ProductID)
	if err != nil {
		responses.WriteError(ctx, wc.Log, w, err)
		return
	}
	responses.WriteSuccess(w, responses.Payload{"message": "Item added to wishlist", "wishlist": list})
}

func (wc *WishlistController) RemoveFromWishlist(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	ctx := wc.Log.WithUserID(r.Context(), vars["userId"])

	list, err := wc.Wishlists.Remove(ctx, vars["userId"], vars["productId"])
	if err != nil {
		responses.WriteError(ctx, wc.Log, w, err)
		return
	}
	responses.WriteSuccess(w, responses.Payload{"message": "Item removed from wishlist", "wishlist": list})
}

func (wc *WishlistController) ClearWishlist(w http.ResponseWriter, r *http.Request) {
	userID := mux.Vars(r)["userId"]
	ctx := wc.Log.WithUserID(r.Context(), userID)

	list, err := wc.Wishlists.Clear(ctx, userID)
	if err != nil {
		responses.WriteError(ctx, wc.Log, w, err)
		return
	}
	responses.WriteSuccess(w, responses.Payload{"message": "Wishlist cleared", "wishlist": list})
}

func (wc *WishlistController) MoveToCart(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	ctx := wc.Log.WithUserID(r.Context(), vars["userId"])

	cart, list, err := wc.Wishlists.MoveToCart(ctx, vars["userId"], vars["productId"])
	if err != nil {
		responses.WriteError(ctx, wc.Log, w, err)
		return
	}
	responses.WriteSuccess(w, responses.Payload{"message": "Item moved to cart", "cart": cart, "wishlist": list})
}
