package routes

import (
	"net/http"

	"frozo-api/controllers"
	"frozo-api/logger"
	"frozo-api/metrics"
	"frozo-api/middleware"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Handlers groups the controllers and cross-cutting dependencies the router mounts.
type Handlers struct {
	Cart     *controllers.CartController
	Product  *controllers.ProductController
	Wishlist *controllers.WishlistController
	Admin    *controllers.AdminController
	Contact  *controllers.ContactController
	Health   *controllers.HealthController

	Tokens      middleware.TokenParser
	Log         *logger.Logger
	Metrics     *metrics.Metrics
	Gatherer    prometheus.Gatherer
	CORSOrigins []string
}

// NewRouter builds the API router with the standard middleware chain applied.
func NewRouter(h Handlers) http.Handler {
	router := mux.NewRouter()
	router.Use(middleware.Recoverer(h.Log), middleware.RequestID(h.Log), middleware.Logging(h.Log, h.Metrics))
	RegisterRoutes(router, h)
	router.NotFoundHandler = http.HandlerFunc(notFound)
	return middleware.CORS(h.CORSOrigins)(router)
}

// RegisterRoutes sets up all the routes for the application
func RegisterRoutes(router *mux.Router, h Handlers) {
	if h.Gatherer != nil {
		router.Handle("/metrics", promhttp.HandlerFor(h.Gatherer, promhttp.HandlerOpts{})).Methods(http.MethodGet)
	}

	api := router.PathPrefix("/api").Subrouter()
	api.HandleFunc("/health", h.Health.Health).Methods(http.MethodGet)

	// Cart routes
	api.HandleFunc("/cart/add", h.Cart.AddToCart).Methods(http.MethodPost)
	api.HandleFunc("/cart/{userId}", h.Cart.GetCart).Methods(http.MethodGet)
	api.HandleFunc("/cart/{userId}/item/{productId}", h.Cart.UpdateItem).Methods(http.MethodPut)
	api.HandleFunc("/cart/{userId}/item/{productId}", h.Cart.RemoveItem).Methods(http.MethodDelete)
	api.HandleFunc("/cart/{userId}/clear", h.Cart.ClearCart).Methods(http.MethodDelete)

	// Wishlist routes
	api.HandleFunc("/wishlist/add", h.Wishlist.AddToWishlist).Methods(http.MethodPost)
	api.HandleFunc("/wishlist/{userId}", h.Wishlist.GetWishlist).Methods(http.MethodGet)
	api.HandleFunc("/wishlist/{userId}/item/{productId}", h.Wishlist.RemoveFromWishlist).Methods(http.MethodDelete)
	api.HandleFunc("/wishlist/{userId}/item/{productId}/move", h.Wishlist.MoveToCart).Methods(http.MethodPost)
	api.HandleFunc("/wishlist/{userId}/clear", h.Wishlist.ClearWishlist).Methods(http.MethodDelete)

	// Product routes
	api.HandleFunc("/products", h.Product.GetProducts).Methods(http.MethodGet)
	api.HandleFunc("/products/{id}", h.Product.GetProductByID).Methods(http.MethodGet)

	// Public contact form and admin login
	api.HandleFunc("/contact", h.Contact.Submit).Methods(http.MethodPost)
	api.HandleFunc("/admin/login", h.Admin.Login).Methods(http.MethodPost)

	// Admin routes
	requireAdmin := []mux.MiddlewareFunc{middleware.Auth(h.Tokens, h.Log), middleware.AdminOnly(h.Log)}

	adminProducts := api.PathPrefix("/products").Subrouter()
	adminProducts.Use(requireAdmin...)
	adminProducts.HandleFunc("", h.Product.CreateProduct).Methods(http.MethodPost)
	adminProducts.HandleFunc("/{id}", h.Product.UpdateProduct).Methods(http.MethodPut)
	adminProducts.HandleFunc("/{id}", h.Product.DeleteProduct).Methods(http.MethodDelete)

	admin := api.PathPrefix("/admin").Subrouter()
	admin.Use(requireAdmin...)
	admin.HandleFunc("/profile", h.Admin.GetProfile).Methods(http.MethodGet)
	admin.HandleFunc("/register", h.Admin.Register).Methods(http.MethodPost)
	admin.HandleFunc("/contacts", h.Contact.ListMessages).Methods(http.MethodGet)
	admin.HandleFunc("/contacts/{id}/read", h.Contact.MarkRead).Methods(http.MethodPatch)
}

func notFound(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusNotFound)
	_, _ = w.Write([]byte(`{"success":false,"error":"route not found"}`))
}
