package controllers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"frozo-api/apperrors"
	"frozo-api/logger"
	"frozo-api/middleware"
	"frozo-api/models"
	"frozo-api/services"
	"frozo-api/utils"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubCartService struct {
	lastAdd    services.AddItemInput
	lastUpdate int
	err        error
	cart       *models.Cart
}

func (s *stubCartService) result() (*models.Cart, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.cart, nil
}

func (s *stubCartService) GetOrCreate(ctx context.Context, userID string) (*models.Cart, error) {
	return s.result()
}

func (s *stubCartService) AddItem(ctx context.Context, in services.AddItemInput) (*models.Cart, error) {
	s.lastAdd = in
	return s.result()
}

func (s *stubCartService) UpdateItemQuantity(ctx context.Context, userID, productID string, quantity int) (*models.Cart, error) {
	s.lastUpdate = quantity
	return s.result()
}

func (s *stubCartService) RemoveItem(ctx context.Context, userID, productID string) (*models.Cart, error) {
	return s.result()
}

func (s *stubCartService) Clear(ctx context.Context, userID string) (*models.Cart, error) {
	return s.result()
}

func sampleCart() *models.Cart {
	return &models.Cart{
		UserID:     "guest_1",
		Items:      []models.CartItem{{Name: "Fish Sticks", Price: 19.99, Quantity: 1}},
		TotalItems: 1,
		Subtotal:   19.99,
		Shipping:   5.99,
		Tax:        1.60,
		Total:      27.58,
	}
}

func serve(h http.HandlerFunc, method, target, body string, vars map[string]string) *httptest.ResponseRecorder {
	var r *http.Request
	if body == "" {
		r = httptest.NewRequest(method, target, nil)
	} else {
		r = httptest.NewRequest(method, target, strings.NewReader(body))
		r.Header.Set("Content-Type", "application/json")
	}
	if vars != nil {
		r = mux.SetURLVars(r, vars)
	}
	w := httptest.NewRecorder()
	h(w, r)
	return w
}

func body(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}

func TestAddToCartDefaultsQuantity(t *testing.T) {
	stub := &stubCartService{cart: sampleCart()}
	cc := NewCartController(stub, logger.Nop())

	w := serve(cc.AddToCart, http.MethodPost, "/api/cart/add", `{"userId":"guest_1","productId":"65a1b2c3d4e5f60718293a4b"}`, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 1, stub.lastAdd.Quantity)

	out := body(t, w)
	assert.Equal(t, true, out["success"])
	assert.Equal(t, "Item added to cart", out["message"])
	cart := out["cart"].(map[string]any)
	assert.Equal(t, 27.58, cart["total"])
	assert.Equal(t, 5.99, cart["shipping"])
	assert.Equal(t, float64(1), cart["totalItems"])
}

func TestAddToCartPassesExplicitQuantity(t *testing.T) {
	stub := &stubCartService{cart: sampleCart()}
	cc := NewCartController(stub, logger.Nop())

	w := serve(cc.AddToCart, http.MethodPost, "/api/cart/add", `{"userId":"guest_1","productId":"p","quantity":0}`, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 0, stub.lastAdd.Quantity, "service owns the quantity floor")
}

func TestAddToCartMissingFields(t *testing.T) {
	cc := NewCartController(&stubCartService{cart: sampleCart()}, logger.Nop())

	w := serve(cc.AddToCart, http.MethodPost, "/api/cart/add", `{"quantity":1}`, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	out := body(t, w)
	assert.Equal(t, false, out["success"])
	assert.Equal(t, "productId is required; userId is required", out["error"])
}

func TestCartErrorsMapToStatus(t *testing.T) {
	tests := []struct {
		err    error
		status int
	}{
		{apperrors.Validation("quantity must be at least 1"), http.StatusBadRequest},
		{apperrors.NotFound("item not found in cart"), http.StatusNotFound},
		{apperrors.New(apperrors.CodeConflict, "cart was modified by another request"), http.StatusConflict},
		{errors.New("boom"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		cc := NewCartController(&stubCartService{err: tt.err}, logger.Nop())
		w := serve(cc.UpdateItem, http.MethodPut, "/api/cart/guest_1/item/p", `{"quantity":2}`, map[string]string{"userId": "guest_1", "productId": "p"})
		assert.Equal(t, tt.status, w.Code)
		assert.Equal(t, false, body(t, w)["success"])
	}
}

func TestUpdateItemRequiresQuantity(t *testing.T) {
	stub := &stubCartService{cart: sampleCart()}
	cc := NewCartController(stub, logger.Nop())
	vars := map[string]string{"userId": "guest_1", "productId": "p"}

	w := serve(cc.UpdateItem, http.MethodPut, "/api/cart/guest_1/item/p", `{}`, vars)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = serve(cc.UpdateItem, http.MethodPut, "/api/cart/guest_1/item/p", `{"quantity":3}`, vars)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 3, stub.lastUpdate)
	assert.Equal(t, "Cart updated", body(t, w)["message"])
}

func TestCartReadAndDeletes(t *testing.T) {
	cc := NewCartController(&stubCartService{cart: sampleCart()}, logger.Nop())
	vars := map[string]string{"userId": "guest_1", "productId": "p"}

	w := serve(cc.GetCart, http.MethodGet, "/api/cart/guest_1", "", vars)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Nil(t, body(t, w)["message"])

	w = serve(cc.RemoveItem, http.MethodDelete, "/api/cart/guest_1/item/p", "", vars)
	assert.Equal(t, "Item removed from cart", body(t, w)["message"])

	w = serve(cc.ClearCart, http.MethodDelete, "/api/cart/guest_1/clear", "", vars)
	assert.Equal(t, "Cart cleared", body(t, w)["message"])
}

type stubProductService struct {
	filter  models.ProductFilter
	created services.ProductInput
	err     error
}

func (s *stubProductService) List(ctx context.Context, filter models.ProductFilter) ([]models.Product, error) {
	s.filter = filter
	return []models.Product{{Name: "Peas"}, {Name: "Corn"}}, s.err
}

func (s *stubProductService) Get(ctx context.Context, id string) (*models.Product, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &models.Product{Name: "Peas"}, nil
}

func (s *stubProductService) Create(ctx context.Context, in services.ProductInput) (*models.Product, error) {
	s.created = in
	return &models.Product{Name: in.Name, Price: in.Price}, s.err
}

func (s *stubProductService) Update(ctx context.Context, id string, in services.ProductInput) (*models.Product, error) {
	return &models.Product{Name: in.Name}, s.err
}

func (s *stubProductService) Delete(ctx context.Context, id string) error {
	return s.err
}

func TestGetProductsFilters(t *testing.T) {
	stub := &stubProductService{}
	pc := NewProductController(stub, logger.Nop())

	w := serve(pc.GetProducts, http.MethodGet, "/api/products?category=seafood&featured=true", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "seafood", stub.filter.Category)
	require.NotNil(t, stub.filter.Featured)
	assert.True(t, *stub.filter.Featured)
	assert.Nil(t, stub.filter.InStock)
	assert.Equal(t, float64(2), body(t, w)["count"])

	w = serve(pc.GetProducts, http.MethodGet, "/api/products?featured=maybe", "", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCreateProduct(t *testing.T) {
	stub := &stubProductService{}
	pc := NewProductController(stub, logger.Nop())

	w := serve(pc.CreateProduct, http.MethodPost, "/api/products", `{"name":"Peas","price":2.49,"category":"vegetables"}`, nil)
	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "Peas", stub.created.Name)

	w = serve(pc.CreateProduct, http.MethodPost, "/api/products", `{"price":-1}`, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	stub.err = apperrors.NotFound("product not found")
	w = serve(pc.GetProductByID, http.MethodGet, "/api/products/x", "", map[string]string{"id": "x"})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

type stubWishlistService struct {
	err error
}

func (s *stubWishlistService) list() (*models.Wishlist, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &models.Wishlist{UserID: "guest_1", Items: []models.WishlistItem{}}, nil
}

func (s *stubWishlistService) Get(ctx context.Context, userID string) (*models.Wishlist, error) {
	return s.list()
}

func (s *stubWishlistService) Add(ctx context.Context, userID, productID string) (*models.Wishlist, error) {
	return s.list()
}

func (s *stubWishlistService) Remove(ctx context.Context, userID, productID string) (*models.Wishlist, error) {
	return s.list()
}

func (s *stubWishlistService) Clear(ctx context.Context, userID string) (*models.Wishlist, error) {
	return s.list()
}

func (s *stubWishlistService) MoveToCart(ctx context.Context, userID, productID string) (*models.Cart, *models.Wishlist, error) {
	list, err := s.list()
	if err != nil {
		return nil, nil, err
	}
	return sampleCart(), list, nil
}

func TestWishlistController(t *testing.T) {
	wc := NewWishlistController(&stubWishlistService{}, logger.Nop())
	vars := map[string]string{"userId": "guest_1", "productId": "p"}

	w := serve(wc.AddToWishlist, http.MethodPost, "/api/wishlist/add", `{"userId":"guest_1","productId":"p"}`, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Item added to wishlist", body(t, w)["message"])

	w = serve(wc.MoveToCart, http.MethodPost, "/api/wishlist/guest_1/item/p/move", "", vars)
	out := body(t, w)
	assert.NotNil(t, out["cart"])
	assert.NotNil(t, out["wishlist"])

	wc = NewWishlistController(&stubWishlistService{err: apperrors.NotFound("item not found in wishlist")}, logger.Nop())
	w = serve(wc.RemoveFromWishlist, http.MethodDelete, "/api/wishlist/guest_1/item/p", "", vars)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

type stubAdminService struct {
	loginErr error
}

func (s *stubAdminService) Login(ctx context.Context, in services.LoginInput) (string, *models.Admin, error) {
	if s.loginErr != nil {
		return "", nil, s.loginErr
	}
	return "signed", &models.Admin{Email: in.Email, Password: "$2a$10$hash", Role: models.RoleAdmin}, nil
}

func (s *stubAdminService) Register(ctx context.Context, in services.RegisterAdminInput) (*models.Admin, error) {
	return &models.Admin{Name: in.Name, Email: in.Email, Role: models.RoleAdmin}, nil
}

func (s *stubAdminService) Profile(ctx context.Context, email string) (*models.Admin, error) {
	return &models.Admin{Email: email, Role: models.RoleAdmin}, nil
}

func TestAdminLoginNeverLeaksPassword(t *testing.T) {
	ac := NewAdminController(&stubAdminService{}, logger.Nop())

	w := serve(ac.Login, http.MethodPost, "/api/admin/login", `{"email":"ops@frozo.local","password":"frozen-peas"}`, nil)
	require.Equal(t, http.StatusOK, w.Code)
	out := body(t, w)
	assert.Equal(t, "signed", out["token"])
	assert.NotContains(t, w.Body.String(), "$2a$10$hash")

	ac = NewAdminController(&stubAdminService{loginErr: apperrors.New(apperrors.CodeUnauthorized, "invalid email or password")}, logger.Nop())
	w = serve(ac.Login, http.MethodPost, "/api/admin/login", `{"email":"ops@frozo.local","password":"nope"}`, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "invalid email or password", body(t, w)["error"])
}

func TestAdminProfileUsesClaims(t *testing.T) {
	ac := NewAdminController(&stubAdminService{}, logger.Nop())

	w := serve(ac.GetProfile, http.MethodGet, "/api/admin/profile", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	r := httptest.NewRequest(http.MethodGet, "/api/admin/profile", nil)
	r = r.WithContext(middleware.WithClaims(r.Context(), &utils.Claims{Email: "ops@frozo.local", Role: models.RoleAdmin}))
	rec := httptest.NewRecorder()
	ac.GetProfile(rec, r)
	require.Equal(t, http.StatusOK, rec.Code)
	admin := body(t, rec)["admin"].(map[string]any)
	assert.Equal(t, "ops@frozo.local", admin["email"])
}

type stubContactService struct {
	unreadOnly bool
}

func (s *stubContactService) Submit(ctx context.Context, in services.ContactInput) (*models.ContactMessage, error) {
	return &models.ContactMessage{Name: in.Name}, nil
}

func (s *stubContactService) List(ctx context.Context, unreadOnly bool) ([]models.ContactMessage, error) {
	s.unreadOnly = unreadOnly
	return []models.ContactMessage{{Subject: "Hi"}}, nil
}

func (s *stubContactService) MarkRead(ctx context.Context, id string) (*models.ContactMessage, error) {
	return &models.ContactMessage{Read: true}, nil
}

func TestContactController(t *testing.T) {
	stub := &stubContactService{}
	cc := NewContactController(stub, logger.Nop())

	w := serve(cc.Submit, http.MethodPost, "/api/contact", `{"name":"Jane","email":"jane@example.com","subject":"Hi","message":"Hello"}`, nil)
	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, true, body(t, w)["success"])

	w = serve(cc.Submit, http.MethodPost, "/api/contact", `{"name":"Jane","email":"not-an-email","subject":"Hi","message":"Hello"}`, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "email must be a valid email", body(t, w)["error"])

	w = serve(cc.ListMessages, http.MethodGet, "/api/admin/contacts?unread=true", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, stub.unreadOnly)

	w = serve(cc.MarkRead, http.MethodPatch, "/api/admin/contacts/x/read", "", map[string]string{"id": "x"})
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestHealth(t *testing.T) {
	hc := NewHealthController(map[string]HealthCheck{
		"mongo": func(ctx context.Context) error { return nil },
	}, logger.Nop())
	w := serve(hc.Health, http.MethodGet, "/api/health", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "ok", body(t, w)["status"])

	hc.Checks["redis"] = func(ctx context.Context) error { return errors.New("refused") }
	w = serve(hc.Health, http.MethodGet, "/api/health", "", nil)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	out := body(t, w)
	assert.Equal(t, false, out["success"])
	deps := out["dependencies"].(map[string]any)
	assert.Equal(t, "up", deps["mongo"])
	assert.Equal(t, "down", deps["redis"])
}
