package services

import (
	"context"
	"sync"

	"frozo-api/apperrors"
	"frozo-api/models"
	"frozo-api/utils"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type fakeCartStore struct {
	carts     map[string]models.Cart
	saves     int
	saveErr   error
	afterFind func()
}

func newFakeCartStore() *fakeCartStore {
	return &fakeCartStore{carts: map[string]models.Cart{}}
}

func (f *fakeCartStore) FindByUserID(ctx context.Context, userID string) (*models.Cart, error) {
	if hook := f.afterFind; hook != nil {
		f.afterFind = nil
		defer hook()
	}
	stored, ok := f.carts[userID]
	if !ok {
		return nil, apperrors.NotFound("cart not found")
	}
	cp := cloneCart(stored)
	return &cp, nil
}

func (f *fakeCartStore) Save(ctx context.Context, cart *models.Cart, checkVersion bool) error {
	if f.saveErr != nil {
		return f.saveErr
	}
	stored, ok := f.carts[cart.UserID]
	if checkVersion && ok && stored.Version != cart.Version {
		return apperrors.New(apperrors.CodeConflict, "cart was modified by another request")
	}
	if cart.ID.IsZero() {
		if ok {
			cart.ID = stored.ID
		} else {
			cart.ID = primitive.NewObjectID()
		}
	}
	cart.Version++
	f.carts[cart.UserID] = cloneCart(*cart)
	f.saves++
	return nil
}

func cloneCart(c models.Cart) models.Cart {
	if c.Items != nil {
		c.Items = append([]models.CartItem{}, c.Items...)
	}
	return c
}

type fakeCatalog struct {
	products map[primitive.ObjectID]*models.Product
	lookups  int
}

func newFakeCatalog(products ...*models.Product) *fakeCatalog {
	catalog := &fakeCatalog{products: map[primitive.ObjectID]*models.Product{}}
	for _, p := range products {
		if p.ID.IsZero() {
			p.ID = primitive.NewObjectID()
		}
		catalog.products[p.ID] = p
	}
	return catalog
}

func (f *fakeCatalog) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Product, error) {
	f.lookups++
	p, ok := f.products[id]
	if !ok {
		return nil, apperrors.NotFound("product not found")
	}
	cp := *p
	return &cp, nil
}

func (f *fakeCatalog) List(ctx context.Context, filter models.ProductFilter) ([]models.Product, error) {
	out := []models.Product{}
	for _, p := range f.products {
		if filter.Category != "" && p.Category != filter.Category {
			continue
		}
		out = append(out, *p)
	}
	return out, nil
}

func (f *fakeCatalog) Create(ctx context.Context, product *models.Product) error {
	product.ID = primitive.NewObjectID()
	cp := *product
	f.products[product.ID] = &cp
	return nil
}

func (f *fakeCatalog) Replace(ctx context.Context, product *models.Product) error {
	if _, ok := f.products[product.ID]; !ok {
		return apperrors.NotFound("product not found")
	}
	cp := *product
	f.products[product.ID] = &cp
	return nil
}

func (f *fakeCatalog) Delete(ctx context.Context, id primitive.ObjectID) error {
	if _, ok := f.products[id]; !ok {
		return apperrors.NotFound("product not found")
	}
	delete(f.products, id)
	return nil
}

type fakeWishlistStore struct {
	lists map[string]models.Wishlist
	saves int
}

func newFakeWishlistStore() *fakeWishlistStore {
	return &fakeWishlistStore{lists: map[string]models.Wishlist{}}
}

func (f *fakeWishlistStore) FindByUserID(ctx context.Context, userID string) (*models.Wishlist, error) {
	stored, ok := f.lists[userID]
	if !ok {
		return nil, apperrors.NotFound("wishlist not found")
	}
	stored.Items = append([]models.WishlistItem{}, stored.Items...)
	return &stored, nil
}

func (f *fakeWishlistStore) Save(ctx context.Context, wishlist *models.Wishlist) error {
	if wishlist.ID.IsZero() {
		wishlist.ID = primitive.NewObjectID()
	}
	cp := *wishlist
	cp.Items = append([]models.WishlistItem{}, wishlist.Items...)
	f.lists[wishlist.UserID] = cp
	f.saves++
	return nil
}

type fakeAdminStore struct {
	admins  map[string]models.Admin
	touched []primitive.ObjectID
}

func newFakeAdminStore() *fakeAdminStore {
	return &fakeAdminStore{admins: map[string]models.Admin{}}
}

func (f *fakeAdminStore) FindByEmail(ctx context.Context, email string) (*models.Admin, error) {
	a, ok := f.admins[email]
	if !ok {
		return nil, apperrors.NotFound("admin not found")
	}
	return &a, nil
}

func (f *fakeAdminStore) Create(ctx context.Context, admin *models.Admin) error {
	if _, ok := f.admins[admin.Email]; ok {
		return apperrors.New(apperrors.CodeConflict, "admin already exists")
	}
	admin.ID = primitive.NewObjectID()
	f.admins[admin.Email] = *admin
	return nil
}

func (f *fakeAdminStore) TouchLastLogin(ctx context.Context, id primitive.ObjectID) error {
	f.touched = append(f.touched, id)
	return nil
}

type fakeContactStore struct {
	messages []models.ContactMessage
}

func (f *fakeContactStore) Create(ctx context.Context, msg *models.ContactMessage) error {
	msg.ID = primitive.NewObjectID()
	f.messages = append(f.messages, *msg)
	return nil
}

func (f *fakeContactStore) List(ctx context.Context, unreadOnly bool) ([]models.ContactMessage, error) {
	out := []models.ContactMessage{}
	for _, m := range f.messages {
		if unreadOnly && m.Read {
			continue
		}
		out = append(out, m)
	}
	return out, nil
}

func (f *fakeContactStore) MarkRead(ctx context.Context, id primitive.ObjectID) (*models.ContactMessage, error) {
	for i := range f.messages {
		if f.messages[i].ID == id {
			f.messages[i].Read = true
			cp := f.messages[i]
			return &cp, nil
		}
	}
	return nil, apperrors.NotFound("message not found")
}

type recordingMailer struct {
	mu   sync.Mutex
	sent []utils.Email
	err  error
}

func (m *recordingMailer) Send(ctx context.Context, email utils.Email) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.sent = append(m.sent, email)
	return nil
}

type fakeInvalidator struct {
	ids []primitive.ObjectID
}

func (f *fakeInvalidator) Invalidate(ctx context.Context, id primitive.ObjectID) error {
	f.ids = append(f.ids, id)
	return nil
}
