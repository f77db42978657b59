package cartclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"frozo-api/logger"
)

const maxResponseBytes = 1 << 20

// APIError is a non-2xx answer from the cart API.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("cart api: %d %s", e.Status, e.Message)
}

// Client keeps a shopper's cart in sync with the cart API. Every call carries the
// identity it was built with, and the last successfully fetched cart survives failed
// calls.
type Client struct {
	baseURL  string
	http     *http.Client
	identity Identity
	log      *logger.Logger

	mu      sync.RWMutex
	last    Cart
	lastErr error
}

type Option func(*Client)

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.http = hc
		}
	}
}

func WithLogger(log *logger.Logger) Option {
	return func(c *Client) { c.log = log }
}

// New builds a client for baseURL, the API root including the /api prefix.
func New(baseURL string, identity Identity, opts ...Option) (*Client, error) {
	if strings.TrimSpace(identity.UserID) == "" {
		return nil, ErrNoIdentity
	}
	if _, err := url.ParseRequestURI(baseURL); err != nil {
		return nil, fmt.Errorf("cart api base url: %w", err)
	}
	c := &Client{
		baseURL:  strings.TrimRight(baseURL, "/"),
		http:     &http.Client{Timeout: 10 * time.Second},
		identity: identity,
		last:     Empty(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

func (c *Client) Identity() Identity { return c.identity }

// Cart returns the last known-good snapshot.
func (c *Client) Cart() Cart {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.last
}

// LastError returns the error of the most recent call, or nil if it succeeded.
func (c *Client) LastError() error {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.lastErr
}

func (c *Client) IsInCart(productID any) bool { return c.Cart().IsInCart(productID) }

func (c *Client) ItemQuantity(productID any) int { return c.Cart().ItemQuantity(productID) }

func (c *Client) Refresh(ctx context.Context) (Cart, error) {
	return c.do(ctx, "refresh", http.MethodGet, c.cartPath(), nil)
}

// Add puts quantity units of the product in the cart. A zero quantity means one;
// any other value is sent as given and the API rejects values below 1.
func (c *Client) Add(ctx context.Context, productID any, quantity int) (Cart, error) {
	id := CanonicalID(productID)
	if id == "" {
		return c.fail("add", errors.New("product id is required"))
	}
	if quantity == 0 {
		quantity = 1
	}
	body := map[string]any{"userId": c.identity.UserID, "productId": id, "quantity": quantity}
	return c.do(ctx, "add", http.MethodPost, "/cart/add", body)
}

func (c *Client) UpdateQuantity(ctx context.Context, productID any, quantity int) (Cart, error) {
	id := CanonicalID(productID)
	if id == "" {
		return c.fail("update", errors.New("product id is required"))
	}
	return c.do(ctx, "update", http.MethodPut, c.itemPath(id), map[string]any{"quantity": quantity})
}

func (c *Client) Remove(ctx context.Context, productID any) (Cart, error) {
	id := CanonicalID(productID)
	if id == "" {
		return c.fail("remove", errors.New("product id is required"))
	}
	return c.do(ctx, "remove", http.MethodDelete, c.itemPath(id), nil)
}

func (c *Client) Clear(ctx context.Context) (Cart, error) {
	return c.do(ctx, "clear", http.MethodDelete, c.cartPath()+"/clear", nil)
}

func (c *Client) cartPath() string {
	return "/cart/" + url.PathEscape(c.identity.UserID)
}

func (c *Client) itemPath(productID string) string {
	return c.cartPath() + "/item/" + url.PathEscape(productID)
}

func (c *Client) do(ctx context.Context, op, method, path string, body any) (Cart, error) {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return c.fail(op, err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return c.fail(op, err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return c.fail(op, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return c.fail(op, err)
	}

	if resp.StatusCode >= http.StatusBadRequest {
		return c.fail(op, &APIError{Status: resp.StatusCode, Message: errorMessage(raw, resp.Status)})
	}

	cart := Normalize(raw)
	c.mu.Lock()
	c.last = cart
	c.lastErr = nil
	c.mu.Unlock()
	return cart, nil
}

func (c *Client) fail(op string, err error) (Cart, error) {
	c.mu.Lock()
	c.lastErr = err
	last := c.last
	c.mu.Unlock()

	if c.log != nil {
		ctx := c.log.WithFields(context.Background(), map[string]any{"op": op, "user_id": c.identity.UserID})
		c.log.Warn(ctx, "cart sync failed", err)
	}
	return last, err
}

// errorMessage pulls the "error" string out of a failure envelope.
func errorMessage(raw []byte, fallback string) string {
	var envelope struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(raw, &envelope); err == nil {
		if envelope.Error != "" {
			return envelope.Error
		}
		if envelope.Message != "" {
			return envelope.Message
		}
	}
	return fallback
}
