package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"frozo-api/logger"
	"frozo-api/models"

	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const keyNamespace = "frozo"

type cmdable interface {
	Ping(context.Context) *redis.StatusCmd
	Get(context.Context, string) *redis.StringCmd
	Set(context.Context, string, any, time.Duration) *redis.StatusCmd
	Del(context.Context, ...string) *redis.IntCmd
}

// Source is the authoritative product lookup behind the cache.
type Source interface {
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.Product, error)
}

// ProductCache is a read-through cache of product documents. Redis failures are
// logged and the lookup falls back to the source.
type ProductCache struct {
	store  cmdable
	source Source
	ttl    time.Duration
	log    *logger.Logger
}

func NewProductCache(client *redis.Client, source Source, ttl time.Duration, log *logger.Logger) *ProductCache {
	return &ProductCache{store: client, source: source, ttl: ttl, log: log}
}

// Connect parses a redis:// URL and verifies connectivity.
func Connect(ctx context.Context, url string) (*redis.Client, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parsing redis url: %w", err)
	}
	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return client, nil
}

func ProductKey(id primitive.ObjectID) string {
	return fmt.Sprintf("%s:product:%s", keyNamespace, id.Hex())
}

func (c *ProductCache) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Product, error) {
	key := ProductKey(id)

	raw, err := c.store.Get(ctx, key).Result()
	switch {
	case err == nil:
		var product models.Product
		jsonErr := json.Unmarshal([]byte(raw), &product)
		if jsonErr == nil {
			return &product, nil
		}
		c.log.Warn(ctx, "discarding undecodable cached product", jsonErr)
	case !errors.Is(err, redis.Nil):
		c.log.Warn(ctx, "product cache read failed", err)
	}

	product, err := c.source.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if data, err := json.Marshal(product); err == nil {
		if err := c.store.Set(ctx, key, string(data), c.ttl).Err(); err != nil {
			c.log.Warn(ctx, "product cache write failed", err)
		}
	}
	return product, nil
}

func (c *ProductCache) Invalidate(ctx context.Context, id primitive.ObjectID) error {
	if err := c.store.Del(ctx, ProductKey(id)).Err(); err != nil {
		c.log.Warn(ctx, "product cache invalidation failed", err)
		return err
	}
	return nil
}

// Ping reports redis health.
func (c *ProductCache) Ping(ctx context.Context) error {
	return c.store.Ping(ctx).Err()
}
