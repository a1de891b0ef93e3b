package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"robocamp/internal/config"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
)

const (
	courseCatalogKey = "catalog:courses:active"
	courseDetailKey  = "catalog:course:%s"
)

// ErrCacheMiss is returned when a key is absent; callers fall through to
// the database.
var ErrCacheMiss = fmt.Errorf("cache miss")

// CatalogCache caches the public course catalog in Redis. It is a pure
// read-side optimization: every value has a TTL and admin writes
// invalidate eagerly, so a cold or unavailable cache only costs a
// database round trip.
type CatalogCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewCatalogCache creates a Redis-backed catalog cache
func NewCatalogCache(addr, password string, db int, ttl time.Duration) *CatalogCache {
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	return &CatalogCache{client: rdb, ttl: ttl}
}

// NewCatalogCacheWithConfig creates the cache from the app configuration
func NewCatalogCacheWithConfig(cfg *config.CacheConfig) *CatalogCache {
	addr := fmt.Sprintf("%s:%d", cfg.Host, cfg.Port)
	ttl := time.Duration(cfg.CatalogTTL) * time.Second
	return &CatalogCache{
		client: redis.NewClient(&redis.Options{
			Addr:     addr,
			Password: cfg.Password,
			DB:       cfg.DB,
		}),
		ttl: ttl,
	}
}

// Ping checks cache connectivity
func (c *CatalogCache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

// GetCourseList reads the cached active-course list into dest
func (c *CatalogCache) GetCourseList(ctx context.Context, dest interface{}) error {
	return c.getJSON(ctx, courseCatalogKey, dest)
}

// SetCourseList caches the active-course list
func (c *CatalogCache) SetCourseList(ctx context.Context, courses interface{}) error {
	return c.setJSON(ctx, courseCatalogKey, courses)
}

// GetCourseDetail reads a cached course into dest
func (c *CatalogCache) GetCourseDetail(ctx context.Context, courseID uuid.UUID, dest interface{}) error {
	return c.getJSON(ctx, fmt.Sprintf(courseDetailKey, courseID), dest)
}

// SetCourseDetail caches a single course
func (c *CatalogCache) SetCourseDetail(ctx context.Context, courseID uuid.UUID, course interface{}) error {
	return c.setJSON(ctx, fmt.Sprintf(courseDetailKey, courseID), course)
}

// InvalidateCourse drops a course's detail entry and the list entry.
// Called after any admin write to the catalog.
func (c *CatalogCache) InvalidateCourse(ctx context.Context, courseID uuid.UUID) error {
	return c.client.Del(ctx, courseCatalogKey, fmt.Sprintf(courseDetailKey, courseID)).Err()
}

// InvalidateAll drops every cached catalog entry
func (c *CatalogCache) InvalidateAll(ctx context.Context) error {
	iter := c.client.Scan(ctx, 0, "catalog:*", 100).Iterator()
	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return fmt.Errorf("failed to scan catalog keys: %w", err)
	}
	if len(keys) == 0 {
		return nil
	}
	return c.client.Del(ctx, keys...).Err()
}

func (c *CatalogCache) getJSON(ctx context.Context, key string, dest interface{}) error {
	val, err := c.client.Get(ctx, key).Result()
	if err != nil {
		if err == redis.Nil {
			return ErrCacheMiss
		}
		return fmt.Errorf("failed to read %s from cache: %w", key, err)
	}
	if err := json.Unmarshal([]byte(val), dest); err != nil {
		return fmt.Errorf("invalid cached value for %s: %w", key, err)
	}
	return nil
}

func (c *CatalogCache) setJSON(ctx context.Context, key string, value interface{}) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal value for %s: %w", key, err)
	}
	if err := c.client.Set(ctx, key, data, c.ttl).Err(); err != nil {
		return fmt.Errorf("failed to write %s to cache: %w", key, err)
	}
	return nil
}
