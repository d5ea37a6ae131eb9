package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"golang.org/x/sync/singleflight"
)

// ErrMiss is returned by Store.Get when the key is absent or expired.
var ErrMiss = errors.New("cache: key not found")

// Store holds encoded values with an expiry.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Clear(ctx context.Context) error
}

// Observer is told about every lookup. The metrics recorder implements it.
type Observer interface {
	CacheHit(op string)
	CacheMiss(op string)
}

// Cache wraps a Store with per-key load deduplication.
type Cache struct {
	store    Store
	group    singleflight.Group
	observer Observer
	logger   *slog.Logger
}

// Option configures a Cache.
type Option func(*Cache)

// WithObserver reports hits and misses to o.
func WithObserver(o Observer) Option {
	return func(c *Cache) { c.observer = o }
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(c *Cache) {
		if l != nil {
			c.logger = l
		}
	}
}

// New creates a Cache over store.
func New(store Store, opts ...Option) *Cache {
	c := &Cache{
		store:  store,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Clear drops every entry, forcing the next Fetch of each key to reload.
func (c *Cache) Clear(ctx context.Context) error {
	if err := c.store.Clear(ctx); err != nil {
		return fmt.Errorf("clear cache: %w", err)
	}
	return nil
}

// Key builds the store key for an operation and its parameters,
// e.g. Key("candles", "CONTROLH", 90) is "candles:CONTROLH:90".
func Key(op string, params ...any) string {
	if len(params) == 0 {
		return op
	}
	parts := make([]string, 0, len(params)+1)
	parts = append(parts, op)
	for _, p := range params {
		parts = append(parts, fmt.Sprint(p))
	}
	return strings.Join(parts, ":")
}

// Fetch returns the cached value for (op, params) or calls load and stores
// its result for ttl. Concurrent misses on one key share a single load.
// A ttl of zero or less bypasses the cache.
func Fetch[T any](ctx context.Context, c *Cache, op string, ttl time.Duration, load func(context.Context) (T, error), params ...any) (T, error) {
	var zero T
	if c == nil || ttl <= 0 {
		return load(ctx)
	}

	key := Key(op, params...)

	if data, err := c.store.Get(ctx, key); err == nil {
		var v T
		if err := json.Unmarshal(data, &v); err == nil {
			c.hit(op)
			return v, nil
		}
		c.logger.Warn("discarding undecodable cache entry", "key", key)
	} else if !errors.Is(err, ErrMiss) {
		c.logger.Warn("cache read failed", "key", key, "err", err)
	}
	c.miss(op)

	res, err, _ := c.group.Do(key, func() (any, error) {
		v, err := load(ctx)
		if err != nil {
			return nil, err
		}
		data, err := json.Marshal(v)
		if err != nil {
			return nil, fmt.Errorf("encode %s: %w", op, err)
		}
		if err := c.store.Set(ctx, key, data, ttl); err != nil {
			c.logger.Warn("cache write failed", "key", key, "err", err)
		}
		return data, nil
	})
	if err != nil {
		return zero, err
	}

	var v T
	if err := json.Unmarshal(res.([]byte), &v); err != nil {
		return zero, fmt.Errorf("decode %s: %w", op, err)
	}
	return v, nil
}

func (c *Cache) hit(op string) {
	if c.observer != nil {
		c.observer.CacheHit(op)
	}
}

func (c *Cache) miss(op string) {
	if c.observer != nil {
		c.observer.CacheMiss(op)
	}
}
