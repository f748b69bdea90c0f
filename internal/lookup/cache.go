// Package lookup caches the small reference collections (categories,
// sub-categories, customers) that screens use to label foreign keys.
package lookup

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
)

// DefaultVersionTTL bounds how long a cache trusts its copy before asking the
// store whether another process bumped the version.
const DefaultVersionTTL = time.Second

// Option is one selectable entry of a lookup.
type Option struct {
	ID    string `json:"id"`
	Label string `json:"label"`
}

// Loader fetches the full collection from the backend.
type Loader[T any] func(ctx context.Context) ([]T, error)

// Cache is a read-through cache of one collection: memory first, then the
// shared Store, then the loader. Concurrent misses share one load.
type Cache[T any] struct {
	name    string
	load    Loader[T]
	idOf    func(T) string
	labelOf func(T) string
	store   Store
	logger  *slog.Logger
	group   singleflight.Group
	ttl     time.Duration
	now     func() time.Time

	mu      sync.RWMutex
	items   []T
	index   map[string]int
	version int64
	loaded  bool
	checked time.Time
	// gen changes on every Invalidate so loads started earlier are not kept.
	gen uint64
}

// CacheOption customises a Cache.
type CacheOption func(*cacheOptions)

type cacheOptions struct {
	store      Store
	logger     *slog.Logger
	versionTTL time.Duration
}

// WithStore shares payloads through s.
func WithStore(s Store) CacheOption {
	return func(o *cacheOptions) { o.store = s }
}

// WithVersionTTL sets how long a loaded collection is served without checking
// the store version. Zero checks on every read.
func WithVersionTTL(d time.Duration) CacheOption {
	return func(o *cacheOptions) { o.versionTTL = max(d, 0) }
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) CacheOption {
	return func(o *cacheOptions) { o.logger = l }
}

// New builds a cache named name.
func New[T any](name string, load Loader[T], idOf, labelOf func(T) string, opts ...CacheOption) *Cache[T] {
	o := cacheOptions{versionTTL: DefaultVersionTTL}
	for _, opt := range opts {
		opt(&o)
	}
	if o.logger == nil {
		o.logger = slog.Default()
	}
	return &Cache[T]{
		name: name, load: load, idOf: idOf, labelOf: labelOf,
		store: o.store, logger: o.logger, ttl: o.versionTTL, now: time.Now,
	}
}

// Name returns the lookup name.
func (c *Cache[T]) Name() string { return c.name }

// Get returns the whole collection.
func (c *Cache[T]) Get(ctx context.Context) ([]T, error) {
	version := c.sharedVersion(ctx)

	c.mu.RLock()
	if c.loaded && c.version == version {
		items := c.items
		c.mu.RUnlock()
		return items, nil
	}
	gen := c.gen
	c.mu.RUnlock()

	key := c.name + ":" + strconv.FormatInt(version, 10) + ":" + strconv.FormatUint(gen, 10)
	ch := c.group.DoChan(key, func() (any, error) {
		return c.fill(context.WithoutCancel(ctx), version, gen)
	})
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Val.([]T), nil
	}
}

// sharedVersion returns 0 without a store. A loaded collection checked less
// than ttl ago keeps its version, so labelling a page of rows costs at most
// one store round trip. Store errors degrade to memory only caching.
func (c *Cache[T]) sharedVersion(ctx context.Context) int64 {
	if c.store == nil {
		return 0
	}
	now := c.now()
	c.mu.RLock()
	if c.loaded && c.ttl > 0 && now.Sub(c.checked) < c.ttl {
		ver := c.version
		c.mu.RUnlock()
		return ver
	}
	c.mu.RUnlock()

	ver, err := c.store.Version(ctx, c.name)
	if err != nil {
		c.logger.Warn("lookup version unavailable", slog.String("lookup", c.name), slog.Any("error", err))
		c.mu.Lock()
		defer c.mu.Unlock()
		if c.loaded {
			c.checked = now
		}
		return c.version
	}
	c.mu.Lock()
	if ver == c.version {
		c.checked = now
	}
	c.mu.Unlock()
	return ver
}

func (c *Cache[T]) fill(ctx context.Context, version int64, gen uint64) ([]T, error) {
	if c.store != nil {
		var items []T
		ok, err := c.store.Load(ctx, c.name, version, &items)
		if err != nil {
			c.logger.Warn("lookup store read failed", slog.String("lookup", c.name), slog.Any("error", err))
		}
		if ok {
			return c.set(items, version, gen), nil
		}
	}
	items, err := c.load(ctx)
	if err != nil {
		return nil, fmt.Errorf("lookup: load %s: %w", c.name, err)
	}
	if items == nil {
		items = []T{}
	}
	if c.store != nil {
		if err := c.store.Save(ctx, c.name, version, items); err != nil {
			c.logger.Warn("lookup store write failed", slog.String("lookup", c.name), slog.Any("error", err))
		}
	}
	return c.set(items, version, gen), nil
}

func (c *Cache[T]) set(items []T, version int64, gen uint64) []T {
	index := make(map[string]int, len(items))
	for i, item := range items {
		index[c.idOf(item)] = i
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if gen != c.gen {
		return items
	}
	c.items = items
	c.index = index
	c.version = version
	c.loaded = true
	c.checked = c.now()
	return items
}

// Find returns the item with the given id.
func (c *Cache[T]) Find(ctx context.Context, id string) (T, bool, error) {
	var zero T
	if _, err := c.Get(ctx); err != nil {
		return zero, false, err
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	i, ok := c.index[id]
	if !ok {
		return zero, false, nil
	}
	return c.items[i], true, nil
}

// Label returns the display label of id, or fallback when unknown or
// unavailable.
func (c *Cache[T]) Label(ctx context.Context, id, fallback string) string {
	item, ok, err := c.Find(ctx, id)
	if err != nil || !ok {
		return fallback
	}
	return c.labelOf(item)
}

// Options returns the collection as id/label pairs.
func (c *Cache[T]) Options(ctx context.Context) ([]Option, error) {
	items, err := c.Get(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]Option, 0, len(items))
	for _, item := range items {
		out = append(out, Option{ID: c.idOf(item), Label: c.labelOf(item)})
	}
	return out, nil
}

// Invalidate drops the cached collection here and, with a store, everywhere.
func (c *Cache[T]) Invalidate(ctx context.Context) error {
	c.mu.Lock()
	c.gen++
	c.loaded = false
	c.items = nil
	c.index = nil
	c.checked = time.Time{}
	c.mu.Unlock()
	if c.store == nil {
		return nil
	}
	if _, err := c.store.Bump(ctx, c.name); err != nil {
		return fmt.Errorf("lookup: bump %s: %w", c.name, err)
	}
	return nil
}

// Refresh invalidates and loads again.
func (c *Cache[T]) Refresh(ctx context.Context) error {
	if err := c.Invalidate(ctx); err != nil {
		return err
	}
	_, err := c.Get(ctx)
	return err
}
