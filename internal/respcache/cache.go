// Package respcache is the per-route response cache for slow upstreams
// (heavy SQL aggregations and spreadsheet reads).
//
// Entries stay in the store after they expire so that an upstream failure
// can fall back to the last good payload. They are swept after a successful
// upstream fetch once they are older than the TTL plus a grace period; there
// is no background janitor.
package respcache

import (
	"context"
	"time"

	gocache "github.com/patrickmn/go-cache"
	"go.uber.org/zap"
)

// Status is reported to clients in the X-Cache-Status header.
type Status string

const (
	Hit   Status = "HIT"
	Miss  Status = "MISS"
	Stale Status = "STALE"
)

// HeaderName is the response header carrying the Status.
const HeaderName = "X-Cache-Status"

const defaultGrace = 60 * time.Second

// Entry is one cached payload.
type Entry struct {
	Data      any
	Timestamp time.Time
	ExpiresAt time.Time
}

// Cache maps composed request keys to entries. It is safe for concurrent
// use; two requests missing the same key may both fetch, and the later
// write wins.
type Cache struct {
	name    string
	ttl     time.Duration
	grace   time.Duration
	now     func() time.Time
	store   *gocache.Cache
	metrics *Metrics
	logger  *zap.Logger
}

type Option func(*Cache)

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(c *Cache) { c.now = now }
}

// WithGrace sets how long past expiry an entry survives a sweep.
func WithGrace(d time.Duration) Option {
	return func(c *Cache) { c.grace = d }
}

func WithMetrics(m *Metrics) Option {
	return func(c *Cache) { c.metrics = m }
}

func WithLogger(l *zap.Logger) Option {
	return func(c *Cache) { c.logger = l }
}

// New creates a cache whose entries are fresh for ttl.
func New(name string, ttl time.Duration, opts ...Option) *Cache {
	c := &Cache{
		name:   name,
		ttl:    ttl,
		grace:  defaultGrace,
		now:    time.Now,
		store:  gocache.New(gocache.NoExpiration, 0),
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Cache) Name() string { return c.name }

func (c *Cache) TTL() time.Duration { return c.ttl }

// Get returns the entry for key if it has not expired.
func (c *Cache) Get(key string) (Entry, bool) {
	e, ok := c.Peek(key)
	if !ok || !c.now().Before(e.ExpiresAt) {
		return Entry{}, false
	}
	return e, true
}

// Peek returns the entry for key whether or not it has expired.
func (c *Cache) Peek(key string) (Entry, bool) {
	v, ok := c.store.Get(key)
	if !ok {
		return Entry{}, false
	}
	e, ok := v.(Entry)
	return e, ok
}

// Set stores data under key, stamped with the current time.
func (c *Cache) Set(key string, data any) Entry {
	now := c.now()
	e := Entry{Data: data, Timestamp: now, ExpiresAt: now.Add(c.ttl)}
	c.store.Set(key, e, gocache.NoExpiration)
	return e
}

// Sweep removes entries older than their expiry plus the grace period and
// returns how many were removed.
func (c *Cache) Sweep() int {
	now := c.now()
	removed := 0
	for key, item := range c.store.Items() {
		e, ok := item.Object.(Entry)
		if !ok || now.After(e.ExpiresAt.Add(c.grace)) {
			c.store.Delete(key)
			removed++
		}
	}
	return removed
}

func (c *Cache) Len() int { return c.store.ItemCount() }

func (c *Cache) Flush() { c.store.Flush() }

// Fetch returns the cached value for key while it is fresh. Otherwise it
// calls fn once, stores the result and sweeps old entries. When fn fails and
// an older entry for key exists, however old, it is returned as Stale with a
// nil error.
func Fetch[T any](ctx context.Context, c *Cache, key string, fn func(context.Context) (T, error)) (T, Status, error) {
	if e, ok := c.Get(key); ok {
		if v, ok := e.Data.(T); ok {
			c.metrics.observe(c.name, Hit)
			return v, Hit, nil
		}
	}

	v, err := fn(ctx)
	if err != nil {
		if e, ok := c.Peek(key); ok {
			if stale, ok := e.Data.(T); ok {
				c.logger.Warn("serving stale response after upstream error",
					zap.String("cache", c.name),
					zap.String("key", key),
					zap.Time("cached_at", e.Timestamp),
					zap.Error(err),
				)
				c.metrics.observe(c.name, Stale)
				return stale, Stale, nil
			}
		}
		var zero T
		return zero, Miss, err
	}

	c.Set(key, v)
	if n := c.Sweep(); n > 0 {
		c.logger.Debug("swept response cache", zap.String("cache", c.name), zap.Int("removed", n))
	}
	c.metrics.observe(c.name, Miss)
	return v, Miss, nil
}
