package settings

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/goliatone/go-backoffice/internal/gateway"
	"github.com/goliatone/go-backoffice/internal/logging"
	"github.com/goliatone/go-backoffice/pkg/interfaces"
)

var ErrSourceRequired = errors.New("settings: source is required")

// DefaultPath is the singleton endpoint the cache refreshes from.
const DefaultPath = "settings"

// Source fetches the raw settings object. *gateway.Client satisfies it.
type Source interface {
	FetchObject(ctx context.Context, route gateway.Route) (map[string]any, error)
}

// Option customises the cache.
type Option func(*Cache)

// WithLogger injects the settings logger.
func WithLogger(logger interfaces.Logger) Option {
	return func(c *Cache) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithRoute overrides the settings endpoint route.
func WithRoute(route gateway.Route) Option {
	return func(c *Cache) {
		if route.Path != "" {
			c.route = route
		}
	}
}

// Cache is the read-mostly holder for the site-wide settings object. Screens
// read it on every render, it changes only on an explicit Refresh, and a
// failed refresh keeps the last good snapshot in place. It is injected through
// the container; there is no package-level instance.
type Cache struct {
	source Source
	route  gateway.Route
	logger interfaces.Logger

	mu          sync.RWMutex
	values      map[string]any
	loaded      bool
	refreshedAt time.Time
}

// New constructs an empty cache. Get and All are safe before the first
// Refresh; they serve the empty object.
func New(source Source, opts ...Option) (*Cache, error) {
	if source == nil {
		return nil, ErrSourceRequired
	}
	c := &Cache{
		source: source,
		route:  gateway.Route{Path: DefaultPath},
		logger: logging.NoOp(),
		values: map[string]any{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Refresh fetches the settings object and swaps it in atomically. On failure
// the previous snapshot stays; the caller decides whether the error matters.
func (c *Cache) Refresh(ctx context.Context) error {
	fetched, err := c.source.FetchObject(ctx, c.route)
	if err != nil {
		c.logger.Error("settings.refresh.failed", "error", err)
		return err
	}

	c.mu.Lock()
	c.values = fetched
	c.loaded = true
	c.refreshedAt = time.Now()
	c.mu.Unlock()

	c.logger.Debug("settings.refresh.ok", "keys", len(fetched))
	return nil
}

// Get returns the value for key and whether it is present.
func (c *Cache) Get(key string) (any, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	value, ok := c.values[key]
	return value, ok
}

// GetString returns the value for key when it is a string, "" otherwise.
func (c *Cache) GetString(key string) string {
	value, ok := c.Get(key)
	if !ok {
		return ""
	}
	s, _ := value.(string)
	return s
}

// All returns a copy of the current snapshot. Before the first successful
// Refresh this is the empty object, never nil.
func (c *Cache) All() map[string]any {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make(map[string]any, len(c.values))
	for key, value := range c.values {
		out[key] = value
	}
	return out
}

// Loaded reports whether at least one Refresh has succeeded.
func (c *Cache) Loaded() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.loaded
}

// RefreshedAt returns the time of the last successful refresh.
func (c *Cache) RefreshedAt() time.Time {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.refreshedAt
}
