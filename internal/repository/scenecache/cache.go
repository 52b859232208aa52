// Package scenecache keeps built arcs in the key-value store so a restart
// with unchanged data and parameters skips the geometry pass.
package scenecache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/goccy/go-json"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/kailas-cloud/globearc/internal/db"
	"github.com/kailas-cloud/globearc/internal/domain"
	"github.com/kailas-cloud/globearc/internal/domain/arc"
)

var cacheKeyPrefix = domain.KeyPrefix + "scene:"

// store is the consumer interface for the scene cache (ISP).
type store interface {
	Fetch(ctx context.Context, key string) ([]byte, error)
	Put(ctx context.Context, key string, blob []byte, ttl time.Duration) error
	Touch(ctx context.Context, key string, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

// Cache stores arcs as versioned JSON entries.
type Cache struct {
	store      store
	ttl        time.Duration
	cacheTotal *prometheus.CounterVec
	logger     *zap.Logger
}

// New creates a cache. ttl <= 0 keeps entries until evicted, otherwise every
// hit extends the entry by ttl. cacheTotal has label "result" ("hit"/"miss").
func New(s store, ttl time.Duration, cacheTotal *prometheus.CounterVec, logger *zap.Logger) *Cache {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Cache{store: s, ttl: ttl, cacheTotal: cacheTotal, logger: logger}
}

// Get returns the arcs stored under key. Store and decode failures count as
// misses, and entries that fail to decode are removed.
func (c *Cache) Get(ctx context.Context, key string) ([]arc.Arc, bool) {
	k := cacheKeyPrefix + key
	data, err := c.store.Fetch(ctx, k)
	if err != nil {
		if !errors.Is(err, db.ErrNotFound) {
			c.logger.Warn("Failed to get cached scene", zap.String("key", k), zap.Error(err))
		}
		c.inc("miss")
		return nil, false
	}

	arcs, err := decode(data)
	if err != nil {
		c.logger.Warn("Failed to parse cached scene", zap.String("key", k), zap.Error(err))
		// The entry can never decode under this version; evict it.
		if err := c.store.Delete(ctx, k); err != nil {
			c.logger.Debug("Failed to evict cached scene", zap.String("key", k), zap.Error(err))
		}
		c.inc("miss")
		return nil, false
	}

	if err := c.store.Touch(ctx, k, c.ttl); err != nil {
		c.logger.Debug("Failed to extend cached scene", zap.String("key", k), zap.Error(err))
	}
	c.inc("hit")
	return arcs, true
}

// Put stores arcs under key. Failures are logged and otherwise ignored.
func (c *Cache) Put(ctx context.Context, key string, arcs []arc.Arc) {
	k := cacheKeyPrefix + key
	data, err := json.Marshal(toDTO(arcs))
	if err != nil {
		c.logger.Warn("Failed to encode scene for cache", zap.String("key", k), zap.Error(err))
		return
	}
	if err := c.store.Put(ctx, k, data, c.ttl); err != nil {
		c.logger.Warn("Failed to cache scene", zap.String("key", k), zap.Error(err))
		return
	}
	c.logger.Debug("Scene cached", zap.String("key", k), zap.Int("arcs", len(arcs)), zap.Int("bytes", len(data)))
}

func (c *Cache) inc(result string) {
	if c.cacheTotal != nil {
		c.cacheTotal.WithLabelValues(result).Inc()
	}
}

func decode(data []byte) ([]arc.Arc, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("empty scene cache entry")
	}
	var e entryDTO
	if err := json.Unmarshal(data, &e); err != nil {
		return nil, fmt.Errorf("decode scene cache entry: %w", err)
	}
	if e.Version != entryVersion {
		return nil, fmt.Errorf("scene cache entry version %d, want %d", e.Version, entryVersion)
	}
	return fromDTO(e), nil
}
