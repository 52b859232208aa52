package scenecache

import (
	"context"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/kailas-cloud/globearc/internal/db"
)

// mockKVStore implements the consumer interface for tests.
type mockKVStore struct {
	data    map[string][]byte
	ttls    map[string]time.Duration
	touched []string
	deleted []string
	getFn   func(ctx context.Context, key string) ([]byte, error)
	setFn   func(ctx context.Context, key string, value []byte, ttl time.Duration) error
}

func (m *mockKVStore) Fetch(ctx context.Context, key string) ([]byte, error) {
	if m.getFn != nil {
		return m.getFn(ctx, key)
	}
	v, ok := m.data[key]
	if !ok {
		return nil, db.ErrNotFound
	}
	return v, nil
}

func (m *mockKVStore) Put(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if m.setFn != nil {
		return m.setFn(ctx, key, value, ttl)
	}
	m.data[key] = value
	m.ttls[key] = ttl
	return nil
}

func (m *mockKVStore) Touch(_ context.Context, key string, ttl time.Duration) error {
	m.touched = append(m.touched, key)
	m.ttls[key] = ttl
	return nil
}

func (m *mockKVStore) Delete(_ context.Context, key string) error {
	m.deleted = append(m.deleted, key)
	delete(m.data, key)
	return nil
}

func newTestCache(t *testing.T) (*Cache, *mockKVStore, *prometheus.CounterVec) {
	t.Helper()
	ms := &mockKVStore{data: make(map[string][]byte), ttls: make(map[string]time.Duration)}
	total := prometheus.NewCounterVec(prometheus.CounterOpts{Name: "test_scene_cache_total"}, []string{"result"})
	return New(ms, time.Hour, total, zap.NewNop()), ms, total
}
