package scene

import (
	"context"
	"sync"
	"testing"

	"go.uber.org/zap"

	"github.com/kailas-cloud/globearc/internal/domain"
	"github.com/kailas-cloud/globearc/internal/domain/arc"
	"github.com/kailas-cloud/globearc/internal/domain/colormap"
	"github.com/kailas-cloud/globearc/internal/domain/geo"
	"github.com/kailas-cloud/globearc/internal/repository/assets"
)

// --- Mocks ---

type mockDataset struct {
	result  domain.Dataset
	err     error
	release chan struct{}
}

func (m *mockDataset) Load(ctx context.Context) (domain.Dataset, error) {
	if m.release != nil {
		select {
		case <-m.release:
		case <-ctx.Done():
			return domain.Dataset{}, ctx.Err()
		}
	}
	return m.result, m.err
}

type mockAssets struct {
	mu     sync.Mutex
	errs   map[string]error
	loaded []string
}

func (m *mockAssets) Load(_ context.Context, spec assets.Spec) (*assets.Asset, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.loaded = append(m.loaded, spec.Name)
	if err := m.errs[spec.Name]; err != nil {
		return nil, err
	}
	return assets.NewAsset(spec, []byte("v 0 0 0\n")), nil
}

type mockCache struct {
	mu      sync.Mutex
	entries map[string][]arc.Arc
	gets    int
	puts    int
}

func newMockCache() *mockCache {
	return &mockCache{entries: make(map[string][]arc.Arc)}
}

func (m *mockCache) Get(_ context.Context, key string) ([]arc.Arc, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.gets++
	a, ok := m.entries[key]
	return a, ok
}

func (m *mockCache) Put(_ context.Context, key string, arcs []arc.Arc) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.puts++
	m.entries[key] = arcs
}

// --- Helpers ---

func sampleEdges() []arc.Edge {
	return []arc.Edge{
		{
			A:      geo.GeoPoint{Lat: 40.7128, Lng: -74.006},
			B:      geo.GeoPoint{Lat: 51.5074, Lng: -0.1278},
			Weight: 0.35,
		},
		{
			A:      geo.GeoPoint{Lat: -33.8688, Lng: 151.2093},
			B:      geo.GeoPoint{Lat: 35.6762, Lng: 139.6503},
			Weight: 0.9,
		},
	}
}

func newTestBuilder(t *testing.T) *arc.Builder {
	t.Helper()
	b, err := arc.NewBuilder(arc.DefaultConfig(), colormap.MustNew(colormap.Default, colormap.DefaultResolution))
	if err != nil {
		t.Fatalf("NewBuilder: %v", err)
	}
	return b
}

func newTestAssembler(t *testing.T, ds DatasetLoader, al AssetLoader) *Assembler {
	t.Helper()
	return NewAssembler(DefaultConfig(), ds, al, newTestBuilder(t), "blackbody/256/0:1", zap.NewNop())
}
