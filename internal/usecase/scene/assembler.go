package scene

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/kailas-cloud/globearc/internal/domain"
	"github.com/kailas-cloud/globearc/internal/domain/arc"
	"github.com/kailas-cloud/globearc/internal/metrics"
	"github.com/kailas-cloud/globearc/internal/repository/assets"
)

// Config holds the static parts of the scene.
type Config struct {
	Globe    Globe
	Light    Light
	Camera   Camera
	Renderer Renderer
	Overlays []assets.Spec
	// AssetURLPrefix is prepended to overlay names to form their client URL.
	AssetURLPrefix string
}

// DefaultConfig returns the standard globe scene.
func DefaultConfig() Config {
	return Config{
		Globe:          DefaultGlobe(),
		Light:          Light{Color: "#ffffff", Intensity: 1},
		Camera:         DefaultCamera(),
		Renderer:       DefaultRenderer(),
		Overlays:       assets.DefaultSpecs(),
		AssetURLPrefix: "/assets/",
	}
}

// Assembler loads every input the scene depends on and builds it once.
type Assembler struct {
	cfg     Config
	data    DatasetLoader
	assets  AssetLoader
	builder *arc.Builder
	lutKey  string
	cache   Cache
	logger  *zap.Logger
	now     func() time.Time
}

// NewAssembler creates an assembler. lutKey identifies the color table in
// cache keys (name, resolution and range).
func NewAssembler(
	cfg Config, data DatasetLoader, assetLoader AssetLoader,
	builder *arc.Builder, lutKey string, logger *zap.Logger,
) *Assembler {
	return &Assembler{
		cfg:     cfg,
		data:    data,
		assets:  assetLoader,
		builder: builder,
		lutKey:  lutKey,
		logger:  logger,
		now:     time.Now,
	}
}

// WithCache enables reuse of built arcs across restarts.
func (a *Assembler) WithCache(c Cache) *Assembler {
	a.cache = c
	return a
}

// Start launches the load-then-build step in the background.
func (a *Assembler) Start(ctx context.Context) *Future {
	f := newFuture()
	go func() {
		s, err := a.Assemble(ctx)
		f.complete(s, err)
	}()
	return f
}

// Assemble loads the dataset and overlay assets concurrently, then builds the
// scene. It returns only after every load has finished. A dataset failure is
// fatal; a failed asset is left out and reported as a warning.
func (a *Assembler) Assemble(ctx context.Context) (*Scene, error) {
	start := a.now()
	s, err := a.assemble(ctx)
	metrics.SceneBuildDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.SceneBuildsTotal.WithLabelValues("error").Inc()
		a.logger.Error("Scene build failed", zap.Error(err))
		return nil, err
	}
	metrics.SceneBuildsTotal.WithLabelValues("ok").Inc()
	metrics.SceneArcs.Set(float64(len(s.Arcs)))
	a.logger.Info("Scene ready",
		zap.String("scene_id", s.ID),
		zap.Int("arcs", len(s.Arcs)),
		zap.Int("overlays", len(s.Overlays)),
		zap.Int("skipped_records", len(s.Skipped)),
		zap.Int("warnings", len(s.Warnings)),
		zap.Bool("from_cache", s.FromCache),
		zap.Duration("elapsed", time.Since(start)),
	)
	return s, nil
}

func (a *Assembler) assemble(ctx context.Context) (*Scene, error) {
	var (
		ds       domain.Dataset
		mu       sync.Mutex
		loaded   = make(map[string]*assets.Asset, len(a.cfg.Overlays))
		warnings []string
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		ds, err = a.data.Load(gctx)
		if err != nil {
			return fmt.Errorf("load dataset: %w", err)
		}
		return nil
	})
	for _, spec := range a.cfg.Overlays {
		g.Go(func() error {
			asset, err := a.assets.Load(gctx, spec)
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				metrics.AssetLoadFailuresTotal.WithLabelValues(spec.Name).Inc()
				a.logger.Warn("Overlay asset failed to load, omitting it",
					zap.String("asset", spec.Name),
					zap.String("path", spec.Path),
					zap.Error(err),
				)
				warnings = append(warnings, fmt.Sprintf("overlay %q omitted: %v", spec.Name, err))
				return nil
			}
			loaded[spec.Name] = asset
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrSceneBuildFailed, err)
	}

	if n := len(ds.Skipped); n > 0 {
		metrics.DatasetRecordsSkippedTotal.Add(float64(n))
	}

	arcs, fromCache := a.buildArcs(ctx, ds)

	overlays := make([]Overlay, 0, len(loaded))
	for _, spec := range a.cfg.Overlays {
		asset, ok := loaded[spec.Name]
		if !ok {
			continue
		}
		overlays = append(overlays, Overlay{
			Name:     spec.Name,
			URL:      a.cfg.AssetURLPrefix + spec.Name,
			ETag:     asset.ETag(),
			Material: spec.Material,
		})
	}

	return &Scene{
		ID:          uuid.NewString(),
		BuiltAt:     a.now().UTC(),
		DatasetHash: ds.Hash,
		Globe:       a.cfg.Globe,
		Light:       a.cfg.Light,
		Camera:      a.cfg.Camera,
		Renderer:    a.cfg.Renderer,
		Overlays:    overlays,
		Arcs:        arcs,
		Skipped:     ds.Skipped,
		Warnings:    warnings,
		FromCache:   fromCache,
		assets:      loaded,
	}, nil
}

func (a *Assembler) buildArcs(ctx context.Context, ds domain.Dataset) ([]arc.Arc, bool) {
	if a.cache == nil || ds.Hash == "" {
		return a.builder.BuildAll(ds.Edges), false
	}

	key := a.cacheKey(ds.Hash)
	if arcs, ok := a.cache.Get(ctx, key); ok && len(arcs) == len(ds.Edges) {
		return arcs, true
	}

	arcs := a.builder.BuildAll(ds.Edges)
	a.cache.Put(ctx, key, arcs)
	return arcs, false
}

// cacheKey identifies a set of arcs by the raw data and every parameter that shapes or colors them.
func (a *Assembler) cacheKey(datasetHash string) string {
	cfg := a.builder.Config()
	h := sha256.New()
	for _, part := range []string{
		datasetHash,
		strconv.FormatFloat(cfg.AltitudeFactor, 'g', -1, 64),
		strconv.FormatFloat(cfg.MinAltitude, 'g', -1, 64),
		strconv.FormatFloat(cfg.MaxAltitude, 'g', -1, 64),
		strconv.Itoa(cfg.Divisions),
		a.lutKey,
	} {
		h.Write([]byte(part))
		h.Write([]byte{0})
	}
	return hex.EncodeToString(h.Sum(nil))
}
