package arc

import (
	"fmt"

	"github.com/kailas-cloud/globearc/internal/domain/colormap"
	"github.com/kailas-cloud/globearc/internal/domain/geo"
)

// Config holds arc shaping parameters.
type Config struct {
	AltitudeFactor float64 // altitude = chord * factor
	MinAltitude    float64
	MaxAltitude    float64
	Divisions      int // line strip segments per arc
}

// DefaultConfig returns the standard arc shape.
func DefaultConfig() Config {
	return Config{
		AltitudeFactor: 0.75,
		MinAltitude:    0.1,
		MaxAltitude:    1.0,
		Divisions:      50,
	}
}

// Validate checks the configuration for correctness.
func (c Config) Validate() error {
	if c.AltitudeFactor <= 0 {
		return fmt.Errorf("altitude factor must be positive, got %v", c.AltitudeFactor)
	}
	if c.MinAltitude < 0 || c.MaxAltitude < c.MinAltitude {
		return fmt.Errorf("altitude range [%v, %v] is invalid", c.MinAltitude, c.MaxAltitude)
	}
	if c.Divisions < 1 {
		return fmt.Errorf("divisions must be at least 1, got %d", c.Divisions)
	}
	return nil
}

// Builder constructs arcs with a fixed shape and color table.
type Builder struct {
	cfg Config
	lut *colormap.LUT
}

// NewBuilder creates an arc builder.
func NewBuilder(cfg Config, lut *colormap.LUT) (*Builder, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("arc config: %w", err)
	}
	if lut == nil {
		return nil, fmt.Errorf("arc config: color table is required")
	}
	return &Builder{cfg: cfg, lut: lut}, nil
}

// Config returns the builder's shaping parameters.
func (b *Builder) Config() Config { return b.cfg }

// Build computes the arc for a single edge.
func (b *Builder) Build(e Edge) Arc {
	start := e.A.Position(geo.GlobeRadius)
	end := e.B.Position(geo.GlobeRadius)

	altitude := Altitude(geo.ChordDistance(start, end), b.cfg)

	along := geo.Interpolator(e.A, e.B)
	c1 := along(0.25).Position(geo.GlobeRadius + altitude)
	c2 := along(0.75).Position(geo.GlobeRadius + altitude)

	curve := CubicBezier{P0: start, P1: c1, P2: c2, P3: end}
	return Arc{
		edge:     e,
		curve:    curve,
		altitude: altitude,
		color:    b.lut.Color(e.Weight),
		points:   curve.Points(b.cfg.Divisions),
	}
}

// BuildAll computes arcs for every edge, preserving input order.
func (b *Builder) BuildAll(edges []Edge) []Arc {
	arcs := make([]Arc, len(edges))
	for i, e := range edges {
		arcs[i] = b.Build(e)
	}
	return arcs
}

// Altitude scales the chord length into a control-point height bounded by the config.
func Altitude(chord float64, cfg Config) float64 {
	return clamp(chord*cfg.AltitudeFactor, cfg.MinAltitude, cfg.MaxAltitude)
}

func clamp(v, lo, hi float64) float64 {
	if v <= lo {
		return lo
	}
	if v >= hi {
		return hi
	}
	return v
}
