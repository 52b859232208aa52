package scene

import (
	"fmt"
	"math"
	"time"

	"github.com/kailas-cloud/globearc/internal/domain"
	"github.com/kailas-cloud/globearc/internal/domain/arc"
	"github.com/kailas-cloud/globearc/internal/domain/geo"
	"github.com/kailas-cloud/globearc/internal/repository/assets"
)

// Globe is the reference sphere mesh. It is drawn slightly inside the unit
// sphere so the overlays at GlobeRadius stay visible.
type Globe struct {
	Radius         float64 `json:"radius"`
	WidthSegments  int     `json:"width_segments"`
	HeightSegments int     `json:"height_segments"`
	Color          string  `json:"color"`
}

// DefaultGlobe returns the standard blue sphere.
func DefaultGlobe() Globe {
	return Globe{Radius: 0.999, WidthSegments: 32, HeightSegments: 32, Color: "#0088ff"}
}

// Light is the scene's ambient light.
type Light struct {
	Color     string  `json:"color"`
	Intensity float64 `json:"intensity"`
}

// Overlay is a model drawn over the globe with a fixed material.
type Overlay struct {
	Name     string          `json:"name"`
	URL      string          `json:"url"`
	ETag     string          `json:"etag"`
	Material assets.Material `json:"material"`
}

// Camera is a perspective camera looking at the globe.
type Camera struct {
	FOV      float64  `json:"fov"`
	Near     float64  `json:"near"`
	Far      float64  `json:"far"`
	Position geo.Vec3 `json:"position"`
}

// DefaultCamera returns the camera placed on the +Z axis at the globe surface.
func DefaultCamera() Camera {
	return Camera{FOV: 75, Near: 0.1, Far: 100, Position: geo.Vec3{Z: 1}}
}

// Renderer holds output settings shared with the client.
type Renderer struct {
	MaxPixelRatio float64 `json:"max_pixel_ratio"`
}

// DefaultRenderer caps the device pixel ratio at 2.
func DefaultRenderer() Renderer {
	return Renderer{MaxPixelRatio: 2}
}

// Viewport is the size of the client's drawing surface.
type Viewport struct {
	Width            int
	Height           int
	DevicePixelRatio float64
}

// ViewportFit is the camera and output configuration for a viewport.
type ViewportFit struct {
	Aspect       float64 `json:"aspect"`
	PixelRatio   float64 `json:"pixel_ratio"`
	BufferWidth  int     `json:"buffer_width"`
	BufferHeight int     `json:"buffer_height"`
}

// Fit recomputes the camera aspect ratio and drawing-buffer resolution for a
// resized viewport. A missing device pixel ratio counts as 1.
func (r Renderer) Fit(v Viewport) (ViewportFit, error) {
	if v.Width <= 0 || v.Height <= 0 {
		return ViewportFit{}, fmt.Errorf("%w: %dx%d", domain.ErrInvalidViewport, v.Width, v.Height)
	}
	ratio := v.DevicePixelRatio
	if ratio <= 0 || math.IsNaN(ratio) {
		ratio = 1
	}
	if r.MaxPixelRatio > 0 && ratio > r.MaxPixelRatio {
		ratio = r.MaxPixelRatio
	}
	return ViewportFit{
		Aspect:       float64(v.Width) / float64(v.Height),
		PixelRatio:   ratio,
		BufferWidth:  int(math.Floor(float64(v.Width) * ratio)),
		BufferHeight: int(math.Floor(float64(v.Height) * ratio)),
	}, nil
}

// Scene is the assembled, render-ready globe. It is built once and never
// mutated after the assembler publishes it.
type Scene struct {
	ID          string
	BuiltAt     time.Time
	DatasetHash string
	Globe       Globe
	Light       Light
	Camera      Camera
	Renderer    Renderer
	Overlays    []Overlay
	Arcs        []arc.Arc
	Skipped     []domain.SkippedRecord
	Warnings    []string
	FromCache   bool

	assets map[string]*assets.Asset
}

// Arc returns the arc at index i.
func (s *Scene) Arc(i int) (arc.Arc, error) {
	if i < 0 || i >= len(s.Arcs) {
		return arc.Arc{}, fmt.Errorf("%w: index %d of %d", domain.ErrArcNotFound, i, len(s.Arcs))
	}
	return s.Arcs[i], nil
}

// Asset returns the loaded overlay model with the given name.
func (s *Scene) Asset(name string) (*assets.Asset, error) {
	a, ok := s.assets[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrAssetNotFound, name)
	}
	return a, nil
}
