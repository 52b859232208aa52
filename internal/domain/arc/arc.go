// Package arc turns weighted pairs of geographic locations into colored
// curves that arc above the globe surface.
package arc

import (
	"github.com/kailas-cloud/globearc/internal/domain/colormap"
	"github.com/kailas-cloud/globearc/internal/domain/geo"
)

// Edge is a weighted connection between two locations.
type Edge struct {
	A      geo.GeoPoint
	B      geo.GeoPoint
	Weight float64
}

// Arc is the render-ready curve derived from an Edge (immutable value object).
type Arc struct {
	edge     Edge
	curve    CubicBezier
	altitude float64
	color    colormap.RGB
	points   []geo.Vec3
}

// Edge returns the source edge.
func (a *Arc) Edge() Edge { return a.edge }

// Start returns the projected start point on the globe surface.
func (a *Arc) Start() geo.Vec3 { return a.curve.P0 }

// End returns the projected end point on the globe surface.
func (a *Arc) End() geo.Vec3 { return a.curve.P3 }

// Control1 returns the first control point, a quarter of the way along the great circle.
func (a *Arc) Control1() geo.Vec3 { return a.curve.P1 }

// Control2 returns the second control point, three quarters of the way along the great circle.
func (a *Arc) Control2() geo.Vec3 { return a.curve.P2 }

// Curve returns the Bézier control cage.
func (a *Arc) Curve() CubicBezier { return a.curve }

// Altitude returns the height of the control points above the globe surface.
func (a *Arc) Altitude() float64 { return a.altitude }

// Color returns the render color mapped from the edge weight.
func (a *Arc) Color() colormap.RGB { return a.color }

// Points returns the sampled line strip from start to end.
func (a *Arc) Points() []geo.Vec3 { return a.points }

// Weight returns the edge weight the color was mapped from.
func (a *Arc) Weight() float64 { return a.edge.Weight }

// SurfaceDistanceMeters returns the great-circle distance between the endpoints on Earth.
func (a *Arc) SurfaceDistanceMeters() float64 {
	return geo.Haversine(a.edge.A.Lat, a.edge.A.Lng, a.edge.B.Lat, a.edge.B.Lng)
}

// Reconstruct creates an Arc from stored parts without recomputing geometry (cache hydration).
func Reconstruct(e Edge, curve CubicBezier, altitude float64, color colormap.RGB, points []geo.Vec3) Arc {
	return Arc{edge: e, curve: curve, altitude: altitude, color: color, points: points}
}
