package arc

import "github.com/kailas-cloud/globearc/internal/domain/geo"

// CubicBezier is a cubic Bézier curve through P0 and P3 shaped by P1 and P2.
type CubicBezier struct {
	P0, P1, P2, P3 geo.Vec3
}

// At evaluates the curve at t in [0, 1].
func (c CubicBezier) At(t float64) geo.Vec3 {
	u := 1 - t
	b0 := u * u * u
	b1 := 3 * u * u * t
	b2 := 3 * u * t * t
	b3 := t * t * t
	return c.P0.Scale(b0).
		Add(c.P1.Scale(b1)).
		Add(c.P2.Scale(b2)).
		Add(c.P3.Scale(b3))
}

// Points samples the curve at divisions+1 evenly spaced parameter values.
// The first point is P0 and the last is P3.
func (c CubicBezier) Points(divisions int) []geo.Vec3 {
	if divisions < 1 {
		divisions = 1
	}
	pts := make([]geo.Vec3, divisions+1)
	for i := range pts {
		pts[i] = c.At(float64(i) / float64(divisions))
	}
	pts[0], pts[divisions] = c.P0, c.P3
	return pts
}

// Cage returns the four control points in order.
func (c CubicBezier) Cage() [4]geo.Vec3 {
	return [4]geo.Vec3{c.P0, c.P1, c.P2, c.P3}
}
