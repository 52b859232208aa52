package arc

import (
	"testing"

	"github.com/kailas-cloud/globearc/internal/domain/geo"
)

func TestCubicBezier_Endpoints(t *testing.T) {
	c := CubicBezier{
		P0: geo.Vec3{X: 0, Y: 0, Z: 1},
		P1: geo.Vec3{X: 1, Y: 1, Z: 0},
		P2: geo.Vec3{X: 2, Y: 1, Z: 0},
		P3: geo.Vec3{X: 3, Y: 0, Z: 0},
	}
	if got := c.At(0); !vecAlmost(got, c.P0, eps) {
		t.Errorf("At(0) = %+v, want P0", got)
	}
	if got := c.At(1); !vecAlmost(got, c.P3, eps) {
		t.Errorf("At(1) = %+v, want P3", got)
	}
}

func TestCubicBezier_Midpoint(t *testing.T) {
	c := CubicBezier{
		P0: geo.Vec3{X: 0},
		P1: geo.Vec3{X: 0, Y: 4},
		P2: geo.Vec3{X: 4, Y: 4},
		P3: geo.Vec3{X: 4},
	}
	// B(0.5) = (P0 + 3P1 + 3P2 + P3) / 8
	want := geo.Vec3{X: 2, Y: 3}
	if got := c.At(0.5); !vecAlmost(got, want, eps) {
		t.Errorf("At(0.5) = %+v, want %+v", got, want)
	}
}

func TestCubicBezier_Points(t *testing.T) {
	c := CubicBezier{P0: geo.Vec3{}, P1: geo.Vec3{X: 1}, P2: geo.Vec3{X: 2}, P3: geo.Vec3{X: 3}}
	pts := c.Points(3)
	if len(pts) != 4 {
		t.Fatalf("want 4 points, got %d", len(pts))
	}
	// Evenly spaced control points on a line make the curve linear in t.
	for i, p := range pts {
		if !almost(p.X, float64(i), eps) {
			t.Errorf("point %d = %+v, want x=%d", i, p, i)
		}
	}
}

func TestCubicBezier_PointsMinimumDivisions(t *testing.T) {
	c := CubicBezier{P3: geo.Vec3{X: 1}}
	if pts := c.Points(0); len(pts) != 2 {
		t.Fatalf("want 2 points, got %d", len(pts))
	}
}
