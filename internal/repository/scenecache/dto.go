package scenecache

import (
	"github.com/kailas-cloud/globearc/internal/domain/arc"
	"github.com/kailas-cloud/globearc/internal/domain/colormap"
	"github.com/kailas-cloud/globearc/internal/domain/geo"
)

// entryVersion is bumped whenever the stored layout changes.
const entryVersion = 1

type entryDTO struct {
	Version int      `json:"v"`
	Arcs    []arcDTO `json:"arcs"`
}

type arcDTO struct {
	A        geo.GeoPoint  `json:"a"`
	B        geo.GeoPoint  `json:"b"`
	Weight   float64       `json:"w"`
	Controls [4][3]float64 `json:"c"`
	Altitude float64       `json:"alt"`
	Color    colormap.RGB  `json:"rgb"`
	Points   [][3]float64  `json:"p"`
}

func toDTO(arcs []arc.Arc) entryDTO {
	out := make([]arcDTO, len(arcs))
	for i := range arcs {
		a := &arcs[i]
		e := a.Edge()
		d := arcDTO{
			A:        e.A,
			B:        e.B,
			Weight:   e.Weight,
			Altitude: a.Altitude(),
			Color:    a.Color(),
			Points:   make([][3]float64, len(a.Points())),
		}
		for j, p := range a.Curve().Cage() {
			d.Controls[j] = [3]float64{p.X, p.Y, p.Z}
		}
		for j, p := range a.Points() {
			d.Points[j] = [3]float64{p.X, p.Y, p.Z}
		}
		out[i] = d
	}
	return entryDTO{Version: entryVersion, Arcs: out}
}

func fromDTO(e entryDTO) []arc.Arc {
	out := make([]arc.Arc, len(e.Arcs))
	for i, d := range e.Arcs {
		points := make([]geo.Vec3, len(d.Points))
		for j, p := range d.Points {
			points[j] = vec(p)
		}
		curve := arc.CubicBezier{
			P0: vec(d.Controls[0]),
			P1: vec(d.Controls[1]),
			P2: vec(d.Controls[2]),
			P3: vec(d.Controls[3]),
		}
		out[i] = arc.Reconstruct(
			arc.Edge{A: d.A, B: d.B, Weight: d.Weight},
			curve, d.Altitude, d.Color, points,
		)
	}
	return out
}

func vec(p [3]float64) geo.Vec3 {
	return geo.Vec3{X: p[0], Y: p[1], Z: p[2]}
}
