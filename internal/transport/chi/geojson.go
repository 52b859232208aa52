package chi

import (
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"

	"github.com/kailas-cloud/globearc/internal/domain/arc"
	"github.com/kailas-cloud/globearc/internal/domain/geo"
)

// arcsToGeoJSON exports the sampled arc paths as a FeatureCollection of
// LineStrings. Points are projected back onto the surface, so altitude is
// carried as a feature property only.
func arcsToGeoJSON(arcs []arc.Arc) *geojson.FeatureCollection {
	fc := geojson.NewFeatureCollection()
	for i := range arcs {
		a := &arcs[i]
		pts := a.Points()
		ls := make(orb.LineString, len(pts))
		for j, p := range pts {
			g := geo.Unproject(p)
			ls[j] = orb.Point{g.Lng, g.Lat}
		}

		f := geojson.NewFeature(ls)
		f.ID = i
		f.Properties["index"] = i
		f.Properties["weight"] = a.Weight()
		f.Properties["altitude"] = a.Altitude()
		f.Properties["color"] = a.Color().Hex()
		f.Properties["surface_distance_m"] = a.SurfaceDistanceMeters()
		fc.Append(f)
	}
	return fc
}
