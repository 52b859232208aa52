package dataset

import (
	"fmt"
	"math"

	"github.com/kailas-cloud/globearc/internal/domain/arc"
	"github.com/kailas-cloud/globearc/internal/domain/geo"
)

// record is one row of the edge data file. Pointer fields distinguish
// missing values from zero.
type record struct {
	ALat   *float64 `json:"loc_a_latitude" parquet:"loc_a_latitude,optional"`
	ALng   *float64 `json:"loc_a_longitude" parquet:"loc_a_longitude,optional"`
	BLat   *float64 `json:"loc_b_latitude" parquet:"loc_b_latitude,optional"`
	BLng   *float64 `json:"loc_b_longitude" parquet:"loc_b_longitude,optional"`
	Weight *float64 `json:"edge_weight" parquet:"edge_weight,optional"`
}

// toEdge converts a record into an edge, or explains why it cannot.
func (r *record) toEdge() (arc.Edge, error) {
	fields := []struct {
		name string
		v    *float64
	}{
		{"loc_a_latitude", r.ALat},
		{"loc_a_longitude", r.ALng},
		{"loc_b_latitude", r.BLat},
		{"loc_b_longitude", r.BLng},
		{"edge_weight", r.Weight},
	}
	for _, f := range fields {
		if f.v == nil {
			return arc.Edge{}, fmt.Errorf("missing field %s", f.name)
		}
		if math.IsNaN(*f.v) || math.IsInf(*f.v, 0) {
			return arc.Edge{}, fmt.Errorf("field %s is not finite", f.name)
		}
	}
	return arc.Edge{
		A:      geo.GeoPoint{Lat: *r.ALat, Lng: *r.ALng},
		B:      geo.GeoPoint{Lat: *r.BLat, Lng: *r.BLng},
		Weight: *r.Weight,
	}, nil
}
