package geo

import "math"

// GlobeRadius is the radius of the reference sphere every point is projected on.
const GlobeRadius = 1.0

// EarthRadiusMeters is the mean radius of Earth used for Haversine distance.
const EarthRadiusMeters = 6_371_000.0

const (
	degToRad = math.Pi / 180
	radToDeg = 180 / math.Pi
)

// GeoPoint is a geographic coordinate in degrees.
//
//nolint:revive // geo.GeoPoint reads better at call sites than geo.Point next to Vec3.
type GeoPoint struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Position projects the point onto a sphere of the given radius.
func (p GeoPoint) Position(radius float64) Vec3 {
	return Project(p.Lat, p.Lng, radius)
}

// Project converts latitude/longitude (degrees) to a point on a sphere of the
// given radius centered at the origin. (0, 0) maps to +Z and the north pole to +Y.
// Inputs outside the nominal ranges still yield a point on the sphere.
func Project(latDeg, lngDeg, radius float64) Vec3 {
	lat := latDeg * degToRad
	lng := lngDeg * degToRad
	return Vec3{
		X: math.Cos(lat) * math.Sin(lng),
		Y: math.Sin(lat),
		Z: math.Cos(lat) * math.Cos(lng),
	}.Scale(radius)
}

// Unproject is the inverse of Project: it returns the geographic coordinate of
// the ray through v. The origin maps to (0, 0).
func Unproject(v Vec3) GeoPoint {
	r := v.Norm()
	if r == 0 {
		return GeoPoint{}
	}
	return GeoPoint{
		Lat: math.Asin(clampUnit(v.Y/r)) * radToDeg,
		Lng: math.Atan2(v.X, v.Z) * radToDeg,
	}
}

// Haversine returns the great-circle distance in meters between two points
// specified by latitude and longitude in degrees.
func Haversine(lat1, lon1, lat2, lon2 float64) float64 {
	lat1r := lat1 * degToRad
	lat2r := lat2 * degToRad
	dLat := (lat2 - lat1) * degToRad
	dLon := (lon2 - lon1) * degToRad

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1r)*math.Cos(lat2r)*math.Sin(dLon/2)*math.Sin(dLon/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return EarthRadiusMeters * c
}

// ValidateCoordinates checks that latitude is in [-90,90] and longitude in [-180,180].
func ValidateCoordinates(lat, lon float64) bool {
	return lat >= -90 && lat <= 90 && lon >= -180 && lon <= 180
}

func clampUnit(x float64) float64 {
	if x > 1 {
		return 1
	}
	if x < -1 {
		return -1
	}
	return x
}
