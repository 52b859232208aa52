package geo

import "math"

// antipodalEpsilon is the sin(d) threshold below which two distinct points are
// treated as antipodal and the great circle through them is undefined.
const antipodalEpsilon = 1e-12

// Interpolator returns a function that maps t in [0, 1] to the point that
// fraction of the way along the great circle from a to b. t=0 yields a and
// t=1 yields b. Identical points yield a for every t.
//
// For antipodal endpoints every meridian plane through a is a shortest path;
// the returned function follows the one heading north from a (towards
// longitude 0 when a is itself a pole).
func Interpolator(a, b GeoPoint) func(t float64) GeoPoint {
	lat0, lng0 := a.Lat*degToRad, a.Lng*degToRad
	lat1, lng1 := b.Lat*degToRad, b.Lng*degToRad

	cy0, sy0 := math.Cos(lat0), math.Sin(lat0)
	cy1, sy1 := math.Cos(lat1), math.Sin(lat1)

	// Cartesian frame local to the interpolation: X towards (0,0), Y towards (0,90E), Z north.
	p0 := Vec3{X: cy0 * math.Cos(lng0), Y: cy0 * math.Sin(lng0), Z: sy0}
	p1 := Vec3{X: cy1 * math.Cos(lng1), Y: cy1 * math.Sin(lng1), Z: sy1}

	d := AngularDistance(a, b)
	if d == 0 {
		return func(float64) GeoPoint { return a }
	}

	k := math.Sin(d)
	if k < antipodalEpsilon {
		north := Vec3{X: -sy0 * math.Cos(lng0), Y: -sy0 * math.Sin(lng0), Z: cy0}
		if cy0 < antipodalEpsilon {
			// At a pole "north" is undefined; leave along the prime meridian.
			north = Vec3{X: 1}
		}
		return func(t float64) GeoPoint {
			if t >= 1 {
				return b
			}
			s := t * d
			return fromFrame(p0.Scale(math.Cos(s)).Add(north.Scale(math.Sin(s))))
		}
	}

	return func(t float64) GeoPoint {
		s := t * d
		wb := math.Sin(s) / k
		wa := math.Sin(d-s) / k
		return fromFrame(p0.Scale(wa).Add(p1.Scale(wb)))
	}
}

// AngularDistance returns the central angle in radians between two points.
func AngularDistance(a, b GeoPoint) float64 {
	lat0, lat1 := a.Lat*degToRad, b.Lat*degToRad
	h := haversin(lat1-lat0) + math.Cos(lat0)*math.Cos(lat1)*haversin((b.Lng-a.Lng)*degToRad)
	return 2 * math.Asin(math.Sqrt(clampUnit(h)))
}

func haversin(x float64) float64 {
	s := math.Sin(x / 2)
	return s * s
}

func fromFrame(v Vec3) GeoPoint {
	return GeoPoint{
		Lat: math.Atan2(v.Z, math.Hypot(v.X, v.Y)) * radToDeg,
		Lng: math.Atan2(v.Y, v.X) * radToDeg,
	}
}
