// Package routeindex implements a two-level spatial index over a polyline
// route, answering "nearest point on route" queries for real-time location
// snapping.
package routeindex

import "math"

const earthRadiusMeters = 6371000.0

// LatLng is an immutable geographic coordinate, in decimal degrees.
type LatLng struct {
	Lat float64
	Lng float64
}

// DistanceFunc computes the distance, in meters, between two coordinates.
// Implementations must be non-negative, commutative, and return 0 for equal
// inputs. An Index built by New without WithDistanceFunc uses
// DefaultDistance.
type DistanceFunc func(a, b LatLng) float64

// DefaultDistance is the Haversine great-circle distance on the WGS-84 mean
// radius (6,371,000 m).
func DefaultDistance(a, b LatLng) float64 {
	lat1 := a.Lat * math.Pi / 180.0
	lat2 := b.Lat * math.Pi / 180.0
	dLat := (b.Lat - a.Lat) * math.Pi / 180.0
	dLng := (b.Lng - a.Lng) * math.Pi / 180.0

	sinDLat := math.Sin(dLat / 2)
	sinDLng := math.Sin(dLng / 2)
	h := sinDLat*sinDLat + math.Cos(lat1)*math.Cos(lat2)*sinDLng*sinDLng
	c := 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))
	return earthRadiusMeters * c
}

// approxPlanarDistance returns the squared Euclidean distance between two
// coordinates in degree space. It is used only to order and prune
// candidates; the magnitude has no physical meaning, but it is monotone in
// true planar distance for small extents.
func approxPlanarDistance(p, q LatLng) float64 {
	dLat := p.Lat - q.Lat
	dLng := p.Lng - q.Lng
	return dLat*dLat + dLng*dLng
}

// rect is an axis-aligned rectangle in (longitude, latitude) space.
type rect struct {
	left, top, width, height float64
}

func (r rect) right() float64  { return r.left + r.width }
func (r rect) bottom() float64 { return r.top + r.height }

// overlaps reports whether r and o share any area (touching edges count).
func (r rect) overlaps(o rect) bool {
	return r.left <= o.right() && o.left <= r.right() &&
		r.top <= o.bottom() && o.top <= r.bottom()
}

// union returns the smallest rect covering both r and o.
func (r rect) union(o rect) rect {
	left := math.Min(r.left, o.left)
	top := math.Min(r.top, o.top)
	right := math.Max(r.right(), o.right())
	bottom := math.Max(r.bottom(), o.bottom())
	return rect{left: left, top: top, width: right - left, height: bottom - top}
}

// buffered expands r by d on every side.
func (r rect) buffered(d float64) rect {
	return rect{
		left:   r.left - d,
		top:    r.top - d,
		width:  r.width + 2*d,
		height: r.height + 2*d,
	}
}

// rectFromPoints returns the tight bounding rect of a and b, in (lng, lat)
// order.
func rectFromPoints(a, b LatLng) rect {
	left := math.Min(a.Lng, b.Lng)
	top := math.Min(a.Lat, b.Lat)
	right := math.Max(a.Lng, b.Lng)
	bottom := math.Max(a.Lat, b.Lat)
	return rect{left: left, top: top, width: right - left, height: bottom - top}
}

// searchRect builds an axis-aligned square, side 2*radiusDegrees, centered
// on center.
func searchRect(center LatLng, radiusDegrees float64) rect {
	return rect{
		left:   center.Lng - radiusDegrees,
		top:    center.Lat - radiusDegrees,
		width:  2 * radiusDegrees,
		height: 2 * radiusDegrees,
	}
}
