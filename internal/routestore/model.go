// Package routestore loads and saves routes (sequences of route vertices)
// against a PostGIS-backed table, and caches built-route snapshots on disk.
// It is a collaborator of routeindex, not part of the index itself: the
// core index never performs I/O.
package routestore

import "github.com/kass/go-route-index/pkg/routeindex"

// Vertex is the on-the-wire / on-disk representation of a single route
// point, preserving the (segment, position-in-segment) ordering a Route
// needs: routes are ordered polylines, not bags of points.
type Vertex struct {
	RouteID         string
	SegmentIndex    int
	VertexIndex     int
	Lat             float64
	Lng             float64
}

// ToRoute reassembles a flat, ordered slice of Vertex rows (as returned by a
// SELECT ... ORDER BY segment_index, vertex_index query) into a
// routeindex.Route.
func ToRoute(vertices []Vertex) routeindex.Route {
	if len(vertices) == 0 {
		return nil
	}
	var route routeindex.Route
	for _, v := range vertices {
		for len(route) <= v.SegmentIndex {
			route = append(route, nil)
		}
		route[v.SegmentIndex] = append(route[v.SegmentIndex], routeindex.LatLng{Lat: v.Lat, Lng: v.Lng})
	}
	return route
}

// FromRoute flattens a routeindex.Route into ordered Vertex rows ready for
// a bulk insert.
func FromRoute(routeID string, route routeindex.Route) []Vertex {
	var vertices []Vertex
	for segIdx, seg := range route {
		for vertIdx, p := range seg {
			vertices = append(vertices, Vertex{
				RouteID:      routeID,
				SegmentIndex: segIdx,
				VertexIndex:  vertIdx,
				Lat:          p.Lat,
				Lng:          p.Lng,
			})
		}
	}
	return vertices
}
