package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/kass/go-route-index/pkg/routeindex"
)

// routeFile is the on-disk JSON shape for a route: a list of segments, each
// a list of [lat, lng] pairs. There is no GeoJSON (or similar) parser in
// the reference corpus, so this uses encoding/json directly — see
// DESIGN.md for why no third-party library was reached for here.
type routeFile [][][2]float64

func loadRouteFile(path string) (routeindex.Route, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read route file %s: %w", path, err)
	}

	var raw routeFile
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse route file %s: %w", path, err)
	}

	route := make(routeindex.Route, len(raw))
	for i, seg := range raw {
		verts := make([]routeindex.LatLng, len(seg))
		for j, pair := range seg {
			verts[j] = routeindex.LatLng{Lat: pair[0], Lng: pair[1]}
		}
		route[i] = verts
	}
	return route, nil
}
