package routeindex

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaultDistance(t *testing.T) {
	testCases := []struct {
		name     string
		a, b     LatLng
		expected float64
		delta    float64
	}{
		{
			name:     "same point",
			a:        LatLng{Lat: 37.7749, Lng: -122.4194},
			b:        LatLng{Lat: 37.7749, Lng: -122.4194},
			expected: 0,
			delta:    0.01,
		},
		{
			name:     "one degree of latitude",
			a:        LatLng{Lat: 0, Lng: 0},
			b:        LatLng{Lat: 1, Lng: 0},
			expected: 111195, // ~111.2km per degree of latitude
			delta:    200,
		},
		{
			name:     "SF to Oakland",
			a:        LatLng{Lat: 37.7749, Lng: -122.4194},
			b:        LatLng{Lat: 37.8044, Lng: -122.2712},
			expected: 13000,
			delta:    1000,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := DefaultDistance(tc.a, tc.b)
			assert.InDelta(t, tc.expected, got, tc.delta)
		})
	}
}

func TestDefaultDistanceCommutative(t *testing.T) {
	a := LatLng{Lat: 12.3, Lng: 45.6}
	b := LatLng{Lat: -5.1, Lng: 100.2}
	assert.InDelta(t, DefaultDistance(a, b), DefaultDistance(b, a), 1e-6)
}

func TestApproxPlanarDistance(t *testing.T) {
	p := LatLng{Lat: 0, Lng: 0}
	near := LatLng{Lat: 0.01, Lng: 0}
	far := LatLng{Lat: 1, Lng: 0}

	assert.Less(t, approxPlanarDistance(p, near), approxPlanarDistance(p, far))
	assert.Equal(t, 0.0, approxPlanarDistance(p, p))
}

func TestSearchRect(t *testing.T) {
	center := LatLng{Lat: 10, Lng: 20}
	r := searchRect(center, 0.5)

	assert.Equal(t, 19.5, r.left)
	assert.Equal(t, 9.5, r.top)
	assert.Equal(t, 1.0, r.width)
	assert.Equal(t, 1.0, r.height)
}

func TestRectOverlaps(t *testing.T) {
	a := rect{left: 0, top: 0, width: 2, height: 2}
	b := rect{left: 1, top: 1, width: 2, height: 2}
	c := rect{left: 10, top: 10, width: 1, height: 1}

	assert.True(t, a.overlaps(b))
	assert.True(t, b.overlaps(a))
	assert.False(t, a.overlaps(c))
}
