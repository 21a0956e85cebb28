package routeindex

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// bruteForceNearest scans every sub-segment in emission order and returns
// the closest projected point. It is the reference oracle invariants are
// checked against.
func bruteForceNearest(idx *Index, target LatLng) SegmentPoint {
	return projectBest(target, idx.subSegments, idx.opts.distance)
}

// newSeededRand returns a *rand.Rand seeded deterministically, for
// reproducible property tests.
func newSeededRand(seed int64) *rand.Rand {
	return rand.New(rand.NewSource(seed))
}

// generateRandomRoute returns a single-segment route of n vertices with a
// fixed seed, within a few degrees of the origin so the equirectangular
// projection stays accurate.
func generateRandomRoute(seed int64, n int) Route {
	r := newSeededRand(seed)
	verts := make([]LatLng, n)
	for i := range verts {
		verts[i] = LatLng{Lat: r.Float64()*10 - 5, Lng: r.Float64()*10 - 5}
	}
	return Route{verts}
}

func TestPropertyNeverWorseThanAnyVertex(t *testing.T) {
	route := generateRandomRoute(1, 50)
	idx, err := New(route)
	require.NoError(t, err)

	r := newSeededRand(2)
	for i := 0; i < 10; i++ {
		target := LatLng{Lat: r.Float64()*10 - 5, Lng: r.Float64()*10 - 5}
		sp := idx.FindNearestPoint(target)

		for _, v := range route[0] {
			assert.LessOrEqual(t, sp.DistanceMeters, DefaultDistance(target, v)+1e-6)
		}
	}
}

func TestPropertyResultIndexesRealSubSegment(t *testing.T) {
	route := generateRandomRoute(3, 80)
	idx, err := New(route)
	require.NoError(t, err)

	target := LatLng{Lat: 1, Lng: 1}
	sp := idx.FindNearestPoint(target)

	require.GreaterOrEqual(t, sp.SegmentIndex, 0)
	segs := idx.bySegment[sp.SegmentIndex]
	require.Less(t, sp.SubSegmentIndex, len(segs))

	ss := segs[sp.SubSegmentIndex]
	factor := cosDeg(target.Lat)
	sx, sy := ss.start.Lng*factor, ss.start.Lat
	ex, ey := ss.end.Lng*factor, ss.end.Lat
	px, py := sp.Point.Lng*factor, sp.Point.Lat

	dx, dy := ex-sx, ey-sy
	lengthSq := dx*dx + dy*dy
	if lengthSq < 1e-10 {
		return // zero-length sub-segment: projection is the endpoint itself
	}
	tParam := ((px-sx)*dx + (py-sy)*dy) / lengthSq
	assert.GreaterOrEqual(t, tParam, -1e-6)
	assert.LessOrEqual(t, tParam, 1+1e-6)
}

func TestPropertyValidationRejectsDegenerateRoutes(t *testing.T) {
	_, err1 := New(Route{})
	assert.Error(t, err1)

	_, err2 := New(Route{{}, {}})
	assert.Error(t, err2)
}
