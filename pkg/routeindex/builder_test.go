package routeindex

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRejectsEmptyRoute(t *testing.T) {
	_, err := New(Route{})
	require.Error(t, err)

	var argErr *ArgumentError
	assert.ErrorAs(t, err, &argErr)
}

func TestNewRejectsAllEmptySegments(t *testing.T) {
	_, err := New(Route{{}, {}})
	require.Error(t, err)

	var argErr *ArgumentError
	assert.ErrorAs(t, err, &argErr)
}

func TestNewAcceptsSingleVertexSegment(t *testing.T) {
	// A segment with fewer than two points contributes no sub-segments but
	// is not an error, so long as some other segment is usable.
	route := Route{
		{{Lat: 0, Lng: 0}},
		{{Lat: 0, Lng: 0}, {Lat: 0, Lng: 1}},
	}
	idx, err := New(route)
	require.NoError(t, err)
	assert.Equal(t, 1, idx.Metadata().TotalSubSegments)
}

func TestNewEmissionOrder(t *testing.T) {
	route := Route{
		{{Lat: 0, Lng: 0}, {Lat: 0, Lng: 1}, {Lat: 0, Lng: 2}},
		{{Lat: 1, Lng: 0}, {Lat: 1, Lng: 1}},
	}
	idx, err := New(route)
	require.NoError(t, err)

	require.Len(t, idx.subSegments, 3)
	assert.Equal(t, 0, idx.subSegments[0].segmentIndex)
	assert.Equal(t, 0, idx.subSegments[0].subSegmentIndex)
	assert.Equal(t, 0, idx.subSegments[1].segmentIndex)
	assert.Equal(t, 1, idx.subSegments[1].subSegmentIndex)
	assert.Equal(t, 1, idx.subSegments[2].segmentIndex)
	assert.Equal(t, 0, idx.subSegments[2].subSegmentIndex)
}

func TestMetadata(t *testing.T) {
	route := Route{
		{{Lat: 0, Lng: 0}, {Lat: 0, Lng: 1}},
	}
	idx, err := New(route)
	require.NoError(t, err)

	md := idx.Metadata()
	assert.Equal(t, 1, md.TotalSegments)
	assert.Equal(t, 1, md.TotalSubSegments)
	assert.InDelta(t, DefaultDistance(LatLng{0, 0}, LatLng{0, 1}), md.TotalLengthMeters, 1e-6)
	assert.Equal(t, 0.0, md.Bounds.MinLat)
	assert.Equal(t, 0.0, md.Bounds.MinLng)
	assert.Equal(t, 0.0, md.Bounds.MaxLat)
	assert.Equal(t, 1.0, md.Bounds.MaxLng)
}

func TestClusterTierThreshold(t *testing.T) {
	// Below 2*clusterSize sub-segments, the cluster tier must stay empty
	// even when enabled.
	small := generateLineRoute(10)
	idxSmall, err := New(small, WithClusterSize(10))
	require.NoError(t, err)
	assert.True(t, idxSmall.clusterTree.empty())

	large := generateLineRoute(1000)
	idxLarge, err := New(large, WithClusterSize(10))
	require.NoError(t, err)
	assert.False(t, idxLarge.clusterTree.empty())
}

func TestClusterTierDisabled(t *testing.T) {
	large := generateLineRoute(1000)
	idx, err := New(large, WithClusterLevel(false))
	require.NoError(t, err)
	assert.True(t, idx.clusterTree.empty())
}

func TestWithDistanceFuncOverride(t *testing.T) {
	calls := 0
	fn := func(a, b LatLng) float64 {
		calls++
		return DefaultDistance(a, b)
	}
	route := Route{{{Lat: 0, Lng: 0}, {Lat: 0, Lng: 1}}}
	_, err := New(route, WithDistanceFunc(fn))
	require.NoError(t, err)
	assert.Equal(t, 1, calls)
}

// generateLineRoute returns a single-segment route of n+1 vertices spaced
// one hundredth of a degree apart along the equator.
func generateLineRoute(n int) Route {
	verts := make([]LatLng, n+1)
	for i := range verts {
		verts[i] = LatLng{Lat: 0, Lng: float64(i) * 0.01}
	}
	return Route{verts}
}
