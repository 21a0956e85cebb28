package routeindex

// Defaults for index construction.
const (
	DefaultBufferSize  = 0.0001 // degrees, ~11m at the equator
	DefaultClusterSize = 50
)

// Defaults for query options.
const (
	DefaultInitialSearchRadiusDegrees = 0.005 // ~500m
	DefaultMaxSearchRadiusDegrees     = 0.05  // ~5km
	DefaultMaxInitialSegmentsToCheck  = 100
	DefaultMaxTotalSegmentsToCheck    = 400

	// nearHitThresholdMeters is the early-exit distance in the two-stage
	// path.
	nearHitThresholdMeters = 10.0

	// metersToDegrees converts a meter distance to an approximate degree
	// scale; one degree of latitude is about 111km.
	metersToDegrees = 1.0 / 100000.0

	// pruneSlack is the safety margin applied to the degree-scale bound in
	// the candidate-pruning step.
	pruneSlack = 1.5
)

// indexOptions holds the construction-time configuration surface.
type indexOptions struct {
	distance       DistanceFunc
	useClusterTier bool
	clusterSize    int
	bufferSize     float64
}

func defaultIndexOptions() indexOptions {
	return indexOptions{
		distance:       DefaultDistance,
		useClusterTier: true,
		clusterSize:    DefaultClusterSize,
		bufferSize:     DefaultBufferSize,
	}
}

// IndexOption configures a new Index at construction time.
type IndexOption func(*indexOptions)

// WithDistanceFunc overrides the distance function used to compute
// sub-segment lengths and final reported distances. The default is
// DefaultDistance (Haversine).
func WithDistanceFunc(fn DistanceFunc) IndexOption {
	return func(o *indexOptions) {
		if fn != nil {
			o.distance = fn
		}
	}
}

// WithClusterLevel enables or disables the coarse cluster tier.
func WithClusterLevel(enabled bool) IndexOption {
	return func(o *indexOptions) {
		o.useClusterTier = enabled
	}
}

// WithClusterSize sets the number of sub-segments per cluster. Must be
// positive; non-positive values are ignored.
func WithClusterSize(size int) IndexOption {
	return func(o *indexOptions) {
		if size > 0 {
			o.clusterSize = size
		}
	}
}

// WithBufferSize sets the rectangle buffer, in degrees, applied to
// sub-segment bounds (doubled for cluster bounds). Must be positive;
// non-positive values are ignored.
func WithBufferSize(size float64) IndexOption {
	return func(o *indexOptions) {
		if size > 0 {
			o.bufferSize = size
		}
	}
}

// queryOptions holds the per-query configuration surface.
type queryOptions struct {
	initialSearchRadiusDegrees float64
	maxSearchRadiusDegrees     float64
	maxInitialSegmentsToCheck  int
	maxTotalSegmentsToCheck    int
}

func defaultQueryOptions() queryOptions {
	return queryOptions{
		initialSearchRadiusDegrees: DefaultInitialSearchRadiusDegrees,
		maxSearchRadiusDegrees:     DefaultMaxSearchRadiusDegrees,
		maxInitialSegmentsToCheck:  DefaultMaxInitialSegmentsToCheck,
		maxTotalSegmentsToCheck:    DefaultMaxTotalSegmentsToCheck,
	}
}

// QueryOption configures a single FindNearestPoint call.
type QueryOption func(*queryOptions)

// WithInitialSearchRadius sets the seed radius, in degrees, for both the
// cluster and direct search stages.
func WithInitialSearchRadius(degrees float64) QueryOption {
	return func(o *queryOptions) {
		if degrees > 0 {
			o.initialSearchRadiusDegrees = degrees
		}
	}
}

// WithMaxSearchRadius sets the hard ceiling on radius expansion in the
// direct search path and on the widened radius of the two-stage path.
func WithMaxSearchRadius(degrees float64) QueryOption {
	return func(o *queryOptions) {
		if degrees > 0 {
			o.maxSearchRadiusDegrees = degrees
		}
	}
}

// WithMaxInitialSegments sets the stage-1 candidate cap.
func WithMaxInitialSegments(n int) QueryOption {
	return func(o *queryOptions) {
		if n > 0 {
			o.maxInitialSegmentsToCheck = n
		}
	}
}

// WithMaxTotalSegments sets the combined stage-1+stage-2 candidate cap.
func WithMaxTotalSegments(n int) QueryOption {
	return func(o *queryOptions) {
		if n > 0 {
			o.maxTotalSegmentsToCheck = n
		}
	}
}
