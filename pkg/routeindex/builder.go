package routeindex

import "math"

// Route is a sequence of outer segments, each a sequence of vertices in
// order. An outer segment typically corresponds to a single road or trail
// span contributed by the caller; branching is represented only by
// multiple segments sharing endpoints.
type Route [][]LatLng

// Index is a static, read-only spatial index over a Route, answering
// "nearest point on route" queries. It is built once via New and
// is thereafter immutable: it may be queried concurrently by any number of
// readers without external synchronization, provided the configured
// DistanceFunc is itself pure or thread-safe.
type Index struct {
	opts indexOptions

	subSegments []*subSegment   // in emission order
	bySegment   [][]*subSegment // segmentIndex -> ordered sub-segments
	clusters    []*cluster      // nil when the cluster tier is not built

	subSegmentTree *rtreeIndex
	clusterTree    *rtreeIndex // empty when the cluster tier is not built

	metadata RouteMetadata
}

// New builds an Index over route. It fails with an *ArgumentError if route
// has no segments, or if every segment is empty; a segment with fewer than
// two points simply contributes no sub-segments.
func New(route Route, opts ...IndexOption) (*Index, error) {
	if len(route) == 0 {
		return nil, newArgumentError("route", "route must contain at least one segment")
	}

	anyNonEmpty := false
	for _, seg := range route {
		if len(seg) > 0 {
			anyNonEmpty = true
			break
		}
	}
	if !anyNonEmpty {
		return nil, newArgumentError("route", "route must contain at least one non-empty segment")
	}

	o := defaultIndexOptions()
	for _, opt := range opts {
		opt(&o)
	}

	idx := &Index{
		opts:      o,
		bySegment: make([][]*subSegment, len(route)),
	}

	var (
		sumLength                    float64
		haveBounds                   bool
		minLat, minLng, maxLat, maxLng float64
	)

	for segIdx, seg := range route {
		if len(seg) < 2 {
			continue
		}
		perSegment := make([]*subSegment, 0, len(seg)-1)
		for subIdx := 0; subIdx < len(seg)-1; subIdx++ {
			start, end := seg[subIdx], seg[subIdx+1]
			ss := newSubSegment(start, end, segIdx, subIdx, o.bufferSize, o.distance)
			idx.subSegments = append(idx.subSegments, ss)
			perSegment = append(perSegment, ss)
			sumLength += ss.lengthMeters

			for _, p := range [2]LatLng{start, end} {
				if !haveBounds {
					minLat, maxLat = p.Lat, p.Lat
					minLng, maxLng = p.Lng, p.Lng
					haveBounds = true
					continue
				}
				minLat = math.Min(minLat, p.Lat)
				maxLat = math.Max(maxLat, p.Lat)
				minLng = math.Min(minLng, p.Lng)
				maxLng = math.Max(maxLng, p.Lng)
			}
		}
		idx.bySegment[segIdx] = perSegment
	}

	idx.metadata = RouteMetadata{
		TotalSegments:     len(route),
		TotalSubSegments:  len(idx.subSegments),
		TotalLengthMeters: sumLength,
		Bounds:            LatLngBounds{MinLat: minLat, MinLng: minLng, MaxLat: maxLat, MaxLng: maxLng},
	}

	subEntries := make([]spatialEntry, len(idx.subSegments))
	for i, ss := range idx.subSegments {
		subEntries[i] = spatialEntry{bounds: toRtreegoRect(ss.rect), payload: ss}
	}
	idx.subSegmentTree = buildRTreeIndex(subEntries)

	if o.useClusterTier && len(idx.subSegments) > 2*o.clusterSize {
		idx.clusterTree = buildRTreeIndex(idx.buildClusterEntries())
	} else {
		idx.clusterTree = &rtreeIndex{}
	}

	return idx, nil
}

// buildClusterEntries partitions subSegments (in emission order) into runs
// of opts.clusterSize, the final run possibly shorter, populates
// idx.clusters, and returns the corresponding R-tree entries.
func (idx *Index) buildClusterEntries() []spatialEntry {
	n := len(idx.subSegments)
	size := idx.opts.clusterSize
	numClusters := (n + size - 1) / size

	idx.clusters = make([]*cluster, 0, numClusters)
	entries := make([]spatialEntry, 0, numClusters)
	for start, id := 0, 0; start < n; start, id = start+size, id+1 {
		end := start + size
		if end > n {
			end = n
		}
		c := buildCluster(id, idx.subSegments[start:end], idx.opts.bufferSize)
		idx.clusters = append(idx.clusters, c)
		entries = append(entries, spatialEntry{bounds: toRtreegoRect(c.rect), payload: c})
	}
	return entries
}

// Metadata returns the summary statistics computed over the route at
// construction.
func (idx *Index) Metadata() RouteMetadata {
	return idx.metadata
}
