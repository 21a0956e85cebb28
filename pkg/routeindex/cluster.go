package routeindex

// cluster is a contiguous run of up to clusterSize sub-segments in emission
// order, used as a coarse index entry over the finer sub-segment tier.
type cluster struct {
	id int

	startSegmentIndex, endSegmentIndex       int
	startSubSegmentIndex, endSubSegmentIndex int

	centroid LatLng
	rect     rect
}

// buildCluster folds a run of sub-segments (in emission order) into a
// cluster record. members must be non-empty.
func buildCluster(id int, members []*subSegment, buffer float64) *cluster {
	first, last := members[0], members[len(members)-1]

	c := &cluster{
		id:                    id,
		startSegmentIndex:     first.segmentIndex,
		endSegmentIndex:       last.segmentIndex,
		startSubSegmentIndex:  first.subSegmentIndex,
		endSubSegmentIndex:    last.subSegmentIndex,
	}

	var sumLat, sumLng float64
	n := 0
	bounds := members[0].rect
	for i, m := range members {
		sumLat += m.start.Lat + m.end.Lat
		sumLng += m.start.Lng + m.end.Lng
		n += 2

		endpoints := rectFromPoints(m.start, m.end)
		if i == 0 {
			bounds = endpoints
		} else {
			bounds = bounds.union(endpoints)
		}
	}

	c.centroid = LatLng{Lat: sumLat / float64(n), Lng: sumLng / float64(n)}
	c.rect = bounds.buffered(2 * buffer)
	return c
}
