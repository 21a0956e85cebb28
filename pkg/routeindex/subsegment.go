package routeindex

// subSegment is the atomic indexed unit: a straight edge between two
// consecutive vertices of an outer route segment.
type subSegment struct {
	start, end LatLng

	segmentIndex    int
	subSegmentIndex int

	lengthMeters float64
	rect         rect
	midpoint     LatLng
}

// newSubSegment eagerly computes lengthMeters via dist and derives rect
// (buffered) and midpoint. A zero-length sub-segment (coincident endpoints)
// is legal; its rect degenerates to the buffer square.
func newSubSegment(start, end LatLng, segmentIndex, subSegmentIndex int, buffer float64, dist DistanceFunc) *subSegment {
	return &subSegment{
		start:           start,
		end:             end,
		segmentIndex:    segmentIndex,
		subSegmentIndex: subSegmentIndex,
		lengthMeters:    dist(start, end),
		rect:            rectFromPoints(start, end).buffered(buffer),
		midpoint: LatLng{
			Lat: (start.Lat + end.Lat) / 2,
			Lng: (start.Lng + end.Lng) / 2,
		},
	}
}

// subSegmentID packs (segmentIndex, subSegmentIndex) into a single
// collision-free key for dedup during a query: a decimal segment*10000+sub
// encoding would break past 10,000 sub-segments per outer segment, so this
// packs into the high bits of a 64-bit int instead, which only breaks past
// 2^32 sub-segments per segment.
type subSegmentID int64

func (s *subSegment) id() subSegmentID {
	return subSegmentID(int64(s.segmentIndex)<<32 | int64(uint32(s.subSegmentIndex)))
}
