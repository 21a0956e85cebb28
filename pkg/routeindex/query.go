package routeindex

import (
	"math"
	"sort"
)

// FindNearestPoint returns the point on the route closest to location,
// together with the distance and the sub-segment it lies on.
// It is total: for any finite location it returns a result and never
// errors, even against a pathological (e.g. single sub-segment) route.
func (idx *Index) FindNearestPoint(location LatLng, opts ...QueryOption) SegmentPoint {
	o := defaultQueryOptions()
	for _, opt := range opts {
		opt(&o)
	}

	if len(idx.subSegments) == 0 {
		return defensiveSegmentPoint()
	}

	useTwoStage := len(idx.subSegments) > o.maxInitialSegmentsToCheck &&
		idx.clusterTree != nil && !idx.clusterTree.empty()

	if useTwoStage {
		return idx.findNearestTwoStage(location, o)
	}
	return idx.findNearestDirect(location, o)
}

// findNearestTwoStage gathers candidates via the cluster tier first.
func (idx *Index) findNearestTwoStage(target LatLng, o queryOptions) SegmentPoint {
	clusters := idx.selectClusters(target, o)

	seen := make(map[subSegmentID]struct{}, o.maxInitialSegmentsToCheck)
	var stage1 []*subSegment

	for _, c := range clusters {
		if len(stage1) >= o.maxInitialSegmentsToCheck {
			break
		}
		for segIdx := c.startSegmentIndex; segIdx <= c.endSegmentIndex; segIdx++ {
			if segIdx < 0 || segIdx >= len(idx.bySegment) {
				continue
			}
			for _, ss := range idx.bySegment[segIdx] {
				id := ss.id()
				if _, dup := seen[id]; dup {
					continue
				}
				seen[id] = struct{}{}
				stage1 = append(stage1, ss)
			}
		}
		if len(stage1) >= o.maxInitialSegmentsToCheck {
			break
		}
	}

	sortByMidpointDistance(stage1, target)
	if len(stage1) > o.maxInitialSegmentsToCheck {
		stage1 = stage1[:o.maxInitialSegmentsToCheck]
	}

	best := projectBest(target, stage1, idx.opts.distance)
	if best.DistanceMeters < nearHitThresholdMeters {
		return best
	}

	expandedRadius := math.Max(
		2*o.initialSearchRadiusDegrees,
		best.DistanceMeters*metersToDegrees+2*idx.opts.bufferSize,
	)
	if expandedRadius > o.maxSearchRadiusDegrees {
		expandedRadius = o.maxSearchRadiusDegrees
	}

	widened := idx.subSegmentTree.search(searchRect(target, expandedRadius))
	var additions []*subSegment
	for _, p := range widened {
		ss := p.(*subSegment)
		if _, dup := seen[ss.id()]; dup {
			continue
		}
		additions = append(additions, ss)
	}
	sortByMidpointDistance(additions, target)

	bound := best.DistanceMeters*metersToDegrees + idx.opts.bufferSize
	boundSq := pruneSlack * bound * bound

	remainingBudget := o.maxTotalSegmentsToCheck - len(stage1)
	var accepted []*subSegment
	for _, ss := range additions {
		if len(accepted) >= remainingBudget {
			break
		}
		if approxPlanarDistance(ss.midpoint, target) < boundSq {
			accepted = append(accepted, ss)
		}
	}

	if len(accepted) > 0 {
		second := projectBest(target, accepted, idx.opts.distance)
		if second.DistanceMeters < best.DistanceMeters {
			best = second
		}
	}

	return best
}

// selectClusters performs a radius-doubling search of the
// cluster tree, falling back to the five clusters nearest by centroid when
// no radius within 4x the initial one finds anything.
func (idx *Index) selectClusters(target LatLng, o queryOptions) []*cluster {
	radius := o.initialSearchRadiusDegrees
	maxRadius := 4 * o.initialSearchRadiusDegrees

	for radius <= maxRadius {
		found := idx.clusterTree.search(searchRect(target, radius))
		if len(found) > 0 {
			clusters := make([]*cluster, len(found))
			for i, p := range found {
				clusters[i] = p.(*cluster)
			}
			return clusters
		}
		radius *= 2
	}

	if len(idx.clusters) == 0 {
		return nil
	}
	byDistance := make([]*cluster, len(idx.clusters))
	copy(byDistance, idx.clusters)
	sort.Slice(byDistance, func(i, j int) bool {
		return approxPlanarDistance(byDistance[i].centroid, target) < approxPlanarDistance(byDistance[j].centroid, target)
	})
	if len(byDistance) > 5 {
		byDistance = byDistance[:5]
	}
	return byDistance
}

// findNearestDirect searches the sub-segment tree directly, for routes small
// enough (or cluster-less) that the two-stage path isn't worth it.
func (idx *Index) findNearestDirect(target LatLng, o queryOptions) SegmentPoint {
	radius := o.initialSearchRadiusDegrees
	var found []any
	for radius <= o.maxSearchRadiusDegrees {
		found = idx.subSegmentTree.search(searchRect(target, radius))
		if len(found) > 0 {
			break
		}
		radius *= 2
	}

	var candidates []*subSegment
	if len(found) == 0 {
		candidates = make([]*subSegment, len(idx.subSegments))
		copy(candidates, idx.subSegments)
	} else {
		candidates = make([]*subSegment, len(found))
		for i, p := range found {
			candidates[i] = p.(*subSegment)
		}
	}

	sortByMidpointDistance(candidates, target)
	if len(candidates) > o.maxTotalSegmentsToCheck {
		candidates = candidates[:o.maxTotalSegmentsToCheck]
	}

	return projectBest(target, candidates, idx.opts.distance)
}

func sortByMidpointDistance(segs []*subSegment, target LatLng) {
	sort.Slice(segs, func(i, j int) bool {
		return approxPlanarDistance(segs[i].midpoint, target) < approxPlanarDistance(segs[j].midpoint, target)
	})
}

// projectBest projects target onto every candidate and returns the closest
// resulting point. candidates must be non-empty.
func projectBest(target LatLng, candidates []*subSegment, dist DistanceFunc) SegmentPoint {
	best := defensiveSegmentPoint()
	for i, ss := range candidates {
		sp := projectOntoSegment(target, ss, dist)
		if i == 0 || sp.DistanceMeters < best.DistanceMeters {
			best = sp
		}
	}
	return best
}

// projectOntoSegment builds an equirectangular
// tangent frame at the target's latitude, projects target onto the line
// through ss.start/ss.end within that frame, and reports the true
// (Haversine, or caller-supplied) distance to the projected point.
func projectOntoSegment(target LatLng, ss *subSegment, dist DistanceFunc) SegmentPoint {
	factor := cosDeg(target.Lat)

	sx, sy := ss.start.Lng*factor, ss.start.Lat
	ex, ey := ss.end.Lng*factor, ss.end.Lat
	px, py := target.Lng*factor, target.Lat

	dx, dy := ex-sx, ey-sy
	lengthSq := dx*dx + dy*dy

	if lengthSq < 1e-10 {
		return SegmentPoint{
			Point:           ss.start,
			DistanceMeters:  dist(target, ss.start),
			SegmentIndex:    ss.segmentIndex,
			SubSegmentIndex: ss.subSegmentIndex,
		}
	}

	t := ((px-sx)*dx + (py-sy)*dy) / lengthSq
	t = clamp(t, 0, 1)

	projX := sx + t*dx
	projY := sy + t*dy
	projected := LatLng{Lat: projY, Lng: projX / factor}

	return SegmentPoint{
		Point:           projected,
		DistanceMeters:  dist(target, projected),
		SegmentIndex:    ss.segmentIndex,
		SubSegmentIndex: ss.subSegmentIndex,
	}
}

// cosDeg is cos(degrees), the equirectangular scale factor for a given
// latitude.
func cosDeg(degrees float64) float64 {
	return math.Cos(degrees * math.Pi / 180.0)
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
