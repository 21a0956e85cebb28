package routeindex

import (
	"github.com/dhconnelly/rtreego"
)

// R-tree tuning: small node fanout suits a bulk-loaded, read-only tree over
// a few hundred thousand entries.
const (
	rtreeMinChildren = 25
	rtreeMaxChildren = 50
	rtreeDimensions  = 2
)

// spatialEntry adapts a (rect, payload) pair to rtreego.Spatial. The payload
// is an opaque pointer — *subSegment for the sub-segment tree, *cluster for
// the cluster tree — recovered by the caller via a type assertion on
// search results.
type spatialEntry struct {
	bounds  *rtreego.Rect
	payload any
}

func (e *spatialEntry) Bounds() *rtreego.Rect {
	return e.bounds
}

// rtreeIndex is a static, bulk-loaded rectangle index: every entry is
// inserted once at construction and never reinserted, deleted, or updated.
type rtreeIndex struct {
	tree *rtreego.Rtree
}

// toRtreegoRect converts our (left, top, width, height) rect into
// rtreego's (point, lengths) representation. rtreego panics on
// degenerate (zero-size) rects in some versions, so a minimum epsilon
// keeps single-point bounding boxes valid; buffered sub-segment and
// cluster rects are never actually zero-sized (buffer > 0), this guards
// only a pathological zero buffer.
const rtreeEpsilon = 1e-12

func toRtreegoRect(r rect) *rtreego.Rect {
	w, h := r.width, r.height
	if w <= 0 {
		w = rtreeEpsilon
	}
	if h <= 0 {
		h = rtreeEpsilon
	}
	bounds, err := rtreego.NewRect(rtreego.Point{r.left, r.top}, []float64{w, h})
	if err != nil {
		// NewRect only errors on non-positive lengths, which the guard above
		// rules out; unreachable in practice.
		bounds, _ = rtreego.NewRect(rtreego.Point{r.left, r.top}, []float64{rtreeEpsilon, rtreeEpsilon})
	}
	return bounds
}

// buildRTreeIndex bulk-loads a fresh tree from pre-assembled entries. No
// reinsertion or deletion is ever performed afterward.
func buildRTreeIndex(entries []spatialEntry) *rtreeIndex {
	tree := rtreego.NewTree(rtreeDimensions, rtreeMinChildren, rtreeMaxChildren)
	for i := range entries {
		tree.Insert(&entries[i])
	}
	return &rtreeIndex{tree: tree}
}

// search returns the payloads of every entry whose rectangle overlaps q.
func (ix *rtreeIndex) search(q rect) []any {
	if ix == nil || ix.tree == nil {
		return nil
	}
	bounds := toRtreegoRect(q)
	results := ix.tree.SearchIntersect(bounds)
	payloads := make([]any, 0, len(results))
	for _, r := range results {
		if entry, ok := r.(*spatialEntry); ok {
			payloads = append(payloads, entry.payload)
		}
	}
	return payloads
}

// empty reports whether the index holds no entries.
func (ix *rtreeIndex) empty() bool {
	return ix == nil || ix.tree == nil || ix.tree.Size() == 0
}
