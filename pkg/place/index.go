package place

import "github.com/dhconnelly/rtreego"

// occupancyIndex answers "does any committed footprint lie within a
// Chebyshev radius of this cell" without windowed scans. Rects are inset by
// a quarter cell on each side so touching-but-not-overlapping footprints do
// not read as intersecting.
type occupancyIndex struct {
	tree *rtreego.Rtree
}

func newOccupancyIndex() *occupancyIndex {
	return &occupancyIndex{tree: rtreego.NewTree(2, 25, 50)}
}

type footprintEntry struct {
	rect rtreego.Rect
}

// Bounds implements rtreego.Spatial.
func (f *footprintEntry) Bounds() rtreego.Rect {
	return f.rect
}

func cellRect(x, y, w, h int) rtreego.Rect {
	rect, _ := rtreego.NewRect(
		rtreego.Point{float64(x) + 0.25, float64(y) + 0.25},
		[]float64{float64(w) - 0.5, float64(h) - 0.5},
	)
	return rect
}

// insert commits a w×h footprint anchored at (x, y).
func (ix *occupancyIndex) insert(x, y, w, h int) {
	ix.tree.Insert(&footprintEntry{rect: cellRect(x, y, w, h)})
}

// intersects reports whether a w×h footprint at (x, y) overlaps any
// committed footprint.
func (ix *occupancyIndex) intersects(x, y, w, h int) bool {
	return len(ix.tree.SearchIntersect(cellRect(x, y, w, h))) > 0
}

// anyWithin reports whether any committed footprint lies within Chebyshev
// distance r of the cell (x, y).
func (ix *occupancyIndex) anyWithin(x, y, r int) bool {
	rect, _ := rtreego.NewRect(
		rtreego.Point{float64(x-r) + 0.25, float64(y-r) + 0.25},
		[]float64{float64(2*r) + 0.5, float64(2*r) + 0.5},
	)
	return len(ix.tree.SearchIntersect(rect)) > 0
}
