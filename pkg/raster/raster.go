// Package raster draws vector primitives onto the tile grid. All operations
// test cell centers (x+0.5, y+0.5), count only cells whose value actually
// changed, and are therefore idempotent.
package raster

import (
	"math"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"

	"github.com/Kruzntat/Hostile-OpenRA-For-TAKX/pkg/tiles"
)

// RadiusCells converts a stroke width in meters to a disc radius in cells.
// Every stroked line ends up at least one cell wide.
func RadiusCells(widthMeters, metersPerCell float64) float64 {
	return math.Max(0.5, widthMeters/math.Max(0.01, metersPerCell)/2)
}

// DrawDisc sets every cell whose center lies within radius of (cx, cy) to id.
// Returns the number of cells that changed.
func DrawDisc(g *tiles.Grid, cx, cy, radius float64, id uint16) int {
	r := math.Max(0, radius)
	r2 := r * r
	xmin := maxInt(0, int(cx-r)-1)
	xmax := minInt(g.Width()-1, int(cx+r)+1)
	ymin := maxInt(0, int(cy-r)-1)
	ymax := minInt(g.Height()-1, int(cy+r)+1)

	changed := 0
	for x := xmin; x <= xmax; x++ {
		for y := ymin; y <= ymax; y++ {
			dx := (float64(x) + 0.5) - cx
			dy := (float64(y) + 0.5) - cy
			if dx*dx+dy*dy <= r2 && g.Get(x, y) != id {
				g.Set(x, y, id)
				changed++
			}
		}
	}
	return changed
}

// DrawLine stamps discs along the segment from a to b at roughly half-cell
// intervals. A zero-length segment degrades to a single disc.
func DrawLine(g *tiles.Grid, a, b orb.Point, radius float64, id uint16) int {
	length := math.Hypot(b[0]-a[0], b[1]-a[1])
	if length == 0 {
		return DrawDisc(g, a[0], a[1], radius, id)
	}
	steps := maxInt(1, int(length*2))
	changed := 0
	for s := 0; s <= steps; s++ {
		t := float64(s) / float64(steps)
		x := a[0] + (b[0]-a[0])*t
		y := a[1] + (b[1]-a[1])*t
		changed += DrawDisc(g, x, y, radius, id)
	}
	return changed
}

// FillRing sets every cell whose center is inside the closed ring to id,
// using the even-odd rule. The caller closes the ring; rings with fewer than
// 3 distinct vertices are a no-op.
func FillRing(g *tiles.Grid, ring orb.Ring, id uint16) int {
	if len(ring) < 4 { // closed ring needs 3 vertices + repeat
		return 0
	}
	bound := ring.Bound()
	xmin := maxInt(0, int(bound.Min[0])-1)
	xmax := minInt(g.Width()-1, int(bound.Max[0])+1)
	ymin := maxInt(0, int(bound.Min[1])-1)
	ymax := minInt(g.Height()-1, int(bound.Max[1])+1)

	changed := 0
	for x := xmin; x <= xmax; x++ {
		for y := ymin; y <= ymax; y++ {
			center := orb.Point{float64(x) + 0.5, float64(y) + 0.5}
			if planar.RingContains(ring, center) && g.Get(x, y) != id {
				g.Set(x, y, id)
				changed++
			}
		}
	}
	return changed
}

// RingCells collects the grid cells whose centers lie inside the closed
// ring, without touching the grid. Used for classification membership.
func RingCells(w, h int, ring orb.Ring, into tiles.CellSet) {
	if len(ring) < 4 {
		return
	}
	bound := ring.Bound()
	xmin := maxInt(0, int(bound.Min[0])-1)
	xmax := minInt(w-1, int(bound.Max[0])+1)
	ymin := maxInt(0, int(bound.Min[1])-1)
	ymax := minInt(h-1, int(bound.Max[1])+1)

	for x := xmin; x <= xmax; x++ {
		for y := ymin; y <= ymax; y++ {
			center := orb.Point{float64(x) + 0.5, float64(y) + 0.5}
			if planar.RingContains(ring, center) {
				into.Add(x, y)
			}
		}
	}
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
