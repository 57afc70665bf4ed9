package overlay

import (
	"math"

	"github.com/paulmach/orb"

	"github.com/Kruzntat/Hostile-OpenRA-For-TAKX/pkg/feature"
	"github.com/Kruzntat/Hostile-OpenRA-For-TAKX/pkg/raster"
	"github.com/Kruzntat/Hostile-OpenRA-For-TAKX/pkg/tiles"
)

// waterwayWidth returns the drawing width for a waterway class. Rivers and
// canals get wider floors than the configured base.
func waterwayWidth(class string, base float64) float64 {
	switch class {
	case "river":
		return math.Max(base, 12.0)
	case "canal":
		return math.Max(base, 8.0)
	}
	return base
}

// riverStampSkipWaterFrac: open water this saturated already looks right,
// so smoothing stamps would only punch holes in it.
const riverStampSkipWaterFrac = 0.45

// fillWaterAreas rasterizes water polygons from tagged ways and from the
// outer rings of tagged multipolygon relations.
func (b *builder) fillWaterAreas() {
	for _, w := range b.coll.Ways {
		if w.Tags == nil || !w.Tags.IsWaterArea() {
			continue
		}
		if ring := b.coll.ClosedRing(w, b.a); ring != nil {
			b.stats.WaterCells += raster.FillRing(b.grid, ring, tiles.Water)
		}
	}
	for _, rel := range b.coll.Relations {
		if rel.Tags == nil || !rel.Tags.IsWaterArea() {
			continue
		}
		for _, ring := range b.coll.OuterRings(rel, b.a) {
			b.stats.WaterCells += raster.FillRing(b.grid, ring, tiles.Water)
		}
	}
}

// strokeWaterways draws waterway centerlines with per-class thickness and
// collects oriented samples for the river smoothing pass.
func (b *builder) strokeWaterways() {
	for _, w := range b.coll.Ways {
		if w.Tags == nil || !w.Tags.IsWaterway() {
			continue
		}
		widthM, ok := feature.ParseWidthMeters(w.Tags.Get("width"))
		if !ok {
			widthM = waterwayWidth(w.Tags.Get("waterway"), b.cfg.WaterwayWidthM)
		}
		rCells := raster.RadiusCells(widthM, b.a.MetersPerCell)

		coords := b.coll.Project(w, b.a)
		for i := 0; i+1 < len(coords); i++ {
			pa, pb := coords[i], coords[i+1]
			if !b.nearGrid(pa[0], pa[1]) || !b.nearGrid(pb[0], pb[1]) {
				continue
			}
			b.stats.WaterCells += raster.DrawLine(b.grid, pa, pb, rCells, tiles.Water)
			b.sampleRiverSegment(pa, pb, rCells)
		}
	}
}

// sampleRiverSegment walks the segment at stroke-radius steps and records
// each covered cell with the segment's dominant orientation.
func (b *builder) sampleRiverSegment(pa, pb orb.Point, rCells float64) {
	dx := pb[0] - pa[0]
	dy := pb[1] - pa[1]
	orient := orientVertical
	if math.Abs(dx) > math.Abs(dy) {
		orient = orientHorizontal
	}
	length := math.Hypot(dx, dy)
	step := math.Max(1.0, rCells)
	steps := int(length / step)
	if steps < 1 {
		steps = 1
	}
	for s := 0; s <= steps; s++ {
		t := float64(s) / float64(steps)
		x := int(pa[0] + dx*t)
		y := int(pa[1] + dy*t)
		if b.grid.InBounds(x, y) {
			b.riverSamples[riverSample{X: x, Y: y, Orient: orient}] = struct{}{}
		}
	}
}

// augmentWater promotes mask cells that are not already water.
func (b *builder) augmentWater() {
	for c := range b.cfg.WaterMask {
		if b.grid.InBounds(c.X, c.Y) && b.grid.Get(c.X, c.Y) != tiles.Water {
			b.grid.Set(c.X, c.Y, tiles.Water)
			b.stats.WaterCells++
		}
	}
}

// stampRivers replaces plain water along sampled centerlines with multi-cell
// river templates. Samples inside broad water are skipped; horizontal stamps
// alternate between two variants by anchor parity to avoid a tiled look.
func (b *builder) stampRivers() {
	for s := range b.riverSamples {
		if b.grid.Get(s.X, s.Y) != tiles.Water {
			continue
		}
		if b.localWaterFraction(s.X, s.Y, 4) > riverStampSkipWaterFrac {
			continue
		}
		switch s.Orient {
		case orientVertical:
			b.stats.RiverStamps += b.grid.Stamp(s.X-1, s.Y, tiles.RiverVertCenter)
		case orientHorizontal:
			id := tiles.RiverHorizTop
			if (s.X+s.Y)&1 == 1 {
				id = tiles.RiverHorizTopAlt
			}
			b.stats.RiverStamps += b.grid.Stamp(s.X, s.Y, id)
		}
	}
	if b.stats.RiverStamps > 0 {
		b.stats.RiverSamples = len(b.riverSamples)
	}
}

// localWaterFraction measures the water share of the (2r+1)² window around
// a cell, respecting grid edges.
func (b *builder) localWaterFraction(cx, cy, r int) float64 {
	total, water := 0, 0
	for dx := -r; dx <= r; dx++ {
		x := cx + dx
		if x < 0 || x >= b.grid.Width() {
			continue
		}
		for dy := -r; dy <= r; dy++ {
			y := cy + dy
			if y < 0 || y >= b.grid.Height() {
				continue
			}
			total++
			if b.grid.Get(x, y) == tiles.Water {
				water++
			}
		}
	}
	if total == 0 {
		return 0
	}
	return float64(water) / float64(total)
}

// markBeaches converts clear cells 8-adjacent to any water or river cell
// into beach.
func (b *builder) markBeaches() {
	for x := 0; x < b.grid.Width(); x++ {
		for y := 0; y < b.grid.Height(); y++ {
			if b.grid.Get(x, y) != tiles.Clear {
				continue
			}
			if b.hasWaterNeighbor(x, y) {
				b.grid.Place(x, y, tiles.Beach, tiles.BeachVariant)
				b.stats.ShoreCells++
			}
		}
	}
}

func (b *builder) hasWaterNeighbor(x, y int) bool {
	for dx := -1; dx <= 1; dx++ {
		for dy := -1; dy <= 1; dy++ {
			if dx == 0 && dy == 0 {
				continue
			}
			nx, ny := x+dx, y+dy
			if !b.grid.InBounds(nx, ny) {
				continue
			}
			id := b.grid.Get(nx, ny)
			if id == tiles.Water || tiles.IsRiver(id) {
				return true
			}
		}
	}
	return false
}
