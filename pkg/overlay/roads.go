package overlay

import (
	"math"

	"github.com/Kruzntat/Hostile-OpenRA-For-TAKX/pkg/feature"
	"github.com/Kruzntat/Hostile-OpenRA-For-TAKX/pkg/raster"
	"github.com/Kruzntat/Hostile-OpenRA-For-TAKX/pkg/tiles"
)

// roadWidth returns the drawing width for a highway class. Major classes get
// floors above the configured base; footpaths get ceilings below it.
func roadWidth(class string, base float64) float64 {
	switch class {
	case "motorway":
		return math.Max(base, 16.0)
	case "trunk":
		return math.Max(base, 14.0)
	case "primary":
		return math.Max(base, 12.0)
	case "secondary":
		return math.Max(base, 10.0)
	case "tertiary":
		return math.Max(base, 9.0)
	case "unclassified", "residential":
		return math.Max(base, 8.0)
	case "living_street", "service", "pedestrian", "bus_guideway":
		return math.Max(base, 6.0)
	case "track":
		return math.Max(base, 5.0)
	case "footway", "path", "cycleway":
		return math.Max(3.0, math.Min(base, 4.0))
	case "steps":
		return math.Max(2.0, math.Min(base, 3.0))
	}
	return base
}

// strokeRoads draws every highway centerline with per-class thickness.
func (b *builder) strokeRoads() {
	for _, w := range b.coll.Ways {
		if w.Tags == nil || !w.Tags.IsHighway() {
			continue
		}
		b.stats.RoadWays++

		widthM, ok := feature.ParseWidthMeters(w.Tags.Get("width"))
		if !ok {
			widthM = roadWidth(w.Tags.Get("highway"), b.cfg.RoadWidthM)
		}
		rCells := raster.RadiusCells(widthM, b.a.MetersPerCell)

		coords := b.coll.Project(w, b.a)
		if len(coords) >= 2 {
			b.stats.RoadSegments += len(coords) - 1
		}
		for i := 0; i+1 < len(coords); i++ {
			pa, pb := coords[i], coords[i+1]
			if !b.nearGrid(pa[0], pa[1]) || !b.nearGrid(pb[0], pb[1]) {
				continue
			}
			b.stats.RoadCells += raster.DrawLine(b.grid, pa, pb, rCells, tiles.Road)
		}
	}
}

// stampJunctions writes a 3x3 junction template wherever a road cell has at
// least 3 of its 4-neighbors also road. Anchors are deduplicated so no
// anchor is stamped twice; the two junction looks alternate by parity.
func (b *builder) stampJunctions() {
	stamped := tiles.NewCellSet()
	for x := 1; x < b.grid.Width()-1; x++ {
		for y := 1; y < b.grid.Height()-1; y++ {
			if !tiles.IsRoadBase(b.grid.Get(x, y)) {
				continue
			}
			neighbors := 0
			for _, d := range [4][2]int{{0, -1}, {0, 1}, {-1, 0}, {1, 0}} {
				if tiles.IsRoadBase(b.grid.Get(x+d[0], y+d[1])) {
					neighbors++
				}
			}
			if neighbors < 3 {
				continue
			}
			ax, ay := x-1, y-1
			if ax < 0 || ay < 0 || ax+2 >= b.grid.Width() || ay+2 >= b.grid.Height() {
				continue
			}
			if stamped.Has(ax, ay) {
				continue
			}
			id := tiles.JunctionA
			if (x+y)&1 == 1 {
				id = tiles.JunctionB
			}
			if b.grid.Stamp(ax, ay, id) > 0 {
				b.stats.JunctionStamps++
				stamped.Add(ax, ay)
			}
		}
	}
}
