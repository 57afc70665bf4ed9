package overlay

import (
	"github.com/Kruzntat/Hostile-OpenRA-For-TAKX/pkg/raster"
	"github.com/Kruzntat/Hostile-OpenRA-For-TAKX/pkg/tiles"
)

// classifyLanduse rasterizes forest- and built-up-tagged polygons into two
// cell sets and unions in the optional land-cover masks. A cell claimed by
// both classes resolves to built-up, matching the urban patching pass that
// runs on the built-up set afterwards.
func (b *builder) classifyLanduse() (forest, builtup tiles.CellSet) {
	forest = tiles.NewCellSet()
	builtup = tiles.NewCellSet()

	w, h := b.grid.Width(), b.grid.Height()
	for _, way := range b.coll.Ways {
		if way.Tags == nil {
			continue
		}
		isForest := way.Tags.IsForest()
		isBuiltup := way.Tags.IsBuiltup()
		if !isForest && !isBuiltup {
			continue
		}
		ring := b.coll.ClosedRing(way, b.a)
		if ring == nil {
			continue
		}
		if isForest {
			raster.RingCells(w, h, ring, forest)
		} else {
			raster.RingCells(w, h, ring, builtup)
		}
	}

	if b.cfg.Landcover != nil {
		builtup.Union(b.cfg.Landcover.BuiltUp)
		forest.Union(b.cfg.Landcover.ForestPrefer)
	}

	// Built-up wins on overlap.
	for c := range builtup {
		delete(forest, c)
	}
	return forest, builtup
}

// patchUrban converts built-up cells still reading clear into the generic
// paved template.
func (b *builder) patchUrban(builtup tiles.CellSet) {
	for c := range builtup {
		if b.grid.InBounds(c.X, c.Y) && b.grid.Get(c.X, c.Y) == tiles.Clear {
			b.grid.Place(c.X, c.Y, tiles.Road, 0)
			b.stats.UrbanCells++
		}
	}
}
