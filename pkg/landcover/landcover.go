// Package landcover samples auxiliary raster datasets (land-cover
// classification, surface-water occurrence) at cell centers and turns them
// into grid masks. Missing datasets degrade to absent masks, never errors.
package landcover

import (
	"github.com/Kruzntat/Hostile-OpenRA-For-TAKX/pkg/aoi"
	"github.com/Kruzntat/Hostile-OpenRA-For-TAKX/pkg/tiles"
)

// ESA WorldCover class codes consumed by the masks.
const (
	ClassTreeCover = 10
	ClassShrubland = 20
	ClassBuiltUp   = 50
)

// Sampler reads one raster value at a geographic point. ok=false means the
// point is outside the dataset or has no data.
type Sampler interface {
	Sample(lat, lon float64) (value float64, ok bool)
}

// Masks are the land-cover derived cell sets.
type Masks struct {
	BuiltUp      tiles.CellSet
	ForestPrefer tiles.CellSet
}

// BuildMasks samples a land-cover raster at every cell center and buckets
// built-up (50) and tree/shrub (10, 20) classes. A nil sampler yields nil.
func BuildMasks(a aoi.AOI, s Sampler) *Masks {
	if s == nil {
		return nil
	}
	m := &Masks{
		BuiltUp:      tiles.NewCellSet(),
		ForestPrefer: tiles.NewCellSet(),
	}
	for x := 0; x < a.Cells; x++ {
		for y := 0; y < a.Cells; y++ {
			lat, lon := a.ToLatLon(x, y)
			v, ok := s.Sample(lat, lon)
			if !ok {
				continue
			}
			switch int(v) {
			case ClassBuiltUp:
				m.BuiltUp.Add(x, y)
			case ClassTreeCover, ClassShrubland:
				m.ForestPrefer.Add(x, y)
			}
		}
	}
	return m
}

// BuildWaterMask samples a surface-water occurrence raster at every cell
// center. Binary rasters (all values 0 or 1) mark water wherever the value is
// positive; occurrence rasters use minOccurrence as the threshold. A nil
// sampler yields nil.
func BuildWaterMask(a aoi.AOI, s Sampler, minOccurrence float64) tiles.CellSet {
	if s == nil {
		return nil
	}
	water := tiles.NewCellSet()
	for x := 0; x < a.Cells; x++ {
		for y := 0; y < a.Cells; y++ {
			lat, lon := a.ToLatLon(x, y)
			v, ok := s.Sample(lat, lon)
			if !ok {
				continue
			}
			if isBinaryValue(v) {
				if v > 0 {
					water.Add(x, y)
				}
			} else if v >= minOccurrence {
				water.Add(x, y)
			}
		}
	}
	return water
}

// isBinaryValue reports whether v looks like a 0/1 flag rather than an
// occurrence percentage.
func isBinaryValue(v float64) bool {
	return v >= 0 && v <= 1 && (v == 0 || v == 1)
}
