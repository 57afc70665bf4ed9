// Package overlay converts the upstream vector feature snapshot into the
// terrain tile grid. Stages run in a fixed total order because later passes
// query the state left by earlier ones: water areas, waterway centerlines,
// water-mask augmentation, river smoothing stamps, shoreline, roads, road
// junctions, land-use classification, urban patching.
package overlay

import (
	"fmt"

	"github.com/Kruzntat/Hostile-OpenRA-For-TAKX/pkg/aoi"
	"github.com/Kruzntat/Hostile-OpenRA-For-TAKX/pkg/feature"
	"github.com/Kruzntat/Hostile-OpenRA-For-TAKX/pkg/landcover"
	"github.com/Kruzntat/Hostile-OpenRA-For-TAKX/pkg/tiles"
	"github.com/Kruzntat/Hostile-OpenRA-For-TAKX/pkg/validation"
)

// Config controls the overlay passes.
type Config struct {
	IncludeWater bool
	IncludeRoads bool

	RoadWidthM     float64
	WaterwayWidthM float64

	// Optional auxiliary raster masks; nil contributes nothing.
	Landcover *landcover.Masks
	WaterMask tiles.CellSet
}

// DefaultConfig mirrors the generator's default drawing widths.
func DefaultConfig() Config {
	return Config{
		IncludeWater:   true,
		IncludeRoads:   true,
		RoadWidthM:     8.0,
		WaterwayWidthM: 6.0,
	}
}

// Stats counts what each pass touched.
type Stats struct {
	WaterCells     int `json:"water_cells"`
	RiverSamples   int `json:"river_samples,omitempty"`
	RiverStamps    int `json:"river_stamps,omitempty"`
	ShoreCells     int `json:"shore_cells,omitempty"`
	RoadWays       int `json:"road_ways,omitempty"`
	RoadSegments   int `json:"road_segments,omitempty"`
	RoadCells      int `json:"road_cells"`
	JunctionStamps int `json:"road_junction_stamps,omitempty"`
	UrbanCells     int `json:"urban_cells,omitempty"`
	ForestCells    int `json:"forest_cells"`
	BuiltupCells   int `json:"builtup_cells"`
}

// Result is the finished terrain grid plus the derived cell sets the
// placement engine reads.
type Result struct {
	Grid    *tiles.Grid
	Forest  tiles.CellSet
	Builtup tiles.CellSet
	Roads   tiles.CellSet
	Stats   Stats
}

// riverSample is one oriented sample collected along a waterway centerline.
type riverSample struct {
	X      int
	Y      int
	Orient orientation
}

type orientation int

const (
	orientVertical orientation = iota
	orientHorizontal
)

type builder struct {
	a    aoi.AOI
	coll *feature.Collection
	cfg  Config

	grid         *tiles.Grid
	riverSamples map[riverSample]struct{}
	stats        Stats
	report       *validation.Report
}

// Build runs the full overlay pipeline. On error the returned result is nil;
// the caller constructs the all-clear fallback grid.
func Build(a aoi.AOI, coll *feature.Collection, cfg Config) (res *Result, rep *validation.Report, err error) {
	b := &builder{
		a:            a,
		coll:         coll,
		cfg:          cfg,
		grid:         tiles.NewGrid(a.Cells, a.Cells),
		riverSamples: make(map[riverSample]struct{}),
		report:       validation.NewReport(),
	}

	// A fault in any pass is a core bug; surface it as an error rather than
	// aborting the process, so the caller can fall back to an empty map.
	defer func() {
		if r := recover(); r != nil {
			res, rep, err = nil, b.report, fmt.Errorf("overlay pipeline fault: %v", r)
		}
	}()

	if cfg.IncludeWater {
		b.fillWaterAreas()
		b.strokeWaterways()
		b.augmentWater()
		b.stampRivers()
		b.markBeaches()
	}
	if cfg.IncludeRoads {
		b.strokeRoads()
		b.stampJunctions()
	}

	forest, builtup := b.classifyLanduse()
	b.patchUrban(builtup)

	roads := b.collectRoads()
	b.stats.ForestCells = forest.Len()
	b.stats.BuiltupCells = builtup.Len()

	b.report.AddInfo(validation.Result{
		Level: validation.LevelOverlay,
		Message: fmt.Sprintf("overlay complete: %d water cells, %d road cells, %d forest cells, %d built-up cells",
			b.stats.WaterCells, b.stats.RoadCells, b.stats.ForestCells, b.stats.BuiltupCells),
	})

	return &Result{
		Grid:    b.grid,
		Forest:  forest,
		Builtup: builtup,
		Roads:   roads,
		Stats:   b.stats,
	}, b.report, nil
}

// nearGrid drops segment endpoints that lie far outside the grid so strokes
// only ever clip at the border.
func (b *builder) nearGrid(x, y float64) bool {
	w := float64(b.grid.Width())
	h := float64(b.grid.Height())
	return x >= -1 && y >= -1 && x <= w+1 && y <= h+1
}

// collectRoads scans the finished grid for every road-class cell.
func (b *builder) collectRoads() tiles.CellSet {
	roads := tiles.NewCellSet()
	for x := 0; x < b.grid.Width(); x++ {
		for y := 0; y < b.grid.Height(); y++ {
			if tiles.IsRoad(b.grid.Get(x, y)) {
				roads.Add(x, y)
			}
		}
	}
	return roads
}
