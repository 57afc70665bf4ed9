package place

import (
	"sort"

	"github.com/Kruzntat/Hostile-OpenRA-For-TAKX/pkg/tiles"
	"github.com/Kruzntat/Hostile-OpenRA-For-TAKX/pkg/validation"
)

// VegetationConfig tunes the vegetation placement pass.
type VegetationConfig struct {
	Density        float64
	Max            int
	MinSpacing     int
	PatchSize      int
	PatchBoost     float64
	RoadRadius     int
	BuildingRadius int
}

// DefaultVegetationConfig mirrors the generator's stock settings.
func DefaultVegetationConfig() VegetationConfig {
	return VegetationConfig{
		Density:        0.15,
		Max:            4000,
		MinSpacing:     2,
		PatchSize:      32,
		PatchBoost:     1.5,
		RoadRadius:     1,
		BuildingRadius: 1,
	}
}

// VegSkipStats counts why forest cells were passed over.
type VegSkipStats struct {
	Terrain   int `json:"terrain"`
	BuiltUp   int `json:"built_up"`
	Draw      int `json:"draw"`
	NearRoad  int `json:"near_road"`
	NearBuild int `json:"near_building"`
	Spacing   int `json:"spacing"`
}

// VegetationResult is the committed tree actor set.
type VegetationResult struct {
	Actors  []Actor
	Skipped VegSkipStats
}

// PlaceVegetation scatters trees over forest-classified cells. Patch
// density boosts the draw in dense forest, and roads, buildings, and
// already-placed trees each suppress a Chebyshev window around themselves.
// Cells are visited in row-major order so the outcome is reproducible for
// a fixed seed.
func (e *Engine) PlaceVegetation(g *tiles.Grid, forest, builtup, roads, buildings tiles.CellSet, cfg VegetationConfig) (VegetationResult, *validation.Report) {
	report := validation.NewReport()
	var res VegetationResult

	cells := sortedCells(forest)
	high := highDensityPatches(g, forest, cfg.PatchSize)
	nearRoad := roads.Dilate(cfg.RoadRadius)
	nearBuilding := buildings.Dilate(cfg.BuildingRadius)
	index := newOccupancyIndex()

	for _, c := range cells {
		if len(res.Actors) >= cfg.Max {
			break
		}
		switch tiles.ClassOf(g.Get(c.X, c.Y)) {
		case tiles.ClassWater, tiles.ClassRiver, tiles.ClassBeach, tiles.ClassRoad, tiles.ClassJunction:
			res.Skipped.Terrain++
			continue
		}
		if builtup.Has(c.X, c.Y) {
			res.Skipped.BuiltUp++
			continue
		}
		prob := cfg.Density
		if high[patchKey(c.X, c.Y, cfg.PatchSize)] {
			prob *= cfg.PatchBoost
		}
		if prob > 1 {
			prob = 1
		}
		if e.rng.Float64() > prob {
			res.Skipped.Draw++
			continue
		}
		if nearRoad.Has(c.X, c.Y) {
			res.Skipped.NearRoad++
			continue
		}
		if nearBuilding.Has(c.X, c.Y) {
			res.Skipped.NearBuild++
			continue
		}
		if index.anyWithin(c.X, c.Y, cfg.MinSpacing) {
			res.Skipped.Spacing++
			continue
		}
		index.insert(c.X, c.Y, 1, 1)
		res.Actors = append(res.Actors, Actor{
			Kind: KindVegetation, Name: pickTree(e.rng),
			X: c.X, Y: c.Y, W: 1, H: 1, Owner: "Neutral",
		})
	}

	report.AddInfo(validation.Result{
		Level:       validation.LevelPlacement,
		Message:     "vegetation placement finished",
		Subject:     "vegetation",
		ActualValue: map[string]int{"forest_cells": len(cells), "placed": len(res.Actors)},
	})
	return res, report
}

func sortedCells(set tiles.CellSet) []tiles.Cell {
	cells := make([]tiles.Cell, 0, set.Len())
	for c := range set {
		cells = append(cells, c)
	}
	sort.Slice(cells, func(i, j int) bool {
		if cells[i].Y != cells[j].Y {
			return cells[i].Y < cells[j].Y
		}
		return cells[i].X < cells[j].X
	})
	return cells
}

func patchKey(x, y, size int) tiles.Cell {
	return tiles.Cell{X: x / size, Y: y / size}
}

// highDensityPatches partitions the grid into size×size patches and marks
// the ones whose forest density reaches the median over all non-empty
// patches. Edge patches are truncated by the grid, so their totals shrink
// accordingly.
func highDensityPatches(g *tiles.Grid, forest tiles.CellSet, size int) map[tiles.Cell]bool {
	if size <= 0 || forest.Len() == 0 {
		return map[tiles.Cell]bool{}
	}
	counts := map[tiles.Cell]int{}
	for c := range forest {
		counts[patchKey(c.X, c.Y, size)]++
	}
	densities := make([]float64, 0, len(counts))
	density := map[tiles.Cell]float64{}
	for key, n := range counts {
		w := minInt(size, g.Width()-key.X*size)
		h := minInt(size, g.Height()-key.Y*size)
		total := maxInt(1, w*h)
		d := float64(n) / float64(total)
		density[key] = d
		densities = append(densities, d)
	}
	sort.Float64s(densities)
	median := densities[len(densities)/2]

	high := make(map[tiles.Cell]bool, len(density))
	for key, d := range density {
		if d >= median {
			high[key] = true
		}
	}
	return high
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
