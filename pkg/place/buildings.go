package place

import (
	"math"

	"github.com/Kruzntat/Hostile-OpenRA-For-TAKX/pkg/aoi"
	"github.com/Kruzntat/Hostile-OpenRA-For-TAKX/pkg/feature"
	"github.com/Kruzntat/Hostile-OpenRA-For-TAKX/pkg/tiles"
	"github.com/Kruzntat/Hostile-OpenRA-For-TAKX/pkg/validation"
	"github.com/paulmach/orb"
)

// BuildingMode selects how hard the search works when the fitted footprint
// does not land cleanly.
type BuildingMode string

const (
	// ModeAccurate tries only the footprint fitted from the candidate's
	// bounding box.
	ModeAccurate BuildingMode = "accurate"
	// ModeFallback additionally degrades to smaller footprints.
	ModeFallback BuildingMode = "fallback"
	// ModeAggressive degrades like fallback and doubles the search radius.
	ModeAggressive BuildingMode = "aggressive"
)

// Audit reason codes, one per candidate outcome.
const (
	ReasonOK          = "ok"
	ReasonDensitySkip = "density_skip"
	ReasonNoCoords    = "no_coords"
	ReasonSearchFail  = "search_fail"
)

// BuildingConfig tunes the building placement pass.
type BuildingConfig struct {
	Density      float64
	Max          int
	SearchRadius int
	Mode         BuildingMode
}

// DefaultBuildingConfig mirrors the generator's stock settings.
func DefaultBuildingConfig() BuildingConfig {
	return BuildingConfig{Density: 1.0, Max: 1200, SearchRadius: 2, Mode: ModeAccurate}
}

// AuditRow records the outcome for one building candidate.
type AuditRow struct {
	SourceType string
	ID         int64
	Placed     bool
	Reason     string
	FitW       int
	FitH       int
	BBoxW      int
	BBoxH      int
}

// BuildingResult is the committed building actor set plus its audit trail
// and the cells those actors cover.
type BuildingResult struct {
	Actors   []Actor
	Audit    []AuditRow
	Occupied tiles.CellSet
}

type buildingCandidate struct {
	sourceType string
	id         int64
	points     []orb.Point
}

// PlaceBuildings walks building-tagged ways then building-tagged relations
// in feature order and places a civilian structure for each candidate that
// survives the density draw and the footprint search.
func (e *Engine) PlaceBuildings(g *tiles.Grid, coll *feature.Collection, a aoi.AOI, cfg BuildingConfig) (BuildingResult, *validation.Report) {
	report := validation.NewReport()
	res := BuildingResult{Occupied: tiles.NewCellSet()}
	index := newOccupancyIndex()

	for _, cand := range buildingCandidates(coll, a) {
		if len(res.Actors) >= cfg.Max {
			break
		}
		if e.rng.Float64() > cfg.Density {
			res.Audit = append(res.Audit, AuditRow{
				SourceType: cand.sourceType, ID: cand.id, Reason: ReasonDensitySkip,
			})
			continue
		}
		if len(cand.points) == 0 {
			res.Audit = append(res.Audit, AuditRow{
				SourceType: cand.sourceType, ID: cand.id, Reason: ReasonNoCoords,
			})
			continue
		}
		res.Audit = append(res.Audit, e.placeOne(g, index, &res, cand, cfg))
	}

	report.AddInfo(validation.Result{
		Level:       validation.LevelPlacement,
		Message:     "building placement finished",
		Subject:     "buildings",
		ActualValue: map[string]int{"candidates": len(res.Audit), "placed": len(res.Actors)},
	})
	return res, report
}

func buildingCandidates(coll *feature.Collection, a aoi.AOI) []buildingCandidate {
	var out []buildingCandidate
	for _, w := range coll.Ways {
		if !w.Tags.IsBuilding() {
			continue
		}
		pts := coll.Project(w, a)
		if len(pts) < 3 {
			// Degenerate ring, nothing to anchor on.
			continue
		}
		out = append(out, buildingCandidate{
			sourceType: "way", id: w.ID, points: pts,
		})
	}
	for _, rel := range coll.Relations {
		if !rel.Tags.IsBuilding() {
			continue
		}
		out = append(out, buildingCandidate{
			sourceType: "relation", id: rel.ID, points: coll.OuterPoints(rel, a),
		})
	}
	return out
}

func (e *Engine) placeOne(g *tiles.Grid, index *occupancyIndex, res *BuildingResult, cand buildingCandidate, cfg BuildingConfig) AuditRow {
	minX, minY := cand.points[0].X(), cand.points[0].Y()
	maxX, maxY := minX, minY
	for _, p := range cand.points[1:] {
		minX = math.Min(minX, p.X())
		maxX = math.Max(maxX, p.X())
		minY = math.Min(minY, p.Y())
		maxY = math.Max(maxY, p.Y())
	}

	bboxW := maxInt(1, int(math.Round(maxX-minX)))
	bboxH := maxInt(1, int(math.Round(maxY-minY)))
	fitW := clampInt(bboxW, 1, 2)
	fitH := clampInt(bboxH, 1, 2)

	anchorX := clampInt(int(math.Round((minX+maxX)/2-float64(fitW)/2)), 0, g.Width()-fitW)
	anchorY := clampInt(int(math.Round((minY+maxY)/2-float64(fitH)/2)), 0, g.Height()-fitH)

	radius := cfg.SearchRadius
	if cfg.Mode == ModeAggressive {
		radius *= 2
	}

	row := AuditRow{
		SourceType: cand.sourceType, ID: cand.id,
		FitW: fitW, FitH: fitH, BBoxW: bboxW, BBoxH: bboxH,
	}
	for _, fp := range footprintSequence(fitW, fitH, cfg.Mode) {
		if x, y, ok := e.searchFootprint(g, index, anchorX, anchorY, fp[0], fp[1], radius); ok {
			e.commitBuilding(g, index, res, x, y, fp[0], fp[1])
			row.Placed = true
			row.Reason = ReasonOK
			row.FitW, row.FitH = fp[0], fp[1]
			return row
		}
	}
	row.Reason = ReasonSearchFail
	return row
}

// footprintSequence returns the footprints to try, fitted first. Fallback
// modes degrade 2×2 → 2×1 → 1×2 → 1×1, and the rectangular footprints
// degrade straight to 1×1.
func footprintSequence(w, h int, mode BuildingMode) [][2]int {
	seq := [][2]int{{w, h}}
	if mode == ModeAccurate {
		return seq
	}
	switch {
	case w == 2 && h == 2:
		seq = append(seq, [2]int{2, 1}, [2]int{1, 2}, [2]int{1, 1})
	case w == 2 || h == 2:
		seq = append(seq, [2]int{1, 1})
	}
	return seq
}

func (e *Engine) searchFootprint(g *tiles.Grid, index *occupancyIndex, ax, ay, w, h, radius int) (int, int, bool) {
	for dy := -radius; dy <= radius; dy++ {
		for dx := -radius; dx <= radius; dx++ {
			x, y := ax+dx, ay+dy
			if canPlaceFootprint(g, index, x, y, w, h) {
				return x, y, true
			}
		}
	}
	return 0, 0, false
}

func canPlaceFootprint(g *tiles.Grid, index *occupancyIndex, x, y, w, h int) bool {
	if x < 0 || y < 0 || x+w > g.Width() || y+h > g.Height() {
		return false
	}
	for dx := 0; dx < w; dx++ {
		for dy := 0; dy < h; dy++ {
			if tiles.BlocksBuilding(g.Get(x+dx, y+dy)) {
				return false
			}
		}
	}
	return !index.intersects(x, y, w, h)
}

func (e *Engine) commitBuilding(g *tiles.Grid, index *occupancyIndex, res *BuildingResult, x, y, w, h int) {
	index.insert(x, y, w, h)
	for dx := 0; dx < w; dx++ {
		for dy := 0; dy < h; dy++ {
			res.Occupied.Add(x+dx, y+dy)
		}
	}
	res.Actors = append(res.Actors, Actor{
		Kind: KindBuilding, Name: pickBuilding(e.rng, w, h),
		X: x, Y: y, W: w, H: h, Owner: "Neutral",
	})
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
