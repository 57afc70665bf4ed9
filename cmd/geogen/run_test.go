package main

import (
	"testing"

	"github.com/Kruzntat/Hostile-OpenRA-For-TAKX/pkg/aoi"
	"github.com/Kruzntat/Hostile-OpenRA-For-TAKX/pkg/feature"
	"github.com/Kruzntat/Hostile-OpenRA-For-TAKX/pkg/geodesy"
	"github.com/Kruzntat/Hostile-OpenRA-For-TAKX/pkg/profile"
	"github.com/Kruzntat/Hostile-OpenRA-For-TAKX/pkg/tiles"
	"github.com/Kruzntat/Hostile-OpenRA-For-TAKX/pkg/validation"
)

func testAOI(t *testing.T, cells int) aoi.AOI {
	t.Helper()
	u, err := geodesy.FromLatLon(36.0, -81.2)
	if err != nil {
		t.Fatalf("FromLatLon: %v", err)
	}
	a, err := aoi.New(aoi.Center{Lat: 36.0, Lon: -81.2, UTM: u}, cells, 4)
	if err != nil {
		t.Fatalf("aoi.New: %v", err)
	}
	return a
}

func nodeAt(t *testing.T, a aoi.AOI, id int64, cx, cy float64) feature.Node {
	t.Helper()
	e := a.MinE + cx*a.MetersPerCell
	n := a.MaxN - cy*a.MetersPerCell
	lat, lon, err := geodesy.ToLatLon(geodesy.UTM{
		Easting:    e,
		Northing:   n,
		ZoneNumber: a.Center.UTM.ZoneNumber,
		ZoneLetter: a.Center.UTM.ZoneLetter,
	})
	if err != nil {
		t.Fatalf("ToLatLon: %v", err)
	}
	return feature.Node{ID: id, Lat: lat, Lon: lon}
}

func TestBuildingsPlaceWithoutOverlay(t *testing.T) {
	a := testAOI(t, 20)

	var nodes []feature.Node
	var ids []int64
	for i, c := range [][2]float64{{8, 8}, {10, 8}, {10, 10}, {8, 10}} {
		n := nodeAt(t, a, int64(1000+i), c[0], c[1])
		nodes = append(nodes, n)
		ids = append(ids, n.ID)
	}
	way := feature.Way{ID: 1, NodeIDs: ids, Tags: feature.Tags{"building": "yes"}}
	coll := feature.NewCollection(nodes, []feature.Way{way}, nil)

	p := profile.Default()
	p.Grid.Cells = 20
	p.Overlay.Enabled = false
	p.Buildings.Enabled = true
	p.Buildings.Density = 1
	p.Vegetation.Enabled = false

	report := validation.NewReport()
	out := map[string]any{}
	grid, actors, ok := buildTerrainAndActors(a, coll, p, report, out)
	if !ok {
		t.Fatalf("buildTerrainAndActors not ok: %v", out["overlay_error"])
	}
	if len(actors) == 0 {
		t.Fatal("expected buildings placed on the all-clear grid")
	}
	for _, act := range actors {
		if act.X < 0 || act.Y < 0 || act.X+act.W > 20 || act.Y+act.H > 20 {
			t.Errorf("actor %q footprint out of bounds at (%d,%d)", act.Name, act.X, act.Y)
		}
	}
	// Terrain passes were skipped, so the grid stays all-clear.
	for x := 0; x < 20; x++ {
		for y := 0; y < 20; y++ {
			if grid.Get(x, y) != tiles.Clear {
				t.Fatalf("cell (%d,%d) is template %d, want clear", x, y, grid.Get(x, y))
			}
		}
	}
	if _, present := out["overlay_stats"]; present {
		t.Error("overlay_stats emitted for an overlay-off run")
	}
}
