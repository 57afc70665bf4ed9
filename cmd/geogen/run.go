package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/Kruzntat/Hostile-OpenRA-For-TAKX/internal/overpass"
	"github.com/Kruzntat/Hostile-OpenRA-For-TAKX/pkg/aoi"
	"github.com/Kruzntat/Hostile-OpenRA-For-TAKX/pkg/feature"
	"github.com/Kruzntat/Hostile-OpenRA-For-TAKX/pkg/landcover"
	"github.com/Kruzntat/Hostile-OpenRA-For-TAKX/pkg/mapfile"
	"github.com/Kruzntat/Hostile-OpenRA-For-TAKX/pkg/overlay"
	"github.com/Kruzntat/Hostile-OpenRA-For-TAKX/pkg/place"
	"github.com/Kruzntat/Hostile-OpenRA-For-TAKX/pkg/profile"
	"github.com/Kruzntat/Hostile-OpenRA-For-TAKX/pkg/tiles"
	"github.com/Kruzntat/Hostile-OpenRA-For-TAKX/pkg/validation"
)

const defaultCacheDir = ".geogen-cache"

type boundsOptions struct {
	cells         int
	metersPerCell float64
	osmSummary    bool
	overpassURL   string
	cacheDir      string
	noCache       bool
	pretty        bool
}

type generateOptions struct {
	profilePath string
	outPath     string
	install     bool
	noCache     bool
	pretty      bool
}

type validateOptions struct {
	cells         int
	metersPerCell float64
	cell          string
	latlon        string
	pretty        bool
}

// resolveProfile merges a profile file with explicit flags. Flags are bound
// directly to flagProfile, so without a file it is the effective profile;
// with a file, only flags the user actually set override the file's values.
func resolveProfile(cmd *cobra.Command, flagProfile *profile.Profile, path string) (*profile.Profile, error) {
	if path == "" {
		if err := flagProfile.Validate(); err != nil {
			return nil, err
		}
		return flagProfile, nil
	}
	p, err := profile.Load(path)
	if err != nil {
		return nil, err
	}

	overrides := map[string]func(){
		"cells":                       func() { p.Grid.Cells = flagProfile.Grid.Cells },
		"meters-per-cell":             func() { p.Grid.MetersPerCell = flagProfile.Grid.MetersPerCell },
		"seed":                        func() { p.Seed = flagProfile.Seed },
		"overpass-url":                func() { p.OverpassURL = flagProfile.OverpassURL },
		"cache-dir":                   func() { p.CacheDir = flagProfile.CacheDir },
		"overlay":                     func() { p.Overlay.Enabled = flagProfile.Overlay.Enabled },
		"water":                       func() { p.Overlay.Water = flagProfile.Overlay.Water },
		"roads":                       func() { p.Overlay.Roads = flagProfile.Overlay.Roads },
		"road-width-m":                func() { p.Overlay.RoadWidthM = flagProfile.Overlay.RoadWidthM },
		"waterway-width-m":            func() { p.Overlay.WaterwayWidthM = flagProfile.Overlay.WaterwayWidthM },
		"buildings":                   func() { p.Buildings.Enabled = flagProfile.Buildings.Enabled },
		"building-density":            func() { p.Buildings.Density = flagProfile.Buildings.Density },
		"max-buildings":               func() { p.Buildings.Max = flagProfile.Buildings.Max },
		"building-search-radius":      func() { p.Buildings.SearchRadius = flagProfile.Buildings.SearchRadius },
		"building-placement-mode":     func() { p.Buildings.Mode = flagProfile.Buildings.Mode },
		"building-audit":              func() { p.Buildings.AuditPath = flagProfile.Buildings.AuditPath },
		"vegetation":                  func() { p.Vegetation.Enabled = flagProfile.Vegetation.Enabled },
		"veg-density":                 func() { p.Vegetation.Density = flagProfile.Vegetation.Density },
		"max-veg-actors":              func() { p.Vegetation.Max = flagProfile.Vegetation.Max },
		"veg-min-spacing":             func() { p.Vegetation.MinSpacing = flagProfile.Vegetation.MinSpacing },
		"veg-patch-size":              func() { p.Vegetation.PatchSize = flagProfile.Vegetation.PatchSize },
		"veg-patch-boost":             func() { p.Vegetation.PatchBoost = flagProfile.Vegetation.PatchBoost },
		"suppress-veg-near-roads":     func() { p.Vegetation.RoadRadius = flagProfile.Vegetation.RoadRadius },
		"suppress-veg-near-buildings": func() { p.Vegetation.BuildingRadius = flagProfile.Vegetation.BuildingRadius },
		"worldcover-path":             func() { p.Landcover.WorldCoverPath = flagProfile.Landcover.WorldCoverPath },
		"worldcover-year":             func() { p.Landcover.WorldCoverYear = flagProfile.Landcover.WorldCoverYear },
		"gsw-path":                    func() { p.Landcover.GSWPath = flagProfile.Landcover.GSWPath },
		"gsw-version":                 func() { p.Landcover.GSWVersion = flagProfile.Landcover.GSWVersion },
		"gsw-min-occurrence":          func() { p.Landcover.GSWMinOccurrence = flagProfile.Landcover.GSWMinOccurrence },
		"title":                       func() { p.Output.Title = flagProfile.Output.Title },
		"author":                      func() { p.Output.Author = flagProfile.Output.Author },
		"tileset":                     func() { p.Output.Tileset = flagProfile.Output.Tileset },
		"categories":                  func() { p.Output.Categories = flagProfile.Output.Categories },
		"players":                     func() { p.Output.Players = flagProfile.Output.Players },
		"place-spawns":                func() { p.Output.PlaceSpawns = flagProfile.Output.PlaceSpawns },
		"install-release":             func() { p.Output.InstallRelease = flagProfile.Output.InstallRelease },
		"install-path":                func() { p.Output.InstallPath = flagProfile.Output.InstallPath },
	}
	for name, apply := range overrides {
		if cmd.Flags().Changed(name) {
			apply()
		}
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return p, nil
}

func printJSON(v any, pretty bool) error {
	enc := json.NewEncoder(os.Stdout)
	if pretty {
		enc.SetIndent("", "  ")
	}
	return enc.Encode(v)
}

func resolveAOI(mgrsRef string, cells int, metersPerCell float64) (aoi.AOI, error) {
	center, err := aoi.Resolve(mgrsRef)
	if err != nil {
		return aoi.AOI{}, fmt.Errorf("resolving %q: %w (format: <zone><band><2-letter square><easting><northing> with equal digits, e.g. 11SMT1234512345)", mgrsRef, err)
	}
	a, err := aoi.New(center, cells, metersPerCell)
	if err != nil {
		return aoi.AOI{}, err
	}
	return a, nil
}

func runBounds(ctx context.Context, mgrsRef string, opts boundsOptions) error {
	a, err := resolveAOI(mgrsRef, opts.cells, opts.metersPerCell)
	if err != nil {
		return err
	}

	out := map[string]any{
		"input": map[string]any{
			"mgrs":            mgrsRef,
			"cells":           opts.cells,
			"meters_per_cell": opts.metersPerCell,
		},
		"center": a.Center,
		"bounds": map[string]any{
			"extent_m": a.ExtentMeters(),
			"bbox_utm": map[string]float64{
				"min_e": a.MinE, "max_e": a.MaxE, "min_n": a.MinN, "max_n": a.MaxN,
			},
			"corners": map[string]aoi.Corner{
				"NW": a.NW, "NE": a.NE, "SE": a.SE, "SW": a.SW,
			},
			"bbox_latlon": a.BBox(),
		},
	}

	if opts.osmSummary {
		cacheDir := opts.cacheDir
		if opts.noCache {
			cacheDir = ""
		}
		client := overpass.New(opts.overpassURL, cacheDir)
		coll, err := client.Fetch(ctx, a.BBox())
		if err != nil {
			out["osm_summary"] = map[string]any{"bbox": a.BBox(), "error": err.Error()}
		} else {
			out["osm_summary"] = map[string]any{"bbox": a.BBox(), "counts": feature.Summarize(coll)}
		}
	}

	return printJSON(out, opts.pretty)
}

func runGenerate(ctx context.Context, mgrsRef string, p *profile.Profile, opts generateOptions) error {
	start := time.Now()
	a, err := resolveAOI(mgrsRef, p.Grid.Cells, p.Grid.MetersPerCell)
	if err != nil {
		return err
	}

	report := validation.NewReport()
	out := map[string]any{
		"run_id": uuid.NewString(),
		"input": map[string]any{
			"mgrs":            mgrsRef,
			"cells":           p.Grid.Cells,
			"meters_per_cell": p.Grid.MetersPerCell,
			"seed":            p.Seed,
			"tileset":         p.Output.Tileset,
		},
		"center": a.Center,
	}

	grid := tiles.NewGrid(a.Cells, a.Cells) // all-clear fallback
	var actors []place.Actor
	osmUsed := false

	if p.Overlay.Enabled || p.Buildings.Enabled {
		cacheDir := p.CacheDir
		if cacheDir == "" {
			cacheDir = defaultCacheDir
		}
		if opts.noCache {
			cacheDir = ""
		}
		client := overpass.New(p.OverpassURL, cacheDir)
		coll, err := client.Fetch(ctx, a.BBox())
		if err != nil {
			out["overlay_error"] = err.Error()
			report.AddWarning(validation.Result{
				Level:   validation.LevelOverlay,
				Message: "feature fetch failed, emitting all-clear terrain",
				Subject: "overpass",
			})
		} else {
			grid, actors, osmUsed = buildTerrainAndActors(a, coll, p, report, out)
		}
	}

	bin, err := mapfile.Encode(grid, false)
	if err != nil {
		return fmt.Errorf("encoding map.bin: %w", err)
	}

	title := p.Output.Title
	if title == "" {
		title = "RealWorld " + mgrsRef
	}
	meta := mapfile.MapMeta{
		Title:        title,
		Author:       p.Output.Author,
		Tileset:      p.Output.Tileset,
		Width:        a.Cells,
		Height:       a.Cells,
		Categories:   p.Output.Categories,
		Players:      p.Output.Players,
		PlaceSpawns:  p.Output.PlaceSpawns,
		Attributions: buildAttributions(p, osmUsed),
		AOI:          &a,
	}
	if err := mapfile.WriteOramap(opts.outPath, mapfile.BuildYAML(meta, actors), bin); err != nil {
		return fmt.Errorf("writing oramap: %w", err)
	}

	oramapInfo := map[string]any{
		"path":          opts.outPath,
		"bytes_map_bin": len(bin),
		"actors":        len(actors),
	}
	if opts.install {
		dir, err := mapfile.Install(opts.outPath, p.Output.InstallPath, p.Output.InstallRelease)
		if err != nil {
			oramapInfo["install_error"] = err.Error()
		} else {
			oramapInfo["installed_to"] = dir
		}
	}
	out["oramap"] = oramapInfo
	out["validation"] = report
	out["elapsed_ms"] = time.Since(start).Milliseconds()

	if err := printJSON(out, opts.pretty); err != nil {
		return err
	}
	if !report.Valid {
		printValidationReport(report)
		os.Exit(1)
	}
	return nil
}

// buildTerrainAndActors runs the overlay and placement stages. Overlay
// faults degrade to the all-clear grid with no actors; the error rides in
// the JSON output rather than failing the run. When the overlay is off,
// placement still runs against the all-clear grid so buildings-only runs
// produce actors.
func buildTerrainAndActors(a aoi.AOI, coll *feature.Collection, p *profile.Profile, report *validation.Report, out map[string]any) (*tiles.Grid, []place.Actor, bool) {
	grid := tiles.NewGrid(a.Cells, a.Cells)
	forest := tiles.NewCellSet()
	builtup := tiles.NewCellSet()
	roads := tiles.NewCellSet()

	if p.Overlay.Enabled {
		cfg := p.OverlayConfig()
		cfg.Landcover = landcover.BuildMasks(a, landcover.OpenSampler(p.Landcover.WorldCoverPath))
		if p.Landcover.GSWPath != "" {
			cfg.WaterMask = landcover.BuildWaterMask(a, landcover.OpenSampler(p.Landcover.GSWPath), p.Landcover.GSWMinOccurrence)
		}

		res, overlayReport, err := overlay.Build(a, coll, cfg)
		report.Merge(overlayReport)
		if err != nil {
			out["overlay_error"] = err.Error()
			report.AddWarning(validation.Result{
				Level:       validation.LevelOverlay,
				Message:     "overlay failed, emitting all-clear terrain",
				Subject:     "overlay",
				ActualValue: err.Error(),
			})
			return grid, nil, false
		}
		out["overlay_stats"] = res.Stats
		grid, forest, builtup, roads = res.Grid, res.Forest, res.Builtup, res.Roads
	}

	engine := place.NewEngine(p.Seed)
	var actors []place.Actor
	buildingCells := tiles.NewCellSet()

	if p.Buildings.Enabled {
		bres, bReport := engine.PlaceBuildings(grid, coll, a, p.BuildingConfig())
		report.Merge(bReport)
		actors = append(actors, bres.Actors...)
		buildingCells = bres.Occupied
		if p.Buildings.AuditPath != "" {
			if err := place.WriteAuditCSV(p.Buildings.AuditPath, bres.Audit); err != nil {
				report.AddWarning(validation.Result{
					Level:       validation.LevelPlacement,
					Message:     "writing building audit failed",
					Subject:     p.Buildings.AuditPath,
					ActualValue: err.Error(),
				})
			}
		}
	}
	if p.Vegetation.Enabled {
		vres, vReport := engine.PlaceVegetation(grid, forest, builtup, roads, buildingCells, p.VegetationConfig())
		report.Merge(vReport)
		actors = append(actors, vres.Actors...)
		out["vegetation_skips"] = vres.Skipped
	}
	return grid, actors, true
}

func buildAttributions(p *profile.Profile, usedOSM bool) []mapfile.Attribution {
	var atts []mapfile.Attribution
	if usedOSM {
		endpoint := p.OverpassURL
		if endpoint == "" {
			endpoint = overpass.DefaultURL
		}
		atts = append(atts, mapfile.Attribution{
			Name:    "OpenStreetMap contributors",
			License: "ODbL 1.0",
			URL:     "https://www.openstreetmap.org/copyright",
			Source:  "Overpass API: " + endpoint,
		})
	}
	if p.Landcover.WorldCoverPath != "" {
		year := p.Landcover.WorldCoverYear
		if year == "" {
			year = fmt.Sprintf("%d", time.Now().Year())
		}
		atts = append(atts, mapfile.Attribution{
			Name:    "ESA WorldCover (10 m)",
			License: "CC BY 4.0",
			URL:     "https://worldcover2020.esa.int/",
			Notes:   "Used for vegetation/built-up mask",
			Extra:   []mapfile.ExtraField{{Key: "DatasetYear", Value: year}},
		})
	}
	if p.Landcover.GSWPath != "" {
		version := p.Landcover.GSWVersion
		if version == "" {
			version = fmt.Sprintf("%d", time.Now().Year())
		}
		atts = append(atts, mapfile.Attribution{
			Name:    "JRC Global Surface Water",
			License: "CC BY 4.0",
			URL:     "https://global-surface-water.appspot.com/",
			Notes:   "Augments permanent water",
			Extra: []mapfile.ExtraField{
				{Key: "DatasetVersion", Value: version},
				{Key: "MinOccurrencePct", Value: fmt.Sprintf("%g", p.Landcover.GSWMinOccurrence)},
			},
		})
	}
	return atts
}
