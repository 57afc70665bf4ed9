// Package profile loads a map generation profile from YAML. A profile
// captures everything about a run except the MGRS reference itself, so a
// tuned configuration can be reused across areas.
package profile

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/Kruzntat/Hostile-OpenRA-For-TAKX/pkg/overlay"
	"github.com/Kruzntat/Hostile-OpenRA-For-TAKX/pkg/place"
)

// Grid controls AOI dimensions.
type Grid struct {
	Cells         int     `yaml:"cells"`
	MetersPerCell float64 `yaml:"meters_per_cell"`
}

// Overlay controls the terrain passes.
type Overlay struct {
	Enabled        bool    `yaml:"enabled"`
	Water          bool    `yaml:"water"`
	Roads          bool    `yaml:"roads"`
	RoadWidthM     float64 `yaml:"road_width_m"`
	WaterwayWidthM float64 `yaml:"waterway_width_m"`
}

// Buildings controls building actor placement.
type Buildings struct {
	Enabled      bool    `yaml:"enabled"`
	Density      float64 `yaml:"density"`
	Max          int     `yaml:"max"`
	SearchRadius int     `yaml:"search_radius"`
	Mode         string  `yaml:"mode"`
	AuditPath    string  `yaml:"audit_path"`
}

// Vegetation controls tree actor placement.
type Vegetation struct {
	Enabled        bool    `yaml:"enabled"`
	Density        float64 `yaml:"density"`
	Max            int     `yaml:"max"`
	MinSpacing     int     `yaml:"min_spacing"`
	PatchSize      int     `yaml:"patch_size"`
	PatchBoost     float64 `yaml:"patch_boost"`
	RoadRadius     int     `yaml:"suppress_near_roads"`
	BuildingRadius int     `yaml:"suppress_near_buildings"`
}

// Landcover controls the optional raster masks.
type Landcover struct {
	WorldCoverPath   string  `yaml:"worldcover_path"`
	WorldCoverYear   string  `yaml:"worldcover_year"`
	GSWPath          string  `yaml:"gsw_path"`
	GSWVersion       string  `yaml:"gsw_version"`
	GSWMinOccurrence float64 `yaml:"gsw_min_occurrence"`
}

// Output controls map.yaml identity and installation.
type Output struct {
	Title          string   `yaml:"title"`
	Author         string   `yaml:"author"`
	Tileset        string   `yaml:"tileset"`
	Categories     []string `yaml:"categories"`
	Players        int      `yaml:"players"`
	PlaceSpawns    bool     `yaml:"place_spawns"`
	InstallRelease string   `yaml:"install_release"`
	InstallPath    string   `yaml:"install_path"`
}

// Profile is a full generation configuration.
type Profile struct {
	Grid        Grid       `yaml:"grid"`
	OverpassURL string     `yaml:"overpass_url"`
	CacheDir    string     `yaml:"cache_dir"`
	Seed        int64      `yaml:"seed"`
	Overlay     Overlay    `yaml:"overlay"`
	Buildings   Buildings  `yaml:"buildings"`
	Vegetation  Vegetation `yaml:"vegetation"`
	Landcover   Landcover  `yaml:"landcover"`
	Output      Output     `yaml:"output"`
}

// Default returns the stock profile.
func Default() *Profile {
	oc := overlay.DefaultConfig()
	bc := place.DefaultBuildingConfig()
	vc := place.DefaultVegetationConfig()
	return &Profile{
		Grid: Grid{Cells: 512, MetersPerCell: 4},
		Overlay: Overlay{
			Enabled:        true,
			Water:          oc.IncludeWater,
			Roads:          oc.IncludeRoads,
			RoadWidthM:     oc.RoadWidthM,
			WaterwayWidthM: oc.WaterwayWidthM,
		},
		Buildings: Buildings{
			Enabled:      true,
			Density:      bc.Density,
			Max:          bc.Max,
			SearchRadius: bc.SearchRadius,
			Mode:         string(bc.Mode),
		},
		Vegetation: Vegetation{
			Enabled:        true,
			Density:        vc.Density,
			Max:            vc.Max,
			MinSpacing:     vc.MinSpacing,
			PatchSize:      vc.PatchSize,
			PatchBoost:     vc.PatchBoost,
			RoadRadius:     vc.RoadRadius,
			BuildingRadius: vc.BuildingRadius,
		},
		Landcover: Landcover{GSWMinOccurrence: 75},
		Output: Output{
			Author:      "OpenRA_WoW",
			Tileset:     "TEMPERAT",
			Categories:  []string{"RealWorld"},
			Players:     8,
			PlaceSpawns: true,
		},
	}
}

// Load reads a profile from a YAML file, layered over the defaults.
func Load(path string) (*Profile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading profile file: %w", err)
	}
	p := Default()
	if err := yaml.Unmarshal(data, p); err != nil {
		return nil, fmt.Errorf("parsing profile YAML: %w", err)
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return p, nil
}

// Validate rejects values the pipeline cannot run with.
func (p *Profile) Validate() error {
	if p.Grid.Cells <= 0 {
		return fmt.Errorf("grid.cells must be positive, got %d", p.Grid.Cells)
	}
	if p.Grid.MetersPerCell <= 0 {
		return fmt.Errorf("grid.meters_per_cell must be positive, got %g", p.Grid.MetersPerCell)
	}
	if p.Buildings.Density < 0 || p.Buildings.Density > 1 {
		return fmt.Errorf("buildings.density must be in [0,1], got %g", p.Buildings.Density)
	}
	if p.Vegetation.Density < 0 || p.Vegetation.Density > 1 {
		return fmt.Errorf("vegetation.density must be in [0,1], got %g", p.Vegetation.Density)
	}
	switch place.BuildingMode(p.Buildings.Mode) {
	case place.ModeAccurate, place.ModeFallback, place.ModeAggressive:
	default:
		return fmt.Errorf("buildings.mode must be accurate, fallback, or aggressive, got %q", p.Buildings.Mode)
	}
	if p.Output.Players < 0 || p.Output.Players > place.MaxPlayers {
		return fmt.Errorf("output.players must be in [0,%d], got %d", place.MaxPlayers, p.Output.Players)
	}
	return nil
}

// OverlayConfig translates the profile into the overlay pass configuration.
func (p *Profile) OverlayConfig() overlay.Config {
	cfg := overlay.DefaultConfig()
	cfg.IncludeWater = p.Overlay.Water
	cfg.IncludeRoads = p.Overlay.Roads
	cfg.RoadWidthM = p.Overlay.RoadWidthM
	cfg.WaterwayWidthM = p.Overlay.WaterwayWidthM
	return cfg
}

// BuildingConfig translates the profile into the building placement
// configuration.
func (p *Profile) BuildingConfig() place.BuildingConfig {
	return place.BuildingConfig{
		Density:      p.Buildings.Density,
		Max:          p.Buildings.Max,
		SearchRadius: p.Buildings.SearchRadius,
		Mode:         place.BuildingMode(p.Buildings.Mode),
	}
}

// VegetationConfig translates the profile into the vegetation placement
// configuration.
func (p *Profile) VegetationConfig() place.VegetationConfig {
	return place.VegetationConfig{
		Density:        p.Vegetation.Density,
		Max:            p.Vegetation.Max,
		MinSpacing:     p.Vegetation.MinSpacing,
		PatchSize:      p.Vegetation.PatchSize,
		PatchBoost:     p.Vegetation.PatchBoost,
		RoadRadius:     p.Vegetation.RoadRadius,
		BuildingRadius: p.Vegetation.BuildingRadius,
	}
}
