package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/Kruzntat/Hostile-OpenRA-For-TAKX/pkg/profile"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "geogen",
		Short: "Generate OpenRA maps from real-world geography",
	}

	rootCmd.AddCommand(boundsCmd())
	rootCmd.AddCommand(generateCmd())
	rootCmd.AddCommand(validateCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func boundsCmd() *cobra.Command {
	var opts boundsOptions

	cmd := &cobra.Command{
		Use:   "bounds [mgrs]",
		Short: "Resolve an MGRS reference to AOI bounds and corners",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBounds(cmd.Context(), args[0], opts)
		},
	}

	cmd.Flags().IntVar(&opts.cells, "cells", 512, "Grid side length in cells")
	cmd.Flags().Float64Var(&opts.metersPerCell, "meters-per-cell", 4, "Ground meters per grid cell")
	cmd.Flags().BoolVar(&opts.osmSummary, "osm-summary", false, "Fetch feature counts within the AOI bbox")
	cmd.Flags().StringVar(&opts.overpassURL, "overpass-url", "", "Overpass API endpoint (default: public instance)")
	cmd.Flags().StringVar(&opts.cacheDir, "cache-dir", defaultCacheDir, "Directory for cached Overpass responses")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "Bypass the Overpass response cache")
	cmd.Flags().BoolVar(&opts.pretty, "pretty", false, "Indent JSON output")
	return cmd
}

func generateCmd() *cobra.Command {
	var opts generateOptions
	flagProfile := profile.Default()

	cmd := &cobra.Command{
		Use:   "generate [mgrs]",
		Short: "Build a .oramap for the area around an MGRS reference",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := resolveProfile(cmd, flagProfile, opts.profilePath)
			if err != nil {
				return err
			}
			return runGenerate(cmd.Context(), args[0], p, opts)
		},
	}

	f := cmd.Flags()
	f.StringVar(&opts.profilePath, "profile", "", "YAML generation profile; explicit flags override it")
	f.StringVarP(&opts.outPath, "out", "o", "", "Output .oramap path (required)")
	cmd.MarkFlagRequired("out")
	f.BoolVar(&opts.install, "install", false, "Copy the map into the OpenRA maps directory")
	f.BoolVar(&opts.pretty, "pretty", false, "Indent JSON output")
	f.BoolVar(&opts.noCache, "no-cache", false, "Bypass the Overpass response cache")

	f.IntVar(&flagProfile.Grid.Cells, "cells", flagProfile.Grid.Cells, "Grid side length in cells")
	f.Float64Var(&flagProfile.Grid.MetersPerCell, "meters-per-cell", flagProfile.Grid.MetersPerCell, "Ground meters per grid cell")
	f.Int64Var(&flagProfile.Seed, "seed", flagProfile.Seed, "Placement random seed")
	f.StringVar(&flagProfile.OverpassURL, "overpass-url", flagProfile.OverpassURL, "Overpass API endpoint (default: public instance)")
	f.StringVar(&flagProfile.CacheDir, "cache-dir", defaultCacheDir, "Directory for cached Overpass responses")

	f.BoolVar(&flagProfile.Overlay.Enabled, "overlay", flagProfile.Overlay.Enabled, "Overlay vector features onto the terrain grid")
	f.BoolVar(&flagProfile.Overlay.Water, "water", flagProfile.Overlay.Water, "Draw water areas and waterways")
	f.BoolVar(&flagProfile.Overlay.Roads, "roads", flagProfile.Overlay.Roads, "Draw roads and junctions")
	f.Float64Var(&flagProfile.Overlay.RoadWidthM, "road-width-m", flagProfile.Overlay.RoadWidthM, "Road drawing width in meters")
	f.Float64Var(&flagProfile.Overlay.WaterwayWidthM, "waterway-width-m", flagProfile.Overlay.WaterwayWidthM, "Waterway drawing width in meters")

	f.BoolVar(&flagProfile.Buildings.Enabled, "buildings", flagProfile.Buildings.Enabled, "Place building actors")
	f.Float64Var(&flagProfile.Buildings.Density, "building-density", flagProfile.Buildings.Density, "Fraction [0..1] of building candidates to place")
	f.IntVar(&flagProfile.Buildings.Max, "max-buildings", flagProfile.Buildings.Max, "Maximum building actors")
	f.IntVar(&flagProfile.Buildings.SearchRadius, "building-search-radius", flagProfile.Buildings.SearchRadius, "Local search radius (cells) around each anchor")
	f.StringVar(&flagProfile.Buildings.Mode, "building-placement-mode", flagProfile.Buildings.Mode, "accurate, fallback, or aggressive")
	f.StringVar(&flagProfile.Buildings.AuditPath, "building-audit", flagProfile.Buildings.AuditPath, "CSV path for the per-candidate placement audit")

	f.BoolVar(&flagProfile.Vegetation.Enabled, "vegetation", flagProfile.Vegetation.Enabled, "Place tree actors")
	f.Float64Var(&flagProfile.Vegetation.Density, "veg-density", flagProfile.Vegetation.Density, "Fraction [0..1] of forest cells to place a tree")
	f.IntVar(&flagProfile.Vegetation.Max, "max-veg-actors", flagProfile.Vegetation.Max, "Maximum tree actors")
	f.IntVar(&flagProfile.Vegetation.MinSpacing, "veg-min-spacing", flagProfile.Vegetation.MinSpacing, "Minimum Chebyshev spacing (cells) between trees")
	f.IntVar(&flagProfile.Vegetation.PatchSize, "veg-patch-size", flagProfile.Vegetation.PatchSize, "Patch size (cells) for local forest density")
	f.Float64Var(&flagProfile.Vegetation.PatchBoost, "veg-patch-boost", flagProfile.Vegetation.PatchBoost, "Probability multiplier in high-density patches")
	f.IntVar(&flagProfile.Vegetation.RoadRadius, "suppress-veg-near-roads", flagProfile.Vegetation.RoadRadius, "Suppress trees within N cells of roads")
	f.IntVar(&flagProfile.Vegetation.BuildingRadius, "suppress-veg-near-buildings", flagProfile.Vegetation.BuildingRadius, "Suppress trees within N cells of buildings")

	f.StringVar(&flagProfile.Landcover.WorldCoverPath, "worldcover-path", flagProfile.Landcover.WorldCoverPath, "ESA WorldCover ASCII grid for land-cover masks")
	f.StringVar(&flagProfile.Landcover.WorldCoverYear, "worldcover-year", flagProfile.Landcover.WorldCoverYear, "WorldCover dataset year for metadata")
	f.StringVar(&flagProfile.Landcover.GSWPath, "gsw-path", flagProfile.Landcover.GSWPath, "JRC Global Surface Water ASCII grid for water augmentation")
	f.StringVar(&flagProfile.Landcover.GSWVersion, "gsw-version", flagProfile.Landcover.GSWVersion, "GSW dataset version for metadata")
	f.Float64Var(&flagProfile.Landcover.GSWMinOccurrence, "gsw-min-occurrence", flagProfile.Landcover.GSWMinOccurrence, "Occurrence threshold [0-100] for GSW water")

	f.StringVar(&flagProfile.Output.Title, "title", flagProfile.Output.Title, "Map title (default: RealWorld <MGRS>)")
	f.StringVar(&flagProfile.Output.Author, "author", flagProfile.Output.Author, "Map author")
	f.StringVar(&flagProfile.Output.Tileset, "tileset", flagProfile.Output.Tileset, "OpenRA tileset")
	f.StringSliceVar(&flagProfile.Output.Categories, "categories", flagProfile.Output.Categories, "Map lobby categories")
	f.IntVar(&flagProfile.Output.Players, "players", flagProfile.Output.Players, "Playable Multi player slots (0-8)")
	f.BoolVar(&flagProfile.Output.PlaceSpawns, "place-spawns", flagProfile.Output.PlaceSpawns, "Place mpspawn actors for each player")
	f.StringVar(&flagProfile.Output.InstallRelease, "install-release", flagProfile.Output.InstallRelease, "OpenRA release tag for maps/ra/release-<tag>")
	f.StringVar(&flagProfile.Output.InstallPath, "install-path", flagProfile.Output.InstallPath, "Explicit directory to copy the .oramap into")
	return cmd
}

func validateCmd() *cobra.Command {
	var opts validateOptions

	cmd := &cobra.Command{
		Use:   "validate [mgrs]",
		Short: "Check the geotransform round-trip for an AOI",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			return runValidate(args[0], opts)
		},
	}

	cmd.Flags().IntVar(&opts.cells, "cells", 512, "Grid side length in cells")
	cmd.Flags().Float64Var(&opts.metersPerCell, "meters-per-cell", 4, "Ground meters per grid cell")
	cmd.Flags().StringVar(&opts.cell, "cell", "", "Extra cell sample as x,y")
	cmd.Flags().StringVar(&opts.latlon, "latlon", "", "Extra geographic sample as lat,lon")
	cmd.Flags().BoolVar(&opts.pretty, "pretty", false, "Indent JSON output")
	return cmd
}
