package mapfile

import (
	"fmt"
	"strings"

	"github.com/Kruzntat/Hostile-OpenRA-For-TAKX/pkg/aoi"
	"github.com/Kruzntat/Hostile-OpenRA-For-TAKX/pkg/place"
)

// Attribution credits one upstream dataset in the map metadata.
type Attribution struct {
	Name    string
	License string
	URL     string
	Source  string
	Notes   string
	// Extra carries dataset-specific fields like DatasetYear or
	// MinOccurrencePct, rendered in the given order.
	Extra []ExtraField
}

// ExtraField is one free-form attribution key/value.
type ExtraField struct {
	Key   string
	Value string
}

// MapMeta is everything the map.yaml writer needs beyond the grid itself.
type MapMeta struct {
	Title        string
	Author       string
	Tileset      string
	Width        int
	Height       int
	Categories   []string
	Players      int
	PlaceSpawns  bool
	Attributions []Attribution

	// GeoTransform anchors the grid back to the ground it came from.
	AOI         *aoi.AOI
	RotationDeg float64
}

// BuildYAML renders the MiniYaml map description (MapFormat 12) consumed by
// the OpenRA Red Alert mod. MiniYaml is tab-indented and not valid YAML, so
// it is assembled line by line rather than through a YAML encoder.
func BuildYAML(meta MapMeta, actors []place.Actor) string {
	cats := strings.Join(meta.Categories, ", ")
	if cats == "" {
		cats = "RealWorld"
	}

	var b strings.Builder
	section := func(s string) {
		b.WriteString(s)
		b.WriteString("\n\n")
	}
	section("MapFormat: 12")
	section("RequiresMod: ra")
	section("Title: " + meta.Title)
	section("Author: " + meta.Author)
	section("Tileset: " + meta.Tileset)
	section(fmt.Sprintf("MapSize: %d,%d", meta.Width, meta.Height))
	section(fmt.Sprintf("Bounds: 0,0,%d,%d", meta.Width, meta.Height))
	section("Visibility: Lobby")
	section("Categories: " + cats)

	if md := metadataBlock(meta); md != "" {
		section(md)
	}
	section(playersBlock(meta.Players))

	b.WriteString("Actors:\n")
	b.WriteString(actorsBlock(meta, actors))
	return b.String()
}

func metadataBlock(meta MapMeta) string {
	if meta.AOI == nil && len(meta.Attributions) == 0 {
		return ""
	}
	var lines []string
	lines = append(lines, "Metadata:")
	if a := meta.AOI; a != nil {
		lines = append(lines,
			"\tGeoTransform:",
			fmt.Sprintf("\t\tUTMZone: %d%c", a.Center.UTM.ZoneNumber, a.Center.UTM.ZoneLetter),
			fmt.Sprintf("\t\tMetersPerCell: %g", a.MetersPerCell),
			fmt.Sprintf("\t\tRotationDeg: %g", meta.RotationDeg),
			"\t\tOrigin:",
			"\t\t\tCorner: NW",
			fmt.Sprintf("\t\t\tLat: %.8f", a.NW.Lat),
			fmt.Sprintf("\t\t\tLon: %.8f", a.NW.Lon),
			fmt.Sprintf("\t\t\tUTM_E: %.3f", a.MinE),
			fmt.Sprintf("\t\t\tUTM_N: %.3f", a.MaxN),
			"\t\tGrid:",
			fmt.Sprintf("\t\t\tWidth: %d", meta.Width),
			fmt.Sprintf("\t\t\tHeight: %d", meta.Height),
		)
	}
	if len(meta.Attributions) > 0 {
		lines = append(lines, "\tAttributions:")
		for _, att := range meta.Attributions {
			lines = append(lines, "\t\t- Name: "+att.Name)
			if att.License != "" {
				lines = append(lines, "\t\t  License: "+att.License)
			}
			if att.URL != "" {
				lines = append(lines, "\t\t  URL: "+att.URL)
			}
			if att.Source != "" {
				lines = append(lines, "\t\t  Source: "+att.Source)
			}
			if att.Notes != "" {
				lines = append(lines, "\t\t  Notes: "+att.Notes)
			}
			for _, f := range att.Extra {
				lines = append(lines, fmt.Sprintf("\t\t  %s: %s", f.Key, f.Value))
			}
		}
	}
	return strings.Join(lines, "\n")
}

func playersBlock(players int) string {
	players = clamp(players, 0, place.MaxPlayers)
	lines := []string{
		"Players:",
		"\tPlayerReference@Neutral:",
		"\t\tName: Neutral",
		"\t\tOwnsWorld: True",
		"\t\tNonCombatant: True",
		"\t\tFaction: allies",
	}
	for p := 0; p < players; p++ {
		lines = append(lines,
			fmt.Sprintf("\tPlayerReference@Multi%d:", p),
			fmt.Sprintf("\t\tName: Multi%d", p),
			"\t\tPlayable: True",
			"\t\tAllowBots: False",
			"\t\tLockFaction: True",
			"\t\tFaction: soviet",
		)
	}
	return strings.Join(lines, "\n")
}

// actorsBlock names instances per family: Spawn0.., Bld0.., Tree0...
func actorsBlock(meta MapMeta, actors []place.Actor) string {
	var b strings.Builder
	counters := map[place.Kind]int{}
	prefix := map[place.Kind]string{
		place.KindSpawn:      "Spawn",
		place.KindBuilding:   "Bld",
		place.KindVegetation: "Tree",
	}

	emit := func(a place.Actor) {
		n := counters[a.Kind]
		counters[a.Kind] = n + 1
		fmt.Fprintf(&b, "\t%s%d: %s\n", prefix[a.Kind], n, a.Name)
		fmt.Fprintf(&b, "\t\tLocation: %d,%d\n", a.X, a.Y)
		fmt.Fprintf(&b, "\t\tOwner: %s\n", a.Owner)
	}

	if meta.PlaceSpawns {
		for _, a := range place.PlaceSpawns(meta.Players, meta.Width, meta.Height) {
			emit(a)
		}
	}
	for _, a := range actors {
		emit(a)
	}
	return b.String()
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
