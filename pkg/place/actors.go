package place

import "math/rand"

// Kind distinguishes the actor families the engine emits. The map writer
// uses it to pick instance-name prefixes.
type Kind string

const (
	KindBuilding   Kind = "building"
	KindVegetation Kind = "vegetation"
	KindSpawn      Kind = "spawn"
)

// Actor is one placed map actor: a template name anchored at a cell with a
// footprint in cells.
type Actor struct {
	Kind  Kind
	Name  string
	X     int
	Y     int
	W     int
	H     int
	Owner string
}

// Civilian structure palettes keyed by footprint. Footprints outside the
// catalogue clamp to 2×2 before lookup.
var buildingPalettes = map[[2]int][]string{
	{1, 1}: {"LHUS"},
	{1, 2}: {"RUSHOUSE"},
	{2, 1}: {"V22", "V26", "V30", "V31", "V32", "V33"},
	{2, 2}: {"V20", "V21", "V24", "V25"},
}

var treePalette = []string{
	"t01", "t02", "t03", "t05", "t06",
	"t07", "t08", "t10", "t11", "t12", "t13",
}

func pickBuilding(rng *rand.Rand, w, h int) string {
	palette := buildingPalettes[[2]int{w, h}]
	if len(palette) == 0 {
		palette = buildingPalettes[[2]int{2, 2}]
	}
	return palette[rng.Intn(len(palette))]
}

func pickTree(rng *rand.Rand) string {
	return treePalette[rng.Intn(len(treePalette))]
}
