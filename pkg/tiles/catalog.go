package tiles

// Template IDs from the Red Alert TEMPERAT tileset used by the overlay.
const (
	Clear uint16 = 255
	Water uint16 = 1
	Road  uint16 = 227
	// RoadAlt is a paved variant that reads as road for adjacency checks.
	RoadAlt uint16 = 228
	Beach   uint16 = 6

	// BeachVariant is the visual variant written by the shoreline pass.
	BeachVariant byte = 4

	// River smoothing stamps.
	RiverVertCenter  uint16 = 117 // 3x2, vertical flow
	RiverHorizTop    uint16 = 121 // 2x2, horizontal flow
	RiverHorizTopAlt uint16 = 122 // 2x2, alternate look

	// Road junction stamps, both 3x3.
	JunctionA uint16 = 206
	JunctionB uint16 = 207
)

// Class is the semantic class of a template.
type Class string

const (
	ClassClear    Class = "clear"
	ClassWater    Class = "water"
	ClassRoad     Class = "road"
	ClassRiver    Class = "river"
	ClassBeach    Class = "beach"
	ClassJunction Class = "junction"
)

// Template is one catalogue entry: id, declared footprint, semantic class.
// Footprints default to 1x1.
type Template struct {
	ID     uint16
	Width  int
	Height int
	Class  Class
}

var riverIDs = map[uint16]bool{
	112: true, 113: true, 114: true, 115: true, 116: true, 117: true,
	118: true, 119: true, 120: true, 121: true, 122: true, 123: true,
	124: true, 229: true, 230: true,
}

var footprints = map[uint16][2]int{
	RiverVertCenter:  {3, 2},
	RiverHorizTop:    {2, 2},
	RiverHorizTopAlt: {2, 2},
	JunctionA:        {3, 3},
	JunctionB:        {3, 3},
}

// Lookup returns the catalogue entry for a template ID.
func Lookup(id uint16) Template {
	t := Template{ID: id, Width: 1, Height: 1, Class: ClassOf(id)}
	if fp, ok := footprints[id]; ok {
		t.Width, t.Height = fp[0], fp[1]
	}
	return t
}

// ClassOf returns the semantic class of a template ID.
func ClassOf(id uint16) Class {
	switch {
	case id == Water:
		return ClassWater
	case riverIDs[id]:
		return ClassRiver
	case id == Beach:
		return ClassBeach
	case id == Road || id == RoadAlt:
		return ClassRoad
	case id == JunctionA || id == JunctionB:
		return ClassJunction
	}
	return ClassClear
}

// IsRiver reports whether the ID is any river template.
func IsRiver(id uint16) bool { return riverIDs[id] }

// IsRoadBase reports whether the ID is a stroked road template (junction
// detection looks only at these, not at already-stamped junction cells).
func IsRoadBase(id uint16) bool { return id == Road || id == RoadAlt }

// IsRoad reports whether the ID is any road-class template including
// junction stamps.
func IsRoad(id uint16) bool {
	return IsRoadBase(id) || id == JunctionA || id == JunctionB
}

// BlocksBuilding reports whether a template forbids building placement.
func BlocksBuilding(id uint16) bool {
	return id == Water || id == Beach || riverIDs[id]
}
