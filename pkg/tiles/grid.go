package tiles

// Grid is the tile-indexed terrain raster: two parallel arrays of template
// IDs and variants, indexed [x][y]. Every cell always holds exactly one
// catalogue template; variants are meaningful only relative to that
// template's footprint.
type Grid struct {
	w, h     int
	types    []uint16
	variants []byte
}

// NewGrid returns a w×h grid initialized to the clear template.
func NewGrid(w, h int) *Grid {
	g := &Grid{
		w:        w,
		h:        h,
		types:    make([]uint16, w*h),
		variants: make([]byte, w*h),
	}
	for i := range g.types {
		g.types[i] = Clear
	}
	return g
}

// Width returns the grid width in cells.
func (g *Grid) Width() int { return g.w }

// Height returns the grid height in cells.
func (g *Grid) Height() int { return g.h }

// InBounds reports whether (x, y) is a valid cell.
func (g *Grid) InBounds(x, y int) bool {
	return x >= 0 && x < g.w && y >= 0 && y < g.h
}

func (g *Grid) idx(x, y int) int { return x*g.h + y }

// Get returns the template ID at (x, y).
func (g *Grid) Get(x, y int) uint16 {
	return g.types[g.idx(x, y)]
}

// Variant returns the variant at (x, y).
func (g *Grid) Variant(x, y int) byte {
	return g.variants[g.idx(x, y)]
}

// Set writes a template ID, leaving the variant untouched. Used by the
// stroked rasterizer passes which deal only in 1x1 templates.
func (g *Grid) Set(x, y int, id uint16) {
	g.types[g.idx(x, y)] = id
}

// Place writes a template ID and variant together.
func (g *Grid) Place(x, y int, id uint16, variant byte) {
	i := g.idx(x, y)
	g.types[i] = id
	g.variants[i] = variant
}

// Stamp writes a multi-cell template at the anchor, clipping any part that
// falls off-grid. The variant of each covered cell is its row-major offset
// within the footprint. Returns the count of cells actually written.
func (g *Grid) Stamp(anchorX, anchorY int, id uint16) int {
	t := Lookup(id)
	written := 0
	for dy := 0; dy < t.Height; dy++ {
		for dx := 0; dx < t.Width; dx++ {
			x, y := anchorX+dx, anchorY+dy
			if !g.InBounds(x, y) {
				continue
			}
			g.Place(x, y, id, byte(dy*t.Width+dx))
			written++
		}
	}
	return written
}

// Cell is a grid coordinate.
type Cell struct {
	X int
	Y int
}

// CellSet is a set of grid coordinates representing membership in a derived
// class (forest, built-up, road, occupied).
type CellSet map[Cell]struct{}

// NewCellSet returns an empty set.
func NewCellSet() CellSet { return make(CellSet) }

// Add inserts a cell.
func (s CellSet) Add(x, y int) {
	s[Cell{x, y}] = struct{}{}
}

// Has reports membership.
func (s CellSet) Has(x, y int) bool {
	_, ok := s[Cell{x, y}]
	return ok
}

// Len returns the number of cells in the set.
func (s CellSet) Len() int { return len(s) }

// Union adds every cell of other into s.
func (s CellSet) Union(other CellSet) {
	for c := range other {
		s[c] = struct{}{}
	}
}

// Dilate returns a new set containing every cell within Chebyshev distance r
// of a member. Dilating once turns repeated windowed scans into O(1)
// membership checks.
func (s CellSet) Dilate(r int) CellSet {
	if r <= 0 {
		out := NewCellSet()
		out.Union(s)
		return out
	}
	out := NewCellSet()
	for c := range s {
		for dx := -r; dx <= r; dx++ {
			for dy := -r; dy <= r; dy++ {
				out.Add(c.X+dx, c.Y+dy)
			}
		}
	}
	return out
}
