package tiles

import "testing"

func TestNewGridIsClear(t *testing.T) {
	g := NewGrid(8, 6)
	if g.Width() != 8 || g.Height() != 6 {
		t.Fatalf("dims = %dx%d, want 8x6", g.Width(), g.Height())
	}
	for x := 0; x < 8; x++ {
		for y := 0; y < 6; y++ {
			if g.Get(x, y) != Clear {
				t.Fatalf("cell (%d,%d) = %d, want Clear", x, y, g.Get(x, y))
			}
			if g.Variant(x, y) != 0 {
				t.Fatalf("cell (%d,%d) variant = %d, want 0", x, y, g.Variant(x, y))
			}
		}
	}
}

func TestStampVariantLayout(t *testing.T) {
	g := NewGrid(10, 10)
	wrote := g.Stamp(2, 3, RiverVertCenter) // 3x2
	if wrote != 6 {
		t.Fatalf("Stamp wrote %d cells, want 6", wrote)
	}
	for dy := 0; dy < 2; dy++ {
		for dx := 0; dx < 3; dx++ {
			x, y := 2+dx, 3+dy
			if g.Get(x, y) != RiverVertCenter {
				t.Errorf("cell (%d,%d) = %d, want %d", x, y, g.Get(x, y), RiverVertCenter)
			}
			if want := byte(dy*3 + dx); g.Variant(x, y) != want {
				t.Errorf("cell (%d,%d) variant = %d, want %d", x, y, g.Variant(x, y), want)
			}
		}
	}
}

func TestStampClipsOffGrid(t *testing.T) {
	g := NewGrid(4, 4)
	// 3x3 junction anchored so only a 2x2 corner lands in-bounds.
	if wrote := g.Stamp(2, 2, JunctionA); wrote != 4 {
		t.Errorf("clipped stamp wrote %d cells, want 4", wrote)
	}
	// Fully off-grid writes nothing.
	if wrote := g.Stamp(10, 10, JunctionA); wrote != 0 {
		t.Errorf("off-grid stamp wrote %d cells, want 0", wrote)
	}
}

func TestLookupFootprints(t *testing.T) {
	cases := []struct {
		id   uint16
		w, h int
	}{
		{Clear, 1, 1},
		{Water, 1, 1},
		{RiverVertCenter, 3, 2},
		{RiverHorizTop, 2, 2},
		{RiverHorizTopAlt, 2, 2},
		{JunctionA, 3, 3},
		{JunctionB, 3, 3},
	}
	for _, tc := range cases {
		got := Lookup(tc.id)
		if got.Width != tc.w || got.Height != tc.h {
			t.Errorf("Lookup(%d) footprint = %dx%d, want %dx%d", tc.id, got.Width, got.Height, tc.w, tc.h)
		}
	}
}

func TestClassOf(t *testing.T) {
	cases := []struct {
		id   uint16
		want Class
	}{
		{Clear, ClassClear},
		{Water, ClassWater},
		{Road, ClassRoad},
		{RoadAlt, ClassRoad},
		{Beach, ClassBeach},
		{RiverVertCenter, ClassRiver},
		{229, ClassRiver},
		{JunctionA, ClassJunction},
		{42, ClassClear},
	}
	for _, tc := range cases {
		if got := ClassOf(tc.id); got != tc.want {
			t.Errorf("ClassOf(%d) = %s, want %s", tc.id, got, tc.want)
		}
	}
	if !BlocksBuilding(Water) || !BlocksBuilding(Beach) || !BlocksBuilding(118) {
		t.Error("water, beach and river should block buildings")
	}
	if BlocksBuilding(Road) || BlocksBuilding(Clear) {
		t.Error("road and clear should not block buildings")
	}
}

func TestCellSetDilate(t *testing.T) {
	s := NewCellSet()
	s.Add(5, 5)

	d := s.Dilate(2)
	if d.Len() != 25 {
		t.Errorf("dilated set has %d cells, want 25", d.Len())
	}
	if !d.Has(3, 3) || !d.Has(7, 7) || !d.Has(5, 5) {
		t.Error("dilated set missing expected cells")
	}
	if d.Has(8, 5) {
		t.Error("dilated set contains cell beyond radius")
	}

	// Radius 0 copies without sharing storage.
	z := s.Dilate(0)
	z.Add(1, 1)
	if s.Has(1, 1) {
		t.Error("Dilate(0) must not alias the source set")
	}
}

func TestCellSetUnion(t *testing.T) {
	a := NewCellSet()
	a.Add(1, 1)
	b := NewCellSet()
	b.Add(2, 2)
	b.Add(1, 1)
	a.Union(b)
	if a.Len() != 2 || !a.Has(2, 2) {
		t.Errorf("union = %v", a)
	}
}
