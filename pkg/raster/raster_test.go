package raster

import (
	"testing"

	"github.com/paulmach/orb"

	"github.com/Kruzntat/Hostile-OpenRA-For-TAKX/pkg/tiles"
)

func TestRadiusCells(t *testing.T) {
	cases := []struct {
		widthM, mpc, want float64
	}{
		{8, 4, 1},
		{4, 4, 0.5},
		{1, 4, 0.5}, // minimum half-cell radius
		{24, 4, 3},
	}
	for _, tc := range cases {
		if got := RadiusCells(tc.widthM, tc.mpc); got != tc.want {
			t.Errorf("RadiusCells(%g, %g) = %g, want %g", tc.widthM, tc.mpc, got, tc.want)
		}
	}
}

func TestDrawDiscIdempotent(t *testing.T) {
	g := tiles.NewGrid(16, 16)
	first := DrawDisc(g, 8, 8, 2.5, tiles.Water)
	if first == 0 {
		t.Fatal("first draw changed no cells")
	}
	if again := DrawDisc(g, 8, 8, 2.5, tiles.Water); again != 0 {
		t.Errorf("re-draw changed %d cells, want 0", again)
	}
}

func TestDrawDiscClippedAtEdge(t *testing.T) {
	g := tiles.NewGrid(8, 8)
	changed := DrawDisc(g, 0, 0, 1.5, tiles.Water)
	if changed == 0 {
		t.Fatal("edge disc changed no cells")
	}
	for x := 0; x < 8; x++ {
		for y := 0; y < 8; y++ {
			_ = g.Get(x, y) // no panic means clipping held
		}
	}
}

func TestDrawLineCoverage(t *testing.T) {
	g := tiles.NewGrid(8, 8)
	DrawLine(g, orb.Point{0, 0}, orb.Point{3, 0}, 0.5, tiles.Road)
	for x := 0; x <= 3; x++ {
		if g.Get(x, 0) != tiles.Road {
			t.Errorf("cell (%d,0) = %d, want Road", x, g.Get(x, 0))
		}
	}
}

func TestDrawLineDegenerate(t *testing.T) {
	g := tiles.NewGrid(8, 8)
	if changed := DrawLine(g, orb.Point{2.5, 2.5}, orb.Point{2.5, 2.5}, 0.5, tiles.Water); changed == 0 {
		t.Error("zero-length line should degrade to a single disc")
	}
	if g.Get(2, 2) != tiles.Water {
		t.Error("degenerate line did not stamp its cell")
	}
}

func TestFillRingUnitSquare(t *testing.T) {
	g := tiles.NewGrid(8, 8)
	ring := orb.Ring{{0, 0}, {2, 0}, {2, 2}, {0, 2}, {0, 0}}
	changed := FillRing(g, ring, tiles.Water)
	if changed != 4 {
		t.Errorf("filled %d cells, want exactly 4", changed)
	}
	for _, c := range [][2]int{{0, 0}, {1, 0}, {0, 1}, {1, 1}} {
		if g.Get(c[0], c[1]) != tiles.Water {
			t.Errorf("cell (%d,%d) not filled", c[0], c[1])
		}
	}
	if g.Get(2, 2) == tiles.Water || g.Get(2, 0) == tiles.Water {
		t.Error("cells outside the ring were filled")
	}
}

func TestFillRingIdempotent(t *testing.T) {
	g := tiles.NewGrid(8, 8)
	ring := orb.Ring{{0, 0}, {4, 0}, {4, 4}, {0, 4}, {0, 0}}
	if first := FillRing(g, ring, tiles.Water); first == 0 {
		t.Fatal("first fill changed no cells")
	}
	if again := FillRing(g, ring, tiles.Water); again != 0 {
		t.Errorf("re-fill changed %d cells, want 0", again)
	}
}

func TestFillRingRejectsDegenerate(t *testing.T) {
	g := tiles.NewGrid(8, 8)
	if changed := FillRing(g, orb.Ring{{0, 0}, {2, 0}, {0, 0}}, tiles.Water); changed != 0 {
		t.Errorf("degenerate ring filled %d cells, want 0", changed)
	}
	if changed := FillRing(g, nil, tiles.Water); changed != 0 {
		t.Errorf("nil ring filled %d cells, want 0", changed)
	}
}

func TestRingCells(t *testing.T) {
	set := tiles.NewCellSet()
	ring := orb.Ring{{0, 0}, {2, 0}, {2, 2}, {0, 2}, {0, 0}}
	RingCells(8, 8, ring, set)
	if set.Len() != 4 {
		t.Errorf("collected %d cells, want 4", set.Len())
	}
	if !set.Has(0, 0) || !set.Has(1, 1) {
		t.Error("expected interior cells missing")
	}
}
