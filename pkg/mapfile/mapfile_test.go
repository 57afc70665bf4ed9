package mapfile

import (
	"archive/zip"
	"bytes"
	"encoding/binary"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Kruzntat/Hostile-OpenRA-For-TAKX/pkg/aoi"
	"github.com/Kruzntat/Hostile-OpenRA-For-TAKX/pkg/geodesy"
	"github.com/Kruzntat/Hostile-OpenRA-For-TAKX/pkg/place"
	"github.com/Kruzntat/Hostile-OpenRA-For-TAKX/pkg/tiles"
)

func TestEncodeSizeAndHeader(t *testing.T) {
	g := tiles.NewGrid(2, 2)
	out, err := Encode(g, false)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	if len(out) != 37 {
		t.Fatalf("encoded length = %d, want 37", len(out))
	}
	if len(out) != EncodedLen(2, 2, false) {
		t.Errorf("EncodedLen disagrees with Encode: %d vs %d", EncodedLen(2, 2, false), len(out))
	}
	wantHeader := []byte{2, 2, 0, 2, 0, 17, 0, 0, 0, 0, 0, 0, 0, 29, 0, 0, 0}
	if !bytes.Equal(out[:17], wantHeader) {
		t.Errorf("header = %v, want %v", out[:17], wantHeader)
	}
}

func TestEncodeTileOrderAndVariants(t *testing.T) {
	g := tiles.NewGrid(3, 2)
	g.Place(0, 0, tiles.Water, 0)
	g.Place(0, 1, tiles.Beach, tiles.BeachVariant)
	g.Place(2, 1, tiles.Road, 0)

	out, err := Encode(g, false)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}

	// Tiles run x-major: (0,0),(0,1),(1,0),(1,1),(2,0),(2,1).
	tile := func(i int) (uint16, byte) {
		off := 17 + i*3
		return binary.LittleEndian.Uint16(out[off : off+2]), out[off+2]
	}
	if id, _ := tile(0); id != tiles.Water {
		t.Errorf("tile 0 = %d, want Water", id)
	}
	if id, v := tile(1); id != tiles.Beach || v != tiles.BeachVariant {
		t.Errorf("tile 1 = %d/%d, want Beach/%d", id, v, tiles.BeachVariant)
	}
	if id, _ := tile(2); id != tiles.Clear {
		t.Errorf("tile 2 = %d, want Clear", id)
	}
	if id, _ := tile(5); id != tiles.Road {
		t.Errorf("tile 5 = %d, want Road", id)
	}

	// Trailing resource pairs are all zero.
	for _, b := range out[17+3*6:] {
		if b != 0 {
			t.Fatal("resource layer not zeroed")
		}
	}
}

func TestEncodeWithHeights(t *testing.T) {
	g := tiles.NewGrid(4, 4)
	out, err := Encode(g, true)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	if len(out) != EncodedLen(4, 4, true) {
		t.Fatalf("encoded length = %d, want %d", len(out), EncodedLen(4, 4, true))
	}
	heightsOffset := binary.LittleEndian.Uint32(out[9:13])
	resourcesOffset := binary.LittleEndian.Uint32(out[13:17])
	if heightsOffset != 3*16+17 {
		t.Errorf("heights offset = %d, want %d", heightsOffset, 3*16+17)
	}
	if resourcesOffset != 4*16+17 {
		t.Errorf("resources offset = %d, want %d", resourcesOffset, 4*16+17)
	}
}

func testMeta(t *testing.T) MapMeta {
	t.Helper()
	u, err := geodesy.FromLatLon(36.0, -81.2)
	if err != nil {
		t.Fatalf("FromLatLon: %v", err)
	}
	a, err := aoi.New(aoi.Center{Lat: 36.0, Lon: -81.2, UTM: u}, 64, 4)
	if err != nil {
		t.Fatalf("aoi.New: %v", err)
	}
	return MapMeta{
		Title:       "RealWorld 17SPA7768033011",
		Author:      "OpenRA_WoW",
		Tileset:     "TEMPERAT",
		Width:       64,
		Height:      64,
		Categories:  []string{"RealWorld"},
		Players:     2,
		PlaceSpawns: true,
		AOI:         &a,
		Attributions: []Attribution{{
			Name:    "OpenStreetMap contributors",
			License: "ODbL 1.0",
			URL:     "https://www.openstreetmap.org/copyright",
			Source:  "Overpass API: https://overpass-api.de/api/interpreter",
		}},
	}
}

func TestBuildYAML(t *testing.T) {
	meta := testMeta(t)
	actors := []place.Actor{
		{Kind: place.KindBuilding, Name: "V20", X: 10, Y: 12, W: 2, H: 2, Owner: "Neutral"},
		{Kind: place.KindVegetation, Name: "t05", X: 3, Y: 4, W: 1, H: 1, Owner: "Neutral"},
		{Kind: place.KindVegetation, Name: "t11", X: 9, Y: 4, W: 1, H: 1, Owner: "Neutral"},
	}
	text := BuildYAML(meta, actors)

	for _, want := range []string{
		"MapFormat: 12",
		"RequiresMod: ra",
		"Title: RealWorld 17SPA7768033011",
		"Tileset: TEMPERAT",
		"MapSize: 64,64",
		"Bounds: 0,0,64,64",
		"Visibility: Lobby",
		"Categories: RealWorld",
		"\tGeoTransform:",
		"\t\tUTMZone: 17S",
		"\t\tMetersPerCell: 4",
		"\t\t\tCorner: NW",
		"\t\t- Name: OpenStreetMap contributors",
		"\t\t  License: ODbL 1.0",
		"\tPlayerReference@Neutral:",
		"\tPlayerReference@Multi0:",
		"\tPlayerReference@Multi1:",
		"\t\tFaction: soviet",
		"Actors:",
		"\tSpawn0: mpspawn",
		"\tSpawn1: mpspawn",
		"\tBld0: V20",
		"\t\tLocation: 10,12",
		"\tTree0: t05",
		"\tTree1: t11",
		"\t\tOwner: Neutral",
	} {
		if !strings.Contains(text, want) {
			t.Errorf("map.yaml missing %q", want)
		}
	}
	if strings.Contains(text, "PlayerReference@Multi2") {
		t.Error("map.yaml has more player slots than requested")
	}
}

func TestBuildYAMLNoSpawnsNoMetadata(t *testing.T) {
	meta := MapMeta{
		Title: "Bare", Author: "a", Tileset: "TEMPERAT",
		Width: 8, Height: 8, Players: 0,
	}
	text := BuildYAML(meta, nil)
	if strings.Contains(text, "Metadata:") {
		t.Error("unexpected Metadata block")
	}
	if strings.Contains(text, "mpspawn") {
		t.Error("unexpected spawn actors")
	}
	if !strings.Contains(text, "Categories: RealWorld") {
		t.Error("empty categories should default to RealWorld")
	}
}

func TestWriteOramapRoundTrip(t *testing.T) {
	g := tiles.NewGrid(4, 4)
	bin, err := Encode(g, false)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	path := filepath.Join(t.TempDir(), "out", "test.oramap")
	if err := WriteOramap(path, "MapFormat: 12\n", bin); err != nil {
		t.Fatalf("WriteOramap: %v", err)
	}

	zr, err := zip.OpenReader(path)
	if err != nil {
		t.Fatalf("open zip: %v", err)
	}
	defer zr.Close()

	got := map[string][]byte{}
	for _, zf := range zr.File {
		rc, err := zf.Open()
		if err != nil {
			t.Fatalf("open %s: %v", zf.Name, err)
		}
		var buf bytes.Buffer
		if _, err := buf.ReadFrom(rc); err != nil {
			t.Fatalf("read %s: %v", zf.Name, err)
		}
		rc.Close()
		got[zf.Name] = buf.Bytes()
	}
	if string(got["map.yaml"]) != "MapFormat: 12\n" {
		t.Errorf("map.yaml content = %q", got["map.yaml"])
	}
	if !bytes.Equal(got["map.bin"], bin) {
		t.Error("map.bin did not round-trip")
	}
}

func TestInstall(t *testing.T) {
	src := filepath.Join(t.TempDir(), "m.oramap")
	if err := WriteOramap(src, "MapFormat: 12\n", []byte{1, 2, 3}); err != nil {
		t.Fatalf("WriteOramap: %v", err)
	}
	target := filepath.Join(t.TempDir(), "maps", "ra", "release-20250330")
	dir, err := Install(src, target, "")
	if err != nil {
		t.Fatalf("Install: %v", err)
	}
	if dir != target {
		t.Errorf("installed to %s, want %s", dir, target)
	}
	if _, err := zip.OpenReader(filepath.Join(target, "m.oramap")); err != nil {
		t.Errorf("installed map unreadable: %v", err)
	}
}

func TestInstallDirReleaseTag(t *testing.T) {
	dir, err := InstallDir("", "20250330")
	if err != nil {
		t.Fatalf("InstallDir: %v", err)
	}
	if filepath.Base(dir) != "release-20250330" {
		t.Errorf("dir = %s, want release-20250330 leaf", dir)
	}
}
