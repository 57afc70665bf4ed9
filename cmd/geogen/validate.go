package main

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/Kruzntat/Hostile-OpenRA-For-TAKX/pkg/aoi"
	"github.com/Kruzntat/Hostile-OpenRA-For-TAKX/pkg/geodesy"
)

type cellRoundTrip struct {
	Cell [2]int   `json:"cell"`
	Lat  float64  `json:"lat"`
	Lon  float64  `json:"lon"`
	ErrM *float64 `json:"rt_error_m"`
}

type latlonRoundTrip struct {
	Lat      float64     `json:"lat"`
	Lon      float64     `json:"lon"`
	CellF    *[2]float64 `json:"cell_f"`
	CellSnap *[2]int     `json:"cell_snap"`
	ErrM     *float64    `json:"rt_error_m"`
}

type geoValidation struct {
	CellToLatLon []cellRoundTrip   `json:"cell_to_latlon_roundtrip"`
	LatLonToCell []latlonRoundTrip `json:"latlon_to_cell_roundtrip"`
}

func runValidate(mgrsRef string, opts validateOptions) error {
	a, err := resolveAOI(mgrsRef, opts.cells, opts.metersPerCell)
	if err != nil {
		return err
	}

	extraCell, err := parseCellArg(opts.cell)
	if err != nil {
		return err
	}
	extraLatLon, err := parseLatLonArg(opts.latlon)
	if err != nil {
		return err
	}

	out := map[string]any{
		"input": map[string]any{
			"mgrs":            mgrsRef,
			"cells":           opts.cells,
			"meters_per_cell": opts.metersPerCell,
		},
		"center":     a.Center,
		"validation": validateGeoTransform(a, extraCell, extraLatLon),
	}
	return printJSON(out, opts.pretty)
}

// validateGeoTransform samples the corners and center both ways through the
// coordinate mapping and reports the round-trip error in meters.
func validateGeoTransform(a aoi.AOI, extraCell *[2]int, extraLatLon *[2]float64) geoValidation {
	w, h := a.Cells, a.Cells
	cellSamples := [][2]int{{0, 0}, {w - 1, 0}, {w - 1, h - 1}, {0, h - 1}, {w / 2, h / 2}}
	if extraCell != nil && extraCell[0] >= 0 && extraCell[0] < w && extraCell[1] >= 0 && extraCell[1] < h {
		cellSamples = append(cellSamples, *extraCell)
	}

	latlonSamples := [][2]float64{
		{a.NW.Lat, a.NW.Lon},
		{a.NE.Lat, a.NE.Lon},
		{a.SE.Lat, a.SE.Lon},
		{a.SW.Lat, a.SW.Lon},
		{a.Center.Lat, a.Center.Lon},
	}
	if extraLatLon != nil {
		latlonSamples = append(latlonSamples, *extraLatLon)
	}

	var v geoValidation
	for _, c := range cellSamples {
		v.CellToLatLon = append(v.CellToLatLon, cellRoundTripSample(a, c[0], c[1]))
	}
	for _, s := range latlonSamples {
		v.LatLonToCell = append(v.LatLonToCell, latlonRoundTripSample(a, s[0], s[1]))
	}
	return v
}

func cellRoundTripSample(a aoi.AOI, x, y int) cellRoundTrip {
	lat, lon := a.ToLatLon(x, y)
	rt := cellRoundTrip{Cell: [2]int{x, y}, Lat: lat, Lon: lon}
	if pt, ok := a.ToCell(lat, lon); ok {
		dx := (pt.X() - (float64(x) + 0.5)) * a.MetersPerCell
		dy := (pt.Y() - (float64(y) + 0.5)) * a.MetersPerCell
		err := math.Hypot(dx, dy)
		rt.ErrM = &err
	}
	return rt
}

func latlonRoundTripSample(a aoi.AOI, lat, lon float64) latlonRoundTrip {
	rt := latlonRoundTrip{Lat: lat, Lon: lon}
	pt, ok := a.ToCell(lat, lon)
	if !ok {
		return rt
	}
	fx, fy := pt.X(), pt.Y()
	rt.CellF = &[2]float64{fx, fy}
	snapX := clampCell(int(fx), a.Cells)
	snapY := clampCell(int(fy), a.Cells)
	rt.CellSnap = &[2]int{snapX, snapY}

	lat2, lon2 := a.ToLatLon(snapX, snapY)
	u1, err1 := geodesy.FromLatLon(lat, lon)
	u2, err2 := geodesy.FromLatLon(lat2, lon2)
	if err1 == nil && err2 == nil && u1.SameZone(u2) {
		err := math.Hypot(u2.Easting-u1.Easting, u2.Northing-u1.Northing)
		rt.ErrM = &err
	}
	return rt
}

func clampCell(v, cells int) int {
	if v < 0 {
		return 0
	}
	if v >= cells {
		return cells - 1
	}
	return v
}

func parseCellArg(raw string) (*[2]int, error) {
	if raw == "" {
		return nil, nil
	}
	parts := strings.Split(raw, ",")
	if len(parts) != 2 {
		return nil, fmt.Errorf("cell sample must be x,y, got %q", raw)
	}
	x, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return nil, fmt.Errorf("parsing cell sample: %w", err)
	}
	y, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil {
		return nil, fmt.Errorf("parsing cell sample: %w", err)
	}
	return &[2]int{x, y}, nil
}

func parseLatLonArg(raw string) (*[2]float64, error) {
	if raw == "" {
		return nil, nil
	}
	parts := strings.Split(raw, ",")
	if len(parts) != 2 {
		return nil, fmt.Errorf("geographic sample must be lat,lon, got %q", raw)
	}
	lat, err := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	if err != nil {
		return nil, fmt.Errorf("parsing geographic sample: %w", err)
	}
	lon, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err != nil {
		return nil, fmt.Errorf("parsing geographic sample: %w", err)
	}
	return &[2]float64{lat, lon}, nil
}
