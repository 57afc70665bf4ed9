package aoi

import (
	"fmt"

	"github.com/paulmach/orb"

	"github.com/Kruzntat/Hostile-OpenRA-For-TAKX/pkg/geodesy"
)

// Center is the resolved center coordinate of an area of interest.
type Center struct {
	Lat float64     `json:"lat"`
	Lon float64     `json:"lon"`
	UTM geodesy.UTM `json:"utm"`
}

// Resolve turns an MGRS grid reference into a Center.
func Resolve(mgrsRef string) (Center, error) {
	lat, lon, err := geodesy.ParseMGRS(mgrsRef)
	if err != nil {
		return Center{}, fmt.Errorf("resolving MGRS center: %w", err)
	}
	u, err := geodesy.FromLatLon(lat, lon)
	if err != nil {
		return Center{}, fmt.Errorf("projecting MGRS center: %w", err)
	}
	return Center{Lat: lat, Lon: lon, UTM: u}, nil
}

// Corner is a geographic corner of the AOI.
type Corner struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// LatLonBox is the geographic envelope of the AOI corners, used to scope
// upstream feature queries.
type LatLonBox struct {
	South float64 `json:"south"`
	West  float64 `json:"west"`
	North float64 `json:"north"`
	East  float64 `json:"east"`
}

// AOI is the fixed square ground region being converted into a grid.
// All fields are set once at construction and never mutated.
type AOI struct {
	Cells         int     `json:"cells"`
	MetersPerCell float64 `json:"meters_per_cell"`

	Center Center `json:"center"`

	MinE float64 `json:"min_e"`
	MaxE float64 `json:"max_e"`
	MinN float64 `json:"min_n"`
	MaxN float64 `json:"max_n"`

	NW Corner `json:"nw"`
	NE Corner `json:"ne"`
	SE Corner `json:"se"`
	SW Corner `json:"sw"`
}

// New builds an AOI of cells×cells grid cells centered on center.
func New(center Center, cells int, metersPerCell float64) (AOI, error) {
	if cells <= 0 {
		return AOI{}, fmt.Errorf("cells must be positive, got %d", cells)
	}
	if metersPerCell <= 0 {
		return AOI{}, fmt.Errorf("meters per cell must be positive, got %g", metersPerCell)
	}

	half := float64(cells) * metersPerCell / 2
	a := AOI{
		Cells:         cells,
		MetersPerCell: metersPerCell,
		Center:        center,
		MinE:          center.UTM.Easting - half,
		MaxE:          center.UTM.Easting + half,
		MinN:          center.UTM.Northing - half,
		MaxN:          center.UTM.Northing + half,
	}

	corner := func(e, n float64) (Corner, error) {
		lat, lon, err := geodesy.ToLatLon(geodesy.UTM{
			Easting:    e,
			Northing:   n,
			ZoneNumber: center.UTM.ZoneNumber,
			ZoneLetter: center.UTM.ZoneLetter,
		})
		if err != nil {
			return Corner{}, err
		}
		return Corner{Lat: lat, Lon: lon}, nil
	}

	var err error
	if a.NW, err = corner(a.MinE, a.MaxN); err != nil {
		return AOI{}, fmt.Errorf("computing NW corner: %w", err)
	}
	if a.NE, err = corner(a.MaxE, a.MaxN); err != nil {
		return AOI{}, fmt.Errorf("computing NE corner: %w", err)
	}
	if a.SE, err = corner(a.MaxE, a.MinN); err != nil {
		return AOI{}, fmt.Errorf("computing SE corner: %w", err)
	}
	if a.SW, err = corner(a.MinE, a.MinN); err != nil {
		return AOI{}, fmt.Errorf("computing SW corner: %w", err)
	}
	return a, nil
}

// ToCell projects a geographic coordinate to fractional cell space.
// Points that project into a different UTM zone than the AOI are outside the
// supported area and return ok=false; callers drop them.
func (a AOI) ToCell(lat, lon float64) (orb.Point, bool) {
	u, err := geodesy.FromLatLon(lat, lon)
	if err != nil {
		return orb.Point{}, false
	}
	if !u.SameZone(a.Center.UTM) {
		return orb.Point{}, false
	}
	x := (u.Easting - a.MinE) / a.MetersPerCell
	y := (a.MaxN - u.Northing) / a.MetersPerCell // y grows southward
	return orb.Point{x, y}, true
}

// ToLatLon returns the geographic coordinate of a cell's center.
func (a AOI) ToLatLon(x, y int) (lat, lon float64) {
	e := a.MinE + (float64(x)+0.5)*a.MetersPerCell
	n := a.MaxN - (float64(y)+0.5)*a.MetersPerCell
	lat, lon, _ = geodesy.ToLatLon(geodesy.UTM{
		Easting:    e,
		Northing:   n,
		ZoneNumber: a.Center.UTM.ZoneNumber,
		ZoneLetter: a.Center.UTM.ZoneLetter,
	})
	return lat, lon
}

// BBox returns the geographic envelope of the four corners.
func (a AOI) BBox() LatLonBox {
	corners := []Corner{a.NW, a.NE, a.SE, a.SW}
	box := LatLonBox{South: corners[0].Lat, West: corners[0].Lon, North: corners[0].Lat, East: corners[0].Lon}
	for _, c := range corners[1:] {
		if c.Lat < box.South {
			box.South = c.Lat
		}
		if c.Lat > box.North {
			box.North = c.Lat
		}
		if c.Lon < box.West {
			box.West = c.Lon
		}
		if c.Lon > box.East {
			box.East = c.Lon
		}
	}
	return box
}

// ExtentMeters returns the AOI side length in meters.
func (a AOI) ExtentMeters() float64 {
	return float64(a.Cells) * a.MetersPerCell
}
