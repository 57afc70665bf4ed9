package feature

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Tags is the key/value tag map attached to a way or relation.
type Tags map[string]string

// Get returns the tag value, or "" when absent.
func (t Tags) Get(key string) string {
	return t[key]
}

// Has reports whether the key is present.
func (t Tags) Has(key string) bool {
	_, ok := t[key]
	return ok
}

// IsWaterArea reports whether the tags mark a fillable water polygon.
func (t Tags) IsWaterArea() bool {
	return t.Get("natural") == "water" ||
		t.Get("landuse") == "reservoir" ||
		t.Get("waterway") == "riverbank"
}

// IsWaterway reports whether the tags mark a waterway centerline.
func (t Tags) IsWaterway() bool {
	return t.Has("waterway")
}

// IsHighway reports whether the tags mark a road centerline.
func (t Tags) IsHighway() bool {
	return t.Has("highway")
}

// IsBuilding reports whether the tags mark a building footprint.
func (t Tags) IsBuilding() bool {
	return t.Has("building")
}

// IsForest reports whether the tags mark a forest-class polygon.
func (t Tags) IsForest() bool {
	return t.Get("natural") == "wood" ||
		t.Get("landuse") == "forest" ||
		t.Get("landcover") == "trees"
}

// IsBuiltup reports whether the tags mark a built-up land-use polygon.
func (t Tags) IsBuiltup() bool {
	switch strings.ToLower(t.Get("landuse")) {
	case "residential", "industrial", "commercial":
		return true
	}
	return false
}

// ParseWidthMeters extracts a numeric width from an explicit width tag.
// Units and junk characters are stripped; parse failure reports ok=false so
// callers fall back to the type-default width.
func ParseWidthMeters(raw string) (float64, bool) {
	if raw == "" {
		return 0, false
	}
	var b strings.Builder
	for _, c := range raw {
		if c >= '0' && c <= '9' || c == '.' || c == '-' {
			b.WriteRune(c)
		}
	}
	v, err := strconv.ParseFloat(b.String(), 64)
	if err != nil || v <= 0 {
		return 0, false
	}
	return v, true
}

// Node is a point feature.
type Node struct {
	ID  int64
	Lat float64
	Lon float64
}

// Member is one entry of a relation.
type Member struct {
	Type string
	Ref  int64
	Role string
}

// OuterRole reports whether the member role denotes an outer ring.
// Overpass data is loose here: empty and "outline" roles count as outer.
func (m Member) OuterRole() bool {
	switch m.Role {
	case "outer", "", "outline":
		return true
	}
	return false
}

// Way is an ordered node reference list with tags.
type Way struct {
	ID      int64
	NodeIDs []int64
	Tags    Tags
}

// Relation is a set of member ways with roles and tags.
type Relation struct {
	ID      int64
	Members []Member
	Tags    Tags
}

// Collection is the immutable per-run snapshot of upstream features.
type Collection struct {
	Nodes     map[int64]Node
	Ways      []Way
	Relations []Relation

	waysByID map[int64]int
}

// NewCollection assembles a snapshot from already-resolved records.
func NewCollection(nodes []Node, ways []Way, relations []Relation) *Collection {
	c := &Collection{
		Nodes:     make(map[int64]Node, len(nodes)),
		Ways:      ways,
		Relations: relations,
		waysByID:  make(map[int64]int, len(ways)),
	}
	for _, n := range nodes {
		c.Nodes[n.ID] = n
	}
	for i, w := range ways {
		c.waysByID[w.ID] = i
	}
	return c
}

// WayByID returns the way with the given id, if present.
func (c *Collection) WayByID(id int64) (Way, bool) {
	idx, ok := c.waysByID[id]
	if !ok {
		return Way{}, false
	}
	return c.Ways[idx], true
}

// element is the wire shape of one Overpass response entry.
type element struct {
	Type    string            `json:"type"`
	ID      int64             `json:"id"`
	Lat     float64           `json:"lat"`
	Lon     float64           `json:"lon"`
	Nodes   []int64           `json:"nodes"`
	Members []json.RawMessage `json:"members"`
	Tags    map[string]string `json:"tags"`
}

type memberWire struct {
	Type string `json:"type"`
	Ref  int64  `json:"ref"`
	Role string `json:"role"`
}

type response struct {
	Elements []element `json:"elements"`
}

// Decode parses an Overpass JSON response into a Collection.
func Decode(r io.Reader) (*Collection, error) {
	var resp response
	if err := json.NewDecoder(r).Decode(&resp); err != nil {
		return nil, fmt.Errorf("decoding feature response: %w", err)
	}

	c := &Collection{
		Nodes:    make(map[int64]Node),
		waysByID: make(map[int64]int),
	}
	for _, el := range resp.Elements {
		switch el.Type {
		case "node":
			c.Nodes[el.ID] = Node{ID: el.ID, Lat: el.Lat, Lon: el.Lon}
		case "way":
			c.waysByID[el.ID] = len(c.Ways)
			c.Ways = append(c.Ways, Way{ID: el.ID, NodeIDs: el.Nodes, Tags: Tags(el.Tags)})
		case "relation":
			rel := Relation{ID: el.ID, Tags: Tags(el.Tags)}
			for _, raw := range el.Members {
				var m memberWire
				if err := json.Unmarshal(raw, &m); err != nil {
					continue
				}
				rel.Members = append(rel.Members, Member(m))
			}
			c.Relations = append(c.Relations, rel)
		}
	}
	return c, nil
}

// Summary holds tag histograms of a collection, keyed by tag value.
type Summary struct {
	RoadsByType     map[string]int `json:"roads_by_type"`
	WaterwaysByType map[string]int `json:"waterways_by_type"`
	WaterAreas      map[string]int `json:"water_areas"`
	BuildingsByType map[string]int `json:"buildings_by_type"`
	LanduseByType   map[string]int `json:"landuse_by_type"`
	NaturalByType   map[string]int `json:"natural_by_type"`
	LandcoverByType map[string]int `json:"landcover_by_type"`
}

// Summarize tallies feature counts by tag for diagnostic output.
func Summarize(c *Collection) Summary {
	s := Summary{
		RoadsByType:     map[string]int{},
		WaterwaysByType: map[string]int{},
		WaterAreas:      map[string]int{"natural_water": 0, "reservoir": 0},
		BuildingsByType: map[string]int{"total": 0},
		LanduseByType:   map[string]int{},
		NaturalByType:   map[string]int{},
		LandcoverByType: map[string]int{},
	}
	tally := func(tags Tags) {
		if tags == nil {
			return
		}
		if v := tags.Get("highway"); v != "" {
			s.RoadsByType[strings.ToLower(v)]++
		}
		if v := tags.Get("waterway"); v != "" {
			s.WaterwaysByType[strings.ToLower(v)]++
		}
		if tags.Get("natural") == "water" {
			s.WaterAreas["natural_water"]++
		}
		if tags.Get("landuse") == "reservoir" {
			s.WaterAreas["reservoir"]++
		}
		if v := tags.Get("building"); v != "" {
			s.BuildingsByType["total"]++
			s.BuildingsByType[strings.ToLower(v)]++
		}
		if v := tags.Get("landuse"); v != "" {
			s.LanduseByType[strings.ToLower(v)]++
		}
		if v := tags.Get("natural"); v != "" {
			s.NaturalByType[strings.ToLower(v)]++
		}
		if v := tags.Get("landcover"); v != "" {
			s.LandcoverByType[strings.ToLower(v)]++
		}
	}
	for _, w := range c.Ways {
		tally(w.Tags)
	}
	for _, r := range c.Relations {
		tally(r.Tags)
	}
	return s
}
