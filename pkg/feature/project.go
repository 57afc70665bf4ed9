package feature

import (
	"github.com/paulmach/orb"

	"github.com/Kruzntat/Hostile-OpenRA-For-TAKX/pkg/aoi"
)

// Project returns the way's node coordinates in fractional cell space.
// Nodes that are missing from the snapshot or project outside the AOI's UTM
// zone are dropped.
func (c *Collection) Project(w Way, a aoi.AOI) []orb.Point {
	pts := make([]orb.Point, 0, len(w.NodeIDs))
	for _, id := range w.NodeIDs {
		n, ok := c.Nodes[id]
		if !ok {
			continue
		}
		pt, ok := a.ToCell(n.Lat, n.Lon)
		if !ok {
			continue
		}
		pts = append(pts, pt)
	}
	return pts
}

// ClosedRing projects the way and closes it (first vertex repeated at the
// end). Rings with fewer than 3 distinct vertices return nil.
func (c *Collection) ClosedRing(w Way, a aoi.AOI) orb.Ring {
	pts := c.Project(w, a)
	if len(pts) < 3 {
		return nil
	}
	if pts[0] != pts[len(pts)-1] {
		pts = append(pts, pts[0])
	}
	return orb.Ring(pts)
}

// OuterRings projects and closes every outer-role member way of a relation.
func (c *Collection) OuterRings(rel Relation, a aoi.AOI) []orb.Ring {
	var rings []orb.Ring
	for _, m := range rel.Members {
		if m.Type != "way" || !m.OuterRole() {
			continue
		}
		w, ok := c.WayByID(m.Ref)
		if !ok {
			continue
		}
		if ring := c.ClosedRing(w, a); ring != nil {
			rings = append(rings, ring)
		}
	}
	return rings
}

// OuterPoints projects every node of every outer-role member way of a
// relation, without closing. Used to aggregate a combined bounding box.
func (c *Collection) OuterPoints(rel Relation, a aoi.AOI) []orb.Point {
	var pts []orb.Point
	for _, m := range rel.Members {
		if m.Type != "way" || !m.OuterRole() {
			continue
		}
		w, ok := c.WayByID(m.Ref)
		if !ok {
			continue
		}
		pts = append(pts, c.Project(w, a)...)
	}
	return pts
}
