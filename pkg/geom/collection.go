package geom

import (
	"github.com/paulmach/orb"
)

// Collection is the result of a union or merge operation: either one
// polygon or several disjoint ones. The tag is set by the producing
// operation, so callers never probe geometry types after the fact.
type Collection struct {
	single bool
	polys  []orb.Polygon
}

// SingleResult tags a lone polygon.
func SingleResult(p orb.Polygon) Collection {
	return Collection{single: true, polys: []orb.Polygon{p}}
}

// MultiResult tags a disjoint polygon set. A one-element set is
// normalized to a single result; an empty set stays empty.
func MultiResult(ps []orb.Polygon) Collection {
	if len(ps) == 1 {
		return SingleResult(ps[0])
	}
	return Collection{polys: ps}
}

// Single returns the polygon and true when the collection holds exactly
// one polygon.
func (c Collection) Single() (orb.Polygon, bool) {
	if c.single {
		return c.polys[0], true
	}
	return nil, false
}

// Polygons returns all member polygons, in deterministic order.
func (c Collection) Polygons() []orb.Polygon {
	return c.polys
}

// Empty reports whether the collection holds no polygons.
func (c Collection) Empty() bool {
	return len(c.polys) == 0
}

// Len returns the number of member polygons.
func (c Collection) Len() int {
	return len(c.polys)
}

// Bound returns the bounding box over all member polygons.
func (c Collection) Bound() orb.Bound {
	var b orb.Bound
	for i, p := range c.polys {
		if i == 0 {
			b = p.Bound()
			continue
		}
		b = b.Union(p.Bound())
	}
	return b
}

// Contains reports whether any member polygon contains p.
func (c Collection) Contains(p orb.Point) bool {
	for _, poly := range c.polys {
		if PolygonContains(poly, p) {
			return true
		}
	}
	return false
}

// ContainsProperly reports whether p is strictly interior to a member
// polygon.
func (c Collection) ContainsProperly(p orb.Point) bool {
	for _, poly := range c.polys {
		if PolygonContainsProperly(poly, p) {
			return true
		}
	}
	return false
}
