package geom

import (
	"math"
	"sort"

	polyclip "github.com/ctessum/polyclip-go"
	"github.com/paulmach/orb"
)

// Union merges a set of simple polygon pieces into the minimal disjoint
// polygon set covering their combined area. The result is tagged Single
// when one polygon remains and Multi otherwise.
func Union(pieces []orb.Polygon) Collection {
	var acc polyclip.Polygon
	for _, piece := range pieces {
		pc := toPolyclip(piece)
		if len(pc) == 0 {
			continue
		}
		if acc == nil {
			acc = pc
			continue
		}
		acc = acc.Construct(polyclip.UNION, pc)
	}
	if acc == nil {
		return MultiResult(nil)
	}
	return MultiResult(fromPolyclip(acc))
}

func toPolyclip(poly orb.Polygon) polyclip.Polygon {
	var out polyclip.Polygon
	for _, ring := range poly {
		if len(ring) < 3 {
			continue
		}
		contour := make(polyclip.Contour, 0, len(ring))
		for i, p := range ring {
			// A closed orb ring repeats its first point; polyclip
			// contours are implicitly closed.
			if i == len(ring)-1 && p.Equal(ring[0]) {
				break
			}
			contour = append(contour, polyclip.Point{X: p[0], Y: p[1]})
		}
		if len(contour) >= 3 {
			out = append(out, contour)
		}
	}
	return out
}

// fromPolyclip classifies the clipper's flat contour list into polygons
// with holes. A contour nested inside an even number of other contours
// is an exterior; odd nesting marks a hole, attached to the smallest
// exterior containing it.
func fromPolyclip(p polyclip.Polygon) []orb.Polygon {
	type contour struct {
		ring  orb.Ring
		area  float64
		depth int
	}

	contours := make([]contour, 0, len(p))
	for _, c := range p {
		if len(c) < 3 {
			continue
		}
		ring := make(orb.Ring, 0, len(c)+1)
		for _, pt := range c {
			ring = append(ring, orb.Point{pt.X, pt.Y})
		}
		ring = append(ring, ring[0])
		contours = append(contours, contour{ring: ring, area: math.Abs(RingArea(ring))})
	}

	for i := range contours {
		rep := ringInteriorPoint(contours[i].ring)
		for j := range contours {
			if i == j {
				continue
			}
			if RingContains(contours[j].ring, rep) && contours[j].area > contours[i].area {
				contours[i].depth++
			}
		}
	}

	// Exteriors first, largest to smallest, so hole attachment finds the
	// tightest parent.
	order := make([]int, len(contours))
	for i := range order {
		order[i] = i
	}
	sort.Slice(order, func(a, b int) bool {
		return contours[order[a]].area > contours[order[b]].area
	})

	var polys []orb.Polygon
	parent := make(map[int]int)
	for _, i := range order {
		c := &contours[i]
		if c.depth%2 == 0 {
			ring := c.ring
			if RingArea(ring) < 0 {
				reverseRing(ring)
			}
			parent[i] = len(polys)
			polys = append(polys, orb.Polygon{ring})
		}
	}
	for _, i := range order {
		c := &contours[i]
		if c.depth%2 == 0 {
			continue
		}
		rep := ringInteriorPoint(c.ring)
		best := -1
		bestArea := math.Inf(1)
		for j := range contours {
			if contours[j].depth%2 != 0 {
				continue
			}
			if contours[j].area <= c.area || contours[j].area >= bestArea {
				continue
			}
			if RingContains(contours[j].ring, rep) {
				best = j
				bestArea = contours[j].area
			}
		}
		if best < 0 {
			continue
		}
		ring := c.ring
		if RingArea(ring) > 0 {
			reverseRing(ring)
		}
		pi := parent[best]
		polys[pi] = append(polys[pi], ring)
	}
	return polys
}

// ringInteriorPoint picks a stable representative point for nesting
// tests: the midpoint of the ring's first edge.
func ringInteriorPoint(ring orb.Ring) orb.Point {
	if len(ring) < 2 {
		return ring[0]
	}
	a, b := ring[0], ring[1]
	return orb.Point{(a[0] + b[0]) / 2, (a[1] + b[1]) / 2}
}

func reverseRing(ring orb.Ring) {
	for i, j := 0, len(ring)-1; i < j; i, j = i+1, j-1 {
		ring[i], ring[j] = ring[j], ring[i]
	}
}
