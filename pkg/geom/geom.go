// Package geom provides the planar geometry primitives shared by both
// simplification engines: grid snapping, fixed-point coordinate keys,
// distance measures, polygon containment, corridor buffering, and
// polygon union with a tagged single/multi result.
//
// All geometry is built on orb types. Coordinates are snapped to a 0.1
// unit grid before comparison or storage; exact equality of snapped
// coordinates is expressed through [Key] values so node deduplication
// never depends on floating-point representation.
package geom

import (
	"sort"

	"github.com/paulmach/orb"
)

// Endpoints returns the first and last point of a line.
// The line must be non-empty.
func Endpoints(ls orb.LineString) (orb.Point, orb.Point) {
	return ls[0], ls[len(ls)-1]
}

// BoundOf computes the bounding box of a set of lines.
// Returns a zero bound when the set is empty.
func BoundOf(lines []orb.LineString) orb.Bound {
	var b orb.Bound
	first := true
	for _, ls := range lines {
		if len(ls) == 0 {
			continue
		}
		if first {
			b = ls.Bound()
			first = false
			continue
		}
		b = b.Union(ls.Bound())
	}
	return b
}

// ExplodeSegments splits a line into its unit 2-point segments.
func ExplodeSegments(ls orb.LineString) []orb.LineString {
	if len(ls) < 2 {
		return nil
	}
	segments := make([]orb.LineString, 0, len(ls)-1)
	for i := 0; i+1 < len(ls); i++ {
		segments = append(segments, orb.LineString{ls[i], ls[i+1]})
	}
	return segments
}

// SortLines orders lines canonically: by first coordinate, then last,
// then vertex count. Stages sort their outputs so that identical inputs
// produce identical output ordering regardless of map iteration order.
func SortLines(lines []orb.LineString) {
	sort.Slice(lines, func(i, j int) bool {
		a, b := lines[i], lines[j]
		if len(a) == 0 || len(b) == 0 {
			return len(a) < len(b)
		}
		if !a[0].Equal(b[0]) {
			return lessPoint(a[0], b[0])
		}
		la, lb := a[len(a)-1], b[len(b)-1]
		if !la.Equal(lb) {
			return lessPoint(la, lb)
		}
		return len(a) < len(b)
	})
}

func lessPoint(a, b orb.Point) bool {
	if a[0] != b[0] {
		return a[0] < b[0]
	}
	return a[1] < b[1]
}

// CanonicalLine orients a line so its lexicographically smaller endpoint
// comes first. Used when deduplicating undirected segments.
func CanonicalLine(ls orb.LineString) orb.LineString {
	if len(ls) < 2 {
		return ls
	}
	first, last := ls[0], ls[len(ls)-1]
	if lessPoint(last, first) {
		r := ls.Clone()
		r.Reverse()
		return r
	}
	return ls
}
