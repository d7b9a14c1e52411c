package geom

import (
	"math"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"
)

// Length returns the planar length of a line.
func Length(ls orb.LineString) float64 {
	return planar.Length(ls)
}

// TotalLength sums the planar lengths of a line set.
func TotalLength(lines []orb.LineString) float64 {
	var total float64
	for _, ls := range lines {
		total += planar.Length(ls)
	}
	return total
}

// PointSegmentDistance returns the distance from p to segment ab.
func PointSegmentDistance(p, a, b orb.Point) float64 {
	dx := b[0] - a[0]
	dy := b[1] - a[1]
	den := dx*dx + dy*dy
	if den == 0 {
		return planar.Distance(p, a)
	}
	t := ((p[0]-a[0])*dx + (p[1]-a[1])*dy) / den
	if t < 0 {
		t = 0
	} else if t > 1 {
		t = 1
	}
	closest := orb.Point{a[0] + t*dx, a[1] + t*dy}
	return planar.Distance(p, closest)
}

// SegmentDistance returns the minimum distance between segments ab and cd.
// Intersecting segments have distance zero; otherwise the minimum is
// attained at an endpoint of one of the segments.
func SegmentDistance(a, b, c, d orb.Point) float64 {
	if SegmentsIntersect(a, b, c, d) {
		return 0
	}
	m := PointSegmentDistance(a, c, d)
	if v := PointSegmentDistance(b, c, d); v < m {
		m = v
	}
	if v := PointSegmentDistance(c, a, b); v < m {
		m = v
	}
	if v := PointSegmentDistance(d, a, b); v < m {
		m = v
	}
	return m
}

// cross returns (b-a) x (c-a).
func cross(a, b, c orb.Point) float64 {
	return (b[0]-a[0])*(c[1]-a[1]) - (b[1]-a[1])*(c[0]-a[0])
}

// onSegment reports whether collinear point p lies on segment ab.
func onSegment(a, b, p orb.Point) bool {
	return math.Min(a[0], b[0]) <= p[0] && p[0] <= math.Max(a[0], b[0]) &&
		math.Min(a[1], b[1]) <= p[1] && p[1] <= math.Max(a[1], b[1])
}

// SegmentsIntersect reports whether segments ab and cd share any point,
// including endpoint touches and collinear overlap.
func SegmentsIntersect(a, b, c, d orb.Point) bool {
	d1 := cross(c, d, a)
	d2 := cross(c, d, b)
	d3 := cross(a, b, c)
	d4 := cross(a, b, d)

	if ((d1 > 0 && d2 < 0) || (d1 < 0 && d2 > 0)) &&
		((d3 > 0 && d4 < 0) || (d3 < 0 && d4 > 0)) {
		return true
	}
	if d1 == 0 && onSegment(c, d, a) {
		return true
	}
	if d2 == 0 && onSegment(c, d, b) {
		return true
	}
	if d3 == 0 && onSegment(a, b, c) {
		return true
	}
	if d4 == 0 && onSegment(a, b, d) {
		return true
	}
	return false
}

// Centroid returns the arithmetic mean of a point set.
// The zero point is returned for an empty set.
func Centroid(points []orb.Point) orb.Point {
	if len(points) == 0 {
		return orb.Point{}
	}
	var sx, sy float64
	for _, p := range points {
		sx += p[0]
		sy += p[1]
	}
	n := float64(len(points))
	return orb.Point{sx / n, sy / n}
}

// PolygonCentroid returns the area-weighted centroid of a polygon.
func PolygonCentroid(poly orb.Polygon) orb.Point {
	c, _ := planar.CentroidArea(poly)
	return c
}
