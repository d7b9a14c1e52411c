package geom

import (
	"github.com/paulmach/orb"
)

// RingContains reports whether p is inside the ring by even-odd ray
// casting. Points exactly on the ring boundary count as contained.
func RingContains(ring orb.Ring, p orb.Point) bool {
	if len(ring) < 3 {
		return false
	}
	inside := false
	n := len(ring)
	for i := 0; i < n; i++ {
		a := ring[i]
		b := ring[(i+1)%n]
		if PointOnSegment(p, a, b) {
			return true
		}
		if (a[1] > p[1]) != (b[1] > p[1]) {
			x := a[0] + (p[1]-a[1])/(b[1]-a[1])*(b[0]-a[0])
			if p[0] < x {
				inside = !inside
			}
		}
	}
	return inside
}

// RingContainsProperly reports whether p is strictly inside the ring,
// excluding the boundary.
func RingContainsProperly(ring orb.Ring, p orb.Point) bool {
	if OnRing(ring, p) {
		return false
	}
	return RingContains(ring, p)
}

// OnRing reports whether p lies on the ring boundary.
func OnRing(ring orb.Ring, p orb.Point) bool {
	n := len(ring)
	for i := 0; i < n; i++ {
		if PointOnSegment(p, ring[i], ring[(i+1)%n]) {
			return true
		}
	}
	return false
}

// PointOnSegment reports whether p lies on segment ab.
func PointOnSegment(p, a, b orb.Point) bool {
	if cross(a, b, p) != 0 {
		return false
	}
	return onSegment(a, b, p)
}

// PolygonContains reports whether p is inside the polygon: within the
// exterior ring and not strictly inside any hole. Boundary points count
// as contained.
func PolygonContains(poly orb.Polygon, p orb.Point) bool {
	if len(poly) == 0 {
		return false
	}
	if !RingContains(poly[0], p) {
		return false
	}
	for _, hole := range poly[1:] {
		if OnRing(hole, p) {
			return true
		}
		if RingContains(hole, p) {
			return false
		}
	}
	return true
}

// PolygonContainsProperly reports whether p is strictly interior to the
// polygon: inside the exterior, outside every hole, touching no ring.
func PolygonContainsProperly(poly orb.Polygon, p orb.Point) bool {
	if len(poly) == 0 {
		return false
	}
	if !RingContainsProperly(poly[0], p) {
		return false
	}
	for _, hole := range poly[1:] {
		if OnRing(hole, p) || RingContains(hole, p) {
			return false
		}
	}
	return true
}

// RingArea returns the signed area of a ring. Counter-clockwise rings
// have positive area.
func RingArea(ring orb.Ring) float64 {
	n := len(ring)
	if n < 3 {
		return 0
	}
	var a float64
	for i := 0; i < n; i++ {
		p := ring[i]
		q := ring[(i+1)%n]
		a += p[0]*q[1] - q[0]*p[1]
	}
	return a / 2
}
