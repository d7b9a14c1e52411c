package geom

import (
	"testing"

	"github.com/paulmach/orb"
)

func square(minX, minY, maxX, maxY float64) orb.Ring {
	return orb.Ring{
		{minX, minY}, {maxX, minY}, {maxX, maxY}, {minX, maxY}, {minX, minY},
	}
}

func TestRingContains(t *testing.T) {
	ring := square(0, 0, 10, 10)

	tests := []struct {
		name string
		p    orb.Point
		want bool
	}{
		{"center", orb.Point{5, 5}, true},
		{"outside", orb.Point{15, 5}, false},
		{"on edge", orb.Point{10, 5}, true},
		{"on vertex", orb.Point{0, 0}, true},
		{"just outside", orb.Point{10.001, 5}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := RingContains(ring, tt.p); got != tt.want {
				t.Errorf("RingContains(%v) = %v, want %v", tt.p, got, tt.want)
			}
		})
	}
}

func TestRingContainsProperly(t *testing.T) {
	ring := square(0, 0, 10, 10)
	if !RingContainsProperly(ring, orb.Point{5, 5}) {
		t.Error("center should be properly contained")
	}
	if RingContainsProperly(ring, orb.Point{10, 5}) {
		t.Error("edge point must not be properly contained")
	}
	if RingContainsProperly(ring, orb.Point{11, 5}) {
		t.Error("outside point must not be properly contained")
	}
}

func TestPolygonContainsWithHole(t *testing.T) {
	poly := orb.Polygon{
		square(0, 0, 10, 10),
		square(4, 4, 6, 6), // hole
	}

	tests := []struct {
		name     string
		p        orb.Point
		contains bool
		properly bool
	}{
		{"solid part", orb.Point{2, 2}, true, true},
		{"inside hole", orb.Point{5, 5}, false, false},
		{"on hole boundary", orb.Point{4, 5}, true, false},
		{"on outer boundary", orb.Point{0, 5}, true, false},
		{"outside", orb.Point{-1, -1}, false, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := PolygonContains(poly, tt.p); got != tt.contains {
				t.Errorf("PolygonContains(%v) = %v, want %v", tt.p, got, tt.contains)
			}
			if got := PolygonContainsProperly(poly, tt.p); got != tt.properly {
				t.Errorf("PolygonContainsProperly(%v) = %v, want %v", tt.p, got, tt.properly)
			}
		})
	}
}

func TestRingArea(t *testing.T) {
	ccw := square(0, 0, 10, 10)
	if got := RingArea(ccw); !almostEqual(got, 100) {
		t.Errorf("RingArea(ccw) = %v, want 100", got)
	}
	cw := orb.Ring{{0, 0}, {0, 10}, {10, 10}, {10, 0}, {0, 0}}
	if got := RingArea(cw); !almostEqual(got, -100) {
		t.Errorf("RingArea(cw) = %v, want -100", got)
	}
}
