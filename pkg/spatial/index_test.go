package spatial

import (
	"math"
	"testing"

	"github.com/paulmach/orb"

	"github.com/lukasmahr/primal/pkg/errors"
)

func TestLineIndexNearest(t *testing.T) {
	lines := []orb.LineString{
		{{0, 0}, {10, 0}},
		{{0, 5}, {10, 5}},
		{{0, 20}, {10, 20}},
	}
	idx := NewLineIndex(lines)

	tests := []struct {
		name   string
		target orb.LineString
		line   int
		dist   float64
	}{
		{"closest to first", orb.LineString{{5, 1}, {6, 1}}, 0, 1},
		{"closest to second", orb.LineString{{5, 4}, {6, 4}}, 1, 1},
		{"closest to third", orb.LineString{{5, 18}, {6, 18}}, 2, 2},
		{"touching has distance zero", orb.LineString{{5, -2}, {5, 2}}, 0, 0},
		{"far target still resolves", orb.LineString{{500, 500}, {501, 501}}, 2, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			line, dist, err := idx.Nearest(tt.target)
			if err != nil {
				t.Fatalf("Nearest: %v", err)
			}
			if line != tt.line {
				t.Errorf("line = %d, want %d", line, tt.line)
			}
			if tt.dist > 0 && math.Abs(dist-tt.dist) > 1e-9 {
				t.Errorf("dist = %v, want %v", dist, tt.dist)
			}
			if tt.dist == 0 && tt.name == "touching has distance zero" && dist != 0 {
				t.Errorf("dist = %v, want 0", dist)
			}
		})
	}
}

func TestLineIndexNearestTieFirstMatch(t *testing.T) {
	// Two lines at identical distance from the target; the first
	// inserted line wins.
	lines := []orb.LineString{
		{{0, 2}, {10, 2}},
		{{0, -2}, {10, -2}},
	}
	idx := NewLineIndex(lines)
	line, dist, err := idx.Nearest(orb.LineString{{4, 0}, {6, 0}})
	if err != nil {
		t.Fatalf("Nearest: %v", err)
	}
	if line != 0 {
		t.Errorf("tie resolved to line %d, want 0", line)
	}
	if math.Abs(dist-2) > 1e-9 {
		t.Errorf("dist = %v, want 2", dist)
	}
}

func TestLineIndexEmpty(t *testing.T) {
	idx := NewLineIndex(nil)
	_, _, err := idx.Nearest(orb.LineString{{0, 0}, {1, 1}})
	if !errors.Is(err, errors.ErrCodeSpatialQuery) {
		t.Fatalf("err = %v, want spatial query failure", err)
	}
}

func TestPointIndexWithin(t *testing.T) {
	points := []orb.Point{{0, 0}, {1, 1}, {5, 5}, {10, 10}}
	idx := NewPointIndex(points)

	got := idx.Within(orb.Bound{Min: orb.Point{-1, -1}, Max: orb.Point{2, 2}})
	want := []int{0, 1}
	if len(got) != len(want) {
		t.Fatalf("Within = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("Within = %v, want %v", got, want)
		}
	}
}

func TestPointIndexAdjacentPairs(t *testing.T) {
	// A 2x2 pixel block plus one distant point: the block is fully
	// 8-connected, the outlier connects to nothing.
	points := []orb.Point{{0, 0}, {1, 0}, {0, 1}, {1, 1}, {10, 10}}
	idx := NewPointIndex(points)

	pairs := idx.AdjacentPairs(1.0)
	if len(pairs) != 6 {
		t.Fatalf("got %d pairs, want 6: %v", len(pairs), pairs)
	}
	for _, pr := range pairs {
		if pr[0] >= pr[1] {
			t.Errorf("pair %v not ordered", pr)
		}
		if pr[0] == 4 || pr[1] == 4 {
			t.Errorf("outlier joined a pair: %v", pr)
		}
	}
}

func TestPointIndexEmpty(t *testing.T) {
	idx := NewPointIndex(nil)
	if got := idx.Within(orb.Bound{Min: orb.Point{0, 0}, Max: orb.Point{1, 1}}); got != nil {
		t.Fatalf("Within on empty index = %v, want nil", got)
	}
	if got := idx.AdjacentPairs(1.0); got != nil {
		t.Fatalf("AdjacentPairs on empty index = %v, want nil", got)
	}
}
