package geom

import (
	"math"
	"testing"

	"github.com/paulmach/orb"
)

func TestSnap(t *testing.T) {
	tests := []struct {
		name string
		in   float64
		want float64
	}{
		{"exact multiple", 1.2, 1.2},
		{"round down", 1.24, 1.2},
		{"round up", 1.26, 1.3},
		{"negative", -0.05, 0.0},
		{"zero", 0, 0},
		{"large", 123456.78, 123456.8},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Snap(tt.in)
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("Snap(%v) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestSnapCollapsesNearbyPoints(t *testing.T) {
	// Two points 0.05 units apart land on the same grid cell and must
	// become one node coordinate.
	a := SnapPoint(orb.Point{10.02, 5.0})
	b := SnapPoint(orb.Point{10.07, 5.0})
	if KeyOf(a) != KeyOf(b) {
		t.Errorf("keys differ: %v vs %v", KeyOf(a), KeyOf(b))
	}
	if !a.Equal(b) {
		t.Errorf("snapped points differ: %v vs %v", a, b)
	}
}

func TestSnapLine(t *testing.T) {
	t.Run("removes consecutive duplicates", func(t *testing.T) {
		ls := orb.LineString{{0, 0}, {0.01, 0.02}, {1, 1}}
		got := SnapLine(ls)
		want := orb.LineString{{0, 0}, {1, 1}}
		if len(got) != len(want) {
			t.Fatalf("len = %d, want %d (%v)", len(got), len(want), got)
		}
		for i := range want {
			if !got[i].Equal(want[i]) {
				t.Errorf("point %d = %v, want %v", i, got[i], want[i])
			}
		}
	})

	t.Run("degenerate collapses to sentinel", func(t *testing.T) {
		ls := orb.LineString{{0, 0}, {0.02, 0.01}, {0.04, 0.04}}
		got := SnapLine(ls)
		if len(got) != 0 {
			t.Errorf("expected empty sentinel, got %v", got)
		}
	})

	t.Run("empty stays empty", func(t *testing.T) {
		if got := SnapLine(orb.LineString{}); len(got) != 0 {
			t.Errorf("expected empty, got %v", got)
		}
	})
}

func TestSnapLines(t *testing.T) {
	lines := []orb.LineString{
		{{0, 0}, {10, 0}},
		{{0, 0}, {0.01, 0.01}}, // collapses
		{{5, 5}, {5, 15}},
	}
	out, dropped := SnapLines(lines)
	if len(out) != 2 {
		t.Errorf("kept %d lines, want 2", len(out))
	}
	if dropped != 1 {
		t.Errorf("dropped = %d, want 1", dropped)
	}
}

func TestKeyRoundTrip(t *testing.T) {
	pts := []orb.Point{{0, 0}, {1.2, -3.4}, {12345.6, -0.1}, {-99999.9, 99999.9}}
	for _, p := range pts {
		k := KeyOf(p)
		back := k.Point()
		if math.Abs(back[0]-p[0]) > 1e-9 || math.Abs(back[1]-p[1]) > 1e-9 {
			t.Errorf("round trip %v -> %v -> %v", p, k, back)
		}
	}
}

func TestKeyLess(t *testing.T) {
	a := KeyOf(orb.Point{0, 1})
	b := KeyOf(orb.Point{1, 0})
	c := KeyOf(orb.Point{0, 2})
	if !a.Less(b) {
		t.Error("expected (0,1) < (1,0)")
	}
	if !a.Less(c) {
		t.Error("expected (0,1) < (0,2)")
	}
	if b.Less(a) {
		t.Error("expected !((1,0) < (0,1))")
	}
}
