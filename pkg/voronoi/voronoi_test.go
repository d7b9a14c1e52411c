package voronoi

import (
	"math"
	"testing"

	"github.com/paulmach/orb"

	"github.com/lukasmahr/primal/pkg/errors"
	"github.com/lukasmahr/primal/pkg/geom"
	"github.com/lukasmahr/primal/pkg/graph"
)

func TestExtractBoundary(t *testing.T) {
	ring := orb.Ring{{0, 0}, {20, 0}, {20, 20}, {0, 20}, {0, 0}}
	hole := orb.Ring{{5, 5}, {5, 10}, {10, 10}, {10, 5}, {5, 5}}
	c := geom.SingleResult(orb.Polygon{ring, hole})

	lines := ExtractBoundary(c)
	if len(lines) != 2 {
		t.Fatalf("got %d boundary lines, want 2", len(lines))
	}
	for i, ls := range lines {
		first, last := geom.Endpoints(ls)
		if !first.Equal(last) {
			t.Errorf("boundary %d not closed", i)
		}
	}
}

func TestSegmentBoundarySpacing(t *testing.T) {
	// A 100-unit straight boundary at scale 10 yields sub-segments of
	// exactly 10 units and one seed per sub-segment.
	lines := []orb.LineString{{{0, 0}, {100, 0}}}
	seeds := SegmentBoundary(lines, 10)
	if len(seeds) != 10 {
		t.Fatalf("got %d seeds, want 10", len(seeds))
	}
	for i := 1; i < len(seeds); i++ {
		d := math.Hypot(seeds[i][0]-seeds[i-1][0], seeds[i][1]-seeds[i-1][1])
		if math.Abs(d-10) > geom.Grid {
			t.Errorf("seed spacing %v, want 10", d)
		}
	}
}

func TestSegmentBoundaryDedup(t *testing.T) {
	// A closed square revisits its corner; the seed set must not
	// contain duplicates.
	lines := []orb.LineString{{{0, 0}, {10, 0}, {10, 10}, {0, 10}, {0, 0}}}
	seeds := SegmentBoundary(lines, 5)
	seen := make(map[geom.Key]bool)
	for _, p := range seeds {
		k := geom.KeyOf(p)
		if seen[k] {
			t.Fatalf("duplicate seed %v", p)
		}
		seen[k] = true
	}
}

func TestComputeVoronoiTooFewSeeds(t *testing.T) {
	_, err := ComputeVoronoi([]orb.Point{{0, 0}, {1, 1}}, 1.0)
	if !errors.Is(err, errors.ErrCodeInvalidGeometry) {
		t.Fatalf("err = %v, want invalid geometry", err)
	}
}

func TestComputeVoronoiSquareSeeds(t *testing.T) {
	// Four corner seeds: the Voronoi edges form the two medial lines
	// crossing at the square's center.
	seeds := []orb.Point{{0, 0}, {10, 0}, {10, 10}, {0, 10}}
	edges, err := ComputeVoronoi(seeds, 0.5)
	if err != nil {
		t.Fatalf("ComputeVoronoi: %v", err)
	}
	if len(edges) == 0 {
		t.Fatal("no voronoi edges")
	}
	b := orb.MultiPoint(seeds).Bound()
	touchesCentre := false
	for _, e := range edges {
		for _, p := range e {
			if p[0] < b.Min[0]-1e-9 || p[0] > b.Max[0]+1e-9 ||
				p[1] < b.Min[1]-1e-9 || p[1] > b.Max[1]+1e-9 {
				t.Errorf("edge point %v outside seed bound", p)
			}
			if p.Equal(orb.Point{5, 5}) {
				touchesCentre = true
			}
		}
	}
	if !touchesCentre {
		t.Error("no edge touches the medial centre (5, 5)")
	}
}

func TestComputeVoronoiSnapTolerance(t *testing.T) {
	// Seeds in two tight clniques produce circumcenters clustered
	// within the tolerance; the merged output must not contain edges
	// shorter than the grid.
	seeds := []orb.Point{
		{0, 0}, {10, 0.1}, {10, -0.1}, {20, 0}, {10, 10}, {10, -10},
	}
	edges, err := ComputeVoronoi(seeds, 1.0)
	if err != nil {
		t.Fatalf("ComputeVoronoi: %v", err)
	}
	for _, e := range edges {
		if geom.Length(e) == 0 {
			t.Error("zero-length voronoi edge survived snapping")
		}
	}
}

func TestComputeVoronoiOnGrid(t *testing.T) {
	seeds := []orb.Point{{0, 0}, {7.3, 1.1}, {3.7, 8.9}, {9.2, 7.6}}
	edges, err := ComputeVoronoi(seeds, 1.0)
	if err != nil {
		t.Fatalf("ComputeVoronoi: %v", err)
	}
	for _, e := range edges {
		for _, p := range e {
			for _, v := range []float64{p[0], p[1]} {
				snapped := math.Round(v/geom.Grid) * geom.Grid
				if math.Abs(v-snapped) > 1e-9 {
					t.Errorf("coordinate %v off the 0.1 grid", v)
				}
			}
		}
	}
}

func TestFilterByDistance(t *testing.T) {
	boundary := []orb.LineString{
		{{0, 0}, {20, 0}},
		{{0, 10}, {20, 10}},
	}
	edges := []orb.LineString{
		{{2, 5}, {8, 5}},   // centre line, distance 5
		{{2, 1}, {8, 1}},   // hugging the wall, distance 1
		{{12, 9}, {18, 9}}, // hugging the other wall
	}
	kept, err := FilterByDistance(edges, boundary, 4.0)
	if err != nil {
		t.Fatalf("FilterByDistance: %v", err)
	}
	if len(kept) != 1 {
		t.Fatalf("kept %d edges, want 1: %v", len(kept), kept)
	}
	if kept[0][0][1] != 5 {
		t.Errorf("kept the wrong edge: %v", kept[0])
	}
}

func TestFilterByContainment(t *testing.T) {
	ring := orb.Ring{{0, 0}, {20, 0}, {20, 10}, {0, 10}, {0, 0}}
	c := geom.SingleResult(orb.Polygon{ring})
	edges := []orb.LineString{
		{{5, 5}, {15, 5}},   // properly inside
		{{5, 0}, {15, 0}},   // on the boundary
		{{15, 5}, {25, 5}},  // leaks outside
		{{-5, 5}, {-1, 5}},  // fully outside
		{{5, 5}, {5, 10.1}}, // crosses the boundary
	}
	kept := FilterByContainment(edges, c)
	if len(kept) != 1 {
		t.Fatalf("kept %d edges, want 1: %v", len(kept), kept)
	}
}

func TestCollapseJunctionClusters(t *testing.T) {
	// Two near-coincident degree-3 junctions at (10, 0) and (10.4, 0)
	// fall into one merge zone and snap to a single junction.
	lines := []orb.LineString{
		{{0, 0}, {10, 0}},
		{{10, 0}, {10.4, 0}},
		{{10.4, 0}, {20, 0}},
		{{10, 0}, {10, 8}},
		{{10.4, 0}, {10.4, -8}},
	}
	out := CollapseJunctionClusters(lines, 2.0)

	g, _ := graph.Extract(out)
	if !g.CheckInvariants() {
		t.Fatal("invariants violated after collapse")
	}
	// The two junctions must have merged: no remaining edge shorter
	// than the zone size between them.
	for _, ls := range out {
		if l := geom.Length(ls); l > 0 && l < 1.0 {
			t.Errorf("residual micro edge of length %v", l)
		}
	}
}
