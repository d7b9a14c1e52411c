package graph

import (
	"math"
	"testing"

	"github.com/paulmach/orb"

	"github.com/lukasmahr/primal/pkg/geom"
)

func TestExtractDedupAndIncidence(t *testing.T) {
	// A T shape: three edges meeting at (5, 0).
	lines := []orb.LineString{
		{{0, 0}, {5, 0}},
		{{5, 0}, {10, 0}},
		{{5, 0}, {5, 5}},
	}
	g, dropped := Extract(lines)
	if dropped != 0 {
		t.Fatalf("dropped = %d, want 0", dropped)
	}
	if len(g.Nodes) != 4 {
		t.Fatalf("nodes = %d, want 4", len(g.Nodes))
	}
	if len(g.Edges) != 3 {
		t.Fatalf("edges = %d, want 3", len(g.Edges))
	}
	if !g.CheckInvariants() {
		t.Fatal("invariants violated")
	}

	junction := 0
	for _, n := range g.Nodes {
		if n.Location.Equal(orb.Point{5, 0}) {
			junction = n.Incidence
		}
	}
	if junction != 3 {
		t.Errorf("junction incidence = %d, want 3", junction)
	}
}

func TestExtractDropsSelfLoops(t *testing.T) {
	lines := []orb.LineString{
		{{0, 0}, {5, 5}, {0, 0}}, // closed, endpoints equal
		{{0, 0}, {1, 1}},
	}
	g, dropped := Extract(lines)
	if dropped != 1 {
		t.Errorf("dropped = %d, want 1", dropped)
	}
	if len(g.Edges) != 1 {
		t.Errorf("edges = %d, want 1", len(g.Edges))
	}
}

func TestExtractDeterministicIDs(t *testing.T) {
	lines := []orb.LineString{
		{{0, 0}, {5, 0}},
		{{5, 0}, {10, 0}},
		{{5, 0}, {5, 5}},
	}
	permuted := []orb.LineString{lines[2], lines[0], lines[1]}

	a, _ := Extract(lines)
	b, _ := Extract(permuted)
	if len(a.Nodes) != len(b.Nodes) {
		t.Fatal("node counts differ under permutation")
	}
	for i := range a.Nodes {
		if !a.Nodes[i].Location.Equal(b.Nodes[i].Location) {
			t.Errorf("node %d differs: %v vs %v", i, a.Nodes[i].Location, b.Nodes[i].Location)
		}
	}
}

func TestSnappedPointsCollapseToOneNode(t *testing.T) {
	// Two endpoints 0.05 apart snap to the same grid coordinate and
	// must become one node.
	a := geom.SnapPoint(orb.Point{1.02, 0})
	b := geom.SnapPoint(orb.Point{1.07, 0})
	lines := []orb.LineString{
		{{0, 0}, a},
		{b, {2, 0}},
	}
	g, _ := Extract(lines)
	if len(g.Nodes) != 3 {
		t.Fatalf("nodes = %d, want 3 (snapped endpoints must collapse)", len(g.Nodes))
	}
}

func TestChords(t *testing.T) {
	lines := []orb.LineString{{{0, 0}, {1, 1}, {2, 0}}}
	g, _ := Extract(lines)
	chords := g.Chords()
	if len(chords) != 1 {
		t.Fatalf("chords = %d, want 1", len(chords))
	}
	want := orb.LineString{{0, 0}, {2, 0}}
	if !chords[0][0].Equal(want[0]) || !chords[0][1].Equal(want[1]) {
		t.Errorf("chord = %v, want %v", chords[0], want)
	}
}

func TestBuildAdjacencyEightConnectivity(t *testing.T) {
	// 3 pixels in an L: center connects to both, and the diagonal
	// neighbors connect too (Chebyshev distance 1).
	points := []orb.Point{{0.5, 0.5}, {1.5, 0.5}, {1.5, 1.5}}
	edges := BuildAdjacency(points, 1.0)
	if len(edges) != 3 {
		t.Fatalf("edges = %d, want 3: %v", len(edges), edges)
	}
}

func TestMergeChain(t *testing.T) {
	lines := []orb.LineString{
		{{0, 0}, {1, 0}},
		{{1, 0}, {2, 0}},
		{{2, 0}, {3, 0}},
	}
	merged := Merge(lines)
	if len(merged) != 1 {
		t.Fatalf("merged = %d lines, want 1", len(merged))
	}
	if len(merged[0]) != 4 {
		t.Errorf("chain has %d vertices, want 4", len(merged[0]))
	}
	if math.Abs(geom.Length(merged[0])-3) > 1e-9 {
		t.Errorf("chain length = %v, want 3", geom.Length(merged[0]))
	}
}

func TestMergeStopsAtJunction(t *testing.T) {
	// Three fragments meet at (1, 0): nothing may merge through it.
	lines := []orb.LineString{
		{{0, 0}, {1, 0}},
		{{1, 0}, {2, 0}},
		{{1, 0}, {1, 1}},
	}
	merged := Merge(lines)
	if len(merged) != 3 {
		t.Fatalf("merged = %d lines, want 3 (junction must not be bridged)", len(merged))
	}
}

func TestMergeIdempotent(t *testing.T) {
	lines := []orb.LineString{
		{{0, 0}, {1, 0}},
		{{1, 0}, {2, 0}},
		{{2, 0}, {2, 1}},
		{{2, 0}, {3, 0}},
		{{5, 5}, {6, 6}},
	}
	once := Merge(lines)
	twice := Merge(once)
	if len(once) != len(twice) {
		t.Fatalf("second merge changed line count: %d vs %d", len(once), len(twice))
	}
	for i := range once {
		if len(once[i]) != len(twice[i]) {
			t.Errorf("line %d changed shape on re-merge", i)
		}
	}
}

func TestMergeOrderInvariant(t *testing.T) {
	lines := []orb.LineString{
		{{0, 0}, {1, 0}},
		{{1, 0}, {2, 0}},
		{{2, 0}, {2, 1}},
	}
	permuted := []orb.LineString{lines[1], lines[2], lines[0]}

	a := Merge(lines)
	b := Merge(permuted)
	if len(a) != len(b) {
		t.Fatalf("merge not order invariant: %d vs %d lines", len(a), len(b))
	}
	for i := range a {
		la, lb := geom.Length(a[i]), geom.Length(b[i])
		if math.Abs(la-lb) > 1e-9 {
			t.Errorf("line %d length differs: %v vs %v", i, la, lb)
		}
	}
}

func TestMergeClosedLoop(t *testing.T) {
	lines := []orb.LineString{
		{{0, 0}, {1, 0}},
		{{1, 0}, {1, 1}},
		{{1, 1}, {0, 1}},
		{{0, 1}, {0, 0}},
	}
	merged := Merge(lines)
	if len(merged) != 1 {
		t.Fatalf("merged = %d lines, want 1 ring", len(merged))
	}
	first, last := geom.Endpoints(merged[0])
	if !first.Equal(last) {
		t.Errorf("ring not closed: %v to %v", first, last)
	}
}

func TestDewhiskerCollapsesKnot(t *testing.T) {
	// A long run interrupted by a cluster of sub-threshold stubs near
	// (10, 0), plus a 1.5-unit spur: the cluster collapses to one
	// junction and the spur disappears.
	lines := []orb.LineString{
		{{0, 0}, {10, 0}},
		{{10, 0}, {10.5, 0.5}},
		{{10.5, 0.5}, {11, 0}},
		{{11, 0}, {20, 0}},
		{{10.5, 0.5}, {10.5, 2}}, // 1.5-unit spur
		{{10.5, 0.5}, {10.5, 10}},
	}
	out := Dewhisker(lines)
	for _, ls := range out {
		if geom.Length(ls) <= KnotThreshold {
			t.Errorf("surviving edge of length %v below floor", geom.Length(ls))
		}
	}
	g, _ := Extract(out)
	if !g.CheckInvariants() {
		t.Fatal("invariants violated after dewhisker")
	}
	// One degree-3 junction where the knot cluster used to be.
	deg3 := 0
	for _, n := range g.Nodes {
		if n.Incidence == 3 {
			deg3++
		}
	}
	if deg3 != 1 {
		t.Errorf("degree-3 nodes = %d, want 1", deg3)
	}
}

func TestDewhiskerNoKnots(t *testing.T) {
	lines := []orb.LineString{
		{{0, 0}, {10, 0}},
		{{10, 0}, {20, 0}},
	}
	out := Dewhisker(lines)
	if len(out) != 1 {
		t.Fatalf("got %d lines, want 1 merged line", len(out))
	}
	if math.Abs(geom.Length(out[0])-20) > 1e-9 {
		t.Errorf("length = %v, want 20", geom.Length(out[0]))
	}
}

func TestDewhiskerOrderInvariant(t *testing.T) {
	lines := []orb.LineString{
		{{0, 0}, {10, 0}},
		{{10, 0}, {10.5, 0.5}},
		{{10.5, 0.5}, {11, 0}},
		{{11, 0}, {20, 0}},
		{{10.5, 0.5}, {10.5, 10}},
	}
	permuted := make([]orb.LineString, len(lines))
	for i, ls := range lines {
		permuted[len(lines)-1-i] = ls
	}

	a := Dewhisker(lines)
	b := Dewhisker(permuted)
	if len(a) != len(b) {
		t.Fatalf("dewhisker not order invariant: %d vs %d", len(a), len(b))
	}
	for i := range a {
		if len(a[i]) != len(b[i]) {
			t.Errorf("line %d shape differs under permutation", i)
			continue
		}
		for j := range a[i] {
			if !a[i][j].Equal(b[i][j]) {
				t.Errorf("line %d vertex %d differs: %v vs %v", i, j, a[i][j], b[i][j])
			}
		}
	}
}

func TestCoordinatesStayOnGrid(t *testing.T) {
	lines := []orb.LineString{
		{{0, 0}, {10, 0}},
		{{10, 0}, {10.5, 0.5}},
		{{10.5, 0.5}, {11, 0}},
		{{11, 0}, {20, 0}},
	}
	for _, ls := range Dewhisker(lines) {
		for _, p := range ls {
			for _, v := range []float64{p[0], p[1]} {
				snapped := math.Round(v/geom.Grid) * geom.Grid
				if math.Abs(v-snapped) > 1e-9 {
					t.Errorf("coordinate %v off the 0.1 grid", v)
				}
			}
		}
	}
}
