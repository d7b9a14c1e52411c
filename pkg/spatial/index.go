// Package spatial provides the index capability used by the
// simplification pipelines: nearest-geometry queries over line
// collections and box/adjacency queries over point sets.
//
// Two implementations cover the two query shapes. LineIndex hashes line
// segments into a uniform cell grid and answers nearest-line queries
// with an expanding search. PointIndex wraps an orb quadtree for
// box-containment and fixed-radius adjacency queries. Any R-tree or
// grid index satisfying the same contract could replace either.
package spatial

import (
	"math"
	"sort"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/quadtree"

	"github.com/lukasmahr/primal/pkg/errors"
	"github.com/lukasmahr/primal/pkg/geom"
)

// segment is one indexed piece of a line, tagged with the line it
// belongs to. Insertion order is preserved so that distance ties
// resolve to the first inserted line.
type segment struct {
	line int
	a, b orb.Point
}

// LineIndex answers nearest-line queries over a fixed line collection.
// Build once, query many times; the index is immutable after New.
type LineIndex struct {
	segments []segment
	cells    map[[2]int][]int
	cell     float64
	bound    orb.Bound
	count    int
}

// NewLineIndex builds a grid index over the given lines. Empty lines
// are skipped; queries against an index with no segments fail.
func NewLineIndex(lines []orb.LineString) *LineIndex {
	x := &LineIndex{cells: make(map[[2]int][]int)}

	var total float64
	var n int
	for _, ls := range lines {
		for i := 0; i+1 < len(ls); i++ {
			total += math.Hypot(ls[i+1][0]-ls[i][0], ls[i+1][1]-ls[i][1])
			n++
		}
	}
	if n == 0 {
		return x
	}
	// Cell size near the mean segment length keeps bucket occupancy
	// low without fragmenting long segments across many cells.
	x.cell = total / float64(n)
	if x.cell <= 0 {
		x.cell = geom.Grid
	}

	first := true
	for li, ls := range lines {
		for i := 0; i+1 < len(ls); i++ {
			s := segment{line: li, a: ls[i], b: ls[i+1]}
			id := len(x.segments)
			x.segments = append(x.segments, s)
			sb := orb.MultiPoint{s.a, s.b}.Bound()
			if first {
				x.bound = sb
				first = false
			} else {
				x.bound = x.bound.Union(sb)
			}
			for _, c := range x.cellRange(sb) {
				x.cells[c] = append(x.cells[c], id)
			}
		}
		x.count++
	}
	return x
}

// cellRange lists the grid cells covered by a bound.
func (x *LineIndex) cellRange(b orb.Bound) [][2]int {
	minC := [2]int{int(math.Floor(b.Min[0] / x.cell)), int(math.Floor(b.Min[1] / x.cell))}
	maxC := [2]int{int(math.Floor(b.Max[0] / x.cell)), int(math.Floor(b.Max[1] / x.cell))}
	var out [][2]int
	for cx := minC[0]; cx <= maxC[0]; cx++ {
		for cy := minC[1]; cy <= maxC[1]; cy++ {
			out = append(out, [2]int{cx, cy})
		}
	}
	return out
}

// candidates collects the segment ids whose cells intersect the bound,
// in insertion order.
func (x *LineIndex) candidates(b orb.Bound) []int {
	seen := make(map[int]bool)
	var out []int
	for _, c := range x.cellRange(b) {
		for _, id := range x.cells[c] {
			if !seen[id] {
				seen[id] = true
				out = append(out, id)
			}
		}
	}
	return out
}

// Nearest returns the index of the line closest to target and the
// distance between them. Ties resolve to the first inserted line. An
// index built over no segments fails with a spatial query error.
func (x *LineIndex) Nearest(target orb.LineString) (int, float64, error) {
	if len(x.segments) == 0 {
		return 0, 0, errors.New(errors.ErrCodeSpatialQuery, "nearest query on empty index")
	}
	if len(target) == 0 {
		return 0, 0, errors.New(errors.ErrCodeSpatialQuery, "nearest query with empty target")
	}

	diag := math.Hypot(x.bound.Max[0]-x.bound.Min[0], x.bound.Max[1]-x.bound.Min[1])
	tb := target.Bound()

	pad := x.cell
	for {
		ids := x.candidates(tb.Pad(pad))
		if len(ids) > 0 {
			line, dist := x.exactNearest(ids, target)
			// The closest segment within the padded window may still
			// lose to one just outside it; confirm with a window that
			// covers the found distance.
			if dist > pad {
				ids = x.candidates(tb.Pad(dist + x.cell))
				line, dist = x.exactNearest(ids, target)
			}
			return line, dist, nil
		}
		if pad > diag {
			all := make([]int, len(x.segments))
			for i := range all {
				all[i] = i
			}
			line, dist := x.exactNearest(all, target)
			return line, dist, nil
		}
		pad *= 2
	}
}

func (x *LineIndex) exactNearest(ids []int, target orb.LineString) (int, float64) {
	best := math.Inf(1)
	bestLine := 0
	for _, id := range ids {
		s := x.segments[id]
		d := lineSegmentDistance(target, s.a, s.b)
		if d < best {
			best = d
			bestLine = s.line
		}
	}
	return bestLine, best
}

// lineSegmentDistance returns the minimum distance between a line and
// one segment.
func lineSegmentDistance(ls orb.LineString, a, b orb.Point) float64 {
	if len(ls) == 1 {
		return geom.PointSegmentDistance(ls[0], a, b)
	}
	best := math.Inf(1)
	for i := 0; i+1 < len(ls); i++ {
		if d := geom.SegmentDistance(ls[i], ls[i+1], a, b); d < best {
			best = d
			if best == 0 {
				return 0
			}
		}
	}
	return best
}

// pointItem adapts an indexed point to the quadtree's Pointer interface.
type pointItem struct {
	p  orb.Point
	id int
}

func (it pointItem) Point() orb.Point { return it.p }

// PointIndex answers box and fixed-radius adjacency queries over a
// fixed point set.
type PointIndex struct {
	tree   *quadtree.Quadtree
	points []orb.Point
}

// NewPointIndex builds a quadtree over the given points.
func NewPointIndex(points []orb.Point) *PointIndex {
	x := &PointIndex{points: points}
	if len(points) == 0 {
		return x
	}
	b := orb.MultiPoint(points).Bound().Pad(1.0)
	x.tree = quadtree.New(b)
	for i, p := range points {
		_ = x.tree.Add(pointItem{p: p, id: i})
	}
	return x
}

// Len returns the number of indexed points.
func (x *PointIndex) Len() int {
	return len(x.points)
}

// Within returns the ids of the points inside the bound, sorted
// ascending.
func (x *PointIndex) Within(b orb.Bound) []int {
	if x.tree == nil {
		return nil
	}
	found := x.tree.InBound(nil, b)
	out := make([]int, 0, len(found))
	for _, f := range found {
		out = append(out, f.(pointItem).id)
	}
	sort.Ints(out)
	return out
}

// AdjacentPairs returns every unordered pair of distinct points whose
// Chebyshev distance is at most radius, as (i, j) with i < j, sorted.
func (x *PointIndex) AdjacentPairs(radius float64) [][2]int {
	var pairs [][2]int
	for i, p := range x.points {
		box := orb.Bound{
			Min: orb.Point{p[0] - radius, p[1] - radius},
			Max: orb.Point{p[0] + radius, p[1] + radius},
		}
		for _, j := range x.Within(box) {
			if j <= i {
				continue
			}
			q := x.points[j]
			if math.Abs(q[0]-p[0]) <= radius && math.Abs(q[1]-p[1]) <= radius {
				pairs = append(pairs, [2]int{i, j})
			}
		}
	}
	return pairs
}
