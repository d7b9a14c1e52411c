package voronoi

import (
	"math"

	"github.com/fogleman/delaunay"
	"github.com/paulmach/orb"

	"github.com/lukasmahr/primal/pkg/errors"
	"github.com/lukasmahr/primal/pkg/geom"
)

// ComputeVoronoi returns the Voronoi diagram edges of the seed points,
// clipped to the seed bounding box. The diagram is built as the dual of
// the Delaunay triangulation: triangle circumcenters are the Voronoi
// vertices, interior half-edge pairs yield finite edges, and hull edges
// yield perpendicular rays clipped to the box. Vertices closer together
// than snapTolerance merge before edge extraction; degenerate results
// are discarded and all coordinates snap to the 0.1 grid.
func ComputeVoronoi(seeds []orb.Point, snapTolerance float64) ([]orb.LineString, error) {
	if len(seeds) < 3 {
		return nil, errors.New(errors.ErrCodeInvalidGeometry,
			"voronoi needs at least 3 seed points, got %d", len(seeds))
	}

	pts := make([]delaunay.Point, len(seeds))
	for i, p := range seeds {
		pts[i] = delaunay.Point{X: p[0], Y: p[1]}
	}
	tri, err := delaunay.Triangulate(pts)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidGeometry, err, "triangulate %d seeds", len(seeds))
	}
	if len(tri.Triangles) == 0 {
		return nil, errors.New(errors.ErrCodeInvalidGeometry, "seed points are collinear")
	}

	box := orb.MultiPoint(seeds).Bound()
	centers := circumcenters(tri)
	merge := newVertexMerger(snapTolerance)

	var out []orb.LineString
	emit := func(a, b orb.Point) {
		a, b, ok := clipSegment(a, b, box)
		if !ok {
			return
		}
		ls := geom.SnapLine(orb.LineString{a, b})
		if len(ls) < 2 {
			return
		}
		out = append(out, ls)
	}

	for e := 0; e < len(tri.Triangles); e++ {
		opp := tri.Halfedges[e]
		cc := centers[e/3]
		if !finite(cc) {
			continue
		}
		if opp > e {
			occ := centers[opp/3]
			if finite(occ) {
				emit(merge.resolve(cc), merge.resolve(occ))
			}
			continue
		}
		if opp >= 0 {
			continue
		}
		// Hull edge: the cell boundary continues as a ray
		// perpendicular to the hull segment, away from the triangle.
		p := seeds[tri.Triangles[e]]
		q := seeds[tri.Triangles[nextHalfedge(e)]]
		dx, dy := q[0]-p[0], q[1]-p[1]
		norm := math.Hypot(dx, dy)
		if norm == 0 {
			continue
		}
		// Right-hand normal of p->q points out of the CCW hull.
		reach := math.Hypot(box.Max[0]-box.Min[0], box.Max[1]-box.Min[1])
		far := orb.Point{
			cc[0] + dy/norm*reach,
			cc[1] - dx/norm*reach,
		}
		emit(merge.resolve(cc), far)
	}

	geom.SortLines(out)
	return out, nil
}

func nextHalfedge(e int) int {
	if e%3 == 2 {
		return e - 2
	}
	return e + 1
}

// circumcenters computes one Voronoi vertex per triangle.
func circumcenters(t *delaunay.Triangulation) []orb.Point {
	n := len(t.Triangles) / 3
	out := make([]orb.Point, n)
	for i := 0; i < n; i++ {
		a := t.Points[t.Triangles[3*i]]
		b := t.Points[t.Triangles[3*i+1]]
		c := t.Points[t.Triangles[3*i+2]]

		ax, ay := b.X-a.X, b.Y-a.Y
		bx, by := c.X-a.X, c.Y-a.Y
		d := 2 * (ax*by - ay*bx)
		if d == 0 {
			out[i] = orb.Point{math.Inf(1), math.Inf(1)}
			continue
		}
		al := ax*ax + ay*ay
		bl := bx*bx + by*by
		out[i] = orb.Point{
			a.X + (by*al-ay*bl)/d,
			a.Y + (ax*bl-bx*al)/d,
		}
	}
	return out
}

func finite(p orb.Point) bool {
	return !math.IsInf(p[0], 0) && !math.IsInf(p[1], 0) &&
		!math.IsNaN(p[0]) && !math.IsNaN(p[1])
}

// vertexMerger clusters Voronoi vertices closer than the tolerance to
// a shared representative, using a cell hash sized to the tolerance.
// Vertices resolve in emission order, so the first vertex of a cluster
// becomes its representative.
type vertexMerger struct {
	tol   float64
	cells map[[2]int][]orb.Point
}

func newVertexMerger(tol float64) *vertexMerger {
	return &vertexMerger{tol: tol, cells: make(map[[2]int][]orb.Point)}
}

func (m *vertexMerger) resolve(p orb.Point) orb.Point {
	if m.tol <= 0 {
		return p
	}
	cx := int(math.Floor(p[0] / m.tol))
	cy := int(math.Floor(p[1] / m.tol))
	for dx := -1; dx <= 1; dx++ {
		for dy := -1; dy <= 1; dy++ {
			for _, rep := range m.cells[[2]int{cx + dx, cy + dy}] {
				if math.Hypot(rep[0]-p[0], rep[1]-p[1]) < m.tol {
					return rep
				}
			}
		}
	}
	m.cells[[2]int{cx, cy}] = append(m.cells[[2]int{cx, cy}], p)
	return p
}

// clipSegment clips ab to the box with Liang-Barsky. The third result
// is false when nothing remains.
func clipSegment(a, b orb.Point, box orb.Bound) (orb.Point, orb.Point, bool) {
	dx, dy := b[0]-a[0], b[1]-a[1]
	t0, t1 := 0.0, 1.0

	clip := func(p, q float64) bool {
		if p == 0 {
			return q >= 0
		}
		t := q / p
		if p < 0 {
			if t > t1 {
				return false
			}
			if t > t0 {
				t0 = t
			}
		} else {
			if t < t0 {
				return false
			}
			if t < t1 {
				t1 = t
			}
		}
		return true
	}

	if !clip(-dx, a[0]-box.Min[0]) || !clip(dx, box.Max[0]-a[0]) ||
		!clip(-dy, a[1]-box.Min[1]) || !clip(dy, box.Max[1]-a[1]) {
		return a, b, false
	}
	ca := orb.Point{a[0] + t0*dx, a[1] + t0*dy}
	cb := orb.Point{a[0] + t1*dx, a[1] + t1*dy}
	return ca, cb, true
}
