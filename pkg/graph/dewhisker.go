package graph

import (
	"github.com/paulmach/orb"
	"gonum.org/v1/gonum/graph/simple"
	"gonum.org/v1/gonum/graph/topo"

	"github.com/lukasmahr/primal/pkg/geom"
)

// KnotThreshold is the length below which an edge is considered a
// thinning artifact rather than real topology.
const KnotThreshold = 2.0

// Dewhisker removes the short-edge "knot" clusters that pixel
// skeletons grow at junctions and self-intersections. Edges shorter
// than KnotThreshold are clustered by connectivity; each cluster
// collapses to the centroid of its member nodes, with one star edge
// per member re-attaching the surrounding topology. The reassembled
// network is merged and everything at or below the threshold dropped.
//
// The result is invariant under permutation of the input: clustering
// is a set operation and member coordinates are sorted before the
// centroid computation.
func Dewhisker(lines []orb.LineString) []orb.LineString {
	g, _ := Extract(lines)

	var knots []Edge
	var keep []orb.LineString
	for _, e := range g.Edges {
		if e.Length < KnotThreshold {
			knots = append(knots, e)
		} else {
			keep = append(keep, e.Geometry)
		}
	}
	if len(knots) == 0 {
		return Merge(keep)
	}

	// Connected components over the knot edges only.
	ug := simple.NewUndirectedGraph()
	for _, e := range knots {
		s := simple.Node(e.Source)
		t := simple.Node(e.Target)
		if ug.Node(int64(e.Source)) == nil {
			ug.AddNode(s)
		}
		if ug.Node(int64(e.Target)) == nil {
			ug.AddNode(t)
		}
		ug.SetEdge(simple.Edge{F: s, T: t})
	}

	var star []orb.LineString
	for _, component := range topo.ConnectedComponents(ug) {
		ids := make([]int, len(component))
		for i, n := range component {
			ids[i] = int(n.ID())
		}
		// Component order from the traversal is arbitrary; sorting by
		// coordinate makes the centroid and star edges deterministic.
		g.sortNodesByLocation(ids)

		points := make([]orb.Point, len(ids))
		for i, id := range ids {
			points[i] = g.Nodes[id].Location
		}
		centre := geom.SnapPoint(geom.Centroid(points))
		for _, p := range points {
			if geom.KeyOf(p) == geom.KeyOf(centre) {
				continue
			}
			star = append(star, orb.LineString{p, centre})
		}
	}

	merged := Merge(append(star, keep...))
	var out []orb.LineString
	for _, ls := range merged {
		if geom.Length(ls) > KnotThreshold {
			out = append(out, ls)
		}
	}
	return out
}
