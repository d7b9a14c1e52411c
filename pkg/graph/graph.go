// Package graph extracts node/edge topology from line fragments and
// provides the shared consolidation primitives of both simplification
// engines: endpoint-based line merging, pixel adjacency, and
// connected-component knot removal.
//
// All geometry entering this package must be snapped to the 0.1 grid;
// node deduplication relies on exact fixed-point coordinate equality.
package graph

import (
	"sort"

	"github.com/paulmach/orb"

	"github.com/lukasmahr/primal/pkg/geom"
)

// Node is one unique endpoint of the network. IDs are dense, assigned
// 0..N-1 in canonical coordinate order. Incidence counts the distinct
// edges meeting at the node.
type Node struct {
	ID        int
	Location  orb.Point
	Incidence int
}

// Edge connects two distinct nodes. Geometry runs from the source
// node's coordinate to the target node's, exactly.
type Edge struct {
	ID     int
	Source int
	Target int

	Geometry orb.LineString
	Length   float64
}

// Graph is an undirected node/edge network.
type Graph struct {
	Nodes []Node
	Edges []Edge
}

// Extract builds a graph from line fragments. Endpoints deduplicate
// into nodes by exact snapped coordinate; each line becomes one edge
// referencing its endpoint nodes. Lines whose endpoints coincide after
// snapping would be self-loops and are dropped; the dropped count is
// returned for warning logs.
//
// Lines are processed in canonical sorted order, so the same set of
// fragments always yields the same node ids and edge order.
func Extract(lines []orb.LineString) (*Graph, int) {
	sorted := make([]orb.LineString, 0, len(lines))
	dropped := 0
	for _, ls := range lines {
		if len(ls) < 2 {
			dropped++
			continue
		}
		sorted = append(sorted, ls)
	}
	geom.SortLines(sorted)

	g := &Graph{}
	index := make(map[geom.Key]int)

	nodeOf := func(p orb.Point) int {
		k := geom.KeyOf(p)
		if id, ok := index[k]; ok {
			return id
		}
		id := len(g.Nodes)
		index[k] = id
		g.Nodes = append(g.Nodes, Node{ID: id, Location: p})
		return id
	}

	for _, ls := range sorted {
		first, last := geom.Endpoints(ls)
		if geom.KeyOf(first) == geom.KeyOf(last) {
			dropped++
			continue
		}
		s := nodeOf(first)
		t := nodeOf(last)
		g.Edges = append(g.Edges, Edge{
			ID:       len(g.Edges),
			Source:   s,
			Target:   t,
			Geometry: ls,
			Length:   geom.Length(ls),
		})
		g.Nodes[s].Incidence++
		g.Nodes[t].Incidence++
	}
	return g, dropped
}

// Lines returns the edge geometries.
func (g *Graph) Lines() []orb.LineString {
	out := make([]orb.LineString, len(g.Edges))
	for i, e := range g.Edges {
		out[i] = e.Geometry
	}
	return out
}

// Chords returns one straight source-to-target segment per edge: the
// primal representation of the network.
func (g *Graph) Chords() []orb.LineString {
	out := make([]orb.LineString, len(g.Edges))
	for i, e := range g.Edges {
		out[i] = orb.LineString{g.Nodes[e.Source].Location, g.Nodes[e.Target].Location}
	}
	return out
}

// TotalLength sums all edge lengths.
func (g *Graph) TotalLength() float64 {
	var total float64
	for _, e := range g.Edges {
		total += e.Length
	}
	return total
}

// CheckInvariants verifies the structural graph invariants: incidence
// sums to twice the edge count, every edge references two distinct
// existing nodes, and edge endpoint coordinates equal their node
// coordinates exactly. Useful in tests and as a pipeline assertion.
func (g *Graph) CheckInvariants() bool {
	sum := 0
	for _, n := range g.Nodes {
		sum += n.Incidence
	}
	if sum != 2*len(g.Edges) {
		return false
	}
	for _, e := range g.Edges {
		if e.Source == e.Target {
			return false
		}
		if e.Source < 0 || e.Source >= len(g.Nodes) || e.Target < 0 || e.Target >= len(g.Nodes) {
			return false
		}
		first, last := geom.Endpoints(e.Geometry)
		if !first.Equal(g.Nodes[e.Source].Location) || !last.Equal(g.Nodes[e.Target].Location) {
			return false
		}
	}
	return true
}

// sortNodesByLocation orders node ids by their coordinates.
func (g *Graph) sortNodesByLocation(ids []int) {
	sort.Slice(ids, func(i, j int) bool {
		return geom.KeyOf(g.Nodes[ids[i]].Location).Less(geom.KeyOf(g.Nodes[ids[j]].Location))
	})
}
