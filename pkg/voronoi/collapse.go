package voronoi

import (
	"github.com/paulmach/orb"

	"github.com/lukasmahr/primal/pkg/geom"
	"github.com/lukasmahr/primal/pkg/graph"
	"github.com/lukasmahr/primal/pkg/spatial"
)

// CollapseJunctionClusters removes the duplicate near-coincident
// junctions that dense seeding leaves behind. Nodes with incidence
// below 4 are merge candidates; square buffers of half-width offset
// around the candidates union into merge zones, and every node falling
// properly inside a zone snaps to the zone's centroid. Edges re-derive
// from the snapped positions of their unit segments and merge back
// into maximal chains.
func CollapseJunctionClusters(lines []orb.LineString, offset float64) []orb.LineString {
	g, _ := graph.Extract(lines)

	var squares []orb.Polygon
	for _, n := range g.Nodes {
		if n.Incidence < 4 {
			squares = append(squares, squareBuffer(n.Location, offset))
		}
	}
	if len(squares) == 0 {
		return graph.Merge(lines)
	}
	zones := geom.Union(squares)

	// Work on unit segments so a snap in the middle of a polyline
	// moves only the vertices that belong to a zone.
	var segments []orb.LineString
	for _, ls := range lines {
		segments = append(segments, geom.ExplodeSegments(ls)...)
	}
	sg, _ := graph.Extract(segments)

	positions := make([]orb.Point, len(sg.Nodes))
	for i, n := range sg.Nodes {
		positions[i] = n.Location
	}
	points := make([]orb.Point, len(sg.Nodes))
	copy(points, positions)
	idx := spatial.NewPointIndex(points)

	for _, zone := range zones.Polygons() {
		centre := geom.SnapPoint(geom.PolygonCentroid(zone))
		for _, id := range idx.Within(zone.Bound()) {
			if geom.PolygonContainsProperly(zone, points[id]) {
				positions[id] = centre
			}
		}
	}

	var rebuilt []orb.LineString
	for _, e := range sg.Edges {
		a := positions[e.Source]
		b := positions[e.Target]
		if geom.KeyOf(a) == geom.KeyOf(b) {
			continue
		}
		rebuilt = append(rebuilt, orb.LineString{a, b})
	}
	return graph.Merge(rebuilt)
}

// squareBuffer builds the axis-aligned square of the given half-width
// around a point.
func squareBuffer(p orb.Point, half float64) orb.Polygon {
	ring := orb.Ring{
		{p[0] - half, p[1] - half},
		{p[0] + half, p[1] - half},
		{p[0] + half, p[1] + half},
		{p[0] - half, p[1] + half},
		{p[0] - half, p[1] - half},
	}
	return orb.Polygon{ring}
}
