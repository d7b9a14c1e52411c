// Package voronoi implements the medial-axis engine: corridor boundary
// extraction, seed point generation, Voronoi edges via the Delaunay
// dual, distance and containment pruning, and junction-cluster
// collapsing.
package voronoi

import (
	"github.com/paulmach/orb"

	"github.com/lukasmahr/primal/pkg/geom"
)

// boundaryTolerance removes rasterization-scale jaggedness from ring
// outlines before seeding.
const boundaryTolerance = 0.5

// ExtractBoundary decomposes the corridor polygons into their boundary
// rings as closed lines, each simplified with a 0.5 tolerance. Exterior
// rings come before the holes of the same polygon.
func ExtractBoundary(c geom.Collection) []orb.LineString {
	var out []orb.LineString
	for _, poly := range c.Polygons() {
		for _, ring := range poly {
			if len(ring) < 4 {
				continue
			}
			ls := geom.SimplifyLine(orb.LineString(ring).Clone(), boundaryTolerance)
			if len(ls) < 2 {
				continue
			}
			out = append(out, ls)
		}
	}
	return out
}
