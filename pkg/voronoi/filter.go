package voronoi

import (
	"github.com/paulmach/orb"

	"github.com/lukasmahr/primal/pkg/geom"
	"github.com/lukasmahr/primal/pkg/graph"
	"github.com/lukasmahr/primal/pkg/spatial"
)

// filterSimplifyTolerance smooths filtered edges after each pruning
// pass.
const filterSimplifyTolerance = 1.0

// FilterByDistance keeps the edges whose nearest distance to any
// boundary line exceeds offset, discarding the ones hugging the
// corridor wall. The survivors are merged and lightly simplified.
// Distance ties between boundary lines resolve to the first match; the
// kept/dropped decision depends only on the distance, so ties never
// change the result.
func FilterByDistance(edges []orb.LineString, boundary []orb.LineString, offset float64) ([]orb.LineString, error) {
	idx := spatial.NewLineIndex(boundary)
	var kept []orb.LineString
	for _, e := range edges {
		_, dist, err := idx.Nearest(e)
		if err != nil {
			return nil, err
		}
		if dist > offset {
			kept = append(kept, e)
		}
	}
	return geom.SimplifyLines(graph.Merge(kept), filterSimplifyTolerance), nil
}

// FilterByContainment keeps the edges lying properly inside a corridor
// polygon, touching no boundary: leakage from Voronoi clipping gets
// removed. The survivors are merged and lightly simplified.
func FilterByContainment(edges []orb.LineString, c geom.Collection) []orb.LineString {
	var kept []orb.LineString
	for _, e := range edges {
		if lineContainedProperly(c, e) {
			kept = append(kept, e)
		}
	}
	return geom.SimplifyLines(graph.Merge(kept), filterSimplifyTolerance)
}

// lineContainedProperly reports whether the whole line is strictly
// interior to one member polygon.
func lineContainedProperly(c geom.Collection, ls orb.LineString) bool {
	if len(ls) == 0 {
		return false
	}
	for _, poly := range c.Polygons() {
		if !geom.PolygonContainsProperly(poly, ls[0]) {
			continue
		}
		if lineWithinPolygon(poly, ls) {
			return true
		}
		return false
	}
	return false
}

// lineWithinPolygon checks every vertex strictly inside and no segment
// crossing any ring. The first vertex is known to be interior.
func lineWithinPolygon(poly orb.Polygon, ls orb.LineString) bool {
	for _, p := range ls[1:] {
		if !geom.PolygonContainsProperly(poly, p) {
			return false
		}
	}
	for i := 0; i+1 < len(ls); i++ {
		for _, ring := range poly {
			for j := 0; j+1 < len(ring); j++ {
				if geom.SegmentsIntersect(ls[i], ls[i+1], ring[j], ring[j+1]) {
					return false
				}
			}
		}
	}
	return true
}
