package graph

import (
	"github.com/paulmach/orb"

	"github.com/lukasmahr/primal/pkg/spatial"
)

// BuildAdjacency connects skeleton pixels into raw line fragments. Two
// points are adjacent when their Chebyshev distance is at most radius;
// with the conventional radius of one pixel this is 8-connectivity.
// Every adjacent unordered pair becomes a two-point straight edge.
func BuildAdjacency(points []orb.Point, radius float64) []orb.LineString {
	idx := spatial.NewPointIndex(points)
	pairs := idx.AdjacentPairs(radius)
	out := make([]orb.LineString, 0, len(pairs))
	for _, pr := range pairs {
		out = append(out, orb.LineString{points[pr[0]], points[pr[1]]})
	}
	return out
}
