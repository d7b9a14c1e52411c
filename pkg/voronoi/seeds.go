package voronoi

import (
	"math"

	"github.com/paulmach/orb"

	"github.com/lukasmahr/primal/pkg/geom"
)

// SegmentBoundary subdivides each boundary line into sub-segments no
// longer than scale and takes every other vertex of the exploded
// segment sequence as a seed: one seed per sub-segment at near-uniform
// spacing. Seeds deduplicate by snapped coordinate.
func SegmentBoundary(lines []orb.LineString, scale float64) []orb.Point {
	seen := make(map[geom.Key]bool)
	var out []orb.Point
	for _, ls := range lines {
		dense := densify(ls, scale)
		// Each sub-segment contributes its two endpoints to the
		// exploded sequence; every other entry is each segment's
		// start, so all vertices but the line's last become seeds.
		for i := 0; i+1 < len(dense); i++ {
			p := geom.SnapPoint(dense[i])
			k := geom.KeyOf(p)
			if seen[k] {
				continue
			}
			seen[k] = true
			out = append(out, p)
		}
	}
	return out
}

// densify splits every segment of ls into equal pieces no longer than
// maxLen, keeping the original vertices.
func densify(ls orb.LineString, maxLen float64) orb.LineString {
	if len(ls) < 2 || maxLen <= 0 {
		return ls
	}
	out := make(orb.LineString, 0, len(ls))
	out = append(out, ls[0])
	for i := 0; i+1 < len(ls); i++ {
		a, b := ls[i], ls[i+1]
		length := math.Hypot(b[0]-a[0], b[1]-a[1])
		pieces := int(math.Ceil(length / maxLen))
		for j := 1; j <= pieces; j++ {
			t := float64(j) / float64(pieces)
			out = append(out, orb.Point{a[0] + (b[0]-a[0])*t, a[1] + (b[1]-a[1])*t})
		}
	}
	return out
}
