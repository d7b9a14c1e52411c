package graph

import (
	"github.com/paulmach/orb"

	"github.com/lukasmahr/primal/pkg/geom"
)

// Merge fuses line fragments sharing endpoints into maximal chains. A
// point where exactly two fragments meet is interior to a chain and is
// merged through; a point shared by three or more fragments is a real
// junction and never gets bridged. Merging its own output again is a
// no-op.
//
// Fragments shorter than two points are dropped. The result is sorted
// canonically so identical fragment sets merge to identical output.
func Merge(lines []orb.LineString) []orb.LineString {
	frags := make([]orb.LineString, 0, len(lines))
	for _, ls := range lines {
		if len(ls) >= 2 {
			frags = append(frags, ls)
		}
	}
	geom.SortLines(frags)

	// ends[k] lists fragment endpoints at coordinate k, encoded as
	// frag*2 for the start and frag*2+1 for the end.
	ends := make(map[geom.Key][]int)
	for i, ls := range frags {
		first, last := geom.Endpoints(ls)
		ends[geom.KeyOf(first)] = append(ends[geom.KeyOf(first)], i*2)
		ends[geom.KeyOf(last)] = append(ends[geom.KeyOf(last)], i*2+1)
	}

	used := make([]bool, len(frags))
	var out []orb.LineString

	for i := range frags {
		if used[i] {
			continue
		}
		used[i] = true
		chain := frags[i].Clone()

		// Grow the chain forward from its last point, then backward
		// from its first, consuming fragments at degree-2 meetings.
		chain = extend(chain, frags, ends, used, true)
		chain = extend(chain, frags, ends, used, false)

		out = append(out, chain)
	}

	geom.SortLines(out)
	return out
}

// extend grows chain at one end until it reaches a junction, a dead
// end, or closes a loop. forward grows at the last point, otherwise the
// first.
func extend(chain orb.LineString, frags []orb.LineString, ends map[geom.Key][]int, used []bool, forward bool) orb.LineString {
	for {
		var tip orb.Point
		if forward {
			tip = chain[len(chain)-1]
		} else {
			tip = chain[0]
		}
		meeting := ends[geom.KeyOf(tip)]
		if len(meeting) != 2 {
			return chain
		}

		next := -1
		var nextEnd int
		for _, enc := range meeting {
			if !used[enc/2] {
				next = enc / 2
				nextEnd = enc % 2
			}
		}
		if next < 0 {
			// Both fragments already consumed: the chain closed a loop.
			return chain
		}
		used[next] = true

		piece := frags[next].Clone()
		if nextEnd == 1 {
			piece.Reverse()
		}
		// piece now starts at the tip; skip its duplicate first vertex.
		if forward {
			chain = append(chain, piece[1:]...)
		} else {
			reversed := piece
			reversed.Reverse()
			chain = append(reversed[:len(reversed)-1], chain...)
		}
	}
}
