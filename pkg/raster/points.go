package raster

import (
	"github.com/paulmach/orb"
)

// ExtractPoints returns one pixel-space point per foreground cell at
// the cell center, as (x, y) = (col+0.5, row+0.5). Points come out in
// row-major order, so identical grids produce identical point lists.
// World mapping happens later through Transform.Inverse (see ToWorld).
func ExtractPoints(g *Grid) []orb.Point {
	var out []orb.Point
	for r := 0; r < g.Rows; r++ {
		for c := 0; c < g.Cols; c++ {
			if g.At(r, c) {
				out = append(out, orb.Point{float64(c) + 0.5, float64(r) + 0.5})
			}
		}
	}
	return out
}
