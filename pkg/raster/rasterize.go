package raster

import (
	"math"
	"sort"

	"github.com/paulmach/orb"

	"github.com/lukasmahr/primal/pkg/geom"
)

// Rasterize burns the corridor polygons into a binary grid with
// all-touched semantics: any cell whose area intersects a polygon,
// however slightly, is foreground. Interior cells come from an even-odd
// scanline fill at pixel centers; boundary cells come from a supercover
// walk along every ring segment, so partially covered cells whose
// center lies outside are still marked.
func Rasterize(c geom.Collection, t Transform, maxPixels int) (*Grid, error) {
	g, err := NewGrid(t.Rows, t.Cols, maxPixels)
	if err != nil {
		return nil, err
	}
	for _, poly := range c.Polygons() {
		rings := make([][]orb.Point, 0, len(poly))
		for _, ring := range poly {
			px := make([]orb.Point, len(ring))
			for i, p := range ring {
				row, col := t.Forward(p)
				px[i] = orb.Point{col, row}
			}
			rings = append(rings, px)
		}
		fillInterior(g, rings)
		for _, ring := range rings {
			for i := 0; i+1 < len(ring); i++ {
				supercover(g, ring[i], ring[i+1])
			}
		}
	}
	return g, nil
}

// fillInterior marks every cell whose center is inside the polygon
// under the even-odd rule, holes included.
func fillInterior(g *Grid, rings [][]orb.Point) {
	minRow, maxRow := g.Rows, -1
	for _, ring := range rings {
		for _, p := range ring {
			r := int(math.Floor(p[1]))
			if r < minRow {
				minRow = r
			}
			if r > maxRow {
				maxRow = r
			}
		}
	}
	if minRow < 0 {
		minRow = 0
	}
	if maxRow >= g.Rows {
		maxRow = g.Rows - 1
	}

	var xs []float64
	for row := minRow; row <= maxRow; row++ {
		y := float64(row) + 0.5
		xs = xs[:0]
		for _, ring := range rings {
			for i := 0; i+1 < len(ring); i++ {
				a, b := ring[i], ring[i+1]
				if (a[1] > y) == (b[1] > y) {
					continue
				}
				xs = append(xs, a[0]+(y-a[1])/(b[1]-a[1])*(b[0]-a[0]))
			}
		}
		sort.Float64s(xs)
		for i := 0; i+1 < len(xs); i += 2 {
			// Fill cells whose center x lies inside the span.
			start := int(math.Ceil(xs[i] - 0.5))
			end := int(math.Floor(xs[i+1] - 0.5))
			for col := start; col <= end; col++ {
				g.Set(row, col)
			}
		}
	}
}

// supercover marks every cell the segment passes through, using a grid
// traversal stepped at cell boundary crossings.
func supercover(g *Grid, a, b orb.Point) {
	col := int(math.Floor(a[0]))
	row := int(math.Floor(a[1]))
	endCol := int(math.Floor(b[0]))
	endRow := int(math.Floor(b[1]))
	g.Set(row, col)

	dx := b[0] - a[0]
	dy := b[1] - a[1]
	stepCol, stepRow := 0, 0
	tMaxX, tMaxY := math.Inf(1), math.Inf(1)
	tDeltaX, tDeltaY := math.Inf(1), math.Inf(1)

	if dx > 0 {
		stepCol = 1
		tMaxX = (math.Floor(a[0]) + 1 - a[0]) / dx
		tDeltaX = 1 / dx
	} else if dx < 0 {
		stepCol = -1
		tMaxX = (a[0] - math.Floor(a[0])) / -dx
		tDeltaX = -1 / dx
	}
	if dy > 0 {
		stepRow = 1
		tMaxY = (math.Floor(a[1]) + 1 - a[1]) / dy
		tDeltaY = 1 / dy
	} else if dy < 0 {
		stepRow = -1
		tMaxY = (a[1] - math.Floor(a[1])) / -dy
		tDeltaY = -1 / dy
	}

	// Bail out after the worst-case number of crossings in case of
	// floating-point stalls at exact cell corners.
	limit := int(math.Abs(float64(endCol-col))+math.Abs(float64(endRow-row))) + 2
	for i := 0; i < limit; i++ {
		if col == endCol && row == endRow {
			break
		}
		if tMaxX < tMaxY {
			tMaxX += tDeltaX
			col += stepCol
		} else {
			tMaxY += tDeltaY
			row += stepRow
		}
		g.Set(row, col)
	}
}
