package raster

import (
	"github.com/lukasmahr/primal/pkg/errors"
)

// DefaultMaxPixels caps grid allocation at 64M cells. A corridor that
// needs more than this at the requested scale fails fast instead of
// exhausting memory.
const DefaultMaxPixels = 1 << 26

// Grid is a dense binary raster. Cell (row, col) is foreground when its
// bit is set.
type Grid struct {
	Rows, Cols int
	bits       []uint64
}

// NewGrid allocates a rows x cols grid of background cells. The pixel
// budget is enforced before allocation; zero maxPixels applies
// DefaultMaxPixels.
func NewGrid(rows, cols, maxPixels int) (*Grid, error) {
	if rows <= 0 || cols <= 0 {
		return nil, errors.New(errors.ErrCodeInvalidGeometry,
			"grid shape %dx%d is empty", rows, cols)
	}
	if maxPixels <= 0 {
		maxPixels = DefaultMaxPixels
	}
	cells := int64(rows) * int64(cols)
	if cells > int64(maxPixels) {
		return nil, errors.New(errors.ErrCodeGridTooLarge,
			"raster of %dx%d (%d cells) exceeds pixel budget %d", rows, cols, cells, maxPixels)
	}
	return &Grid{
		Rows: rows,
		Cols: cols,
		bits: make([]uint64, (cells+63)/64),
	}, nil
}

// At reports whether the cell is foreground. Out-of-range cells read as
// background, so neighborhood scans need no border checks.
func (g *Grid) At(row, col int) bool {
	if row < 0 || row >= g.Rows || col < 0 || col >= g.Cols {
		return false
	}
	i := row*g.Cols + col
	return g.bits[i>>6]&(1<<uint(i&63)) != 0
}

// Set marks the cell foreground. Out-of-range cells are ignored.
func (g *Grid) Set(row, col int) {
	if row < 0 || row >= g.Rows || col < 0 || col >= g.Cols {
		return
	}
	i := row*g.Cols + col
	g.bits[i>>6] |= 1 << uint(i&63)
}

// Clear marks the cell background.
func (g *Grid) Clear(row, col int) {
	if row < 0 || row >= g.Rows || col < 0 || col >= g.Cols {
		return
	}
	i := row*g.Cols + col
	g.bits[i>>6] &^= 1 << uint(i&63)
}

// Count returns the number of foreground cells.
func (g *Grid) Count() int {
	n := 0
	for r := 0; r < g.Rows; r++ {
		for c := 0; c < g.Cols; c++ {
			if g.At(r, c) {
				n++
			}
		}
	}
	return n
}

// Clone returns an independent copy of the grid.
func (g *Grid) Clone() *Grid {
	bits := make([]uint64, len(g.bits))
	copy(bits, g.bits)
	return &Grid{Rows: g.Rows, Cols: g.Cols, bits: bits}
}
