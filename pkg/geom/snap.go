package geom

import (
	"math"

	"github.com/paulmach/orb"
)

// Grid is the coordinate precision of the toolkit. Every stored or
// compared coordinate is a multiple of Grid.
const Grid = 0.1

// keyScale converts snapped world coordinates to exact integers.
const keyScale = 1.0 / Grid

// Snap rounds a value to the nearest grid multiple.
func Snap(v float64) float64 {
	return math.Round(v/Grid) * Grid
}

// SnapPoint rounds both coordinates of a point to the grid.
func SnapPoint(p orb.Point) orb.Point {
	return orb.Point{Snap(p[0]), Snap(p[1])}
}

// SnapLine rounds every vertex of a line to the grid and removes the
// consecutive duplicate vertices that snapping can create. A line whose
// vertices all collapse to one location becomes the empty LineString
// sentinel.
func SnapLine(ls orb.LineString) orb.LineString {
	if len(ls) == 0 {
		return orb.LineString{}
	}
	out := make(orb.LineString, 0, len(ls))
	for _, p := range ls {
		sp := SnapPoint(p)
		if n := len(out); n > 0 && out[n-1].Equal(sp) {
			continue
		}
		out = append(out, sp)
	}
	if len(out) < 2 {
		return orb.LineString{}
	}
	return out
}

// SnapLines snaps a collection of lines, dropping the ones that collapse
// to nothing. The dropped count is reported so callers can log it.
func SnapLines(lines []orb.LineString) ([]orb.LineString, int) {
	out := make([]orb.LineString, 0, len(lines))
	dropped := 0
	for _, ls := range lines {
		snapped := SnapLine(ls)
		if len(snapped) == 0 {
			dropped++
			continue
		}
		out = append(out, snapped)
	}
	return out, dropped
}

// Key is the canonical fixed-point encoding of a snapped coordinate.
// Two points compare equal exactly when their Keys are equal, independent
// of floating-point representation.
type Key struct {
	X, Y int64
}

// KeyOf encodes a snapped point. The input must already be on the grid;
// rounding here only absorbs the representation error of grid multiples.
func KeyOf(p orb.Point) Key {
	return Key{
		X: int64(math.Round(p[0] * keyScale)),
		Y: int64(math.Round(p[1] * keyScale)),
	}
}

// Point converts a key back to its world coordinate.
func (k Key) Point() orb.Point {
	return orb.Point{float64(k.X) / keyScale, float64(k.Y) / keyScale}
}

// Less orders keys by X, then Y.
func (k Key) Less(other Key) bool {
	if k.X != other.X {
		return k.X < other.X
	}
	return k.Y < other.Y
}
