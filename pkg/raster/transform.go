// Package raster implements the skeletonization engine: the affine
// mapping between world coordinates and a pixel grid, all-touched
// polygon rasterization, small-hole filling, morphological thinning,
// and extraction of skeleton pixels back into world geometry.
package raster

import (
	"math"

	"github.com/paulmach/orb"

	"github.com/lukasmahr/primal/pkg/errors"
	"github.com/lukasmahr/primal/pkg/geom"
)

// Transform maps between world coordinates and a pixel grid anchored to
// a bounding box. Row 0 sits at the maximum Y of the box, so the grid
// reads like an image: rows grow downward, columns grow rightward.
type Transform struct {
	Rows, Cols int

	scale float64
	minX  float64
	maxY  float64
}

// NewTransform computes the transform for a bounding box at the given
// scale in pixels per world unit. The pixel shape is
// (ceil(height*scale), ceil(width*scale)). A box with a zero or
// non-finite dimension is invalid geometry.
func NewTransform(b orb.Bound, scale float64) (Transform, error) {
	if err := errors.ValidateScale("scale", scale); err != nil {
		return Transform{}, err
	}
	width := b.Max[0] - b.Min[0]
	height := b.Max[1] - b.Min[1]
	for _, dim := range []float64{width, height} {
		if math.IsNaN(dim) || math.IsInf(dim, 0) {
			return Transform{}, errors.New(errors.ErrCodeInvalidGeometry,
				"bounding box dimension is not finite")
		}
		if dim <= 0 {
			return Transform{}, errors.New(errors.ErrCodeInvalidGeometry,
				"bounding box has zero extent (width %v, height %v)", width, height)
		}
	}
	return Transform{
		Rows:  int(math.Ceil(height * scale)),
		Cols:  int(math.Ceil(width * scale)),
		scale: scale,
		minX:  b.Min[0],
		maxY:  b.Max[1],
	}, nil
}

// Forward maps a world point to fractional pixel coordinates.
func (t Transform) Forward(p orb.Point) (row, col float64) {
	return (t.maxY - p[1]) * t.scale, (p[0] - t.minX) * t.scale
}

// Inverse maps fractional pixel coordinates back to a world point.
func (t Transform) Inverse(row, col float64) orb.Point {
	return orb.Point{t.minX + col/t.scale, t.maxY - row/t.scale}
}

// PixelWidth returns the world-space size of one pixel.
func (t Transform) PixelWidth() float64 {
	return 1.0 / t.scale
}

// ToWorld maps pixel-space lines (x = column, y = row) into snapped
// world lines, dropping any line that collapses during snapping. The
// collapsed count is returned for warning logs.
func ToWorld(lines []orb.LineString, t Transform) ([]orb.LineString, int) {
	out := make([]orb.LineString, 0, len(lines))
	for _, ls := range lines {
		w := make(orb.LineString, len(ls))
		for i, p := range ls {
			w[i] = t.Inverse(p[1], p[0])
		}
		out = append(out, w)
	}
	return geom.SnapLines(out)
}
