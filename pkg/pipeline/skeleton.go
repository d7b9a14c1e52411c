package pipeline

import (
	"context"

	"github.com/charmbracelet/log"
	"github.com/paulmach/orb"

	"github.com/lukasmahr/primal/pkg/errors"
	"github.com/lukasmahr/primal/pkg/geom"
	"github.com/lukasmahr/primal/pkg/graph"
	"github.com/lukasmahr/primal/pkg/layerio"
	"github.com/lukasmahr/primal/pkg/raster"
)

// adjacencyRadius connects skeleton pixels whose centers are within one
// pixel in both axes, giving 8-connectivity.
const adjacencyRadius = 1.0

// runSkeleton extracts centerlines by thinning the rasterized corridor.
func (r *Runner) runSkeleton(ctx context.Context, input []orb.LineString, opts Options, logger *log.Logger) ([]layerio.Layer, Stats, error) {
	var stats Stats
	stats.InputLines = len(input)
	if len(input) == 0 {
		return nil, stats, errors.New(errors.ErrCodeInvalidGeometry, "no input lines")
	}

	var corridor geom.Collection
	err := r.stage(ctx, logger, "buffer", &stats.BufferTime, func() error {
		if opts.SegmentedBuffer {
			corridor = geom.SegmentedBuffer(input, opts.BufferRadius)
		} else {
			corridor = geom.Buffer(input, opts.BufferRadius)
		}
		if corridor.Empty() {
			return errors.New(errors.ErrCodeInvalidGeometry, "input produced an empty corridor")
		}
		return nil
	})
	if err != nil {
		return nil, stats, err
	}
	logger.Info("buffered corridor", "polygons", corridor.Len(), "duration", stats.BufferTime)

	var t raster.Transform
	var grid *raster.Grid
	err = r.stage(ctx, logger, "rasterize", &stats.RasterTime, func() error {
		var err error
		t, err = raster.NewTransform(corridor.Bound(), opts.RasterScale)
		if err != nil {
			return err
		}
		grid, err = raster.Rasterize(corridor, t, opts.MaxPixels)
		if err != nil {
			return err
		}
		stats.FilledHoles = raster.FillSmallHoles(grid, opts.HoleMaxArea)
		return nil
	})
	if err != nil {
		return nil, stats, err
	}
	if stats.FilledHoles > 0 {
		logger.Warn("filled interior holes", "count", stats.FilledHoles)
	}
	logger.Info("rasterized corridor",
		"rows", t.Rows, "cols", t.Cols,
		"pixels", grid.Count(),
		"duration", stats.RasterTime)

	var skeleton *raster.Grid
	err = r.stage(ctx, logger, "thin", &stats.ThinTime, func() error {
		skeleton = raster.Thin(grid)
		return nil
	})
	if err != nil {
		return nil, stats, err
	}
	logger.Info("thinned to skeleton", "pixels", skeleton.Count(), "duration", stats.ThinTime)

	var world []orb.LineString
	err = r.stage(ctx, logger, "trace", &stats.GraphTime, func() error {
		points := raster.ExtractPoints(skeleton)
		pixelLines := graph.BuildAdjacency(points, adjacencyRadius)
		var dropped int
		world, dropped = raster.ToWorld(pixelLines, t)
		if dropped > 0 {
			logger.Warn("dropped degenerate pixel edges", "count", dropped)
		}
		return nil
	})
	if err != nil {
		return nil, stats, err
	}
	logger.Info("traced skeleton", "segments", len(world), "duration", stats.GraphTime)

	var lines []orb.LineString
	err = r.stage(ctx, logger, "merge", &stats.MergeTime, func() error {
		lines = graph.Merge(world)
		if !opts.KeepKnots {
			lines = graph.Dewhisker(lines)
		}
		if opts.SimplifyTolerance > 0 {
			lines = geom.SimplifyLines(lines, opts.SimplifyTolerance)
		}
		return nil
	})
	if err != nil {
		return nil, stats, err
	}
	logger.Info("merged centerlines", "lines", len(lines), "duration", stats.MergeTime)

	layers, degenerate := assembleLayers(input, lines, &stats)
	if degenerate > 0 {
		logger.Warn("dropped degenerate centerlines", "count", degenerate)
	}
	return layers, stats, nil
}
