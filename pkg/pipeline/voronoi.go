package pipeline

import (
	"context"

	"github.com/charmbracelet/log"
	"github.com/paulmach/orb"

	"github.com/lukasmahr/primal/pkg/errors"
	"github.com/lukasmahr/primal/pkg/geom"
	"github.com/lukasmahr/primal/pkg/layerio"
	"github.com/lukasmahr/primal/pkg/voronoi"
)

// runVoronoi extracts centerlines as the medial portion of the Voronoi
// diagram of the corridor boundary.
func (r *Runner) runVoronoi(ctx context.Context, input []orb.LineString, opts Options, logger *log.Logger) ([]layerio.Layer, Stats, error) {
	var stats Stats
	stats.InputLines = len(input)
	if len(input) == 0 {
		return nil, stats, errors.New(errors.ErrCodeInvalidGeometry, "no input lines")
	}

	// Half the corridor width separates medial edges from the ones
	// that hug the boundary.
	offset := opts.BufferRadius / 2

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

	var boundary []orb.LineString
	var edges []orb.LineString
	err = r.stage(ctx, logger, "voronoi", &stats.VoronoiTime, func() error {
		boundary = voronoi.ExtractBoundary(corridor)
		seeds := voronoi.SegmentBoundary(boundary, opts.SeedScale)
		var err error
		edges, err = voronoi.ComputeVoronoi(seeds, opts.SnapTolerance)
		return err
	})
	if err != nil {
		return nil, stats, err
	}
	logger.Info("computed voronoi edges", "edges", len(edges), "duration", stats.VoronoiTime)

	err = r.stage(ctx, logger, "filter", &stats.FilterTime, func() error {
		var err error
		edges, err = voronoi.FilterByDistance(edges, boundary, offset)
		if err != nil {
			return err
		}
		edges = voronoi.FilterByContainment(edges, corridor)
		return nil
	})
	if err != nil {
		return nil, stats, err
	}
	logger.Info("pruned to medial edges", "edges", len(edges), "duration", stats.FilterTime)

	var lines []orb.LineString
	err = r.stage(ctx, logger, "merge", &stats.MergeTime, func() error {
		lines = voronoi.CollapseJunctionClusters(edges, offset)
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
