// Package pipeline provides the centerline extraction pipeline.
//
// This package implements the complete buffer → skeletonize → graph →
// merge flow shared by every entry point. Two engines are available:
//
//   - skeleton: rasterize the buffered corridor, thin it to a one-pixel
//     skeleton, and trace the pixel adjacency back into world space
//   - voronoi: seed the corridor boundary and keep the medial portion
//     of the Voronoi diagram of those seeds
//
// Both produce the same layer set: the snapped input, the cleaned
// centerlines, straight source→target chords, and the node/edge graph.
//
// # Usage
//
// Create a Runner and execute the pipeline:
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	opts := pipeline.Options{Engine: pipeline.EngineSkeleton}
//	result, err := runner.Execute(ctx, lines, opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	err = layerio.WriteLayers(base, result.Layers)
package pipeline

import (
	"time"

	"github.com/charmbracelet/log"

	"github.com/lukasmahr/primal/pkg/cache"
	"github.com/lukasmahr/primal/pkg/errors"
	"github.com/lukasmahr/primal/pkg/layerio"
)

// Engine constants select the extraction strategy.
const (
	EngineSkeleton = "skeleton"
	EngineVoronoi  = "voronoi"
)

// ValidEngines is the set of supported engines.
var ValidEngines = map[string]bool{
	EngineSkeleton: true,
	EngineVoronoi:  true,
}

const (
	// DefaultBufferRadius is the corridor half-width in world units.
	DefaultBufferRadius = 8.0

	// DefaultRasterScale is the pixels-per-world-unit density for the
	// skeleton engine.
	DefaultRasterScale = 1.0

	// DefaultSeedScale is the boundary segment length for Voronoi
	// seeding.
	DefaultSeedScale = 5.0

	// DefaultSnapTolerance clusters Voronoi vertices closer than this
	// into a single vertex.
	DefaultSnapTolerance = 1.0

	// DefaultHoleMaxArea is the largest interior hole, in pixels, that
	// gets filled before thinning.
	DefaultHoleMaxArea = 4
)

// Options contains all configuration for the pipeline.
// This struct supports JSON serialization for cache keys.
type Options struct {
	// Engine selects the extraction strategy ("skeleton" or "voronoi").
	Engine string `json:"engine"`

	// BufferRadius is the corridor half-width around input lines.
	BufferRadius float64 `json:"buffer_radius,omitempty"`

	// SimplifyTolerance simplifies the output line layer when > 0.
	SimplifyTolerance float64 `json:"simplify_tolerance,omitempty"`

	// KeepKnots skips junction-cluster collapse in the skeleton engine.
	KeepKnots bool `json:"keep_knots,omitempty"`

	// SegmentedBuffer uses the tight segmented corridor instead of the
	// plain miter buffer.
	SegmentedBuffer bool `json:"segmented_buffer,omitempty"`

	// Skeleton engine options.
	RasterScale float64 `json:"raster_scale,omitempty"`
	HoleMaxArea int     `json:"hole_max_area,omitempty"`
	MaxPixels   int     `json:"max_pixels,omitempty"`

	// Voronoi engine options.
	SeedScale     float64 `json:"seed_scale,omitempty"`
	SnapTolerance float64 `json:"snap_tolerance,omitempty"`

	// Refresh bypasses the cache lookup and overwrites the entry.
	Refresh bool `json:"refresh,omitempty"`

	// Runtime options (not serialized).
	Logger *log.Logger `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool `json:"-"`
}

// ValidateAndSetDefaults checks option values and applies defaults.
// This method is idempotent - calling it multiple times has the same
// effect as calling it once.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if o.Engine == "" {
		o.Engine = EngineSkeleton
	}
	if !ValidEngines[o.Engine] {
		return errors.New(errors.ErrCodeValidation,
			"invalid engine: %q (must be one of: skeleton, voronoi)", o.Engine)
	}
	if o.BufferRadius == 0 {
		o.BufferRadius = DefaultBufferRadius
	}
	if o.BufferRadius < 0 {
		return errors.New(errors.ErrCodeValidation,
			"buffer radius must be positive, got %v", o.BufferRadius)
	}
	if o.RasterScale == 0 {
		o.RasterScale = DefaultRasterScale
	}
	if o.RasterScale < 0 {
		return errors.New(errors.ErrCodeValidation,
			"raster scale must be positive, got %v", o.RasterScale)
	}
	if o.SimplifyTolerance < 0 {
		return errors.New(errors.ErrCodeValidation,
			"simplify tolerance must not be negative, got %v", o.SimplifyTolerance)
	}
	if o.SeedScale == 0 {
		o.SeedScale = DefaultSeedScale
	}
	if o.SeedScale < 0 {
		return errors.New(errors.ErrCodeValidation,
			"seed scale must be positive, got %v", o.SeedScale)
	}
	if o.SnapTolerance == 0 {
		o.SnapTolerance = DefaultSnapTolerance
	}
	if o.SnapTolerance < 0 {
		return errors.New(errors.ErrCodeValidation,
			"snap tolerance must be positive, got %v", o.SnapTolerance)
	}
	if o.HoleMaxArea == 0 {
		o.HoleMaxArea = DefaultHoleMaxArea
	}
	if o.HoleMaxArea < 0 {
		return errors.New(errors.ErrCodeValidation,
			"hole area must not be negative, got %v", o.HoleMaxArea)
	}
	if o.MaxPixels == 0 {
		o.MaxPixels = 1 << 26
	}
	if o.MaxPixels < 0 {
		return errors.New(errors.ErrCodeValidation,
			"pixel budget must be positive, got %v", o.MaxPixels)
	}
	o.validated = true
	return nil
}

// keyOpts returns the cache key options derived from the normalized
// option values.
func (o *Options) keyOpts() cache.RunKeyOpts {
	return cache.RunKeyOpts{
		Engine:            o.Engine,
		BufferRadius:      o.BufferRadius,
		RasterScale:       o.RasterScale,
		SimplifyTolerance: o.SimplifyTolerance,
		KnotRemoval:       !o.KeepKnots,
		SegmentedBuffer:   o.SegmentedBuffer,
		SeedScale:         o.SeedScale,
		SnapTolerance:     o.SnapTolerance,
		HoleMaxArea:       o.HoleMaxArea,
		MaxPixels:         o.MaxPixels,
	}
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// RunID uniquely identifies this execution.
	RunID string `json:"run_id"`

	// Layers holds the output feature collections, input layer first.
	Layers []layerio.Layer `json:"layers"`

	// Stats contains timing and size information.
	Stats Stats `json:"stats"`

	// CacheInfo tracks whether the run came from cache.
	CacheInfo CacheInfo `json:"cache_info"`
}

// Stats contains pipeline execution statistics.
type Stats struct {
	InputLines  int     `json:"input_lines"`
	Lines       int     `json:"lines"`
	Nodes       int     `json:"nodes"`
	Edges       int     `json:"edges"`
	FilledHoles int     `json:"filled_holes,omitempty"`
	TotalLength float64 `json:"total_length"`

	BufferTime  time.Duration `json:"buffer_time"`
	RasterTime  time.Duration `json:"raster_time,omitempty"`
	ThinTime    time.Duration `json:"thin_time,omitempty"`
	VoronoiTime time.Duration `json:"voronoi_time,omitempty"`
	FilterTime  time.Duration `json:"filter_time,omitempty"`
	GraphTime   time.Duration `json:"graph_time"`
	MergeTime   time.Duration `json:"merge_time"`
	TotalTime   time.Duration `json:"total_time"`
}

// CacheInfo tracks cache involvement for a run.
type CacheInfo struct {
	// Hit reports whether the full result came from cache.
	Hit bool `json:"hit"`

	// Key is the cache key for this input and option set.
	Key string `json:"key,omitempty"`
}
