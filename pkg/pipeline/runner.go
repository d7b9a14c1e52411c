package pipeline

import (
	"context"
	"encoding/json"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/paulmach/orb"

	"github.com/lukasmahr/primal/pkg/cache"
	"github.com/lukasmahr/primal/pkg/errors"
	"github.com/lukasmahr/primal/pkg/graph"
	"github.com/lukasmahr/primal/pkg/layerio"
	"github.com/lukasmahr/primal/pkg/observability"
)

// Runner encapsulates pipeline execution with caching.
//
// The Runner is stateless except for its collaborators - it doesn't
// store run results. Multiple goroutines can safely use the same
// Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
	Hooks  observability.Hooks

	// Clock supplies the current time for stage timing. Defaults to
	// time.Now.
	Clock func() time.Time
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
		Clock:  time.Now,
	}
}

// cachedRun is the cache payload for a completed run.
type cachedRun struct {
	Layers []layerio.Layer `json:"layers"`
	Stats  Stats           `json:"stats"`
}

// Execute runs the selected engine over the input lines with caching.
// The input is expected to be snapped to the coordinate grid, as
// layerio.ReadLines produces it.
func (r *Runner) Execute(ctx context.Context, input []orb.LineString, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	logger := r.logger(&opts)
	start := r.now()

	result := &Result{RunID: uuid.NewString()}

	key, err := r.runKey(input, opts)
	if err != nil {
		return nil, err
	}
	result.CacheInfo.Key = key

	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, key); err == nil && hit {
			var cached cachedRun
			if err := json.Unmarshal(data, &cached); err == nil {
				r.Hooks.CacheOrNoop().OnCacheHit(ctx, "run")
				logger.Info("reused cached result", "layers", len(cached.Layers))
				result.Layers = cached.Layers
				result.Stats = cached.Stats
				result.CacheInfo.Hit = true
				return result, nil
			}
			// Corrupt entry, drop and recompute.
			_ = r.Cache.Delete(ctx, key)
		}
		r.Hooks.CacheOrNoop().OnCacheMiss(ctx, "run")
	}

	var layers []layerio.Layer
	var stats Stats
	switch opts.Engine {
	case EngineVoronoi:
		layers, stats, err = r.runVoronoi(ctx, input, opts, logger)
	default:
		layers, stats, err = r.runSkeleton(ctx, input, opts, logger)
	}
	if err != nil {
		return nil, err
	}
	stats.TotalTime = r.now().Sub(start)

	if data, err := json.Marshal(cachedRun{Layers: layers, Stats: stats}); err == nil {
		if err := r.Cache.Set(ctx, key, data, cache.TTLRun); err == nil {
			r.Hooks.CacheOrNoop().OnCacheSet(ctx, "run", len(data))
		}
	}

	result.Layers = layers
	result.Stats = stats
	return result, nil
}

// runKey derives the cache key from the input geometry and options.
func (r *Runner) runKey(input []orb.LineString, opts Options) (string, error) {
	data, err := json.Marshal(input)
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeInternal, err, "hash input geometry")
	}
	return r.Keyer.RunKey(cache.Hash(data), opts.keyOpts()), nil
}

// stage runs one pipeline step with timing, logging, and hooks.
// The context is checked before the step runs so a canceled run stops
// between stages without partial output.
func (r *Runner) stage(ctx context.Context, logger *log.Logger, name string, elapsed *time.Duration, fn func() error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	hooks := r.Hooks.StageOrNoop()
	hooks.OnStageStart(ctx, name)
	start := r.now()
	err := fn()
	d := r.now().Sub(start)
	if elapsed != nil {
		*elapsed += d
	}
	hooks.OnStageComplete(ctx, name, d, err)
	if err != nil {
		return err
	}
	logger.Debug(name, "duration", d)
	return nil
}

// assembleLayers builds the output layer set from the final lines.
// The input layer always comes first so partial inspection of a layer
// set starts from the raw geometry. Degenerate leftovers are dropped;
// the returned count feeds a warning log.
func assembleLayers(input, lines []orb.LineString, stats *Stats) ([]layerio.Layer, int) {
	g, dropped := graph.Extract(lines)
	stats.Lines = len(g.Edges)
	stats.Nodes = len(g.Nodes)
	stats.Edges = len(g.Edges)
	stats.TotalLength = g.TotalLength()

	return []layerio.Layer{
		{Name: layerio.LayerInput, Collection: lineCollection(input)},
		{Name: layerio.LayerLine, Collection: lineCollection(g.Lines())},
		{Name: layerio.LayerPrimal, Collection: lineCollection(g.Chords())},
		{Name: layerio.LayerNode, Collection: nodeCollection(g)},
		{Name: layerio.LayerEdge, Collection: edgeCollection(g)},
	}, dropped
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// logger returns the per-run logger, preferring the one on the options.
func (r *Runner) logger(opts *Options) *log.Logger {
	if opts.Logger != nil {
		return opts.Logger
	}
	return r.Logger
}

// now reads the injected clock, defaulting to the wall clock.
func (r *Runner) now() time.Time {
	if r.Clock != nil {
		return r.Clock()
	}
	return time.Now()
}
