// Package observability provides hooks for instrumenting pipeline runs.
//
// The package enables optional instrumentation without adding hard
// dependencies on specific observability backends. Callers inject hook
// implementations into the runner; libraries never reach for process
// globals, so concurrent runners can carry independent instrumentation.
//
// # Usage
//
// Build a Hooks value at startup and pass it to the pipeline runner:
//
//	hooks := observability.Hooks{
//	    Stage: &myStageHooks{},
//	    Cache: &myCacheHooks{},
//	}
//	runner := pipeline.NewRunner(pipeline.RunnerConfig{Hooks: hooks})
//
// Unset fields default to no-op implementations.
package observability

import (
	"context"
	"time"
)

// StageHooks receives events from pipeline stage execution.
type StageHooks interface {
	// OnStageStart is called before a stage runs.
	OnStageStart(ctx context.Context, stage string)

	// OnStageComplete is called after a stage finishes, with its
	// duration and error, if any.
	OnStageComplete(ctx context.Context, stage string, duration time.Duration, err error)
}

// CacheHooks receives events from cache operations.
type CacheHooks interface {
	// OnCacheHit records a cache hit.
	OnCacheHit(ctx context.Context, keyType string)

	// OnCacheMiss records a cache miss.
	OnCacheMiss(ctx context.Context, keyType string)

	// OnCacheSet records a cache write.
	OnCacheSet(ctx context.Context, keyType string, size int)
}

// NoopStageHooks is a no-op implementation of StageHooks.
type NoopStageHooks struct{}

func (NoopStageHooks) OnStageStart(context.Context, string)                          {}
func (NoopStageHooks) OnStageComplete(context.Context, string, time.Duration, error) {}

// NoopCacheHooks is a no-op implementation of CacheHooks.
type NoopCacheHooks struct{}

func (NoopCacheHooks) OnCacheHit(context.Context, string)      {}
func (NoopCacheHooks) OnCacheMiss(context.Context, string)     {}
func (NoopCacheHooks) OnCacheSet(context.Context, string, int) {}

// Hooks bundles the hook interfaces a runner carries. The zero value
// is valid; nil fields behave as no-ops through the accessors.
type Hooks struct {
	Stage StageHooks
	Cache CacheHooks
}

// StageOrNoop returns the stage hooks, defaulting to a no-op.
func (h Hooks) StageOrNoop() StageHooks {
	if h.Stage == nil {
		return NoopStageHooks{}
	}
	return h.Stage
}

// CacheOrNoop returns the cache hooks, defaulting to a no-op.
func (h Hooks) CacheOrNoop() CacheHooks {
	if h.Cache == nil {
		return NoopCacheHooks{}
	}
	return h.Cache
}
