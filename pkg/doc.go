// Package pkg provides the core libraries for primal centerline extraction.
//
// # Overview
//
// Primal reduces noisy, overlapping 2D line networks to a clean
// topological graph of centerlines. The pkg directory is organized
// around the stages of that reduction:
//
//	GeoJSON lines
//	     ↓
//	[geom] package (snap, buffer, union)
//	     ↓
//	[raster] or [voronoi] package (corridor → raw centerline fragments)
//	     ↓
//	[graph] package (extract, merge, dewhisker)
//	     ↓
//	[layerio] package (atomic multi-layer GeoJSON output)
//
// # Main Packages
//
// [geom] - Geometry primitives: 0.1-grid snapping, corridor buffering
// with miter joins, polygon union, line simplification, and measures.
//
// [raster] - The skeleton engine: world↔pixel transform, all-touched
// rasterization, small-hole filling, and Zhang-Suen thinning.
//
// [voronoi] - The medial-axis engine: boundary seeding, Delaunay-dual
// Voronoi edges, distance and containment pruning, junction collapse.
//
// [graph] - Centerline graph structure: endpoint extraction, fragment
// merging at degree-2 points, and whisker removal at junction knots.
//
// [spatial] - Grid and quadtree indexes backing nearest-line and
// box queries.
//
// [pipeline] - Orchestration of both engines with caching, staged
// timing, and layer assembly. Used by the CLI and any embedding code.
//
// [layerio] - GeoJSON input parsing and atomic multi-layer output.
//
// ## Infrastructure
//
// [cache] - File-based result cache keyed by input and option hashes.
//
// [errors] - Coded errors distinguishing invalid geometry, budget
// overruns, validation failures, and I/O faults.
//
// [observability] - Injectable stage and cache hooks.
//
// [buildinfo] - Version information injected at build time.
//
// # Quick Start
//
// Extract centerlines from a set of lines:
//
//	runner := pipeline.NewRunner(nil, nil, logger)
//	result, err := runner.Execute(ctx, lines, pipeline.Options{
//	    Engine: pipeline.EngineSkeleton,
//	})
//	if err != nil {
//	    return err
//	}
//	err = layerio.WriteLayers("out/network", result.Layers)
//
// [geom]: https://pkg.go.dev/github.com/lukasmahr/primal/pkg/geom
// [raster]: https://pkg.go.dev/github.com/lukasmahr/primal/pkg/raster
// [voronoi]: https://pkg.go.dev/github.com/lukasmahr/primal/pkg/voronoi
// [graph]: https://pkg.go.dev/github.com/lukasmahr/primal/pkg/graph
// [spatial]: https://pkg.go.dev/github.com/lukasmahr/primal/pkg/spatial
// [pipeline]: https://pkg.go.dev/github.com/lukasmahr/primal/pkg/pipeline
// [layerio]: https://pkg.go.dev/github.com/lukasmahr/primal/pkg/layerio
// [cache]: https://pkg.go.dev/github.com/lukasmahr/primal/pkg/cache
// [errors]: https://pkg.go.dev/github.com/lukasmahr/primal/pkg/errors
// [observability]: https://pkg.go.dev/github.com/lukasmahr/primal/pkg/observability
// [buildinfo]: https://pkg.go.dev/github.com/lukasmahr/primal/pkg/buildinfo
package pkg
