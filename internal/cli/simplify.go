package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/lukasmahr/primal/pkg/layerio"
	"github.com/lukasmahr/primal/pkg/pipeline"
)

// skeletonizeCommand creates the skeletonize command (raster engine).
func (c *CLI) skeletonizeCommand() *cobra.Command {
	var (
		output     string
		noCache    bool
		configPath string
	)
	opts := pipeline.Options{Engine: pipeline.EngineSkeleton}

	cmd := &cobra.Command{
		Use:   "skeletonize [input.geojson]",
		Short: "Extract centerlines by thinning the rasterized corridor",
		Long: `Extract centerlines by thinning the rasterized corridor.

The input lines are buffered into a corridor polygon, rasterized, and
thinned to a one-pixel skeleton. The skeleton pixels are traced back
into world space and merged into a clean centerline graph.

Results are cached locally for faster subsequent runs.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := applyConfig(cmd, configPath, &opts); err != nil {
				return err
			}
			return c.runExtract(cmd.Context(), args[0], opts, output, noCache)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output base path (default: input path without extension)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().StringVar(&configPath, "config", "", "TOML config file overlaid under explicit flags")
	cmd.Flags().BoolVar(&opts.Refresh, "refresh", false, "recompute even when a cached result exists")

	cmd.Flags().Float64Var(&opts.BufferRadius, "buffer", pipeline.DefaultBufferRadius, "corridor half-width in world units")
	cmd.Flags().Float64Var(&opts.SimplifyTolerance, "simplify", 0, "simplify output lines with this tolerance (0 disables)")
	cmd.Flags().BoolVar(&opts.SegmentedBuffer, "segmented", false, "use the tight segmented corridor buffer")
	cmd.Flags().Float64Var(&opts.RasterScale, "scale", pipeline.DefaultRasterScale, "pixels per world unit")
	cmd.Flags().BoolVar(&opts.KeepKnots, "knots", false, "keep junction knots instead of collapsing them")
	cmd.Flags().IntVar(&opts.MaxPixels, "max-pixels", 0, "grid cell budget (default 2^26)")

	return cmd
}

// voronoiCommand creates the voronoi command (medial-axis engine).
func (c *CLI) voronoiCommand() *cobra.Command {
	var (
		output     string
		noCache    bool
		configPath string
	)
	opts := pipeline.Options{Engine: pipeline.EngineVoronoi}

	cmd := &cobra.Command{
		Use:   "voronoi [input.geojson]",
		Short: "Extract centerlines from the corridor's Voronoi diagram",
		Long: `Extract centerlines from the corridor's Voronoi diagram.

The input lines are buffered into a corridor polygon whose boundary is
seeded at regular intervals. The Voronoi diagram of those seeds is
pruned to the edges that run along the middle of the corridor, then
merged into a clean centerline graph.

Results are cached locally for faster subsequent runs.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := applyConfig(cmd, configPath, &opts); err != nil {
				return err
			}
			return c.runExtract(cmd.Context(), args[0], opts, output, noCache)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output base path (default: input path without extension)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().StringVar(&configPath, "config", "", "TOML config file overlaid under explicit flags")
	cmd.Flags().BoolVar(&opts.Refresh, "refresh", false, "recompute even when a cached result exists")

	cmd.Flags().Float64Var(&opts.BufferRadius, "buffer", pipeline.DefaultBufferRadius, "corridor half-width in world units")
	cmd.Flags().Float64Var(&opts.SimplifyTolerance, "simplify", 0, "simplify output lines with this tolerance (0 disables)")
	cmd.Flags().BoolVar(&opts.SegmentedBuffer, "segmented", false, "use the tight segmented corridor buffer")
	cmd.Flags().Float64Var(&opts.SeedScale, "seed-scale", pipeline.DefaultSeedScale, "boundary seed spacing")
	cmd.Flags().Float64Var(&opts.SnapTolerance, "snap-tolerance", pipeline.DefaultSnapTolerance, "voronoi vertex clustering tolerance")

	return cmd
}

// runExtract reads the input, runs the pipeline, and persists the layers.
func (c *CLI) runExtract(ctx context.Context, input string, opts pipeline.Options, output string, noCache bool) error {
	lines, skipped, err := layerio.ReadFile(input)
	if err != nil {
		return fmt.Errorf("read %s: %w", input, err)
	}
	if skipped > 0 {
		c.Logger.Warn("skipped unsupported geometries", "count", skipped)
	}

	runner, err := c.newRunner(noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	opts.Logger = c.Logger

	spinner := newSpinnerWithContext(ctx, fmt.Sprintf("Extracting centerlines (%s)...", opts.Engine))
	spinner.Start()

	result, err := runner.Execute(withLogger(ctx, c.Logger), lines, opts)
	if err != nil {
		spinner.StopWithError("Extraction failed")
		return fmt.Errorf("extract: %w", err)
	}
	spinner.Stop()

	base := output
	if base == "" {
		base = strings.TrimSuffix(input, ".geojson")
	}
	if err := layerio.WriteLayers(base, result.Layers); err != nil {
		return fmt.Errorf("write layers: %w", err)
	}

	printSuccess("Extracted %d centerlines", result.Stats.Lines)
	printStats(result.Stats.Nodes, result.Stats.Edges, result.CacheInfo.Hit)
	for _, layer := range result.Layers {
		printFile(layerio.LayerPath(base, layer.Name))
	}
	printNextStep("Inspect the layers", fmt.Sprintf("primal inspect %s", base))
	return nil
}
