package cli

import (
	"fmt"

	"github.com/BurntSushi/toml"
	"github.com/spf13/cobra"

	"github.com/lukasmahr/primal/pkg/pipeline"
)

// fileConfig mirrors the extraction flags in TOML form. Pointer fields
// distinguish "absent" from zero so the overlay never clobbers a value
// the file does not mention.
type fileConfig struct {
	Buffer        *float64 `toml:"buffer"`
	Scale         *float64 `toml:"scale"`
	Simplify      *float64 `toml:"simplify"`
	Segmented     *bool    `toml:"segmented"`
	Knots         *bool    `toml:"knots"`
	SeedScale     *float64 `toml:"seed_scale"`
	SnapTolerance *float64 `toml:"snap_tolerance"`
	MaxPixels     *int     `toml:"max_pixels"`
}

// applyConfig overlays a TOML config file under explicit flags: a value
// from the file only applies when the matching flag was not set on the
// command line.
func applyConfig(cmd *cobra.Command, path string, opts *pipeline.Options) error {
	if path == "" {
		return nil
	}

	var cfg fileConfig
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return fmt.Errorf("load config %s: %w", path, err)
	}

	flags := cmd.Flags()
	if cfg.Buffer != nil && !flags.Changed("buffer") {
		opts.BufferRadius = *cfg.Buffer
	}
	if cfg.Scale != nil && !flags.Changed("scale") {
		opts.RasterScale = *cfg.Scale
	}
	if cfg.Simplify != nil && !flags.Changed("simplify") {
		opts.SimplifyTolerance = *cfg.Simplify
	}
	if cfg.Segmented != nil && !flags.Changed("segmented") {
		opts.SegmentedBuffer = *cfg.Segmented
	}
	if cfg.Knots != nil && !flags.Changed("knots") {
		opts.KeepKnots = *cfg.Knots
	}
	if cfg.SeedScale != nil && !flags.Changed("seed-scale") {
		opts.SeedScale = *cfg.SeedScale
	}
	if cfg.SnapTolerance != nil && !flags.Changed("snap-tolerance") {
		opts.SnapTolerance = *cfg.SnapTolerance
	}
	if cfg.MaxPixels != nil && !flags.Changed("max-pixels") {
		opts.MaxPixels = *cfg.MaxPixels
	}
	return nil
}
