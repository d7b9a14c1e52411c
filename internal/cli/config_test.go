package cli

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/lukasmahr/primal/pkg/pipeline"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "primal.toml")
	if err := os.WriteFile(path, []byte(body), 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestApplyConfigFillsUnsetFlags(t *testing.T) {
	path := writeConfig(t, "buffer = 20.0\nscale = 2.0\nsegmented = true\n")

	c := New(io.Discard, LogInfo)
	cmd := c.skeletonizeCommand()
	opts := pipeline.Options{}

	if err := applyConfig(cmd, path, &opts); err != nil {
		t.Fatalf("applyConfig: %v", err)
	}
	if opts.BufferRadius != 20 {
		t.Errorf("buffer = %v, want 20 from config", opts.BufferRadius)
	}
	if opts.RasterScale != 2 {
		t.Errorf("scale = %v, want 2 from config", opts.RasterScale)
	}
	if !opts.SegmentedBuffer {
		t.Error("segmented should come from config")
	}
}

func TestApplyConfigYieldsToExplicitFlags(t *testing.T) {
	path := writeConfig(t, "buffer = 20.0\nscale = 2.0\n")

	c := New(io.Discard, LogInfo)
	cmd := c.skeletonizeCommand()
	if err := cmd.Flags().Set("buffer", "12"); err != nil {
		t.Fatalf("set flag: %v", err)
	}

	opts := pipeline.Options{BufferRadius: 12}
	if err := applyConfig(cmd, path, &opts); err != nil {
		t.Fatalf("applyConfig: %v", err)
	}
	if opts.BufferRadius != 12 {
		t.Errorf("explicit flag should win: buffer = %v", opts.BufferRadius)
	}
	if opts.RasterScale != 2 {
		t.Errorf("unset flag should take config value: scale = %v", opts.RasterScale)
	}
}

func TestApplyConfigAbsentValuesLeaveOptions(t *testing.T) {
	path := writeConfig(t, "buffer = 20.0\n")

	c := New(io.Discard, LogInfo)
	cmd := c.voronoiCommand()
	opts := pipeline.Options{SeedScale: 7}

	if err := applyConfig(cmd, path, &opts); err != nil {
		t.Fatalf("applyConfig: %v", err)
	}
	if opts.SeedScale != 7 {
		t.Errorf("absent config value clobbered option: %v", opts.SeedScale)
	}
}

func TestApplyConfigMissingFile(t *testing.T) {
	c := New(io.Discard, LogInfo)
	cmd := c.skeletonizeCommand()
	opts := pipeline.Options{}

	if err := applyConfig(cmd, "/nonexistent/primal.toml", &opts); err == nil {
		t.Fatal("expected error for missing config file")
	}
}

func TestApplyConfigEmptyPathIsNoop(t *testing.T) {
	c := New(io.Discard, LogInfo)
	cmd := c.skeletonizeCommand()
	opts := pipeline.Options{BufferRadius: 3}

	if err := applyConfig(cmd, "", &opts); err != nil {
		t.Fatalf("applyConfig: %v", err)
	}
	if opts.BufferRadius != 3 {
		t.Error("empty path should not touch options")
	}
}
