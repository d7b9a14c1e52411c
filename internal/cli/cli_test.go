package cli

import (
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/lukasmahr/primal/pkg/layerio"
)

const tJunctionGeoJSON = `{
	"type": "FeatureCollection",
	"features": [
		{"type": "Feature", "properties": {}, "geometry": {"type": "LineString", "coordinates": [[0, 0], [100, 0]]}},
		{"type": "Feature", "properties": {}, "geometry": {"type": "LineString", "coordinates": [[50, 0], [50, 60]]}}
	]
}`

func writeInput(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "network.geojson")
	if err := os.WriteFile(path, []byte(tJunctionGeoJSON), 0644); err != nil {
		t.Fatalf("write input: %v", err)
	}
	return path
}

func TestRootCommandStructure(t *testing.T) {
	c := New(io.Discard, LogInfo)
	root := c.RootCommand()

	if root.Use != "primal" {
		t.Errorf("root use = %q", root.Use)
	}

	want := map[string]bool{
		"skeletonize": false,
		"voronoi":     false,
		"inspect":     false,
		"cache":       false,
		"completion":  false,
	}
	for _, cmd := range root.Commands() {
		name := cmd.Name()
		if _, ok := want[name]; ok {
			want[name] = true
		}
	}
	for name, found := range want {
		if !found {
			t.Errorf("missing subcommand %q", name)
		}
	}
}

func TestSkeletonizeEndToEnd(t *testing.T) {
	input := writeInput(t)
	base := filepath.Join(t.TempDir(), "out")

	c := New(io.Discard, LogWarn)
	root := c.RootCommand()
	root.SetArgs([]string{"skeletonize", input, "-o", base, "--no-cache"})
	root.SetOut(io.Discard)
	root.SetErr(io.Discard)

	if err := root.Execute(); err != nil {
		t.Fatalf("skeletonize: %v", err)
	}

	for _, name := range []string{
		layerio.LayerInput, layerio.LayerLine, layerio.LayerPrimal,
		layerio.LayerNode, layerio.LayerEdge,
	} {
		path := layerio.LayerPath(base, name)
		data, err := os.ReadFile(path)
		if err != nil {
			t.Fatalf("missing layer %s: %v", name, err)
		}
		var doc map[string]any
		if err := json.Unmarshal(data, &doc); err != nil {
			t.Errorf("layer %s is not valid JSON: %v", name, err)
		}
	}
}

func TestVoronoiEndToEnd(t *testing.T) {
	input := writeInput(t)
	base := filepath.Join(t.TempDir(), "out")

	c := New(io.Discard, LogWarn)
	root := c.RootCommand()
	root.SetArgs([]string{"voronoi", input, "-o", base, "--no-cache"})
	root.SetOut(io.Discard)
	root.SetErr(io.Discard)

	if err := root.Execute(); err != nil {
		t.Fatalf("voronoi: %v", err)
	}

	if _, err := os.Stat(layerio.LayerPath(base, layerio.LayerLine)); err != nil {
		t.Fatalf("missing line layer: %v", err)
	}
}

func TestSkeletonizeMissingInput(t *testing.T) {
	c := New(io.Discard, LogWarn)
	root := c.RootCommand()
	root.SetArgs([]string{"skeletonize", "/nonexistent/input.geojson", "--no-cache"})
	root.SetOut(io.Discard)
	root.SetErr(io.Discard)

	if err := root.Execute(); err == nil {
		t.Fatal("expected error for missing input")
	}
}

func TestDefaultOutputBase(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "network.geojson")
	if err := os.WriteFile(input, []byte(tJunctionGeoJSON), 0644); err != nil {
		t.Fatalf("write input: %v", err)
	}

	c := New(io.Discard, LogWarn)
	root := c.RootCommand()
	root.SetArgs([]string{"skeletonize", input, "--no-cache"})
	root.SetOut(io.Discard)
	root.SetErr(io.Discard)

	if err := root.Execute(); err != nil {
		t.Fatalf("skeletonize: %v", err)
	}

	base := filepath.Join(dir, "network")
	if _, err := os.Stat(layerio.LayerPath(base, layerio.LayerLine)); err != nil {
		t.Fatalf("output did not land next to input: %v", err)
	}
}
