package layerio

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"

	"github.com/lukasmahr/primal/pkg/errors"
)

const sampleGeoJSON = `{
  "type": "FeatureCollection",
  "features": [
    {"type": "Feature", "properties": {},
     "geometry": {"type": "LineString", "coordinates": [[0, 0], [10.04, 0]]}},
    {"type": "Feature", "properties": {},
     "geometry": {"type": "MultiLineString", "coordinates": [[[0, 5], [5, 5]], [[5, 5], [9, 5]]]}},
    {"type": "Feature", "properties": {},
     "geometry": {"type": "Point", "coordinates": [1, 1]}}
  ]
}`

func TestReadLines(t *testing.T) {
	lines, skipped, err := ReadLines(strings.NewReader(sampleGeoJSON))
	if err != nil {
		t.Fatalf("ReadLines: %v", err)
	}
	if len(lines) != 3 {
		t.Fatalf("got %d lines, want 3", len(lines))
	}
	if skipped != 1 {
		t.Errorf("skipped = %d, want 1 (the point)", skipped)
	}
	// Coordinates snapped to 0.1.
	if !lines[0][1].Equal(orb.Point{10, 0}) {
		t.Errorf("coordinate not snapped: %v", lines[0][1])
	}
}

func TestReadLinesNothingUsable(t *testing.T) {
	input := `{"type": "FeatureCollection", "features": [
	  {"type": "Feature", "properties": {}, "geometry": {"type": "Point", "coordinates": [1, 1]}}
	]}`
	_, _, err := ReadLines(strings.NewReader(input))
	if !errors.Is(err, errors.ErrCodeUnsupportedGeometry) {
		t.Fatalf("err = %v, want unsupported geometry", err)
	}
}

func TestReadLinesMalformed(t *testing.T) {
	_, _, err := ReadLines(strings.NewReader("{not json"))
	if !errors.Is(err, errors.ErrCodeIO) {
		t.Fatalf("err = %v, want io error", err)
	}
}

func newLayer(name string) Layer {
	fc := geojson.NewFeatureCollection()
	fc.Append(geojson.NewFeature(orb.LineString{{0, 0}, {1, 1}}))
	return Layer{Name: name, Collection: fc}
}

func TestWriteLayersRoundTrip(t *testing.T) {
	base := filepath.Join(t.TempDir(), "net")
	layers := []Layer{newLayer(LayerInput), newLayer(LayerLine), newLayer(LayerPrimal)}
	if err := WriteLayers(base, layers); err != nil {
		t.Fatalf("WriteLayers: %v", err)
	}
	for _, l := range layers {
		path := LayerPath(base, l.Name)
		f, err := os.Open(path)
		if err != nil {
			t.Fatalf("layer %s missing: %v", l.Name, err)
		}
		lines, _, err := ReadLines(f)
		f.Close()
		if err != nil {
			t.Fatalf("re-read layer %s: %v", l.Name, err)
		}
		if len(lines) != 1 {
			t.Errorf("layer %s has %d lines, want 1", l.Name, len(lines))
		}
	}
}

func TestWriteLayersRejectsBadName(t *testing.T) {
	base := filepath.Join(t.TempDir(), "net")
	err := WriteLayers(base, []Layer{newLayer("Bad Name!")})
	if !errors.Is(err, errors.ErrCodeValidation) {
		t.Fatalf("err = %v, want validation error", err)
	}
	entries, _ := os.ReadDir(filepath.Dir(base))
	if len(entries) != 0 {
		t.Errorf("failed write left %d files behind", len(entries))
	}
}

func TestWriteLayersNoPartialOutput(t *testing.T) {
	dir := t.TempDir()
	base := filepath.Join(dir, "missing", "net")
	// Parent is created, so this succeeds; now force a failure by
	// making the directory read-only and writing again.
	if err := WriteLayers(base, []Layer{newLayer(LayerInput)}); err != nil {
		t.Fatalf("WriteLayers: %v", err)
	}
	if err := os.Chmod(filepath.Join(dir, "missing"), 0o555); err != nil {
		t.Skipf("chmod not supported: %v", err)
	}
	defer os.Chmod(filepath.Join(dir, "missing"), 0o755)

	err := WriteLayers(base+"2", []Layer{newLayer(LayerInput), newLayer(LayerLine)})
	if err == nil {
		t.Skip("filesystem ignores write protection")
	}
	entries, _ := os.ReadDir(filepath.Join(dir, "missing"))
	for _, e := range entries {
		if strings.Contains(e.Name(), "net2") {
			t.Errorf("partial output %s left behind", e.Name())
		}
	}
}
