package layerio

import (
	"io"
	"os"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"

	"github.com/lukasmahr/primal/pkg/errors"
	"github.com/lukasmahr/primal/pkg/geom"
)

// ReadLines decodes a GeoJSON FeatureCollection into snapped line
// geometry. LineString and MultiLineString features are accepted;
// features of any other geometry type are counted and excluded. The
// skipped count is returned so callers can log a warning. Reading fails
// only when no usable line remains.
func ReadLines(r io.Reader) ([]orb.LineString, int, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, 0, errors.Wrap(errors.ErrCodeIO, err, "read geojson")
	}
	fc, err := geojson.UnmarshalFeatureCollection(data)
	if err != nil {
		return nil, 0, errors.Wrap(errors.ErrCodeIO, err, "decode geojson")
	}

	var lines []orb.LineString
	skipped := 0
	for _, f := range fc.Features {
		switch g := f.Geometry.(type) {
		case orb.LineString:
			lines = append(lines, g)
		case orb.MultiLineString:
			for _, ls := range g {
				lines = append(lines, ls)
			}
		default:
			skipped++
		}
	}

	snapped, dropped := geom.SnapLines(lines)
	skipped += dropped
	if len(snapped) == 0 {
		return nil, skipped, errors.New(errors.ErrCodeUnsupportedGeometry,
			"no linear geometry in input (%d features skipped)", skipped)
	}
	return snapped, skipped, nil
}

// ReadFile opens and decodes a GeoJSON file.
func ReadFile(path string) ([]orb.LineString, int, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, 0, errors.Wrap(errors.ErrCodeIO, err, "open %s", path)
	}
	defer f.Close()
	return ReadLines(f)
}
