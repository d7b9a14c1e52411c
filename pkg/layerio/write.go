package layerio

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/lukasmahr/primal/pkg/errors"
)

// WriteLayers persists all layers under the base path, atomically as a
// set: each layer is first written to a temporary file next to its
// destination, and the renames happen only after every layer encoded
// and flushed successfully. On any failure the temporaries are removed
// and no destination file is touched.
func WriteLayers(base string, layers []Layer) error {
	if len(layers) == 0 {
		return errors.New(errors.ErrCodeValidation, "no layers to write")
	}
	for _, l := range layers {
		if err := errors.ValidateLayerName(l.Name); err != nil {
			return err
		}
	}
	if dir := filepath.Dir(base); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return errors.Wrap(errors.ErrCodeIO, err, "create output directory %s", dir)
		}
	}

	temps := make([]string, 0, len(layers))
	cleanup := func() {
		for _, t := range temps {
			_ = os.Remove(t)
		}
	}

	for _, l := range layers {
		data, err := json.Marshal(l.Collection)
		if err != nil {
			cleanup()
			return errors.Wrap(errors.ErrCodeIO, err, "encode layer %s", l.Name)
		}
		tmp := LayerPath(base, l.Name) + ".tmp"
		if err := os.WriteFile(tmp, data, 0o644); err != nil {
			cleanup()
			return errors.Wrap(errors.ErrCodeIO, err, "write layer %s", l.Name)
		}
		temps = append(temps, tmp)
	}

	for i, l := range layers {
		if err := os.Rename(temps[i], LayerPath(base, l.Name)); err != nil {
			cleanup()
			return errors.Wrap(errors.ErrCodeIO, err, "finalize layer %s", l.Name)
		}
	}
	return nil
}
