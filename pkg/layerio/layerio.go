// Package layerio is the I/O collaborator of the simplification core:
// it reads line networks from GeoJSON and persists the pipeline's named
// output layers. The core itself never touches the filesystem; it hands
// finished layers to this package.
//
// Output is one GeoJSON FeatureCollection per layer, written atomically
// as a set: every layer lands in a temporary file first and all are
// renamed into place together, so an aborted run leaves no partial
// output behind.
package layerio

import (
	"fmt"

	"github.com/paulmach/orb/geojson"
)

// Standard layer names produced by a pipeline run.
const (
	LayerInput  = "input"  // raw snapped input geometry
	LayerLine   = "line"   // simplified line network
	LayerPrimal = "primal" // straight source-to-target chords
	LayerNode   = "node"   // graph nodes with id and incidence
	LayerEdge   = "edge"   // graph edges with id, source, target, length
)

// Layer pairs a name with the features it holds.
type Layer struct {
	Name       string                     `json:"name"`
	Collection *geojson.FeatureCollection `json:"collection"`
}

// LayerPath returns the file path of a named layer under a base path.
func LayerPath(base, name string) string {
	return fmt.Sprintf("%s.%s.geojson", base, name)
}
