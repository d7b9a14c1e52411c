package pipeline

import (
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"

	"github.com/lukasmahr/primal/pkg/graph"
)

// lineCollection wraps lines as a feature collection, one feature per
// line.
func lineCollection(lines []orb.LineString) *geojson.FeatureCollection {
	fc := geojson.NewFeatureCollection()
	for i, ls := range lines {
		f := geojson.NewFeature(ls.Clone())
		f.Properties = geojson.Properties{"id": i}
		fc.Append(f)
	}
	return fc
}

// nodeCollection builds point features carrying node id and incidence.
func nodeCollection(g *graph.Graph) *geojson.FeatureCollection {
	fc := geojson.NewFeatureCollection()
	for _, n := range g.Nodes {
		f := geojson.NewFeature(n.Location)
		f.Properties = geojson.Properties{
			"id":    n.ID,
			"count": n.Incidence,
		}
		fc.Append(f)
	}
	return fc
}

// edgeCollection builds line features carrying edge endpoints and
// length.
func edgeCollection(g *graph.Graph) *geojson.FeatureCollection {
	fc := geojson.NewFeatureCollection()
	for _, e := range g.Edges {
		f := geojson.NewFeature(e.Geometry.Clone())
		f.Properties = geojson.Properties{
			"edge":   e.ID,
			"source": e.Source,
			"target": e.Target,
			"length": e.Length,
		}
		fc.Append(f)
	}
	return fc
}
