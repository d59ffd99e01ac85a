// Package info describes a grid as GeoJSON.
package info

import (
	"github.com/gruppe-adler/ascraster/internal/grid"
	"github.com/paulmach/orb/geojson"
)

// Footprint returns a feature collection with a single polygon covering g.
// The header values and the value range are stored as feature properties.
func Footprint(g *grid.Grid, name string) *geojson.FeatureCollection {
	bound := g.Bounds()

	feature := geojson.NewFeature(bound.ToPolygon())
	feature.BBox = geojson.NewBBox(bound)
	feature.Properties["name"] = name
	feature.Properties["ncols"] = g.Ncols
	feature.Properties["nrows"] = g.Nrows
	feature.Properties["cellsize"] = g.CellSize
	feature.Properties["nodata_value"] = g.NoData
	feature.Properties["min"] = g.Min()
	feature.Properties["max"] = g.Max()

	fc := geojson.NewFeatureCollection()
	fc.Append(feature)

	return fc
}
