package geo

import (
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
)

// LineString converts a path to an orb line. orb points are [lon, lat], the
// reverse of Coordinate's encoding.
func LineString(path []Coordinate) orb.LineString {
	line := make(orb.LineString, 0, len(path))
	for _, c := range path {
		line = append(line, orb.Point{c.Lon, c.Lat})
	}
	return line
}

// PathsGeoJSON encodes path segments as a FeatureCollection of LineStrings.
func PathsGeoJSON(paths [][]Coordinate) ([]byte, error) {
	fc := geojson.NewFeatureCollection()
	for i, path := range paths {
		f := geojson.NewFeature(LineString(path))
		f.Properties["segment"] = i
		fc.Append(f)
	}
	return fc.MarshalJSON()
}
