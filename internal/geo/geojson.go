package geo

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/peterstace/simplefeatures/geom"
)

// FromGeoJSON parses building footprints from a GeoJSON document. Both
// a bare geometry and a FeatureCollection are accepted; Polygon and
// MultiPolygon geometries contribute their exterior rings, everything
// else is skipped. Interior rings (courtyards) are ignored: footprints
// occlude as solid shapes.
func FromGeoJSON(data []byte) ([]Polygon, error) {
	var fc geom.GeoJSONFeatureCollection
	if err := json.Unmarshal(data, &fc); err == nil && len(fc) > 0 {
		var out []Polygon
		for _, f := range fc {
			out = append(out, polygonsFromGeometry(f.Geometry)...)
		}
		return out, nil
	}

	g, err := geom.UnmarshalGeoJSON(data)
	if err != nil {
		return nil, fmt.Errorf("parsing footprint geojson: %w", err)
	}
	return polygonsFromGeometry(g), nil
}

// LoadFootprints reads and parses a GeoJSON footprint file.
func LoadFootprints(path string) ([]Polygon, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading footprint file: %w", err)
	}
	return FromGeoJSON(data)
}

func polygonsFromGeometry(g geom.Geometry) []Polygon {
	switch g.Type() {
	case geom.TypePolygon:
		if p := ringToPolygon(g.MustAsPolygon().ExteriorRing()); p != nil {
			return []Polygon{p}
		}
	case geom.TypeMultiPolygon:
		mp := g.MustAsMultiPolygon()
		var out []Polygon
		for i := 0; i < mp.NumPolygons(); i++ {
			if p := ringToPolygon(mp.PolygonN(i).ExteriorRing()); p != nil {
				out = append(out, p)
			}
		}
		return out
	case geom.TypeGeometryCollection:
		gc := g.MustAsGeometryCollection()
		var out []Polygon
		for i := 0; i < gc.NumGeometries(); i++ {
			out = append(out, polygonsFromGeometry(gc.GeometryN(i))...)
		}
		return out
	}
	return nil
}

func ringToPolygon(ring geom.LineString) Polygon {
	seq := ring.Coordinates()
	n := seq.Length()
	if n < 3 {
		return nil
	}
	// GeoJSON rings repeat the first point at the end; drop it.
	first := seq.GetXY(0)
	last := seq.GetXY(n - 1)
	if first == last {
		n--
	}
	if n < 3 {
		return nil
	}
	p := make(Polygon, 0, n)
	for i := 0; i < n; i++ {
		xy := seq.GetXY(i)
		p = append(p, Point{X: xy.X, Y: xy.Y})
	}
	return p
}
