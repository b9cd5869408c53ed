package geom

import (
	"errors"

	geojson "github.com/paulmach/go.geojson"
)

// FeatureCollection converts decoded geometry into GeoJSON features tagged
// with the given layer name. Each polygon record becomes one Polygon feature
// (its rings in order) and the point set becomes a single MultiPoint feature.
func FeatureCollection(layer string, polys PolygonSet, points PointSet) *geojson.FeatureCollection {
	fc := geojson.NewFeatureCollection()
	AppendFeatures(fc, layer, polys, points)
	return fc
}

// AppendFeatures adds the features of one layer to an existing collection.
func AppendFeatures(fc *geojson.FeatureCollection, layer string, polys PolygonSet, points PointSet) {
	for i, p := range polys {
		var coords [][][]float64
		for _, r := range p.Rings {
			if len(r) == 0 {
				continue
			}
			ring := make([][]float64, 0, len(r)+1)
			for _, v := range r {
				ring = append(ring, []float64{v.X, v.Y})
			}
			// GeoJSON rings are explicitly closed
			if r[0] != r[len(r)-1] {
				ring = append(ring, []float64{r[0].X, r[0].Y})
			}
			coords = append(coords, ring)
		}
		if len(coords) == 0 {
			continue
		}
		f := geojson.NewPolygonFeature(coords)
		f.SetProperty("layer", layer)
		f.SetProperty("record", i)
		f.SetProperty("parts", len(p.Parts))
		f.BoundingBox = []float64{p.Box.MinX, p.Box.MinY, p.Box.MaxX, p.Box.MaxY}
		fc.AddFeature(f)
	}
	if len(points) > 0 {
		coords := make([][]float64, 0, len(points))
		for _, v := range points {
			coords = append(coords, []float64{v.X, v.Y})
		}
		f := geojson.NewMultiPointFeature(coords...)
		f.SetProperty("layer", layer)
		fc.AddFeature(f)
	}
}

// LoadGeoJSON reads back a collection written by FeatureCollection. Polygon
// features become single-part polygons, Point and MultiPoint features points.
func LoadGeoJSON(data []byte) (PolygonSet, PointSet, error) {
	fc, err := geojson.UnmarshalFeatureCollection(data)
	if err != nil {
		return nil, nil, err
	}
	var polys PolygonSet
	var points PointSet
	for _, f := range fc.Features {
		if f.Geometry == nil {
			continue
		}
		switch {
		case f.Geometry.IsPolygon():
			var p Polygon
			p.Box = EmptyExtent()
			start := int32(0)
			for _, ring := range f.Geometry.Polygon {
				var r Ring
				for _, c := range ring {
					if len(c) < 2 {
						continue
					}
					v := Vertex{X: c[0], Y: c[1]}
					p.Box = p.Box.Extend(v)
					r = append(r, v)
				}
				// drop the explicit closing vertex
				if len(r) > 1 && r[0] == r[len(r)-1] {
					r = r[:len(r)-1]
				}
				if len(r) == 0 {
					continue
				}
				p.Parts = append(p.Parts, start)
				p.Rings = append(p.Rings, r)
				start += int32(len(r))
			}
			if len(p.Rings) > 0 {
				polys = append(polys, p)
			}
		case f.Geometry.IsPoint():
			if len(f.Geometry.Point) >= 2 {
				points = append(points, Vertex{X: f.Geometry.Point[0], Y: f.Geometry.Point[1]})
			}
		case f.Geometry.IsMultiPoint():
			for _, c := range f.Geometry.MultiPoint {
				if len(c) >= 2 {
					points = append(points, Vertex{X: c[0], Y: c[1]})
				}
			}
		}
	}
	if len(polys) == 0 && len(points) == 0 {
		return nil, nil, errors.New("geojson: no polygons or points found")
	}
	return polys, points, nil
}
