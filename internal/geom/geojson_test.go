package geom

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestFeatureCollection(t *testing.T) {

	Convey("Given a polygon record and two points", t, func() {
		polys := PolygonSet{{
			Box:   Extent{MinX: 0, MinY: 0, MaxX: 10, MaxY: 10},
			Parts: []int32{0},
			Rings: []Ring{{{0, 0}, {10, 0}, {5, 10}}},
		}}
		points := PointSet{{1, 1}, {2, 3}}

		fc := FeatureCollection("harbours", polys, points)

		Convey("One polygon feature and one multipoint feature are produced", func() {
			So(fc.Features, ShouldHaveLength, 2)
			So(fc.Features[0].Geometry.IsPolygon(), ShouldBeTrue)
			So(fc.Features[1].Geometry.IsMultiPoint(), ShouldBeTrue)
			So(fc.Features[0].Properties["layer"], ShouldEqual, "harbours")
		})

		Convey("Polygon rings are explicitly closed", func() {
			ring := fc.Features[0].Geometry.Polygon[0]
			So(ring, ShouldHaveLength, 4)
			So(ring[3], ShouldResemble, []float64{0, 0})
		})

		Convey("The collection reads back into the same geometry", func() {
			data, err := fc.MarshalJSON()
			So(err, ShouldBeNil)

			gotPolys, gotPoints, err := LoadGeoJSON(data)
			So(err, ShouldBeNil)
			So(gotPolys, ShouldHaveLength, 1)
			So(gotPolys[0].Rings, ShouldResemble, polys[0].Rings)
			So(gotPolys[0].Box, ShouldResemble, polys[0].Box)
			So(gotPoints, ShouldResemble, points)
		})
	})

	Convey("An empty collection is rejected on load", t, func() {
		_, _, err := LoadGeoJSON([]byte(`{"type":"FeatureCollection","features":[]}`))
		So(err, ShouldNotBeNil)
	})

	Convey("Rings without usable coordinates are dropped", t, func() {
		data := []byte(`{"type":"FeatureCollection","features":[
			{"type":"Feature","properties":{},"geometry":{"type":"Polygon","coordinates":[[[0,0],[4,0],[4,4],[0,0]],[[1],[2],[3]]]}},
			{"type":"Feature","properties":{},"geometry":{"type":"Polygon","coordinates":[[[1],[2]]]}}
		]}`)

		polys, _, err := LoadGeoJSON(data)
		So(err, ShouldBeNil)
		So(polys, ShouldHaveLength, 1)
		So(polys[0].Rings, ShouldHaveLength, 1)
		So(polys[0].Parts, ShouldResemble, []int32{0})
	})

	Convey("A collection of empty polygons is rejected on load", t, func() {
		_, _, err := LoadGeoJSON([]byte(`{"type":"FeatureCollection","features":[
			{"type":"Feature","properties":{},"geometry":{"type":"Polygon","coordinates":[[[1],[2]]]}}
		]}`))
		So(err, ShouldNotBeNil)
	})
}
