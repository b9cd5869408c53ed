package config

import (
	"os"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestGet(t *testing.T) {

	Convey("Given an environment with no overrides", t, func() {
		cfg = nil
		os.Clearenv()

		c, err := Get()

		Convey("When the config values are retrieved", func() {

			Convey("There should be no error returned", func() {
				So(err, ShouldBeNil)
			})

			Convey("The values should be set to the expected defaults", func() {
				So(c.BaseDir, ShouldEqual, "basemap_shp")
				So(c.LayerDir, ShouldEqual, "mygeodata")
				So(c.ZoomMin, ShouldEqual, 0.1)
				So(c.ZoomMax, ShouldEqual, 50)
				So(c.Clamp, ShouldBeTrue)
				So(c.SplitParts, ShouldBeFalse)
				So(c.LndareVisible, ShouldBeTrue)
				So(c.CanvasWidth, ShouldEqual, 1024)
				So(c.CanvasHeight, ShouldEqual, 768)
			})

			Convey("Get returns the cached config", func() {
				again, err := Get()
				So(err, ShouldBeNil)
				So(again, ShouldPointTo, c)
			})
		})
	})

	Convey("Given environment overrides", t, func() {
		cfg = nil
		os.Clearenv()
		os.Setenv("SHPMAP_BASE_DIR", "/data/base")
		os.Setenv("SHPMAP_CLAMP", "false")
		os.Setenv("SHPMAP_SPLIT_PARTS", "true")
		os.Setenv("SHPMAP_ZOOM_MAX", "25")
		os.Setenv("SHPMAP_LEGACY_ZOOM", "true")
		defer os.Clearenv()

		c, err := Get()

		So(err, ShouldBeNil)
		So(c.BaseDir, ShouldEqual, "/data/base")
		So(c.Clamp, ShouldBeFalse)
		So(c.SplitParts, ShouldBeTrue)
		lo, hi := c.ZoomRange()
		So(lo, ShouldEqual, 0.1)
		So(hi, ShouldEqual, 10)
	})

	Convey("Given an unparsable value", t, func() {
		cfg = nil
		os.Clearenv()
		os.Setenv("SHPMAP_CANVAS_WIDTH", "wide")
		defer os.Clearenv()

		_, err := Get()
		So(err, ShouldNotBeNil)
	})
}
