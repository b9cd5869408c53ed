package main

import (
	"bytes"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	geojson "github.com/paulmach/go.geojson"

	"shpmap/internal/config"
	"shpmap/internal/geom"
	"shpmap/internal/scene"
)

func batchScene() *scene.Scene {
	s := scene.New()
	ring := geom.Ring{{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 10, Y: 10}}
	s.Base = geom.PolygonSet{{Parts: []int32{0}, Rings: []geom.Ring{ring}}}
	for _, v := range ring {
		s.Extent.Observe(v)
	}
	return s
}

func TestRunBatch(t *testing.T) {
	cfg := &config.Config{CanvasWidth: 64, CanvasHeight: 48}
	dir := t.TempDir()

	t.Run("png to stdout", func(t *testing.T) {
		var out bytes.Buffer
		if err := runBatch(&out, batchScene(), cfg, "-", "", false); err != nil {
			t.Fatalf("runBatch() error = %v", err)
		}
		img, err := png.Decode(&out)
		if err != nil {
			t.Fatalf("Expected a PNG on stdout: %v", err)
		}
		if b := img.Bounds(); b.Dx() != 64 || b.Dy() != 48 {
			t.Errorf("Expected a 64x48 image, got %v", b)
		}
	})

	t.Run("png file and geojson to stdout", func(t *testing.T) {
		var out bytes.Buffer
		path := filepath.Join(dir, "map.png")
		if err := runBatch(&out, batchScene(), cfg, path, "-", false); err != nil {
			t.Fatalf("runBatch() error = %v", err)
		}
		if _, err := os.Stat(path); err != nil {
			t.Errorf("Expected %s to be written: %v", path, err)
		}
		fc, err := geojson.UnmarshalFeatureCollection(out.Bytes())
		if err != nil {
			t.Fatalf("Expected GeoJSON on stdout: %v", err)
		}
		if len(fc.Features) != 1 {
			t.Errorf("Expected 1 feature, got %d", len(fc.Features))
		}
	})

	t.Run("both to stdout", func(t *testing.T) {
		var out bytes.Buffer
		if err := runBatch(&out, batchScene(), cfg, "-", "-", false); err == nil {
			t.Error("Expected an error when both outputs use stdout")
		}
		if out.Len() != 0 {
			t.Errorf("Expected nothing written, got %d bytes", out.Len())
		}
	})
}
