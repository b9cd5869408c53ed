package raster

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"shpmap/internal/emit"
	"shpmap/internal/viewport"
)

func sameRGB(c color.Color, want color.RGBA) bool {
	r, g, b, _ := c.RGBA()
	return uint8(r>>8) == want.R && uint8(g>>8) == want.G && uint8(b>>8) == want.B
}

func testBuffers() []emit.Buffer {
	return []emit.Buffer{
		{
			Layer: "base",
			Mode:  emit.ModeLines,
			Color: color.RGBA{R: 200, G: 200, B: 255, A: 255},
			Vertices: []viewport.Point{
				{X: 10, Y: 50}, {X: 90, Y: 50},
			},
		},
		{
			Layer:    "pois",
			Mode:     emit.ModePoints,
			Color:    color.RGBA{R: 255, A: 255},
			Vertices: []viewport.Point{{X: 20, Y: 20}},
		},
		{Layer: "empty", Mode: emit.ModeLines},
	}
}

func decode(t *testing.T, data []byte) image.Image {
	t.Helper()
	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("png.Decode: %v", err)
	}
	return img
}

func TestEncodePNG(t *testing.T) {
	opts := DefaultOptions()
	opts.LineWidth = 4
	opts.PointRadius = 5

	var buf bytes.Buffer
	if err := EncodePNG(&buf, testBuffers(), 100, 80, opts); err != nil {
		t.Fatalf("EncodePNG: %v", err)
	}
	img := decode(t, buf.Bytes())

	if b := img.Bounds(); b.Dx() != 100 || b.Dy() != 80 {
		t.Fatalf("Expected a 100x80 image, got %dx%d", b.Dx(), b.Dy())
	}
	if !sameRGB(img.At(95, 75), opts.Background) {
		t.Errorf("Expected background at (95,75), got %v", img.At(95, 75))
	}
	if sameRGB(img.At(50, 50), opts.Background) {
		t.Error("Expected the line to cover (50,50)")
	}
	if sameRGB(img.At(20, 20), opts.Background) {
		t.Error("Expected the point to cover (20,20)")
	}
}

func TestWritePNG(t *testing.T) {
	path := filepath.Join(t.TempDir(), "map.png")
	if err := WritePNG(path, testBuffers(), 64, 48, DefaultOptions()); err != nil {
		t.Fatalf("WritePNG: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if b := decode(t, data).Bounds(); b.Dx() != 64 || b.Dy() != 48 {
		t.Errorf("Expected a 64x48 image, got %dx%d", b.Dx(), b.Dy())
	}
}

func TestDrawRejectsEmptyCanvas(t *testing.T) {
	if _, err := Draw(nil, 0, 10, DefaultOptions()); err == nil {
		t.Error("Expected an error for a zero-width canvas")
	}
	var buf bytes.Buffer
	if err := EncodePNG(&buf, nil, 10, -1, DefaultOptions()); err == nil {
		t.Error("Expected an error for a negative height")
	}
}
