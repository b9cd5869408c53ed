// Package raster draws emitted buffers into an image and writes it as PNG.
package raster

import (
	"fmt"
	"image/color"
	"io"

	"github.com/gogpu/gg"

	"shpmap/internal/emit"
)

// Options controls how buffers are drawn.
type Options struct {
	Background  color.RGBA
	LineWidth   float64
	PointRadius float64
}

func DefaultOptions() Options {
	return Options{
		Background:  color.RGBA{R: 16, G: 16, B: 24, A: 255},
		LineWidth:   1,
		PointRadius: 2,
	}
}

// Draw renders bufs in order onto a new width×height context. Line buffers
// are stroked as one path per buffer, point buffers filled as small discs.
// The caller owns the returned context and should Close it.
func Draw(bufs []emit.Buffer, width, height int, opts Options) (*gg.Context, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("invalid canvas size %dx%d", width, height)
	}

	dc := gg.NewContext(width, height)
	dc.ClearWithColor(gg.FromColor(opts.Background))
	dc.SetLineWidth(opts.LineWidth)

	for _, b := range bufs {
		if len(b.Vertices) == 0 {
			continue
		}
		dc.SetColor(b.Color)

		switch b.Mode {
		case emit.ModeLines:
			for _, s := range b.Segments() {
				dc.MoveTo(s.A.X, s.A.Y)
				dc.LineTo(s.B.X, s.B.Y)
			}
			if err := dc.Stroke(); err != nil {
				return dc, fmt.Errorf("stroke %s: %w", b.Layer, err)
			}
		case emit.ModePoints:
			for _, v := range b.Vertices {
				dc.DrawPoint(v.X, v.Y, opts.PointRadius)
			}
			if err := dc.Fill(); err != nil {
				return dc, fmt.Errorf("fill %s: %w", b.Layer, err)
			}
		}
	}
	return dc, nil
}

// EncodePNG draws bufs and writes the result to w.
func EncodePNG(w io.Writer, bufs []emit.Buffer, width, height int, opts Options) error {
	dc, err := Draw(bufs, width, height, opts)
	if dc != nil {
		defer dc.Close()
	}
	if err != nil {
		return err
	}
	return dc.EncodePNG(w)
}

// WritePNG draws bufs and saves the result to path.
func WritePNG(path string, bufs []emit.Buffer, width, height int, opts Options) error {
	dc, err := Draw(bufs, width, height, opts)
	if dc != nil {
		defer dc.Close()
	}
	if err != nil {
		return err
	}
	if err := dc.SavePNG(path); err != nil {
		return fmt.Errorf("failed to save %s: %w", path, err)
	}
	return nil
}
