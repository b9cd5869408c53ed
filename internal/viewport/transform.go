// Package viewport maps world coordinates onto a canvas.
//
// The transform runs in a fixed order:
//
//	normalize   n = (v - extent.min) / (extent.max - extent.min)
//	zoom/pan    z = (n - center) * zoom + 0.5
//	clamp       z = clamp(z, 0, 1)            (only when View.Clamp is set)
//	flip/scale  x = zx * width, y = (1 - zy) * height
//
// Geographic Y grows northward while canvas Y grows downward, hence the flip.
package viewport

import (
	"math"

	"shpmap/internal/geom"
)

// Point is a canvas-space coordinate.
type Point struct {
	X float64
	Y float64
}

// View is the zoom, center and clamp setting used for one emission pass.
// Center is in normalized [0,1]×[0,1] space.
type View struct {
	Zoom   float64
	Center Point
	Clamp  bool
}

// DefaultView is zoom 1 centered on the middle of the extent, clamped.
func DefaultView() View {
	return View{Zoom: 1, Center: Point{X: 0.5, Y: 0.5}, Clamp: true}
}

// Project maps v into a width×height canvas. It is a pure function of its
// arguments. An extent axis with no usable span (empty extent or a single
// coordinate) normalizes to 0.5.
func Project(v geom.Vertex, ext geom.Extent, view View, width, height float64) Point {
	nx := normalize(v.X, ext.MinX, ext.MaxX)
	ny := normalize(v.Y, ext.MinY, ext.MaxY)

	zx := (nx-view.Center.X)*view.Zoom + 0.5
	zy := (ny-view.Center.Y)*view.Zoom + 0.5

	if view.Clamp {
		zx = clamp(zx, 0, 1)
		zy = clamp(zy, 0, 1)
	}
	return Point{X: zx * width, Y: (1 - zy) * height}
}

// Unproject inverts the unclamped transform, returning the world coordinate
// under canvas point p. ok is false when the extent is empty, the canvas has
// no area or the zoom is not positive.
func Unproject(p Point, ext geom.Extent, view View, width, height float64) (v geom.Vertex, ok bool) {
	if ext.Empty() || width <= 0 || height <= 0 || view.Zoom <= 0 {
		return geom.Vertex{}, false
	}
	zx := p.X / width
	zy := 1 - p.Y/height
	nx := (zx-0.5)/view.Zoom + view.Center.X
	ny := (zy-0.5)/view.Zoom + view.Center.Y
	return geom.Vertex{
		X: ext.MinX + nx*ext.Width(),
		Y: ext.MinY + ny*ext.Height(),
	}, true
}

func normalize(x, lo, hi float64) float64 {
	span := hi - lo
	if !(span > 0) || math.IsInf(span, 0) {
		return 0.5
	}
	return (x - lo) / span
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
