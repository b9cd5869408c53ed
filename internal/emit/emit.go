// Package emit turns geometry into flat vertex buffers ready to draw.
//
// Polygons become independent line segments: each ring of N vertices emits
// N segments, the last one closing the ring back to its first vertex. Points
// emit one vertex each. Every vertex is projected through the same frame, so
// all buffers from one pass share a coordinate space.
package emit

import (
	"image/color"

	"shpmap/internal/geom"
	"shpmap/internal/viewport"
)

// Mode says how a buffer's vertices are to be read.
type Mode int

const (
	// ModeLines pairs consecutive vertices into segments.
	ModeLines Mode = iota
	// ModePoints draws each vertex on its own.
	ModePoints
)

func (m Mode) String() string {
	switch m {
	case ModeLines:
		return "lines"
	case ModePoints:
		return "points"
	default:
		return "unknown"
	}
}

// Frame is the shared projection for one emission pass.
type Frame struct {
	Extent geom.Extent
	View   viewport.View
	Width  float64
	Height float64
}

func (f Frame) project(v geom.Vertex) viewport.Point {
	return viewport.Project(v, f.Extent, f.View, f.Width, f.Height)
}

// Buffer is a colored batch of canvas-space vertices.
type Buffer struct {
	Layer    string
	Mode     Mode
	Color    color.RGBA
	Vertices []viewport.Point
}

// Segment is one line from A to B.
type Segment struct {
	A, B viewport.Point
}

// Segments pairs up the vertices of a ModeLines buffer. A trailing unpaired
// vertex is ignored, and other modes yield nothing.
func (b Buffer) Segments() []Segment {
	if b.Mode != ModeLines {
		return nil
	}
	segs := make([]Segment, 0, len(b.Vertices)/2)
	for i := 0; i+1 < len(b.Vertices); i += 2 {
		segs = append(segs, Segment{A: b.Vertices[i], B: b.Vertices[i+1]})
	}
	return segs
}

// Lines emits every ring of polys as closed segment pairs. A ring of N
// vertices contributes 2N vertices.
func Lines(f Frame, layer string, c color.RGBA, polys geom.PolygonSet) Buffer {
	b := Buffer{
		Layer:    layer,
		Mode:     ModeLines,
		Color:    c,
		Vertices: make([]viewport.Point, 0, 2*polys.Vertices()),
	}
	for _, p := range polys {
		for _, ring := range p.Rings {
			n := len(ring)
			for i := range ring {
				b.Vertices = append(b.Vertices, f.project(ring[i]), f.project(ring[(i+1)%n]))
			}
		}
	}
	return b
}

// Points emits one vertex per point.
func Points(f Frame, layer string, c color.RGBA, points geom.PointSet) Buffer {
	b := Buffer{
		Layer:    layer,
		Mode:     ModePoints,
		Color:    c,
		Vertices: make([]viewport.Point, 0, len(points)),
	}
	for _, v := range points {
		b.Vertices = append(b.Vertices, f.project(v))
	}
	return b
}
