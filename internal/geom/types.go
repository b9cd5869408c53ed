package geom

import "math"

// Vertex is a world-space coordinate pair.
type Vertex struct {
	X float64
	Y float64
}

// Ring is a closed boundary; the last vertex connects back to the first.
type Ring []Vertex

// Polygon is one decoded polygon record. Rings holds the boundaries that are
// drawn, Parts the raw part-start indices as read from the record, so a
// different ring split can be applied later without re-parsing.
type Polygon struct {
	Box   Extent
	Parts []int32
	Rings []Ring
}

// PolygonSet is every polygon decoded from one source, in file order.
type PolygonSet []Polygon

// PointSet is every standalone point decoded from one source, in file order.
type PointSet []Vertex

// Rings returns the total number of rings in the set.
func (s PolygonSet) Rings() int {
	n := 0
	for _, p := range s {
		n += len(p.Rings)
	}
	return n
}

// Vertices returns the total number of ring vertices in the set.
func (s PolygonSet) Vertices() int {
	n := 0
	for _, p := range s {
		for _, r := range p.Rings {
			n += len(r)
		}
	}
	return n
}

// Extent is an axis-aligned bounding box.
type Extent struct {
	MinX float64
	MinY float64
	MaxX float64
	MaxY float64
}

// EmptyExtent returns the sentinel extent that any vertex widens.
func EmptyExtent() Extent {
	return Extent{
		MinX: math.Inf(1),
		MinY: math.Inf(1),
		MaxX: math.Inf(-1),
		MaxY: math.Inf(-1),
	}
}

// Empty reports whether no vertex has been observed.
func (e Extent) Empty() bool {
	return !(e.MinX <= e.MaxX && e.MinY <= e.MaxY)
}

func (e Extent) Width() float64  { return e.MaxX - e.MinX }
func (e Extent) Height() float64 { return e.MaxY - e.MinY }

// Contains reports whether v lies inside e, boundary included.
func (e Extent) Contains(v Vertex) bool {
	return v.X >= e.MinX && v.X <= e.MaxX && v.Y >= e.MinY && v.Y <= e.MaxY
}

// Extend returns e widened to include v.
func (e Extent) Extend(v Vertex) Extent {
	if v.X < e.MinX {
		e.MinX = v.X
	}
	if v.Y < e.MinY {
		e.MinY = v.Y
	}
	if v.X > e.MaxX {
		e.MaxX = v.X
	}
	if v.Y > e.MaxY {
		e.MaxY = v.Y
	}
	return e
}
