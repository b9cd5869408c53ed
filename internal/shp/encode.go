package shp

import (
	"bytes"
	"encoding/binary"
	"math"

	"shpmap/internal/geom"
)

// Builder assembles a shapefile image in memory, one record at a time.
type Builder struct {
	typ     ShapeType
	box     geom.Extent
	records bytes.Buffer
	n       int32
}

// NewBuilder starts a file whose header declares the given shape type.
func NewBuilder(typ ShapeType) *Builder {
	return &Builder{typ: typ, box: geom.EmptyExtent()}
}

func (b *Builder) next() int32 {
	b.n++
	return b.n
}

func (b *Builder) header(contentBytes int, typ ShapeType) {
	binary.Write(&b.records, binary.BigEndian, b.next())
	binary.Write(&b.records, binary.BigEndian, int32(contentBytes/2))
	binary.Write(&b.records, binary.LittleEndian, int32(typ))
}

func (b *Builder) putFloat(f float64) {
	binary.Write(&b.records, binary.LittleEndian, math.Float64bits(f))
}

func (b *Builder) putInt32(i int32) {
	binary.Write(&b.records, binary.LittleEndian, i)
}

// Polygon appends a polygon record made of the given rings, one part each.
func (b *Builder) Polygon(rings ...geom.Ring) *Builder {
	box := geom.EmptyExtent()
	var parts []int32
	var pts []geom.Vertex
	for _, r := range rings {
		parts = append(parts, int32(len(pts)))
		for _, v := range r {
			box = box.Extend(v)
			pts = append(pts, v)
		}
	}
	if len(pts) > 0 {
		b.box = b.box.Extend(geom.Vertex{X: box.MinX, Y: box.MinY}).Extend(geom.Vertex{X: box.MaxX, Y: box.MaxY})
	} else {
		box = geom.Extent{}
	}

	b.header(4+32+8+4*len(parts)+16*len(pts), TypePolygon)
	for _, f := range []float64{box.MinX, box.MinY, box.MaxX, box.MaxY} {
		b.putFloat(f)
	}
	b.putInt32(int32(len(parts)))
	b.putInt32(int32(len(pts)))
	for _, p := range parts {
		b.putInt32(p)
	}
	for _, v := range pts {
		b.putFloat(v.X)
		b.putFloat(v.Y)
	}
	return b
}

// Point appends a point record.
func (b *Builder) Point(v geom.Vertex) *Builder {
	b.box = b.box.Extend(v)
	b.header(4+16, TypePoint)
	b.putFloat(v.X)
	b.putFloat(v.Y)
	return b
}

// Raw appends a record of any shape type with an opaque payload.
func (b *Builder) Raw(typ ShapeType, payload []byte) *Builder {
	b.header(4+len(payload), typ)
	b.records.Write(payload)
	return b
}

// Bytes returns the complete file: header followed by the records.
func (b *Builder) Bytes() []byte {
	var out bytes.Buffer
	total := HeaderSize + b.records.Len()
	binary.Write(&out, binary.BigEndian, int32(fileCode))
	out.Write(make([]byte, 20))
	binary.Write(&out, binary.BigEndian, int32(total/2))
	binary.Write(&out, binary.LittleEndian, int32(1000))
	binary.Write(&out, binary.LittleEndian, int32(b.typ))
	box := b.box
	if box.Empty() {
		box = geom.Extent{}
	}
	for _, f := range []float64{box.MinX, box.MinY, box.MaxX, box.MaxY, 0, 0, 0, 0} {
		binary.Write(&out, binary.LittleEndian, math.Float64bits(f))
	}
	out.Write(b.records.Bytes())
	return out.Bytes()
}
