// Package shp decodes the point and polygon records of ESRI shapefiles.
//
// Only the main .shp file is read. The 100-byte file header is skipped, then
// records are decoded one at a time until the end of the buffer:
//
//	record header  int32 record number, int32 content length (16-bit words),
//	               int32 shape type
//	polygon (5)    4×float64 bbox, int32 numParts, int32 numPoints,
//	               numParts×int32 part starts, numPoints×(float64 x, float64 y)
//	point (1)      float64 x, float64 y
//	anything else  skipped using the declared content length
//
// Every integer and float is read little-endian.
package shp

import (
	"encoding/binary"
	"fmt"
	"math/bits"
	"os"

	"shpmap/internal/geom"
	"shpmap/internal/logging"
)

// HeaderSize is the fixed size of the shapefile main header.
const HeaderSize = 100

// fileCode is the big-endian magic number at the start of every .shp file.
const fileCode = 9994

// ShapeType is the record discriminant.
type ShapeType int32

const (
	TypeNull    ShapeType = 0
	TypePoint   ShapeType = 1
	TypePolygon ShapeType = 5
)

func (t ShapeType) String() string {
	switch t {
	case TypeNull:
		return "Null"
	case TypePoint:
		return "Point"
	case TypePolygon:
		return "Polygon"
	}
	return fmt.Sprintf("ShapeType(%d)", int32(t))
}

// Options configures decoding.
type Options struct {
	// SplitParts splits each polygon record into one ring per part. When
	// false every point of a record goes into a single ring.
	SplitParts bool
}

// Result holds the geometry decoded from one source.
type Result struct {
	Polygons geom.PolygonSet
	Points   geom.PointSet
	Records  int // records read, including skipped ones
	Skipped  int // records of unsupported shape types
}

// DecodeFile reads a whole .shp file into memory and decodes it.
func DecodeFile(path string, obs geom.Observer, opts Options) (Result, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Result{}, fmt.Errorf("failed to open shapefile: %w", err)
	}
	res, err := DecodeBytes(data, obs, opts)
	if err != nil {
		return res, fmt.Errorf("%s: %w", path, err)
	}
	return res, nil
}

// DecodeBytes decodes a complete shapefile image, header included.
func DecodeBytes(data []byte, obs geom.Observer, opts Options) (Result, error) {
	if len(data) < HeaderSize {
		return Result{}, &TruncatedError{Offset: 0, Want: HeaderSize, Available: len(data)}
	}
	if code := binary.BigEndian.Uint32(data[0:4]); code != fileCode {
		logging.Logger().Warn("unexpected shapefile file code", "code", code)
	}
	s := NewStream(data)
	if err := s.Skip(HeaderSize); err != nil {
		return Result{}, err
	}
	return Decode(s, obs, opts)
}

// Decode reads records from s, which must already be positioned past the
// file header, until the end of the stream. Each vertex of a completed
// record is passed to obs (which may be nil). On error the records decoded
// so far are returned along with it.
func Decode(s *Stream, obs geom.Observer, opts Options) (Result, error) {
	var res Result
	for !s.AtEnd() {
		start := s.Offset()
		num, err := s.ReadInt32()
		if err != nil {
			return res, err
		}
		contentLen, err := s.ReadInt32()
		if err != nil {
			return res, err
		}
		typ, err := s.ReadInt32()
		if err != nil {
			return res, err
		}
		switch ShapeType(typ) {
		case TypePolygon:
			p, err := readPolygon(s, num, opts)
			if err != nil {
				return res, err
			}
			if len(p.Rings) > 0 {
				for _, r := range p.Rings {
					for _, v := range r {
						observe(obs, v)
					}
				}
				res.Polygons = append(res.Polygons, p)
			}
		case TypePoint:
			v, err := readVertex(s)
			if err != nil {
				return res, err
			}
			observe(obs, v)
			res.Points = append(res.Points, v)
		default:
			// content length counts 16-bit words and includes the shape type
			words := contentWords(contentLen, s.Remaining())
			n := int(words)*2 - 4
			if n < 0 {
				return res, &MalformedError{Offset: start, Record: num, Reason: fmt.Sprintf("content length %d too small", words)}
			}
			if err := s.Skip(n); err != nil {
				return res, err
			}
			res.Skipped++
		}
		// supported records end where their payload ends; the declared
		// length is only consulted to step over other shape types
		res.Records++
	}
	return res, nil
}

// contentWords returns the content length of an unsupported record in
// 16-bit words. The value is read little-endian like the rest of the record;
// files written by other tools store it big-endian, so an implausible value
// whose byte-swapped form fits the remaining buffer is taken swapped.
func contentWords(raw int32, remaining int) int32 {
	fits := func(w int32) bool { return w >= 2 && int(w)*2-4 <= remaining }
	if fits(raw) {
		return raw
	}
	if sw := int32(bits.ReverseBytes32(uint32(raw))); fits(sw) {
		return sw
	}
	return raw
}

func observe(obs geom.Observer, v geom.Vertex) {
	if obs != nil {
		obs.Observe(v)
	}
}

func readVertex(s *Stream) (geom.Vertex, error) {
	x, err := s.ReadFloat64()
	if err != nil {
		return geom.Vertex{}, err
	}
	y, err := s.ReadFloat64()
	if err != nil {
		return geom.Vertex{}, err
	}
	return geom.Vertex{X: x, Y: y}, nil
}

func readPolygon(s *Stream, num int32, opts Options) (geom.Polygon, error) {
	var p geom.Polygon
	start := s.Offset()

	var box [4]float64
	for i := range box {
		f, err := s.ReadFloat64()
		if err != nil {
			return p, err
		}
		box[i] = f
	}
	p.Box = geom.Extent{MinX: box[0], MinY: box[1], MaxX: box[2], MaxY: box[3]}

	numParts, err := s.ReadInt32()
	if err != nil {
		return p, err
	}
	numPoints, err := s.ReadInt32()
	if err != nil {
		return p, err
	}
	if numParts < 0 || numPoints < 0 {
		return p, &MalformedError{Offset: start, Record: num,
			Reason: fmt.Sprintf("negative counts: parts=%d points=%d", numParts, numPoints)}
	}
	// reject before allocating for counts the buffer cannot hold
	if need := int(numParts)*4 + int(numPoints)*16; need > s.Remaining() {
		return p, &TruncatedError{Offset: s.Offset(), Want: need, Available: s.Remaining()}
	}

	p.Parts = make([]int32, numParts)
	for i := range p.Parts {
		if p.Parts[i], err = s.ReadInt32(); err != nil {
			return p, err
		}
	}

	pts := make([]geom.Vertex, numPoints)
	for i := range pts {
		if pts[i], err = readVertex(s); err != nil {
			return p, err
		}
	}
	if len(pts) == 0 {
		return p, nil
	}

	if opts.SplitParts {
		p.Rings = SplitRings(pts, p.Parts)
	} else {
		p.Rings = []geom.Ring{pts}
	}
	return p, nil
}

// SplitRings cuts a record's flat point array into rings at the given part
// starts. Part indices that are not strictly increasing from 0 and within
// range fall back to a single ring.
func SplitRings(pts []geom.Vertex, parts []int32) []geom.Ring {
	if len(pts) == 0 {
		return nil
	}
	if !validParts(parts, len(pts)) {
		return []geom.Ring{pts}
	}
	rings := make([]geom.Ring, 0, len(parts))
	for i, start := range parts {
		end := len(pts)
		if i+1 < len(parts) {
			end = int(parts[i+1])
		}
		rings = append(rings, geom.Ring(pts[start:end]))
	}
	return rings
}

func validParts(parts []int32, n int) bool {
	if len(parts) == 0 || parts[0] != 0 {
		return false
	}
	for i := 1; i < len(parts); i++ {
		if parts[i] <= parts[i-1] || int(parts[i]) >= n {
			return false
		}
	}
	return true
}
