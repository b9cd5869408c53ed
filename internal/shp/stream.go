package shp

import (
	"encoding/binary"
	"math"
)

// Stream is a little-endian read cursor over a fixed byte buffer.
// A read that would run past the end fails with *TruncatedError and leaves
// the cursor where it was.
type Stream struct {
	buf []byte
	off int
}

func NewStream(buf []byte) *Stream {
	return &Stream{buf: buf}
}

// AtEnd reports whether the cursor has reached the end of the buffer.
func (s *Stream) AtEnd() bool { return s.off >= len(s.buf) }

// Offset returns the cursor position.
func (s *Stream) Offset() int { return s.off }

// Remaining returns the number of unread bytes.
func (s *Stream) Remaining() int {
	if s.off >= len(s.buf) {
		return 0
	}
	return len(s.buf) - s.off
}

func (s *Stream) take(n int) ([]byte, error) {
	if n > s.Remaining() {
		return nil, &TruncatedError{Offset: s.off, Want: n, Available: s.Remaining()}
	}
	b := s.buf[s.off : s.off+n]
	s.off += n
	return b, nil
}

func (s *Stream) ReadInt32() (int32, error) {
	b, err := s.take(4)
	if err != nil {
		return 0, err
	}
	return int32(binary.LittleEndian.Uint32(b)), nil
}

func (s *Stream) ReadFloat64() (float64, error) {
	b, err := s.take(8)
	if err != nil {
		return 0, err
	}
	return math.Float64frombits(binary.LittleEndian.Uint64(b)), nil
}

// Skip advances the cursor by n bytes without interpreting them.
func (s *Stream) Skip(n int) error {
	if n < 0 {
		return &MalformedError{Offset: s.off, Reason: "negative skip"}
	}
	_, err := s.take(n)
	return err
}
