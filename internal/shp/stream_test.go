package shp

import (
	"encoding/binary"
	"errors"
	"math"
	"testing"
)

func TestStreamReads(t *testing.T) {
	buf := make([]byte, 16)
	binary.LittleEndian.PutUint32(buf[0:4], uint32(0xFFFFFFFE)) // -2
	binary.LittleEndian.PutUint64(buf[4:12], math.Float64bits(12.5))
	binary.LittleEndian.PutUint32(buf[12:16], 7)

	s := NewStream(buf)
	i, err := s.ReadInt32()
	if err != nil || i != -2 {
		t.Fatalf("ReadInt32() = %d, %v; want -2, nil", i, err)
	}
	f, err := s.ReadFloat64()
	if err != nil || f != 12.5 {
		t.Fatalf("ReadFloat64() = %v, %v; want 12.5, nil", f, err)
	}
	if s.Offset() != 12 || s.Remaining() != 4 {
		t.Errorf("Expected offset 12 / remaining 4, got %d / %d", s.Offset(), s.Remaining())
	}
	if err := s.Skip(4); err != nil {
		t.Fatalf("Skip(4) = %v", err)
	}
	if !s.AtEnd() {
		t.Error("Expected stream to be at end")
	}
}

func TestStreamTruncation(t *testing.T) {
	tests := []struct {
		name string
		op   func(s *Stream) error
	}{
		{"int32", func(s *Stream) error { _, err := s.ReadInt32(); return err }},
		{"float64", func(s *Stream) error { _, err := s.ReadFloat64(); return err }},
		{"skip", func(s *Stream) error { return s.Skip(5) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewStream([]byte{1, 2, 3})
			err := tt.op(s)
			var te *TruncatedError
			if !errors.As(err, &te) {
				t.Fatalf("Expected *TruncatedError, got %v", err)
			}
			if te.Available != 3 {
				t.Errorf("Expected 3 bytes available, got %d", te.Available)
			}
			if s.Offset() != 0 {
				t.Errorf("Failed read moved the cursor to %d", s.Offset())
			}
		})
	}
}

func TestStreamNegativeSkip(t *testing.T) {
	s := NewStream(make([]byte, 8))
	var me *MalformedError
	if err := s.Skip(-1); !errors.As(err, &me) {
		t.Fatalf("Expected *MalformedError, got %v", err)
	}
}

func TestStreamEmpty(t *testing.T) {
	s := NewStream(nil)
	if !s.AtEnd() || s.Remaining() != 0 {
		t.Error("Expected empty stream to be at end")
	}
	if err := s.Skip(0); err != nil {
		t.Errorf("Skip(0) on empty stream = %v", err)
	}
}
