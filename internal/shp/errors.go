package shp

import (
	"fmt"
)

// TruncatedError indicates a read or skip past the end of the buffer
type TruncatedError struct {
	Offset    int
	Want      int
	Available int
}

func (e *TruncatedError) Error() string {
	return fmt.Sprintf("truncated shapefile: need %d bytes at offset %d, %d available",
		e.Want, e.Offset, e.Available)
}

// MalformedError indicates a record whose declared sizes cannot be valid
type MalformedError struct {
	Offset int
	Record int32
	Reason string
}

func (e *MalformedError) Error() string {
	if e.Record != 0 {
		return fmt.Sprintf("malformed record %d at offset %d: %s", e.Record, e.Offset, e.Reason)
	}
	return fmt.Sprintf("malformed shapefile at offset %d: %s", e.Offset, e.Reason)
}
