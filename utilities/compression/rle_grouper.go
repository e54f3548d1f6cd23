package compression

import (
	"io"
)

// ByteRun represents a single run of a particular byte value.
type ByteRun struct {
	// Byte is the byte value for this run.
	Byte byte
	// RunLength gives the number of times the byte occurs in the run (not the
	// number of times it's repeated).
	//
	// A valid run will always have this be 1 or greater. A value less than 1
	// indicates either the end of the data was reached, or an error occurred.
	RunLength int
}

// InvalidRLERun is returned by [RunLengthGrouper.GetNextRun] once the data is
// exhausted.
var InvalidRLERun = ByteRun{Byte: 0, RunLength: 0}

// RunLengthGrouper splits a byte slice into consecutive runs of the same byte,
// none longer than a fixed maximum.
type RunLengthGrouper struct {
	data   []byte
	offset int
	maxRun int
}

// NewRunLengthGrouper creates a grouper over data. Runs longer than maxRun are
// returned as several consecutive runs; a maxRun less than 1 means no limit.
//
// The grouper never reads a byte before the end of the run it last returned,
// so callers may overwrite that part of data while iterating.
func NewRunLengthGrouper(data []byte, maxRun int) *RunLengthGrouper {
	return &RunLengthGrouper{data: data, maxRun: maxRun}
}

// Offset returns the index of the first byte of data that hasn't been grouped
// yet.
func (grouper *RunLengthGrouper) Offset() int {
	return grouper.offset
}

// GetNextRun returns a [ByteRun] for the next byte or run of byte values in the
// data. Once the data is exhausted, it returns [InvalidRLERun] and io.EOF.
func (grouper *RunLengthGrouper) GetNextRun() (ByteRun, error) {
	if grouper.offset >= len(grouper.data) {
		return InvalidRLERun, io.EOF
	}

	firstByte := grouper.data[grouper.offset]
	runLength := 1
	for grouper.offset+runLength < len(grouper.data) {
		if grouper.maxRun > 0 && runLength >= grouper.maxRun {
			break
		}
		if grouper.data[grouper.offset+runLength] != firstByte {
			break
		}
		runLength++
	}

	grouper.offset += runLength
	return ByteRun{Byte: firstByte, RunLength: runLength}, nil
}
