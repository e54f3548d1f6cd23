package rle7

// MarkerFlag is set on every run marker. Literal bytes never have it set.
const MarkerFlag = 0x80

// CountMask extracts the run length from a marker byte.
const CountMask = 0x7F

// MaxRunLength is the longest run a single marker can describe. Longer runs are
// split into several consecutive run tokens.
const MaxRunLength = CountMask

// MaxLiteral is the largest byte value accepted as payload.
const MaxLiteral = 0x7F

// IsMarker returns true if b is a run marker, false if it's a literal.
func IsMarker(b byte) bool {
	return b&MarkerFlag != 0
}

// MarkerFor returns the marker byte for a run of `count` bytes. `count` must be
// in the range [1, MaxRunLength].
func MarkerFor(count int) byte {
	return byte(MarkerFlag | (count & CountMask))
}

// RunLengthOf returns the number of bytes a marker expands to.
func RunLengthOf(marker byte) int {
	return int(marker & CountMask)
}
