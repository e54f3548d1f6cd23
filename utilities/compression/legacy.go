package compression

import (
	"errors"

	"github.com/dargueta/rle7"
)

// The functions here report failure through integer status codes instead of
// errors, for callers that work with lengths and sentinels.

// SimpleValidate returns true if the first `length` bytes of data are all valid
// payload bytes. A negative length or one longer than data is never valid.
func SimpleValidate(data []byte, length int) bool {
	if length < 0 || length > len(data) {
		return false
	}
	return Validate(data[:length])
}

// SimpleCompress compresses the first `length` bytes of buffer in place.
//
// Returns:
//   - The encoded length (at least 1) on success.
//   - 0 if buffer is nil or `length` isn't in [1, len(buffer)].
//   - -1 if the data contains a byte of 0x80 or higher.
func SimpleCompress(buffer []byte, length int) int {
	if buffer == nil || length <= 0 || length > len(buffer) {
		return 0
	}

	n, err := Compress(buffer[:length])
	if err != nil {
		if errors.Is(err, rle7.ErrInvalidPayload) {
			return -1
		}
		return 0
	}
	return n
}

// SimpleDecompress expands the first `length` bytes of data into the first
// `maxLen` bytes of output. It returns the number of bytes written, or -1 on
// any failure: a nil slice, a `length` not in [1, len(data)], a `maxLen` not
// in [0, len(output)], an overflow, or a truncated stream.
func SimpleDecompress(data []byte, length int, output []byte, maxLen int) int {
	if data == nil || output == nil {
		return -1
	}
	if length <= 0 || length > len(data) {
		return -1
	}
	if maxLen < 0 || maxLen > len(output) {
		return -1
	}

	n, err := DecompressInto(data[:length], output[:maxLen])
	if err != nil {
		return -1
	}
	return n
}
