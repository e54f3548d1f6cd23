package testing

import (
	"io"
	"testing"

	"github.com/dargueta/rle7/utilities/compression"
	"github.com/stretchr/testify/require"
	"github.com/xaionaro-go/bytesextra"
)

// LoadEncodedFixture takes an RLE7-encoded buffer and returns a stream to access
// the decoded data.
//
//   - Writes to the stream do not affect `encoded`.
//   - While the stream can be written to, its size is fixed to `expectedSize`.
//     Attempting to write past the end of this buffer will trigger an error.
func LoadEncodedFixture(
	t *testing.T, encoded []byte, expectedSize uint,
) io.ReadWriteSeeker {
	require.Greater(t, len(encoded), 0, "encoded fixture is empty")

	decoded, err := compression.DecompressBytes(encoded)
	require.NoError(t, err)

	require.Equal(
		t,
		expectedSize,
		uint(len(decoded)),
		"decoded fixture is wrong size",
	)
	return bytesextra.NewReadWriteSeeker(decoded)
}
