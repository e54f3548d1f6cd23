package compression_test

import (
	"bytes"
	"encoding/hex"
	"io"
	"os"
	"testing"

	"github.com/dargueta/rle7"
	rletesting "github.com/dargueta/rle7/testing"
	c "github.com/dargueta/rle7/utilities/compression"
	"github.com/gocarina/gocsv"
	"github.com/hashicorp/go-multierror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type codecVector struct {
	Name    string `csv:"name"`
	Raw     string `csv:"raw"`
	Repeat  int    `csv:"repeat"`
	Encoded string `csv:"encoded"`
}

func loadCodecVectors(t *testing.T) []codecVector {
	contents, err := os.ReadFile("testdata/vectors.csv")
	require.NoError(t, err, "failed to read test vectors")

	vectors := []codecVector{}
	err = gocsv.UnmarshalBytes(contents, &vectors)
	require.NoError(t, err, "failed to parse test vectors")
	require.NotEmpty(t, vectors, "no test vectors loaded")
	return vectors
}

func decodeVector(t *testing.T, vector codecVector) (raw, encoded []byte) {
	rawUnit, err := hex.DecodeString(vector.Raw)
	require.NoError(t, err, "bad raw hex in vector %q", vector.Name)
	encoded, err = hex.DecodeString(vector.Encoded)
	require.NoError(t, err, "bad encoded hex in vector %q", vector.Name)
	return bytes.Repeat(rawUnit, vector.Repeat), encoded
}

func TestCompress__Vectors(t *testing.T) {
	for _, vector := range loadCodecVectors(t) {
		vector := vector
		t.Run(vector.Name, func(t *testing.T) {
			raw, expected := decodeVector(t, vector)
			buffer := make([]byte, len(raw))
			copy(buffer, raw)

			n, err := c.Compress(buffer)
			require.NoError(t, err)
			assert.Equal(t, expected, buffer[:n])
			assert.LessOrEqual(t, n, len(raw), "encoded data is longer than input")
		})
	}
}

func TestDecompress__Vectors(t *testing.T) {
	for _, vector := range loadCodecVectors(t) {
		vector := vector
		t.Run(vector.Name, func(t *testing.T) {
			expected, encoded := decodeVector(t, vector)
			output := make([]byte, len(expected)+16)

			n, err := c.DecompressInto(encoded, output)
			require.NoError(t, err)
			assert.Equal(t, expected, output[:n])
		})
	}
}

func TestCompress__Scenarios(t *testing.T) {
	t.Run("single byte", func(t *testing.T) {
		data := []byte{65}
		n, err := c.Compress(data)
		require.NoError(t, err)
		assert.Equal(t, 1, n)
		assert.Equal(t, []byte{65}, data[:n])
	})

	t.Run("simple run", func(t *testing.T) {
		data := make([]byte, 10)
		copy(data, []byte{65, 65, 65, 65})
		n, err := c.Compress(data[:4])
		require.NoError(t, err)
		assert.Equal(t, 2, n)
		assert.Equal(t, []byte{0x84, 65}, data[:n])
	})

	t.Run("mixed", func(t *testing.T) {
		data := []byte{65, 65, 65, 66, 67, 67}
		n, err := c.Compress(data)
		require.NoError(t, err)
		assert.Equal(t, 5, n)
		assert.Equal(t, []byte{0x83, 65, 66, 0x82, 67}, data[:n])
	})

	t.Run("long run", func(t *testing.T) {
		data := bytes.Repeat([]byte{88}, 130)
		n, err := c.Compress(data)
		require.NoError(t, err)
		assert.Equal(t, 4, n)
		assert.Equal(t, []byte{0xFF, 88, 0x83, 88}, data[:n])
	})
}

func TestCompress__LeavesTailAlone(t *testing.T) {
	data := []byte{1, 1, 1, 1, 2}
	n, err := c.Compress(data)
	require.NoError(t, err)
	require.Equal(t, 3, n)
	assert.Equal(t, []byte{0x84, 1, 2, 1, 2}, data)
}

func TestCompress__Errors(t *testing.T) {
	_, err := c.Compress(nil)
	assert.ErrorIs(t, err, rle7.ErrInvalidArgument)

	_, err = c.Compress([]byte{})
	assert.ErrorIs(t, err, rle7.ErrInvalidLength)

	data := []byte{0, 1, 128, 100}
	_, err = c.Compress(data)
	assert.ErrorIs(t, err, rle7.ErrInvalidPayload)
	assert.Equal(t, rle7.KindInvalidPayload, rle7.KindOf(err))
	assert.Equal(t, []byte{0, 1, 128, 100}, data, "buffer modified on failure")
}

func TestCompress__InvalidByteAfterRun(t *testing.T) {
	// The invalid byte comes after a run that would otherwise have been
	// rewritten, so make sure nothing was.
	data := []byte{5, 5, 5, 5, 5, 0xC1}
	_, err := c.Compress(data)
	assert.ErrorIs(t, err, rle7.ErrInvalidPayload)
	assert.Equal(t, []byte{5, 5, 5, 5, 5, 0xC1}, data)
}

func TestCompress__RunSplitting(t *testing.T) {
	for k := 1; k <= 127; k++ {
		data := bytes.Repeat([]byte{42}, 127+k)
		n, err := c.Compress(data)
		require.NoError(t, err, "run of %d", 127+k)

		var expected []byte
		if k == 1 {
			expected = []byte{0xFF, 42, 42}
		} else {
			expected = []byte{0xFF, 42, byte(0x80 | k), 42}
		}
		require.Equal(t, expected, data[:n], "run of %d", 127+k)
	}
}

func TestCompress__SingletonsNeverMarked(t *testing.T) {
	data := []byte{1, 2, 1, 2, 3, 3, 4, 5, 4}
	n, err := c.Compress(data)
	require.NoError(t, err)

	tokens, err := c.Tokenize(data[:n])
	require.NoError(t, err)
	for _, tok := range tokens {
		if tok.IsRun {
			assert.GreaterOrEqual(t, tok.Count, 2, "run token at %d too short", tok.Offset)
		}
	}
	assert.Equal(t, []byte{1, 2, 1, 2, 0x82, 3, 4, 5, 4}, data[:n])
}

func TestCompressBytes__DoesNotModifyInput(t *testing.T) {
	original := []byte{9, 9, 9, 1}
	encoded, err := c.CompressBytes(original)
	require.NoError(t, err)
	assert.Equal(t, []byte{0x83, 9, 1}, encoded)
	assert.Equal(t, []byte{9, 9, 9, 1}, original)
	assert.Equal(t, len(encoded), cap(encoded))

	_, err = c.CompressBytes(nil)
	assert.ErrorIs(t, err, rle7.ErrInvalidArgument)
}

func TestDecompressInto__Errors(t *testing.T) {
	output := make([]byte, 10)

	n, err := c.DecompressInto(nil, output)
	assert.ErrorIs(t, err, rle7.ErrInvalidArgument)
	assert.Equal(t, -1, n)

	_, err = c.DecompressInto([]byte{1, 2, 3}, nil)
	assert.ErrorIs(t, err, rle7.ErrInvalidArgument)

	_, err = c.DecompressInto([]byte{}, output)
	assert.ErrorIs(t, err, rle7.ErrInvalidLength)
}

func TestDecompressInto__Overflow(t *testing.T) {
	output := make([]byte, 3)
	n, err := c.DecompressInto([]byte{0x85, 65}, output)
	assert.ErrorIs(t, err, rle7.ErrOutputOverflow)
	assert.Equal(t, -1, n)
	assert.Equal(t, []byte{0, 0, 0}, output, "overflowing token was partially written")
}

func TestDecompressInto__OverflowOnLiteral(t *testing.T) {
	output := make([]byte, 4)
	_, err := c.DecompressInto([]byte{0x84, 65, 66}, output)
	assert.ErrorIs(t, err, rle7.ErrOutputOverflow)
}

func TestDecompressInto__ExactCapacity(t *testing.T) {
	output := make([]byte, 6)
	n, err := c.DecompressInto([]byte{0x83, 65, 66, 0x82, 67}, output)
	require.NoError(t, err)
	assert.Equal(t, 6, n)
	assert.Equal(t, []byte{65, 65, 65, 66, 67, 67}, output)
}

func TestDecompressInto__TruncatedStream(t *testing.T) {
	output := make([]byte, 32)
	_, err := c.DecompressInto([]byte{65, 0x83, 66, 0x84}, output)
	assert.ErrorIs(t, err, rle7.ErrTruncatedStream)

	_, err = c.DecompressInto([]byte{0x81}, output)
	assert.ErrorIs(t, err, rle7.ErrTruncatedStream)
}

func TestDecompressInto__AcceptsRunsOfOne(t *testing.T) {
	output := make([]byte, 8)
	n, err := c.DecompressInto([]byte{0x81, 65, 0x81, 66, 67}, output)
	require.NoError(t, err)
	assert.Equal(t, []byte{65, 66, 67}, output[:n])
}

func TestDecompressInto__RejectsZeroLengthRun(t *testing.T) {
	output := make([]byte, 8)
	n, err := c.DecompressInto([]byte{0x80, 65, 66}, output)
	assert.ErrorIs(t, err, rle7.ErrInvalidPayload)
	assert.Equal(t, -1, n)

	_, err = c.DecodedLen([]byte{66, 0x80, 65})
	assert.ErrorIs(t, err, rle7.ErrInvalidPayload)
}

func TestDecompressInto__RejectsHighValueByte(t *testing.T) {
	output := make([]byte, 8)
	n, err := c.DecompressInto([]byte{0x83, 0xC1}, output)
	assert.ErrorIs(t, err, rle7.ErrInvalidPayload)
	assert.Equal(t, -1, n)
	assert.Contains(t, err.Error(), "offset 1")

	// A value byte that is itself a valid marker still isn't a value.
	_, err = c.DecompressInto([]byte{65, 0x82, 0x82, 66}, output)
	assert.ErrorIs(t, err, rle7.ErrInvalidPayload)
}

func TestDecodedLen(t *testing.T) {
	n, err := c.DecodedLen([]byte{0xFF, 88, 0x83, 88, 1})
	require.NoError(t, err)
	assert.Equal(t, 131, n)

	_, err = c.DecodedLen([]byte{1, 0xFF})
	assert.ErrorIs(t, err, rle7.ErrTruncatedStream)

	_, err = c.DecodedLen(nil)
	assert.ErrorIs(t, err, rle7.ErrInvalidArgument)

	_, err = c.DecodedLen([]byte{})
	assert.ErrorIs(t, err, rle7.ErrInvalidLength)
}

func TestValidate(t *testing.T) {
	assert.True(t, c.Validate([]byte{}))
	assert.True(t, c.Validate([]byte{0, 0x41, 0x7F}))
	assert.False(t, c.Validate([]byte{0, 0x80}))
	assert.False(t, c.Validate([]byte{0xFF}))
}

func TestValidateAll(t *testing.T) {
	assert.NoError(t, c.ValidateAll([]byte{1, 2, 3}))

	err := c.ValidateAll([]byte{1, 0x80, 2, 0xFE, 0x91})
	require.Error(t, err)
	assert.ErrorIs(t, err, rle7.ErrInvalidPayload)

	merr, ok := err.(*multierror.Error)
	require.True(t, ok, "expected a multierror, got %T", err)
	require.Len(t, merr.Errors, 3)
	assert.Contains(t, merr.Errors[0].Error(), "offset 1")
	assert.Contains(t, merr.Errors[1].Error(), "offset 3")
	assert.Contains(t, merr.Errors[2].Error(), "offset 4")
}

////////////////////////////////////////////////////////////////////////////////
// Round trips

func runRoundTripTestCase(t *testing.T, originalData []byte) {
	buffer := make([]byte, len(originalData))
	copy(buffer, originalData)

	n, err := c.Compress(buffer)
	require.NoError(t, err, "unexpected error while compressing")
	require.LessOrEqual(t, n, len(originalData), "compression increased the size")
	t.Logf("compressed %d to %d", len(originalData), n)

	output := make([]byte, len(originalData))
	written, err := c.DecompressInto(buffer[:n], output)
	require.NoError(t, err, "unexpected error while decompressing")
	assert.Equal(t, len(originalData), written, "decompressed size is wrong")
	assert.Equal(t, originalData, output, "decompressed data doesn't match original")
}

func TestRoundTrip__CompletelyRandom(t *testing.T) {
	runRoundTripTestCase(t, rletesting.CreateRandomPayload(1852, t))
}

func TestRoundTrip__WithRuns(t *testing.T) {
	for _, size := range []uint{1, 2, 127, 128, 500, 4096} {
		runRoundTripTestCase(t, rletesting.CreateRunPayload(size, t))
	}
}

func TestRoundTrip__EntirelyNulls(t *testing.T) {
	runRoundTripTestCase(t, make([]byte, 571))
}

func TestRoundTrip__FourBlocks(t *testing.T) {
	original := bytes.Join(
		[][]byte{
			bytes.Repeat([]byte{65}, 50),
			bytes.Repeat([]byte{66}, 50),
			bytes.Repeat([]byte{67}, 50),
			bytes.Repeat([]byte{68}, 50),
		},
		nil,
	)
	runRoundTripTestCase(t, original)

	encoded, err := c.CompressBytes(original)
	require.NoError(t, err)
	assert.Equal(t, []byte{0xB2, 65, 0xB2, 66, 0xB2, 67, 0xB2, 68}, encoded)
}

func TestRoundTrip__EveryValue(t *testing.T) {
	original := make([]byte, 0, 128*3)
	for i := 0; i < 128; i++ {
		original = append(original, bytes.Repeat([]byte{byte(i)}, i%3+1)...)
	}
	runRoundTripTestCase(t, original)
}

func TestDecompressBytes__Fixture(t *testing.T) {
	stream := rletesting.LoadEncodedFixture(t, []byte{0xFF, 0, 0x83, 0, 0x41}, 131)

	decoded := make([]byte, 131)
	n, err := io.ReadFull(stream, decoded)
	require.NoError(t, err)
	require.Equal(t, 131, n)
	assert.Equal(t, bytes.Repeat([]byte{0}, 130), decoded[:130])
	assert.EqualValues(t, 0x41, decoded[130])
}

func TestCodec__ImplementsInterface(t *testing.T) {
	var codec rle7.Codec = c.Codec{}

	data := []byte("hello  world...")
	n, err := codec.Compress(data)
	require.NoError(t, err)

	output := make([]byte, 15)
	written, err := codec.DecompressInto(data[:n], output)
	require.NoError(t, err)
	assert.Equal(t, "hello  world...", string(output[:written]))
}
