package testing

import (
	"bytes"
	"crypto/rand"
	"testing"

	"github.com/stretchr/testify/require"
)

// CreateRandomPayload returns `size` random bytes, all of which are valid RLE7
// payload bytes. It is guaranteed to either return a valid slice or fail the
// test and abort.
func CreateRandomPayload(size uint, t *testing.T) []byte {
	data := make([]byte, size)

	_, err := rand.Read(data)
	require.NoErrorf(t, err, "failed to initialize %d random bytes", size)

	for i := range data {
		data[i] &= 0x7f
	}
	return data
}

// CreateRunPayload returns random 7-bit data with runs mixed in. Roughly one
// byte in eight starts a run of up to 300 bytes, so runs longer than a single
// marker can hold show up regularly.
func CreateRunPayload(size uint, t *testing.T) []byte {
	noise := CreateRandomPayload(size, t)
	output := make([]byte, 0, size)

	for i := 0; uint(len(output)) < size; i++ {
		value := noise[i%len(noise)]
		if value%8 != 0 {
			output = append(output, value)
			continue
		}

		runLength := (int(noise[(i+1)%len(noise)])*3)%300 + 2
		remaining := int(size) - len(output)
		if runLength > remaining {
			runLength = remaining
		}
		output = append(output, bytes.Repeat([]byte{value}, runLength)...)
	}
	return output
}
