package compression

import (
	"fmt"
	"io"

	"github.com/dargueta/rle7"
	"github.com/hashicorp/go-multierror"
)

// Validate returns true if every byte in data is a valid payload byte, i.e. is
// less than 0x80. An empty slice is trivially valid.
func Validate(data []byte) bool {
	for _, b := range data {
		if b > rle7.MaxLiteral {
			return false
		}
	}
	return true
}

// ValidateAll is like [Validate] but reports every invalid byte instead of just
// whether there is one. It returns nil if the data is valid, or a multierror
// containing one [rle7.ErrInvalidPayload] per invalid byte.
func ValidateAll(data []byte) error {
	var result *multierror.Error
	for i, b := range data {
		if b > rle7.MaxLiteral {
			result = multierror.Append(result, invalidByteError(i, b))
		}
	}
	return result.ErrorOrNil()
}

func invalidByteError(offset int, value byte) rle7.CodecError {
	return rle7.ErrInvalidPayload.WithMessage(
		fmt.Sprintf("byte %#02x at offset %d is not in [0, %#02x]", value, offset, rle7.MaxLiteral),
	)
}

// Compress run-length encodes buffer in place. It returns the number of bytes
// now at the front of buffer that make up the encoded stream, which is never
// more than len(buffer). Bytes past that are not cleared.
//
// The whole buffer is validated before anything is written, so if it contains
// a byte of 0x80 or higher, the error is [rle7.ErrInvalidPayload] and buffer is
// left untouched.
func Compress(buffer []byte) (int, error) {
	if buffer == nil {
		return 0, rle7.ErrInvalidArgument.WithMessage("buffer is nil")
	}
	if len(buffer) == 0 {
		return 0, rle7.ErrInvalidLength.WithMessage("buffer is empty")
	}
	for i, b := range buffer {
		if b > rle7.MaxLiteral {
			return 0, invalidByteError(i, b)
		}
	}

	// Each run of two or more bytes is written as exactly two bytes, and each
	// single byte as one, so the write cursor can never overtake the grouper.
	grouper := NewRunLengthGrouper(buffer, rle7.MaxRunLength)
	writeIndex := 0
	for {
		run, err := grouper.GetNextRun()
		if err == io.EOF {
			return writeIndex, nil
		}

		if run.RunLength == 1 {
			buffer[writeIndex] = run.Byte
			writeIndex++
		} else {
			buffer[writeIndex] = rle7.MarkerFor(run.RunLength)
			buffer[writeIndex+1] = run.Byte
			writeIndex += 2
		}
	}
}

// CompressBytes returns the run-length encoding of data in a new slice. data
// isn't modified.
func CompressBytes(data []byte) ([]byte, error) {
	if data == nil {
		return nil, rle7.ErrInvalidArgument.WithMessage("data is nil")
	}

	buffer := make([]byte, len(data))
	copy(buffer, data)

	n, err := Compress(buffer)
	if err != nil {
		return nil, err
	}
	return buffer[:n:n], nil
}

// DecompressInto expands the encoded stream in data into output, and returns
// the number of bytes written. The capacity of output is len(output).
//
// If a token would expand past the end of output, this fails with
// [rle7.ErrOutputOverflow] without writing any of that token. Either way, the
// contents of output are undefined if an error is returned.
func DecompressInto(data, output []byte) (int, error) {
	if data == nil {
		return -1, rle7.ErrInvalidArgument.WithMessage("data is nil")
	}
	if output == nil {
		return -1, rle7.ErrInvalidArgument.WithMessage("output is nil")
	}
	if len(data) == 0 {
		return -1, rle7.ErrInvalidLength.WithMessage("data is empty")
	}

	tokenizer := NewTokenizer(data)
	totalBytesWritten := 0
	for {
		tok, err := tokenizer.Next()
		if err == io.EOF {
			return totalBytesWritten, nil
		} else if err != nil {
			return -1, err
		}

		if totalBytesWritten+tok.Count > len(output) {
			return -1, rle7.ErrOutputOverflow.WithMessage(
				fmt.Sprintf(
					"token at offset %d needs %d bytes, only %d of %d left",
					tok.Offset,
					tok.Count,
					len(output)-totalBytesWritten,
					len(output),
				),
			)
		}

		target := output[totalBytesWritten : totalBytesWritten+tok.Count]
		for i := range target {
			target[i] = tok.Value
		}
		totalBytesWritten += tok.Count
	}
}

// DecodedLen returns the number of bytes data expands to, without actually
// expanding it.
func DecodedLen(data []byte) (int, error) {
	if data == nil {
		return -1, rle7.ErrInvalidArgument.WithMessage("data is nil")
	}
	if len(data) == 0 {
		return -1, rle7.ErrInvalidLength.WithMessage("data is empty")
	}

	tokenizer := NewTokenizer(data)
	total := 0
	for {
		tok, err := tokenizer.Next()
		if err == io.EOF {
			return total, nil
		} else if err != nil {
			return -1, err
		}
		total += tok.Count
	}
}

// DecompressBytes expands the encoded stream in data and returns the result in
// a new slice of exactly the right size.
func DecompressBytes(data []byte) ([]byte, error) {
	size, err := DecodedLen(data)
	if err != nil {
		return nil, err
	}

	output := make([]byte, size)
	n, err := DecompressInto(data, output)
	if err != nil {
		return nil, err
	}
	return output[:n], nil
}

// Codec implements [rle7.Codec] with the functions in this package.
type Codec struct{}

func (Codec) Compress(buffer []byte) (int, error) {
	return Compress(buffer)
}

func (Codec) DecompressInto(data, output []byte) (int, error) {
	return DecompressInto(data, output)
}
