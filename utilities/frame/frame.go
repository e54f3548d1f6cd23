// Package frame wraps RLE7 streams in a small length-prefixed container.
//
// An encoded RLE7 stream carries no length information, so anything storing or
// transmitting one has to record its size somewhere. A frame is an 8-byte
// little-endian header followed by the encoded stream:
//
//	offset  size  field
//	0       4     RawLength      size of the data before encoding
//	4       4     EncodedLength  number of encoded bytes following the header
//
// There is no magic number and no version field. Frames can be concatenated;
// [ReadAll] reads them back to back until the end of the input.
//
// Empty input is stored as a header with both lengths set to zero and nothing
// after it.
package frame

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	"github.com/dargueta/rle7"
	"github.com/noxer/bytewriter"
)

// HeaderSize is the size of a frame header, in bytes.
const HeaderSize = 8

// MaxFrameSize is the largest RawLength accepted when reading a frame. It keeps
// a corrupted header from making us allocate an absurd amount of memory.
const MaxFrameSize = 1 << 30

// Header is the on-disk layout of a frame header.
type Header struct {
	RawLength     uint32
	EncodedLength uint32
}

// MaxEncodedSize returns the size of the buffer [Encode] needs for `rawLength`
// bytes of input. The frame actually written may be smaller.
func MaxEncodedSize(rawLength int) int {
	return HeaderSize + rawLength
}

// Encode writes a frame containing the encoding of raw into dst, and returns
// the total number of bytes written including the header. dst must be at least
// [MaxEncodedSize] bytes. raw isn't modified; it's copied into dst and
// compressed there.
func Encode(dst, raw []byte, c rle7.Compressor) (int, error) {
	if dst == nil || raw == nil {
		return 0, rle7.ErrInvalidArgument.WithMessage("dst and raw must not be nil")
	}
	if len(raw) > MaxFrameSize {
		msg := fmt.Sprintf(
			"input is %d bytes, frames can't be more than %d", len(raw), MaxFrameSize)
		return 0, rle7.ErrInvalidLength.WithMessage(msg)
	}
	if len(dst) < MaxEncodedSize(len(raw)) {
		msg := fmt.Sprintf(
			"need %d bytes for a frame of %d input bytes, got %d",
			MaxEncodedSize(len(raw)),
			len(raw),
			len(dst),
		)
		return 0, rle7.ErrOutputOverflow.WithMessage(msg)
	}

	encodedLength := 0
	if len(raw) > 0 {
		body := dst[HeaderSize : HeaderSize+len(raw)]
		copy(body, raw)

		n, err := c.Compress(body)
		if err != nil {
			return 0, err
		}
		encodedLength = n
	}

	header := Header{
		RawLength:     uint32(len(raw)),
		EncodedLength: uint32(encodedLength),
	}
	writer := bytewriter.New(dst[:HeaderSize])
	err := binary.Write(writer, binary.LittleEndian, &header)
	if err != nil {
		return 0, fmt.Errorf("failed to write frame header: %w", err)
	}
	return HeaderSize + encodedLength, nil
}

// Write encodes raw as a single frame and writes it to w. The return value is
// the number of bytes written to w, only valid if no error occurred.
func Write(w io.Writer, raw []byte, c rle7.Compressor) (int64, error) {
	buffer := make([]byte, MaxEncodedSize(len(raw)))
	size, err := Encode(buffer, raw, c)
	if err != nil {
		return 0, err
	}

	n, err := w.Write(buffer[:size])
	if err != nil {
		return int64(n), fmt.Errorf("failed to write frame: %w", err)
	}
	return int64(n), nil
}

// ReadHeader reads a frame header from r. It returns io.EOF if r is already at
// its end, and io.ErrUnexpectedEOF if it ends partway through the header.
func ReadHeader(r io.Reader) (Header, error) {
	var header Header
	err := binary.Read(r, binary.LittleEndian, &header)
	if err != nil {
		return Header{}, err
	}

	if header.RawLength > MaxFrameSize {
		msg := fmt.Sprintf(
			"frame claims %d bytes, limit is %d", header.RawLength, MaxFrameSize)
		return Header{}, rle7.ErrInvalidLength.WithMessage(msg)
	}
	if header.EncodedLength > header.RawLength {
		msg := fmt.Sprintf(
			"encoded length %d is larger than raw length %d",
			header.EncodedLength,
			header.RawLength,
		)
		return Header{}, rle7.ErrInvalidLength.WithMessage(msg)
	}
	if uint64(header.RawLength) > uint64(header.EncodedLength)*rle7.MaxRunLength {
		msg := fmt.Sprintf(
			"raw length %d is more than %d encoded bytes can expand to",
			header.RawLength,
			header.EncodedLength,
		)
		return Header{}, rle7.ErrInvalidLength.WithMessage(msg)
	}
	if (header.RawLength == 0) != (header.EncodedLength == 0) {
		msg := fmt.Sprintf(
			"raw length %d and encoded length %d must both be zero or both non-zero",
			header.RawLength,
			header.EncodedLength,
		)
		return Header{}, rle7.ErrInvalidLength.WithMessage(msg)
	}
	return header, nil
}

// Read reads one frame from r and returns the decoded data. At the end of the
// input it returns io.EOF.
func Read(r io.Reader, d rle7.Decompressor) ([]byte, error) {
	header, err := ReadHeader(r)
	if err != nil {
		return nil, err
	}

	if header.EncodedLength == 0 {
		return []byte{}, nil
	}

	// The body is read before the output is allocated, so a header that lies
	// about its size costs no more than the bytes actually present.
	body := make([]byte, header.EncodedLength)
	_, err = io.ReadFull(r, body)
	if err != nil {
		if errors.Is(err, io.EOF) {
			err = io.ErrUnexpectedEOF
		}
		return nil, fmt.Errorf(
			"failed to read %d-byte frame body: %w", header.EncodedLength, err)
	}

	output := make([]byte, header.RawLength)
	n, err := d.DecompressInto(body, output)
	if err != nil {
		return nil, err
	}
	if n != len(output) {
		msg := fmt.Sprintf("frame header says %d bytes, decoded %d", len(output), n)
		return nil, rle7.ErrInvalidLength.WithMessage(msg)
	}
	return output, nil
}

// ReadAll reads frames from r until the end of the input, and returns their
// decoded contents concatenated together.
func ReadAll(r io.Reader, d rle7.Decompressor) ([]byte, error) {
	var result []byte
	for frameIndex := 0; ; frameIndex++ {
		decoded, err := Read(r, d)
		if err == io.EOF {
			if result == nil {
				result = []byte{}
			}
			return result, nil
		} else if err != nil {
			return result, fmt.Errorf("frame %d: %w", frameIndex, err)
		}
		result = append(result, decoded...)
	}
}
