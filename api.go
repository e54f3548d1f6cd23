package rle7

// Compressor is the interface for codecs that encode a caller-owned buffer in
// place.
type Compressor interface {
	// Compress encodes the contents of buffer in place and returns the number
	// of bytes at the front of buffer that make up the encoded stream. The
	// encoded stream is never longer than the input. Bytes past the returned
	// length are left as they were and must not be read.
	Compress(buffer []byte) (int, error)
}

// Decompressor is the interface for codecs that expand an encoded stream into
// a caller-owned output buffer.
type Decompressor interface {
	// DecompressInto expands data into output and returns the number of bytes
	// written. The capacity of the output is len(output); a stream that would
	// expand past it fails with [ErrOutputOverflow]. The contents of output
	// are undefined if an error is returned.
	DecompressInto(data, output []byte) (int, error)
}

// Codec is the interface for codecs implementing both directions.
type Codec interface {
	Compressor
	Decompressor
}
