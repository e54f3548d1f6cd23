// Package compression implements a run-length encoding for 7-bit data, i.e.
// buffers where every byte is in the range [0, 0x7F] such as ASCII text.
//
// Because payload bytes never have the high bit set, the high bit is free to
// mark the start of a run. The encoded stream is a sequence of tokens, each of
// which is one of:
//
//   - A literal: a single byte in [0x00, 0x7F], copied as-is.
//   - A run: a marker byte 0x80|N followed by a value byte V, meaning N copies
//     of V. N is at most 127.
//
// For example:
//
//	AAABCC
//	83 41 42 82 43
//
// A byte that occurs only once is always written as a literal, since a run of
// one takes two bytes. This guarantees the encoded form is never larger than
// the input. Runs longer than 127 are split, so a run of 130 "X" is written as
// `FF 58 83 58`. A run of 128 ends in a single byte, which becomes a literal:
// `FF 58 58`.
//
// There is no header, length prefix or checksum; the stream is framed entirely
// by the byte values, so a reader must already know how long the encoded data
// is. See the frame package for a length-prefixed container.
//
// The decoder accepts anything in the token grammar, including runs of one
// that the encoder never produces. A marker at the very end of the stream with
// no value byte after it is an error, as is a 0x80 marker or a value byte with
// the high bit set.
//
// Nothing in this package allocates except [CompressBytes], [DecompressBytes],
// [Tokenize] and [Analyze]; the rest work in buffers supplied by the caller.
// All functions are safe to call concurrently on disjoint buffers.
package compression
