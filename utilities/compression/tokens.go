package compression

import (
	"fmt"
	"io"

	"github.com/dargueta/rle7"
)

// Token is a single element of an encoded stream: either a literal byte or a
// marker/value pair.
type Token struct {
	// Offset is the position of the token's first byte in the encoded stream.
	Offset int
	// IsRun is true if the token is a marker/value pair.
	IsRun bool
	// Count is the number of bytes the token expands to. Literals always have
	// a count of 1; runs can have any count from 1 to [rle7.MaxRunLength].
	Count int
	Value byte
}

// EncodedSize returns the number of bytes the token occupies in the stream.
func (tok Token) EncodedSize() int {
	if tok.IsRun {
		return 2
	}
	return 1
}

// Tokenizer walks an encoded stream one token at a time.
type Tokenizer struct {
	data   []byte
	offset int
}

func NewTokenizer(data []byte) *Tokenizer {
	return &Tokenizer{data: data}
}

// Next returns the next token in the stream. It returns io.EOF once every byte
// has been consumed, and [rle7.ErrTruncatedStream] if the stream ends with a
// marker that has no value byte after it. A 0x80 marker (a run of nothing) and
// a value byte of 0x80 or higher are both [rle7.ErrInvalidPayload].
func (tokenizer *Tokenizer) Next() (Token, error) {
	if tokenizer.offset >= len(tokenizer.data) {
		return Token{}, io.EOF
	}

	start := tokenizer.offset
	current := tokenizer.data[start]
	if !rle7.IsMarker(current) {
		tokenizer.offset++
		return Token{Offset: start, Count: 1, Value: current}, nil
	}

	if start+1 >= len(tokenizer.data) {
		return Token{}, rle7.ErrTruncatedStream.WithMessage(
			fmt.Sprintf(
				"marker %#02x at offset %d has no value byte after it",
				current,
				start,
			),
		)
	}

	count := rle7.RunLengthOf(current)
	if count == 0 {
		return Token{}, rle7.ErrInvalidPayload.WithMessage(
			fmt.Sprintf("marker at offset %d has a run length of 0", start),
		)
	}

	value := tokenizer.data[start+1]
	if value > rle7.MaxLiteral {
		return Token{}, rle7.ErrInvalidPayload.WithMessage(
			fmt.Sprintf(
				"value byte %#02x at offset %d is not in [0, %#02x]",
				value,
				start+1,
				rle7.MaxLiteral,
			),
		)
	}

	tokenizer.offset += 2
	return Token{Offset: start, IsRun: true, Count: count, Value: value}, nil
}

// Tokenize splits an entire encoded stream into tokens.
func Tokenize(data []byte) ([]Token, error) {
	tokens := make([]Token, 0, len(data))
	tokenizer := NewTokenizer(data)
	for {
		tok, err := tokenizer.Next()
		if err == io.EOF {
			return tokens, nil
		} else if err != nil {
			return tokens, err
		}
		tokens = append(tokens, tok)
	}
}
