package compression

import (
	"io"

	"github.com/boljen/go-bitmap"
	"github.com/dargueta/rle7"
)

// Stats describes how a raw buffer would be encoded.
type Stats struct {
	RawLength     int
	EncodedLength int
	// RunTokens is the number of marker/value pairs in the encoding.
	RunTokens int
	// LiteralTokens is the number of bytes copied verbatim.
	LiteralTokens int
	// LongestRun is the length of the longest run of identical bytes in the
	// raw data, before it's split into tokens of at most [rle7.MaxRunLength].
	LongestRun int
	// Alphabet has bit N set if byte value N occurs in the raw data. It's
	// always 128 bits long.
	Alphabet bitmap.Bitmap
}

// DistinctValues returns the number of distinct byte values in the raw data.
func (s Stats) DistinctValues() int {
	total := 0
	for i := 0; i < s.Alphabet.Len(); i++ {
		if s.Alphabet.Get(i) {
			total++
		}
	}
	return total
}

// Ratio returns the encoded size as a fraction of the raw size. For empty data
// this is 1.
func (s Stats) Ratio() float64 {
	if s.RawLength == 0 {
		return 1.0
	}
	return float64(s.EncodedLength) / float64(s.RawLength)
}

// Analyze computes the [Stats] for compressing raw, without modifying it. raw
// must pass [Validate].
func Analyze(raw []byte) (Stats, error) {
	if raw == nil {
		return Stats{}, rle7.ErrInvalidArgument.WithMessage("data is nil")
	}
	if err := ValidateAll(raw); err != nil {
		return Stats{}, err
	}

	stats := Stats{
		RawLength: len(raw),
		Alphabet:  bitmap.New(rle7.MaxLiteral + 1),
	}

	// Group without a cap first so LongestRun reflects the data, then work
	// out how the run is split up.
	grouper := NewRunLengthGrouper(raw, 0)
	for {
		run, err := grouper.GetNextRun()
		if err == io.EOF {
			break
		}

		stats.Alphabet.Set(int(run.Byte), true)
		if run.RunLength > stats.LongestRun {
			stats.LongestRun = run.RunLength
		}

		fullTokens := run.RunLength / rle7.MaxRunLength
		remainder := run.RunLength % rle7.MaxRunLength
		stats.RunTokens += fullTokens
		if remainder == 1 {
			stats.LiteralTokens++
		} else if remainder > 1 {
			stats.RunTokens++
		}
	}

	stats.EncodedLength = stats.LiteralTokens + 2*stats.RunTokens
	return stats, nil
}
