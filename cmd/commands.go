package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/dargueta/rle7"
	"github.com/dargueta/rle7/utilities/compression"
	"github.com/dargueta/rle7/utilities/frame"
	"github.com/gocarina/gocsv"
	"github.com/hashicorp/go-multierror"
	"github.com/urfave/cli/v2"
)

func requireArgs(context *cli.Context, names ...string) error {
	if context.NArg() != len(names) {
		return fmt.Errorf(
			"%s: expected %d argument(s) %v, got %d",
			context.Command.Name,
			len(names),
			names,
			context.NArg(),
		)
	}
	return nil
}

func compressFile(context *cli.Context) error {
	if err := requireArgs(context, "INPUT_FILE", "OUTPUT_FILE"); err != nil {
		return err
	}
	sourceFilePath := context.Args().Get(0)
	outputFilePath := context.Args().Get(1)

	raw, err := os.ReadFile(sourceFilePath)
	if err != nil {
		return fmt.Errorf("failed to read `%v`: %w", sourceFilePath, err)
	}

	var output []byte
	if context.Bool("bare") {
		// The codec won't take an empty buffer, but an empty file is a
		// perfectly good (empty) stream.
		output = []byte{}
		if len(raw) > 0 {
			output, err = compression.CompressBytes(raw)
		}
	} else {
		output = make([]byte, frame.MaxEncodedSize(len(raw)))
		var n int
		n, err = frame.Encode(output, raw, compression.Codec{})
		output = output[:n]
	}
	if err != nil {
		return fmt.Errorf("failed to compress `%v`: %w", sourceFilePath, err)
	}

	err = os.WriteFile(outputFilePath, output, 0o644)
	if err != nil {
		return fmt.Errorf("failed to write `%v`: %w", outputFilePath, err)
	}

	fmt.Fprintf(
		context.App.Writer,
		"Compressed %d bytes to %d bytes.\n",
		len(raw),
		len(output),
	)
	return nil
}

func decompressFile(context *cli.Context) error {
	if err := requireArgs(context, "INPUT_FILE", "OUTPUT_FILE"); err != nil {
		return err
	}
	sourceFilePath := context.Args().Get(0)
	outputFilePath := context.Args().Get(1)

	var output []byte
	if context.Bool("bare") {
		encoded, err := os.ReadFile(sourceFilePath)
		if err != nil {
			return fmt.Errorf("failed to read `%v`: %w", sourceFilePath, err)
		}
		output, err = decompressBare(encoded, context.Int("max-size"))
		if err != nil {
			return fmt.Errorf("failed to expand `%v`: %w", sourceFilePath, err)
		}
	} else {
		sourceFile, err := os.Open(sourceFilePath)
		if err != nil {
			return fmt.Errorf("failed to open `%v` for reading: %w", sourceFilePath, err)
		}
		defer sourceFile.Close()

		output, err = frame.ReadAll(sourceFile, compression.Codec{})
		if err != nil {
			return fmt.Errorf("failed to expand `%v`: %w", sourceFilePath, err)
		}
	}

	err := os.WriteFile(outputFilePath, output, 0o644)
	if err != nil {
		return fmt.Errorf("failed to write `%v`: %w", outputFilePath, err)
	}

	fmt.Fprintf(context.App.Writer, "Decompressed to %d bytes.\n", len(output))
	return nil
}

func decompressBare(encoded []byte, maxSize int) ([]byte, error) {
	if len(encoded) == 0 {
		return []byte{}, nil
	}
	if maxSize < 0 {
		return nil, rle7.ErrInvalidLength.WithMessage(
			fmt.Sprintf("max size can't be negative, got %d", maxSize))
	}
	if maxSize == 0 {
		// Sizes the output from the tokens instead of the worst case.
		return compression.DecompressBytes(encoded)
	}

	output := make([]byte, maxSize)
	n, err := compression.DecompressInto(encoded, output)
	if err != nil {
		return nil, err
	}
	return output[:n], nil
}

func checkFile(context *cli.Context) error {
	if err := requireArgs(context, "INPUT_FILE"); err != nil {
		return err
	}
	sourceFilePath := context.Args().Get(0)

	raw, err := os.ReadFile(sourceFilePath)
	if err != nil {
		return fmt.Errorf("failed to read `%v`: %w", sourceFilePath, err)
	}

	err = compression.ValidateAll(raw)
	if err == nil {
		fmt.Fprintf(context.App.Writer, "%s: OK, %d bytes\n", sourceFilePath, len(raw))
		return nil
	}

	var merr *multierror.Error
	if !errors.As(err, &merr) {
		return err
	}
	for _, byteErr := range merr.Errors {
		fmt.Fprintf(context.App.Writer, "%s: %s\n", sourceFilePath, byteErr.Error())
	}
	return fmt.Errorf("%s: %d invalid byte(s)", sourceFilePath, len(merr.Errors))
}

type tokenRecord struct {
	Offset int    `csv:"offset"`
	Kind   string `csv:"kind"`
	Count  int    `csv:"count"`
	Value  int    `csv:"value"`
}

func inspectFile(context *cli.Context) error {
	if err := requireArgs(context, "INPUT_FILE"); err != nil {
		return err
	}
	sourceFilePath := context.Args().Get(0)

	data, err := os.ReadFile(sourceFilePath)
	if err != nil {
		return fmt.Errorf("failed to read `%v`: %w", sourceFilePath, err)
	}

	if context.Bool("tokens") {
		return dumpTokens(context, data)
	}

	stats, err := compression.Analyze(data)
	if err != nil {
		return fmt.Errorf("can't encode `%v`: %w", sourceFilePath, err)
	}

	out := context.App.Writer
	fmt.Fprintf(out, "raw size:        %d\n", stats.RawLength)
	fmt.Fprintf(out, "encoded size:    %d\n", stats.EncodedLength)
	fmt.Fprintf(out, "ratio:           %.3f\n", stats.Ratio())
	fmt.Fprintf(out, "run tokens:      %d\n", stats.RunTokens)
	fmt.Fprintf(out, "literal tokens:  %d\n", stats.LiteralTokens)
	fmt.Fprintf(out, "longest run:     %d\n", stats.LongestRun)
	fmt.Fprintf(out, "distinct values: %d\n", stats.DistinctValues())
	return nil
}

func dumpTokens(context *cli.Context, encoded []byte) error {
	tokens, err := compression.Tokenize(encoded)
	if err != nil {
		return err
	}

	records := make([]tokenRecord, 0, len(tokens))
	for _, tok := range tokens {
		kind := "literal"
		if tok.IsRun {
			kind = "run"
		}
		records = append(
			records,
			tokenRecord{
				Offset: tok.Offset,
				Kind:   kind,
				Count:  tok.Count,
				Value:  int(tok.Value),
			},
		)
	}
	return gocsv.Marshal(&records, context.App.Writer)
}
