package main

import (
	"fmt"
	"os"

	"github.com/dargueta/rle7/utilities/compression"
	"github.com/dargueta/rle7/utilities/frame"
)

func main() {
	if len(os.Args) != 3 {
		fmt.Fprintf(
			os.Stderr,
			"Expand a file of RLE7 frames.\nUsage: %s input-file output-file\n",
			os.Args[0])
		os.Exit(1)
	}

	sourceFilePath := os.Args[1]
	outputFilePath := os.Args[2]

	sourceFile, errSrc := os.Open(sourceFilePath)
	if errSrc != nil {
		fmt.Fprintf(
			os.Stderr, "Failed to open file for reading: `%v`: %s\n", sourceFilePath, errSrc)
		os.Exit(1)
	}
	defer sourceFile.Close()

	expanded, err := frame.ReadAll(sourceFile, compression.Codec{})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error expanding file: %s\n", err)
		os.Exit(2)
	}

	errOut := os.WriteFile(outputFilePath, expanded, 0o644)
	if errOut != nil {
		fmt.Fprintf(
			os.Stderr, "Failed to write file: `%v`: %s\n", outputFilePath, errOut)
		os.Exit(1)
	}

	fmt.Printf("Expanded input file to %d bytes.\n", len(expanded))
}
