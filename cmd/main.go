package main

import (
	"log"
	"os"

	"github.com/urfave/cli/v2"
)

func main() {
	err := newApp().Run(os.Args)
	if err != nil {
		log.Fatalf("fatal error: %s", err.Error())
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:  "rle7",
		Usage: "Run-length encode and decode 7-bit files",
		Commands: []*cli.Command{
			{
				Name:      "compress",
				Usage:     "Encode a file",
				Action:    compressFile,
				ArgsUsage: "INPUT_FILE  OUTPUT_FILE",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "bare",
						Usage: "write the encoded stream without a frame header",
					},
				},
			},
			{
				Name:      "decompress",
				Usage:     "Decode a file",
				Action:    decompressFile,
				ArgsUsage: "INPUT_FILE  OUTPUT_FILE",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "bare",
						Usage: "input is an encoded stream without a frame header",
					},
					&cli.IntFlag{
						Name: "max-size",
						Usage: "with --bare, the largest decoded size allowed;" +
							" 0 means no limit",
						EnvVars: []string{"RLE7_MAX_SIZE"},
					},
				},
			},
			{
				Name:      "check",
				Usage:     "Report every byte that can't be encoded",
				Action:    checkFile,
				ArgsUsage: "INPUT_FILE",
			},
			{
				Name:      "inspect",
				Usage:     "Show how a file would be encoded",
				Action:    inspectFile,
				ArgsUsage: "INPUT_FILE",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "tokens",
						Usage: "input is a bare encoded stream; dump its tokens as CSV",
					},
				},
			},
		},
	}
}
