// Command fsebench compresses a file with fsentropy and reports size,
// timing, and round-trip statistics.
//
// Usage:
//
//	fsebench <input>
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/cespare/xxhash/v2"

	"github.com/deepteams/fsentropy"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "fsebench: %v\n", err)
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Fprintf(os.Stderr, `Usage:
  fsebench [-verify] <input>

Compresses <input> with fsentropy and prints size, mode, and timing
statistics. -verify additionally decompresses the result and checks the
xxhash of the output against the original.
`)
}

func run(args []string) error {
	fs := flag.NewFlagSet("fsebench", flag.ContinueOnError)
	verify := fs.Bool("verify", false, "decompress and verify the round trip")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() < 1 {
		return fmt.Errorf("missing input file\nUsage: fsebench [-verify] <input>")
	}
	inputPath := fs.Arg(0)

	src, err := os.ReadFile(inputPath)
	if err != nil {
		return err
	}

	start := time.Now()
	out, stats, err := fsentropy.CompressStats(nil, src)
	if err != nil {
		return fmt.Errorf("compress: %w", err)
	}
	elapsed := time.Since(start)

	fmt.Printf("File:       %s\n", inputPath)
	fmt.Printf("Input:      %d bytes\n", len(src))
	fmt.Printf("Output:     %d bytes\n", len(out))
	fmt.Printf("Ratio:      %.3f\n", ratio(len(out), len(src)))
	fmt.Printf("Mode:       %s\n", modeName(stats.Mode))
	if stats.Mode != 0 && stats.Mode != 1 {
		fmt.Printf("TableLog:   %d\n", stats.TableLog)
		fmt.Printf("Symbols:    %d\n", stats.SymbolCount)
	}
	fmt.Printf("Encode:     %s\n", elapsed)

	if *verify {
		wantHash := xxhash.Sum64(src)

		start = time.Now()
		got, err := fsentropy.Decompress(nil, out, len(src))
		if err != nil {
			return fmt.Errorf("decompress: %w", err)
		}
		decodeElapsed := time.Since(start)

		gotHash := xxhash.Sum64(got)
		fmt.Printf("Decode:     %s\n", decodeElapsed)
		if gotHash != wantHash {
			return fmt.Errorf("round trip mismatch: xxhash %x != %x", gotHash, wantHash)
		}
		fmt.Printf("Verify:     OK (xxhash %x)\n", gotHash)
	}

	return nil
}

func ratio(outSize, inSize int) float64 {
	if inSize == 0 {
		return 0
	}
	return float64(outSize) / float64(inSize)
}

func modeName(mode int) string {
	switch mode {
	case 0:
		return "raw"
	case 1:
		return "rle"
	case 2:
		return "compressed"
	default:
		return "reserved"
	}
}
