package fsentropy

import (
	"fmt"

	"github.com/deepteams/fsentropy/internal/fse"
	"github.com/deepteams/fsentropy/internal/huff0"
	"github.com/deepteams/fsentropy/internal/pool"
)

// CompressHuffman frames src as a single self-describing block like
// Compress, but runs the Huff0 canonical Huffman coder on the
// compressed path instead of FSE. Huffman trades a little ratio on
// skewed distributions for a simpler, faster per-symbol decode; blocks
// produced here must be decoded with DecompressHuffman.
func CompressHuffman(dst []byte, src []byte) ([]byte, error) {
	out, _, err := CompressHuffmanStats(dst, src)
	return out, err
}

// CompressHuffmanStats is CompressHuffman, additionally returning the
// Stats describing the mode chosen. TableLog reports the code-length
// cap on the compressed path.
func CompressHuffmanStats(dst []byte, src []byte) ([]byte, Stats, error) {
	if len(src) == 0 {
		return append(dst, modeRaw), Stats{Mode: modeRaw}, nil
	}

	count, max, err := fse.Count(src, fse.MaxSymbolValue)
	if err != nil {
		return nil, Stats{}, err
	}
	symbolCount := 0
	for _, c := range count {
		if c > 0 {
			symbolCount++
		}
	}

	if max == len(src) {
		buf := append(dst, modeRLE, src[0])
		return buf, Stats{SymbolCount: 1, Mode: modeRLE}, nil
	}

	scratch := pool.Get(CompressBound(len(src)))
	defer pool.Put(scratch)

	n, err := huff0.Compress(scratch, src, huff0.MaxSymbolValue, huff0.DefaultMaxNbBits)
	if err == nil && n > 0 && n < len(src) {
		buf := append(dst, modeCompressed)
		buf = append(buf, scratch[:n]...)
		return buf, Stats{TableLog: huff0.DefaultMaxNbBits, SymbolCount: symbolCount, Mode: modeCompressed}, nil
	}

	buf := append(dst, modeRaw)
	buf = append(buf, src...)
	return buf, Stats{SymbolCount: symbolCount, Mode: modeRaw}, nil
}

// DecompressHuffman parses src's mode byte and reconstructs exactly
// originalSize bytes from a block produced by CompressHuffman. dst is
// grown via append and may be nil.
func DecompressHuffman(dst []byte, src []byte, originalSize int) ([]byte, error) {
	if len(src) < 1 {
		return nil, fmt.Errorf("%w: empty block", ErrSrcSizeWrong)
	}
	mode := src[0] & 0x3

	switch mode {
	case modeRaw:
		if originalSize == 0 {
			return dst, nil
		}
		if len(src) < 1+originalSize {
			return nil, fmt.Errorf("%w: raw block shorter than originalSize", ErrSrcSizeWrong)
		}
		return append(dst, src[1:1+originalSize]...), nil

	case modeRLE:
		if len(src) < 2 {
			return nil, fmt.Errorf("%w: truncated RLE block", ErrSrcSizeWrong)
		}
		sym := src[1]
		start := len(dst)
		dst = append(dst, make([]byte, originalSize)...)
		for i := start; i < len(dst); i++ {
			dst[i] = sym
		}
		return dst, nil

	case modeCompressed:
		start := len(dst)
		dst = append(dst, make([]byte, originalSize)...)
		if _, err := huff0.Decompress(dst[start:], src[1:], huff0.MaxSymbolValue, huff0.DefaultMaxNbBits, originalSize); err != nil {
			return nil, err
		}
		return dst, nil

	default:
		return nil, fmt.Errorf("%w: reserved block mode", ErrCorruptedStream)
	}
}
