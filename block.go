package fsentropy

import (
	"fmt"

	"github.com/deepteams/fsentropy/internal/fse"
	"github.com/deepteams/fsentropy/internal/pool"
)

// Block mode byte values carried in the low 2 bits of the first output
// byte.
const (
	modeRaw        = 0
	modeRLE        = 1
	modeCompressed = 2
	modeReserved   = 3
)

// CompressBound returns an upper bound, in bytes, on the output of
// Compress for a source of srcSize bytes: the raw fallback plus the
// worst-case header overhead.
func CompressBound(srcSize int) int {
	return srcSize + (srcSize >> 7) + 512
}

// HeaderBound returns an upper bound, in bytes, on the serialized
// normalized-count header for an alphabet of size maxSymbolValue+1 at
// the given tableLog.
func HeaderBound(maxSymbolValue, tableLog int) int {
	return fse.HeaderBound(maxSymbolValue, tableLog)
}

// Stats carries introspection data about a Compress call: the resolved
// tableLog, the chosen block mode, and the number of distinct symbols
// seen.
type Stats struct {
	TableLog    int
	SymbolCount int
	Mode        int
}

// Compress frames src as a single self-describing block: RLE
// when the block is a single repeated symbol, raw when FSE compression
// doesn't beat the raw encoding by at least a byte, compressed
// otherwise. dst is grown via append and may be nil; the returned
// slice is dst's spine with the block appended.
func Compress(dst []byte, src []byte) ([]byte, error) {
	out, _, err := CompressStats(dst, src)
	return out, err
}

// CompressStats is Compress, additionally returning the Stats describing
// the mode and table parameters chosen.
func CompressStats(dst []byte, src []byte) ([]byte, Stats, error) {
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

	n, err := fse.CompressBlock[byte](scratch, src, fse.MaxSymbolValue, 0)
	if err == nil && n > 0 && n < len(src) {
		tableLog := int((scratch[0]>>2)&0xF) + fse.MinTableLog
		buf := append(dst, scratch[:n]...)
		return buf, Stats{TableLog: tableLog, SymbolCount: symbolCount, Mode: modeCompressed}, nil
	}

	buf := append(dst, modeRaw)
	buf = append(buf, src...)
	return buf, Stats{SymbolCount: symbolCount, Mode: modeRaw}, nil
}

// Decompress parses src's mode byte and reconstructs exactly
// originalSize bytes, dispatching to the raw, RLE, or FSE-compressed
// path. dst is grown via append and may be nil.
func Decompress(dst []byte, src []byte, originalSize int) ([]byte, error) {
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
		if _, err := fse.DecompressBlock[byte](dst[start:], src, fse.MaxSymbolValue, originalSize); err != nil {
			return nil, err
		}
		return dst, nil

	default:
		return nil, fmt.Errorf("%w: reserved block mode", ErrCorruptedStream)
	}
}
