package huff0

import (
	"fmt"

	"github.com/deepteams/fsentropy/internal/fse"
)

// Wire weight-header modes, carried in the header's first byte
// (mirrors the block framing's mode byte convention, scoped here to
// the Huffman tree description rather than the whole block).
const (
	weightModeFSE    = 0 // FSE-compressed weight array follows
	weightModeDirect = 1 // one nibble per weight, no compression
	weightModeRLE    = 2 // single repeated weight, from a short table
	weightModeSingle = 3 // exactly one non-zero-weight symbol
)

// rleLengths is the short table of supported RLE run lengths.
var rleLengths = [14]int{1, 2, 3, 4, 7, 8, 15, 16, 31, 32, 63, 64, 127, 128}

// WriteTable serializes ct's code lengths as a weight array (weight =
// maxNbBits+1-nbBits, 0 for an absent symbol) over the full alphabet
// [0, maxSymbolValue] and writes a self-describing tree header into
// dst.
func WriteTable(dst []byte, ct *CTable, maxSymbolValue int) (int, error) {
	weights := make([]byte, maxSymbolValue+1)
	singleSym := -1
	singleCount := 0
	for s := 0; s <= maxSymbolValue; s++ {
		nb := ct.NbBits[s]
		if nb != 0 {
			weights[s] = byte(ct.MaxNbBits + 1 - int(nb))
			singleSym = s
			singleCount++
		}
	}

	if len(dst) < 1 {
		return 0, ErrDstTooSmall
	}

	if singleCount <= 1 {
		if len(dst) < 2 {
			return 0, ErrDstTooSmall
		}
		dst[0] = weightModeSingle
		dst[1] = byte(singleSym)
		return 2, nil
	}

	allSame := true
	for _, w := range weights {
		if w != weights[0] {
			allSame = false
			break
		}
	}
	if allSame {
		for code, l := range rleLengths {
			if l == len(weights) {
				if len(dst) < 3 {
					return 0, ErrDstTooSmall
				}
				dst[0] = weightModeRLE
				dst[1] = byte(code)
				dst[2] = weights[0]
				return 3, nil
			}
		}
	}

	// Try FSE compression of the weight array first. The compressed
	// size is prefixed as a 2-byte little-endian length so ReadTable
	// knows exactly where the FSE block ends inside a larger buffer
	// (the BackwardReader's trailer must sit at the true end of that
	// block, not wherever the caller's slice happens to stop).
	body := make([]byte, fse.HeaderBound(int(ct.MaxNbBits), fse.DefaultTableLog)+len(weights)+16)
	n, err := fse.CompressBlock[byte](body, weights, int(ct.MaxNbBits), 0)
	if err == nil && n > 0 && n < (len(weights)+1)/2 && n <= 0xFFFF {
		if len(dst) < 3+n {
			return 0, ErrDstTooSmall
		}
		dst[0] = weightModeFSE
		dst[1] = byte(n)
		dst[2] = byte(n >> 8)
		m := copy(dst[3:], body[:n])
		return 3 + m, nil
	}

	// Fall back to 4 bits per weight, uncompressed. Weights above 0xF
	// cannot be nibble-packed; they only arise at maxNbBits 16, which
	// the FSE branch handles and real trees almost never reach.
	for _, w := range weights {
		if w > 0xF {
			return 0, fmt.Errorf("%w: weight %d does not fit direct encoding", ErrBadArgument, w)
		}
	}
	direct := (len(weights) + 1) / 2
	if len(dst) < 1+direct {
		return 0, ErrDstTooSmall
	}
	dst[0] = weightModeDirect
	for i, w := range weights {
		b := i / 2
		if i%2 == 0 {
			dst[1+b] = w << 4
		} else {
			dst[1+b] |= w & 0xF
		}
	}
	return 1 + direct, nil
}

// ReadTable is the mirror of WriteTable: it returns the weight array
// (length maxSymbolValue+1) and the number of header bytes consumed.
// maxNbBits must be the same code-length cap the tree was built with
// (Decompress's caller-supplied parameter): the FSE-compressed branch
// needs it to bound the nested FSE block's own alphabet (weight values
// range over [0, maxNbBits]) exactly the way WriteTable's
// fse.CompressBlock call did — a mismatched bound here desyncs the
// header bit-parser from what was actually written.
func ReadTable(src []byte, maxSymbolValue, maxNbBits int) (weights []byte, consumed int, err error) {
	if len(src) < 1 {
		return nil, 0, fmt.Errorf("%w: empty tree header", ErrCorruptedStream)
	}
	mode := src[0]
	switch mode {
	case weightModeSingle:
		if len(src) < 2 {
			return nil, 0, fmt.Errorf("%w: truncated single-symbol header", ErrCorruptedStream)
		}
		sym := int(src[1])
		if sym > maxSymbolValue {
			return nil, 0, fmt.Errorf("%w: single symbol %d exceeds alphabet", ErrCorruptedStream, sym)
		}
		weights = make([]byte, maxSymbolValue+1)
		weights[sym] = 1
		return weights, 2, nil

	case weightModeRLE:
		if len(src) < 3 {
			return nil, 0, fmt.Errorf("%w: truncated RLE header", ErrCorruptedStream)
		}
		code := int(src[1])
		if code < 0 || code >= len(rleLengths) || rleLengths[code] != maxSymbolValue+1 {
			return nil, 0, fmt.Errorf("%w: bad RLE length code %d", ErrCorruptedStream, code)
		}
		w := src[2]
		weights = make([]byte, maxSymbolValue+1)
		for i := range weights {
			weights[i] = w
		}
		return weights, 3, nil

	case weightModeDirect:
		n := (maxSymbolValue + 2) / 2
		if len(src) < 1+n {
			return nil, 0, fmt.Errorf("%w: truncated direct weight header", ErrCorruptedStream)
		}
		weights = make([]byte, maxSymbolValue+1)
		for i := 0; i <= maxSymbolValue; i++ {
			b := src[1+i/2]
			if i%2 == 0 {
				weights[i] = b >> 4
			} else {
				weights[i] = b & 0xF
			}
		}
		return weights, 1 + n, nil

	case weightModeFSE:
		if len(src) < 3 {
			return nil, 0, fmt.Errorf("%w: truncated FSE weight header", ErrCorruptedStream)
		}
		n := int(src[1]) | int(src[2])<<8
		if len(src) < 3+n {
			return nil, 0, fmt.Errorf("%w: truncated FSE weight block", ErrCorruptedStream)
		}
		weights = make([]byte, maxSymbolValue+1)
		if _, err := fse.DecompressBlock[byte](weights, src[3:3+n], maxNbBits, maxSymbolValue+1); err != nil {
			return nil, 0, fmt.Errorf("%w: %v", ErrCorruptedStream, err)
		}
		return weights, 3 + n, nil

	default:
		return nil, 0, fmt.Errorf("%w: unknown tree header mode %d", ErrCorruptedStream, mode)
	}
}

// NbBitsFromWeights reconstructs per-symbol code lengths from a weight
// array: nbBits = maxNbBits+1-weight for a non-zero weight, 0 otherwise.
func NbBitsFromWeights(weights []byte, maxNbBits int) []uint8 {
	nbBits := make([]uint8, len(weights))
	for s, w := range weights {
		if w != 0 {
			nbBits[s] = uint8(maxNbBits + 1 - int(w))
		}
	}
	return nbBits
}
