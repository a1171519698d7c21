// Package huff0 implements a canonical, length-limited Huffman coder
// layered on the same bit I/O and weight-based header machinery FSE
// uses (internal/bitio, internal/fse). It builds an encode table
// (CTable) and a dual-symbol decode table (DTable) from a symbol
// histogram, serializes the tree as a compact weight array, and runs a
// 4-segment interleaved coder over a block.
package huff0

import "errors"

const (
	// DefaultMaxNbBits is the default code-length cap.
	DefaultMaxNbBits = 12
	// AbsoluteMaxNbBits is the hard ceiling on code length.
	AbsoluteMaxNbBits = 16
	// MaxSymbolValue is the alphabet ceiling for the byte codec.
	MaxSymbolValue = 255
)

var (
	// ErrBadArgument reports a maxNbBits or maxSymbolValue outside its
	// legal bounds.
	ErrBadArgument = errors.New("huff0: bad argument")
	// ErrCorruptedStream reports a decode-path invariant violation.
	ErrCorruptedStream = errors.New("huff0: corrupted stream")
	// ErrDstTooSmall reports an output buffer too small for the result.
	ErrDstTooSmall = errors.New("huff0: destination buffer too small")
)

// CTable is a complete Huffman encode table: NbBits[s] is the code
// length for symbol s, Codes[s] is that code in its natural (MSB-first)
// canonical orientation. A bitio.Writer appends a code's bits so that a
// decoder peeking a MaxNbBits-wide window off a BackwardReader sees the
// codeword as the top bits of the window, which is exactly how DTable
// is indexed.
type CTable struct {
	MaxNbBits int
	NbBits    []uint8
	Codes     []uint16
}

// DEntry is one decode-table slot. Length is 1 for an ordinary entry
// (Symbols[0] valid, NbBits its code length) or 2 for a fused entry
// that decodes two symbols in a single lookup (NbBits the sum of both
// code lengths).
type DEntry struct {
	Symbols [2]byte
	NbBits  uint8
	Length  uint8
}

// DTable is a complete Huffman decode table, indexed by the next DTLog
// bits of the remaining bitstream (the highest unread bits, as a
// BackwardReader peeks them). SymBits records each symbol's plain
// code length so the decoder can emit just the first symbol of a fused
// entry when a segment has exactly one symbol left.
type DTable struct {
	DTLog   int
	Entries []DEntry
	SymBits []uint8
}
