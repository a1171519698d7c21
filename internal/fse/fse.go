// Package fse implements Finite State Entropy (tANS) table construction,
// header serialization, and the block encode/decode loop.
//
// An FSE table is built from a normalized symbol distribution (internal
// counts that sum to a power of two) and lets the coder replace an
// arithmetic-coding division with a table lookup at every symbol. This
// package supplies the pieces in dependency order: Count builds a raw
// histogram, Normalize rescales it, WriteHeader/ReadHeader serialize the
// normalized form, BuildCTable/BuildDTable turn it into transition tables,
// and CompressUsingCTable/DecompressUsingDTable run the coder itself.
package fse

import (
	"errors"

	"golang.org/x/exp/constraints"
)

const (
	// MinTableLog is the smallest legal tableLog.
	MinTableLog = 5
	// MaxTableLog is the largest legal tableLog.
	MaxTableLog = 15
	// DefaultTableLog is used when a caller asks for tableLog 0 ("auto").
	DefaultTableLog = 12

	// MaxSymbolValue is the alphabet ceiling for the byte codec.
	MaxSymbolValue = 255
	// MaxSymbolValueU16 is the alphabet ceiling for the wide codec.
	MaxSymbolValueU16 = 285
)

var (
	ErrBadArgument     = errors.New("fse: bad argument")
	ErrCorruptedStream = errors.New("fse: corrupted stream")
	ErrDstTooSmall     = errors.New("fse: destination buffer too small")
)

// Symbol is the alphabet element type a table can be built over: bytes for
// the primary codec, 16-bit values for the wide-alphabet variant.
type Symbol interface {
	constraints.Unsigned
}

// SymbolTransform is the per-symbol encode descriptor backing a CTable.
type SymbolTransform struct {
	DeltaFindState int32
	MaxState       uint16
	MinBitsOut     uint8
}

// CTable is a complete FSE encode table built from one normalized
// distribution: StateTable holds the T transition targets (in [T, 2T)),
// Symbol holds the per-symbol transform indexed by symbol value.
type CTable[S Symbol] struct {
	TableLog   int
	StateTable []uint16
	Symbol     []SymbolTransform
}

// DEntry is one decode-table slot.
type DEntry[S Symbol] struct {
	NewState uint16
	Symbol   S
	NbBits   uint8
}

// DTable is a complete FSE decode table.
type DTable[S Symbol] struct {
	TableLog int
	Entries  []DEntry[S]
	// NoLarge is true when every decode counter stays below half the
	// table size, so every entry consumes at least 2 bits; a decoder
	// fast path can then batch reads without per-entry zero checks.
	NoLarge bool
}

// bitsLog2Floor returns floor(log2(n)) for n > 0, and 0 for n <= 1.
func bitsLog2Floor(n int) int {
	log := 0
	for n > 1 {
		log++
		n >>= 1
	}
	return log
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
