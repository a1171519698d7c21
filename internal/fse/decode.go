package fse

import (
	"fmt"

	"github.com/deepteams/fsentropy/internal/bitio"
)

// DecompressUsingDTable reverses CompressUsingCTable: it emits symbols in
// source order while the BackwardReader walks the underlying bytes
// tail-first. The encoder processed src back to front, so the last
// transition it wrote was for src[0]; decoding the flushed state therefore
// yields src[0] first, and dst fills front to back.
//
// State ownership mirrors the encoder: dst[i] comes from state1 when i is
// odd, state0 when i is even. Writer.AddBits appends each call's bits
// above the bits already accumulated, so of the encoder's two trailing
// AddBits(state1, ...); AddBits(state0, ...) calls, state0 ends up at the
// highest absolute bit position — the first thing a tail-reading
// BackwardReader returns.
func DecompressUsingDTable[S Symbol](dst []S, src []byte, dt *DTable[S], originalSize int) (int, error) {
	if originalSize == 0 {
		return 0, nil
	}
	if len(dst) < originalSize {
		return 0, fmt.Errorf("%w: dst too small for %d symbols", ErrDstTooSmall, originalSize)
	}

	r, numStreams, err := bitio.InitDStream(src)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrCorruptedStream, err)
	}
	if numStreams != 1 {
		return 0, fmt.Errorf("%w: expected 1 interleaved stream, got %d", ErrCorruptedStream, numStreams)
	}

	state0, err := r.ReadBits(dt.TableLog)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrCorruptedStream, err)
	}
	state1, err := r.ReadBits(dt.TableLog)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrCorruptedStream, err)
	}

	decodeOne := func(state uint32) (S, uint32, error) {
		e := dt.Entries[state]
		bits, err := r.ReadBits(int(e.NbBits))
		if err != nil {
			return e.Symbol, 0, err
		}
		return e.Symbol, uint32(e.NewState) + bits, nil
	}

	for i := 0; i < originalSize; i++ {
		var sym S
		var err error
		if i&1 == 1 {
			sym, state1, err = decodeOne(state1)
		} else {
			sym, state0, err = decodeOne(state0)
		}
		if err != nil {
			return 0, fmt.Errorf("%w: %v", ErrCorruptedStream, err)
		}
		dst[i] = sym
	}

	if r.BitsRemaining() != 0 {
		return 0, fmt.Errorf("%w: %d bits left over after decode", ErrCorruptedStream, r.BitsRemaining())
	}

	return originalSize, nil
}

// DecompressUsingDTableSingle mirrors CompressUsingCTableSingle: a
// single-state decode loop for the short-segment path.
func DecompressUsingDTableSingle[S Symbol](dst []S, src []byte, dt *DTable[S], originalSize int) (int, error) {
	if originalSize == 0 {
		return 0, nil
	}
	if len(dst) < originalSize {
		return 0, fmt.Errorf("%w: dst too small for %d symbols", ErrDstTooSmall, originalSize)
	}

	r, numStreams, err := bitio.InitDStream(src)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrCorruptedStream, err)
	}
	if numStreams != 1 {
		return 0, fmt.Errorf("%w: expected 1 interleaved stream, got %d", ErrCorruptedStream, numStreams)
	}

	state, err := r.ReadBits(dt.TableLog)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrCorruptedStream, err)
	}

	for i := 0; i < originalSize; i++ {
		e := dt.Entries[state]
		bits, err := r.ReadBits(int(e.NbBits))
		if err != nil {
			return 0, fmt.Errorf("%w: %v", ErrCorruptedStream, err)
		}
		dst[i] = e.Symbol
		state = uint32(e.NewState) + bits
	}

	if r.BitsRemaining() != 0 {
		return 0, fmt.Errorf("%w: %d bits left over after decode", ErrCorruptedStream, r.BitsRemaining())
	}

	return originalSize, nil
}
