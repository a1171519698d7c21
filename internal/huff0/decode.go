package huff0

import (
	"fmt"

	"github.com/deepteams/fsentropy/internal/bitio"
)

// Decompress is the mirror of Compress: it reads the tree header,
// rebuilds the decode table, and decodes originalSize bytes from the
// 4-segment body that follows.
func Decompress(dst []byte, src []byte, maxSymbolValue, maxNbBits, originalSize int) (int, error) {
	if len(dst) < originalSize {
		return 0, ErrDstTooSmall
	}

	weights, treeLen, err := ReadTable(src, maxSymbolValue, maxNbBits)
	if err != nil {
		return 0, err
	}

	// A degenerate tree with one coded symbol carries no payload bits
	// per symbol; the body is empty and the output is a run.
	if sym, ok := soleSymbol(weights); ok {
		for i := 0; i < originalSize; i++ {
			dst[i] = sym
		}
		return originalSize, nil
	}

	dt, err := BuildDTable(weights, maxNbBits)
	if err != nil {
		return 0, err
	}

	if err := decodeSegments(dst[:originalSize], src[treeLen:], dt); err != nil {
		return 0, err
	}
	return originalSize, nil
}

// soleSymbol reports whether exactly one weight is non-zero, returning
// that symbol.
func soleSymbol(weights []byte) (byte, bool) {
	sym, n := 0, 0
	for s, w := range weights {
		if w != 0 {
			sym = s
			n++
		}
	}
	return byte(sym), n == 1
}

// decodeSegments reads the 6-byte jump table, then decodes each of the
// 4 segments into its matching slice of dst. Segment boundaries in dst
// mirror splitFour's split of the original source.
func decodeSegments(dst []byte, src []byte, dt *DTable) error {
	if len(src) < 6 {
		return fmt.Errorf("%w: truncated jump table", ErrCorruptedStream)
	}
	var lens [3]int
	for i := 0; i < 3; i++ {
		lens[i] = int(src[i*2]) | int(src[i*2+1])<<8
	}

	segs := splitFourLengths(len(dst))
	off := 6
	for i := 0; i < 4; i++ {
		var body []byte
		if i < 3 {
			if len(src) < off+lens[i] {
				return fmt.Errorf("%w: truncated segment %d", ErrCorruptedStream, i)
			}
			body = src[off : off+lens[i]]
			off += lens[i]
		} else {
			body = src[off:]
		}
		if err := decodeSegment(dst[:segs[i]], body, dt); err != nil {
			return err
		}
		dst = dst[segs[i]:]
	}
	return nil
}

// splitFourLengths mirrors splitFour's length assignment without
// needing the actual source bytes, so the decoder can size each
// segment's destination slice before any bits are read.
func splitFourLengths(n int) [4]int {
	base := n / 4
	extra := n % 4
	var lens [4]int
	for i := 0; i < 4; i++ {
		lens[i] = base
		if i < extra {
			lens[i]++
		}
	}
	return lens
}

// decodeSegment fills dst (already sized to the segment's symbol count)
// by walking body tail-first with a BackwardReader and peeking dt.DTLog
// bits at a time. Fused entries emit two symbols per lookup; when a
// fused entry surfaces with only one output slot left, just the first
// symbol is emitted and only its own code length consumed.
func decodeSegment(dst []byte, body []byte, dt *DTable) error {
	if len(dst) == 0 {
		return nil
	}
	r, numStreams, err := bitio.InitDStream(body)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrCorruptedStream, err)
	}
	if numStreams != 1 {
		return fmt.Errorf("%w: expected 1 interleaved stream, got %d", ErrCorruptedStream, numStreams)
	}

	i := 0
	for i < len(dst) {
		peek := r.PeekBitsPadded(dt.DTLog)
		e := dt.Entries[peek]
		if e.Length == 0 {
			return fmt.Errorf("%w: decode table hole at %d", ErrCorruptedStream, peek)
		}
		if e.Length == 2 && len(dst)-i < 2 {
			if _, err := r.ReadBits(int(dt.SymBits[e.Symbols[0]])); err != nil {
				return fmt.Errorf("%w: %v", ErrCorruptedStream, err)
			}
			dst[i] = e.Symbols[0]
			i++
			continue
		}
		if _, err := r.ReadBits(int(e.NbBits)); err != nil {
			return fmt.Errorf("%w: %v", ErrCorruptedStream, err)
		}
		dst[i] = e.Symbols[0]
		i++
		if e.Length == 2 {
			dst[i] = e.Symbols[1]
			i++
		}
	}

	if r.BitsRemaining() != 0 {
		return fmt.Errorf("%w: %d bits left over after decode", ErrCorruptedStream, r.BitsRemaining())
	}
	return nil
}
