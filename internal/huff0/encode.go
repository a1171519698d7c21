package huff0

import (
	"fmt"

	"github.com/deepteams/fsentropy/internal/bitio"
)

// Compress builds a canonical Huffman tree over src (capped to
// maxNbBits-bit codes), serializes it, and encodes src as 4 interleaved
// segments behind a jump table. It returns the number of bytes written
// to dst. A histogram with exactly one distinct symbol is rejected:
// the caller's block framing should choose RLE or raw instead of
// routing a degenerate alphabet through a Huffman tree. An empty src is
// accepted and yields a tree header plus an all-zero jump table.
func Compress(dst []byte, src []byte, maxSymbolValue, maxNbBits int) (int, error) {
	var count [MaxSymbolValue + 1]uint32
	for _, b := range src {
		if int(b) > maxSymbolValue {
			return 0, fmt.Errorf("%w: symbol %d exceeds maxSymbolValue %d", ErrBadArgument, b, maxSymbolValue)
		}
		count[b]++
	}

	ct, err := BuildTree(count[:maxSymbolValue+1], maxSymbolValue, maxNbBits)
	if err != nil {
		return 0, err
	}

	treeLen, err := WriteTable(dst, ct, maxSymbolValue)
	if err != nil {
		return 0, err
	}

	bodyLen, err := encodeSegments(dst[treeLen:], src, ct)
	if err != nil {
		return 0, err
	}
	return treeLen + bodyLen, nil
}

// encodeSegments splits src into 4 near-equal segments and writes the
// 6-byte jump table (three little-endian uint16 segment lengths; the
// fourth is inferred from total output size) followed by each segment's
// independently closed bitstream.
func encodeSegments(dst []byte, src []byte, ct *CTable) (int, error) {
	if len(dst) < 6 {
		return 0, ErrDstTooSmall
	}
	segs := splitFour(src)

	bodies := make([][]byte, 4)
	for i, seg := range segs {
		b, err := encodeSegment(seg, ct)
		if err != nil {
			return 0, err
		}
		bodies[i] = b
	}

	for i := 0; i < 3; i++ {
		if len(bodies[i]) > 0xFFFF {
			return 0, fmt.Errorf("%w: segment %d too long for jump table", ErrDstTooSmall, i)
		}
		dst[i*2] = byte(len(bodies[i]))
		dst[i*2+1] = byte(len(bodies[i]) >> 8)
	}

	off := 6
	for _, b := range bodies {
		if len(dst) < off+len(b) {
			return 0, ErrDstTooSmall
		}
		off += copy(dst[off:], b)
	}
	return off, nil
}

// splitFour divides src into 4 segments of near-equal length (the
// first len(src)%4 segments get one extra byte).
func splitFour(src []byte) [4][]byte {
	n := len(src)
	base := n / 4
	extra := n % 4
	var segs [4][]byte
	pos := 0
	for i := 0; i < 4; i++ {
		l := base
		if i < extra {
			l++
		}
		segs[i] = src[pos : pos+l]
		pos += l
	}
	return segs
}

// encodeSegment writes one segment's bits back-to-front (so a
// BackwardReader walking it tail-first recovers source order) and
// closes it with the shared trailer descriptor for a single
// interleaved stream.
func encodeSegment(seg []byte, ct *CTable) ([]byte, error) {
	if len(seg) == 0 {
		return nil, nil
	}
	w := bitio.NewWriter(len(seg)/2 + 16)
	for i := len(seg) - 1; i >= 0; i-- {
		sym := seg[i]
		w.AddBits(uint32(ct.Codes[sym]), int(ct.NbBits[sym]))
	}
	return w.Close(1)
}
