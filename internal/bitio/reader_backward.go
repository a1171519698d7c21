package bitio

import "encoding/binary"

// BackwardReader reads a bitstream end-to-start: the last bits the
// Writer wrote are the first bits it returns. This is what lets an FSE
// or Huff0 decoder, which walks the output in forward (source) order,
// consume a stream an encoder built by walking the source in reverse.
//
// It keeps a 64-bit window loaded from content such that window bit k
// always equals absolute content bit winLo+k — the same byte-order
// convention Writer uses, just read back to front; reading is then an
// ordinary shift-and-mask against that window, refilled from lower
// addresses as it's consumed.
type BackwardReader struct {
	content   []byte
	totalBits int
	pos       int // absolute index of the next (highest) unread bit, or -1 when exhausted

	window  uint64
	winLo   int // absolute bit index of window's bit 0
	winSize int // number of content bytes currently folded into window (0..8)
}

// InitDStream parses the trailer descriptor at the end of data and
// returns a BackwardReader positioned at the last valid bit of the
// bitstream content, along with the interleaved stream count.
func InitDStream(data []byte) (*BackwardReader, int, error) {
	if len(data) < 4 {
		return nil, 0, ErrTruncated
	}
	trailer := binary.LittleEndian.Uint32(data[len(data)-4:])
	bitPosField := int(trailer & 0x7)
	totalLen := int((trailer >> 3) & 0x07FFFFFF)
	numStreams := int((trailer>>30)&0x3) + 1

	if 4+totalLen > len(data) {
		return nil, 0, ErrTruncated
	}
	content := data[len(data)-4-totalLen : len(data)-4]

	totalBits := 0
	if totalLen > 0 {
		validBitsLastByte := 8
		if bitPosField != 0 {
			validBitsLastByte = bitPosField
		}
		totalBits = (totalLen-1)*8 + validBitsLastByte
	}

	r := &BackwardReader{
		content:   content,
		totalBits: totalBits,
		pos:       totalBits - 1,
	}
	if totalBits > 0 {
		r.reload()
	}
	return r, numStreams, nil
}

// reload refills the window so that it covers r.pos, pulling in as much
// preceding content as fits (up to 8 bytes) to minimize future reloads.
func (r *BackwardReader) reload() {
	endByte := (r.pos >> 3) + 1 // exclusive
	loByte := endByte - 8
	if loByte < 0 {
		loByte = 0
	}
	// Pack so content[loByte] lands in the low byte of window and
	// content[endByte-1] in the high byte: window bit k then always
	// equals absolute content bit winLo+k, matching Writer's layout
	// where a byte's own LSB is its lower absolute bit index.
	var window uint64
	for i := endByte - 1; i >= loByte; i-- {
		window = (window << 8) | uint64(r.content[i])
	}
	r.window = window
	r.winLo = loByte * 8
	r.winSize = endByte - loByte
}

// BitsRemaining reports how many unconsumed bits remain.
func (r *BackwardReader) BitsRemaining() int {
	return r.pos + 1
}

// ReadBits consumes the next n bits (0..32) from the tail of the
// stream and returns them right-justified, reconstructing exactly the
// value the corresponding Writer.AddBits call emitted.
func (r *BackwardReader) ReadBits(n int) (uint32, error) {
	if n == 0 {
		return 0, nil
	}
	if n > 32 || r.pos-n+1 < 0 {
		return 0, ErrOverrun
	}
	lo := r.pos - n + 1
	if lo < r.winLo {
		r.reload()
	}
	offset := r.pos - r.winLo // bit index within window, 0..63
	var v uint32
	if offset-n+1 >= 0 {
		v = uint32((r.window >> uint(offset-n+1)) & (uint64(1)<<uint(n) - 1))
	}
	r.pos -= n
	return v, nil
}

// PeekBits returns the next n bits without consuming them (PeekBitsPadded
// builds on it for the Huff0 table lookups).
func (r *BackwardReader) PeekBits(n int) (uint32, error) {
	saved := *r
	v, err := r.ReadBits(n)
	*r = saved
	return v, err
}

// PeekBitsPadded returns the next n bits without consuming them,
// zero-padding any positions that fall before the start of the stream
// instead of erroring. Huffman table lookups peek a fixed dtLog-wide
// window even on the final, shorter-than-dtLog codeword of a segment;
// the true codeword's bits land at the top of the window and the
// zero-padded low bits are don't-care positions within that symbol's
// decode-table block (see internal/huff0's DTable), so padding with
// zero is always safe.
func (r *BackwardReader) PeekBitsPadded(n int) uint32 {
	avail := r.pos + 1
	if avail <= 0 {
		return 0
	}
	if avail >= n {
		v, _ := r.PeekBits(n)
		return v
	}
	v, _ := r.PeekBits(avail)
	return v << uint(n-avail)
}
