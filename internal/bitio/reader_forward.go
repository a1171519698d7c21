package bitio

// ForwardReader reads a bitstream start-to-end, LSB-first within each byte,
// mirroring Writer's forward accumulator. It is used by the normalized-count
// header codec (internal/fse/header.go), which is written and parsed in
// source order rather than the reversed order the FSE/Huff0 body streams
// need.
type ForwardReader struct {
	src  []byte
	pos  int // next byte to load into the accumulator
	bits uint64
	used int // number of valid low bits in the accumulator
}

// NewForwardReader creates a ForwardReader over src, starting at bit 0.
func NewForwardReader(src []byte) *ForwardReader {
	return &ForwardReader{src: src}
}

// fill tops the accumulator up with as many whole bytes from src as fit.
func (r *ForwardReader) fill() {
	for r.used <= 56 && r.pos < len(r.src) {
		r.bits |= uint64(r.src[r.pos]) << uint(r.used)
		r.pos++
		r.used += 8
	}
}

// ReadBits consumes the next n bits (0..32), least-significant-bit first,
// and returns them right-justified. Reading past the end of src yields
// zero bits for the missing positions rather than an error; callers
// validate overall consumed length separately.
func (r *ForwardReader) ReadBits(n int) uint32 {
	if n == 0 {
		return 0
	}
	if r.used < n {
		r.fill()
	}
	mask := uint64(1)<<uint(n) - 1
	v := uint32(r.bits & mask)
	r.bits >>= uint(n)
	if r.used >= n {
		r.used -= n
	} else {
		r.used = 0
	}
	return v
}

// PeekBits returns the next n bits without consuming them.
func (r *ForwardReader) PeekBits(n int) uint32 {
	saved := *r
	v := r.ReadBits(n)
	*r = saved
	return v
}

// BitsConsumed reports the number of bits read so far.
func (r *ForwardReader) BitsConsumed() int {
	return r.pos*8 - r.used
}
