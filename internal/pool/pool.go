// Package pool recycles the scratch buffers the block coders fill with
// candidate compressed output before choosing between the raw, RLE, and
// compressed framings. Buffers are bucketed by the compress-bound of the
// source sizes the codecs actually see, so a recycled buffer comes back
// through the same class it was drawn from.
package pool

import "sync"

// bound mirrors the coders' worst-case output for an n-byte source
// block: the raw fallback plus header and trailer overhead.
func bound(n int) int {
	return n + n>>7 + 512
}

// Class ceilings: the compress-bounds of 4 KiB, 32 KiB, and 128 KiB
// source blocks (128 KiB is the largest block whose 4-segment bodies
// still fit the jump table's 16-bit lengths), plus a small class that
// covers header-only scratch and tiny blocks.
var classSizes = [4]int{
	bound(0),
	bound(4 << 10),
	bound(32 << 10),
	bound(128 << 10),
}

var classes [len(classSizes)]sync.Pool

func init() {
	for i := range classes {
		sz := classSizes[i]
		classes[i] = sync.Pool{
			New: func() any {
				b := make([]byte, sz)
				return &b
			},
		}
	}
}

// classIndex returns the smallest class that holds size, or -1 when the
// request exceeds every class.
func classIndex(size int) int {
	for i, sz := range classSizes {
		if size <= sz {
			return i
		}
	}
	return -1
}

// Get returns a scratch buffer of length size. Requests larger than the
// biggest class are allocated directly; Put will not recycle those.
func Get(size int) []byte {
	idx := classIndex(size)
	if idx < 0 {
		return make([]byte, size)
	}
	bp := classes[idx].Get().(*[]byte)
	return (*bp)[:size]
}

// Put returns a buffer obtained from Get to its class. Directly
// allocated oversize buffers are dropped.
func Put(b []byte) {
	c := cap(b)
	for i, sz := range classSizes {
		if c == sz {
			b = b[:sz]
			classes[i].Put(&b)
			return
		}
	}
}
