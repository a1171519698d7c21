package fse

import (
	"fmt"

	"github.com/deepteams/fsentropy/internal/bitio"
)

// HeaderBound returns an upper bound, in bytes, on the encoded header size
// for an alphabet of size maxSymbolValue+1 at the given tableLog.
func HeaderBound(maxSymbolValue, tableLog int) int {
	b := ((maxSymbolValue+1)*tableLog)>>3 + 4
	if b > 512 {
		b = 512
	}
	return b
}

// WriteHeader serializes norm into dst, returning the number of
// bytes written. The first byte carries the 2-bit block mode (always 2,
// "compressed", at this layer) in its low bits and the 4-bit tableLog-5
// field above it; the remainder is the variable-width, run-length-escaped
// count sequence.
func WriteHeader(dst []byte, norm []int16, maxSymbolValue, tableLog int) (int, error) {
	if tableLog < MinTableLog || tableLog > MaxTableLog {
		return 0, fmt.Errorf("%w: tableLog %d out of range", ErrBadArgument, tableLog)
	}
	if len(dst) < 1 {
		return 0, ErrDstTooSmall
	}
	dst[0] = 2 | byte(tableLog-MinTableLog)<<2

	w := bitio.NewWriter(HeaderBound(maxSymbolValue, tableLog))
	threshold := 1 << tableLog
	nbBits := tableLog + 1
	remaining := threshold + 1

	s := 0
	for s <= maxSymbolValue && remaining > 1 {
		n := norm[s]
		count := int32(n) + 1
		max := 2*threshold - 1 - remaining
		if int(count) < max {
			w.AddBits(uint32(count), nbBits-1)
		} else {
			if int(count) >= threshold {
				count += int32(max)
			}
			w.AddBits(uint32(count), nbBits)
		}
		remaining -= absInt(int(n))
		s++
		for remaining < threshold {
			nbBits--
			threshold >>= 1
		}

		if n == 0 {
			n0 := s
			for n0 <= maxSymbolValue && norm[n0] == 0 {
				n0++
			}
			run := n0 - s
			for run >= 3 {
				w.AddBits(0x3, 2)
				run -= 3
			}
			w.AddBits(uint32(run), 2)
			s = n0
		}
	}

	body := w.CloseRaw()
	if len(dst) < 1+len(body) {
		return 0, ErrDstTooSmall
	}
	n := copy(dst[1:], body)
	return 1 + n, nil
}

// ReadHeader is the mirror of WriteHeader: it decodes the mode/tableLog
// byte and the variable-width count sequence back into norm. Fails with
// ErrCorruptedStream if the mode byte isn't 2, tableLog is out of range, or
// the header's internal remaining-budget bookkeeping goes negative.
func ReadHeader(src []byte, maxSymbolValue int) (norm []int16, tableLog int, bytesConsumed int, err error) {
	if len(src) < 1 {
		return nil, 0, 0, fmt.Errorf("%w: empty header", ErrCorruptedStream)
	}
	mode := src[0] & 0x3
	if mode != 2 {
		return nil, 0, 0, fmt.Errorf("%w: unexpected header mode %d", ErrCorruptedStream, mode)
	}
	tableLog = int((src[0]>>2)&0xF) + MinTableLog
	if tableLog > MaxTableLog {
		return nil, 0, 0, fmt.Errorf("%w: tableLog %d exceeds max", ErrCorruptedStream, tableLog)
	}

	r := bitio.NewForwardReader(src[1:])
	norm = make([]int16, maxSymbolValue+1)
	threshold := 1 << tableLog
	nbBits := tableLog + 1
	remaining := threshold + 1
	lowMask := uint32((1 << uint(nbBits-1)) - 1)

	s := 0
	for s <= maxSymbolValue && remaining > 1 {
		max := 2*threshold - 1 - remaining
		full := r.PeekBits(nbBits)
		lowPart := full & lowMask

		var count int32
		if int(lowPart) < max {
			count = int32(lowPart)
			r.ReadBits(nbBits - 1)
		} else {
			if int(full) >= threshold {
				full -= uint32(max)
			}
			count = int32(full)
			r.ReadBits(nbBits)
		}

		n := count - 1
		norm[s] = int16(n)
		remaining -= absInt(int(n))
		if remaining < 0 {
			return nil, 0, 0, fmt.Errorf("%w: header remaining budget went negative", ErrCorruptedStream)
		}
		s++
		for remaining < threshold {
			nbBits--
			threshold >>= 1
			lowMask = uint32((1 << uint(nbBits-1)) - 1)
		}

		if n == 0 {
			n0 := s
			for {
				unit := r.ReadBits(2)
				if unit == 3 {
					n0 += 3
					continue
				}
				n0 += int(unit)
				break
			}
			if n0 > maxSymbolValue+1 {
				return nil, 0, 0, fmt.Errorf("%w: zero-run overruns alphabet", ErrCorruptedStream)
			}
			for ; s < n0; s++ {
				norm[s] = 0
			}
		}
	}

	bytesConsumed = 1 + (r.BitsConsumed()+7)/8
	return norm, tableLog, bytesConsumed, nil
}
