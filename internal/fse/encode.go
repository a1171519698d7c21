package fse

import "github.com/deepteams/fsentropy/internal/bitio"

// CompressUsingCTable encodes src back-to-front using ct and returns the
// finished, trailer-terminated bitstream. It uses two interleaved states:
// state0 owns every even source index, state1 every odd one, which halves
// the serial dependency chain a decoder walks. Assignment is by index
// parity alone (not by pairing from the tail), so DecompressUsingDTable
// can alternate states unconditionally without tracking src's length
// parity.
func CompressUsingCTable[S Symbol](src []S, ct *CTable[S]) ([]byte, error) {
	if len(src) == 0 {
		return nil, nil
	}
	tableSize := 1 << ct.TableLog
	w := bitio.NewWriter(len(src)/2 + 16)

	state0 := uint32(tableSize)
	state1 := uint32(tableSize)

	encodeOne := func(state uint32, sym S) uint32 {
		tt := ct.Symbol[int(sym)]
		nbBits := uint32(tt.MinBitsOut)
		if state > uint32(tt.MaxState) {
			nbBits++
		}
		w.AddBits(state, int(nbBits))
		return uint32(ct.StateTable[(state>>nbBits)+uint32(tt.DeltaFindState)])
	}

	for i := len(src) - 1; i >= 0; i-- {
		if i&1 == 1 {
			state1 = encodeOne(state1, src[i])
		} else {
			state0 = encodeOne(state0, src[i])
		}
	}

	w.AddBits(state1, ct.TableLog)
	w.AddBits(state0, ct.TableLog)

	return w.Close(1)
}

// CompressUsingCTableSingle encodes src back-to-front using a single
// state, the simpler form used for short segments where the two-state
// chain's pairing overhead isn't worth it.
func CompressUsingCTableSingle[S Symbol](src []S, ct *CTable[S]) ([]byte, error) {
	if len(src) == 0 {
		return nil, nil
	}
	tableSize := 1 << ct.TableLog
	w := bitio.NewWriter(len(src)/2 + 16)
	state := uint32(tableSize)

	for i := len(src) - 1; i >= 0; i-- {
		tt := ct.Symbol[int(src[i])]
		nbBits := uint32(tt.MinBitsOut)
		if state > uint32(tt.MaxState) {
			nbBits++
		}
		w.AddBits(state, int(nbBits))
		state = uint32(ct.StateTable[(state>>nbBits)+uint32(tt.DeltaFindState)])
	}
	w.AddBits(state, ct.TableLog)

	return w.Close(1)
}
