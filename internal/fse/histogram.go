package fse

import "fmt"

// Count builds a histogram of src over the alphabet [0, maxSymbolValue],
// returning the per-symbol counts and the largest single count observed
// (callers use max == len(src) to detect the RLE case). It fails with
// ErrBadArgument if any symbol in src exceeds maxSymbolValue, matching the
// "safe" counting mode; a caller that already trusts its alphabet bound can
// skip the check by sizing maxSymbolValue generously.
func Count[S Symbol](src []S, maxSymbolValue int) (count []uint32, max int, err error) {
	count = make([]uint32, maxSymbolValue+1)
	for _, s := range src {
		v := int(s)
		if v < 0 || v > maxSymbolValue {
			return nil, 0, fmt.Errorf("%w: symbol %d exceeds maxSymbolValue %d", ErrBadArgument, v, maxSymbolValue)
		}
		count[v]++
	}
	for _, c := range count {
		if int(c) > max {
			max = int(c)
		}
	}
	return count, max, nil
}
