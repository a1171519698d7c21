package fse

import "fmt"

// rtbTable biases the fixed-point probability rounded down from the 62-bit
// proba computation towards rounding up, for the low-probability range
// where the rounding choice has an outsized effect on compression ratio.
// These are tuned constants, not derived ones; do not "clean up" the magic
// numbers.
var rtbTable = [8]uint32{0, 473195, 504333, 520860, 550000, 700000, 750000, 830000}

// Normalize rescales count (which sums to total) into a distribution whose
// absolute values sum to 1<<tableLog. A tableLog of 0 requests
// auto-selection; a requested tableLog is lowered when the source is too
// small to justify it and raised when the alphabet needs more slots. It
// returns the resolved tableLog and, when the histogram has exactly one
// non-zero symbol, that symbol's value in singleSymbol (callers should take
// the RLE short-circuit rather than building a table in that case; norm is
// left all-zero).
func Normalize(count []uint32, total, tableLog, maxSymbolValue int) (norm []int16, outTableLog int, singleSymbol int, err error) {
	singleSymbol = -1
	if tableLog == 0 {
		tableLog = DefaultTableLog
	}
	if tableLog > MaxTableLog {
		return nil, 0, -1, fmt.Errorf("%w: tableLog %d exceeds max %d", ErrBadArgument, tableLog, MaxTableLog)
	}

	// No more precision than the input justifies, but always enough slots
	// for every symbol of the alphabet to stay representable.
	maxBitsSrc := MinTableLog
	if total > 1 {
		maxBitsSrc = bitsLog2Floor(total-1) - 2
		if maxBitsSrc < MinTableLog {
			maxBitsSrc = MinTableLog
		}
	}
	if tableLog > maxBitsSrc {
		tableLog = maxBitsSrc
	}
	if minBits := bitsLog2Floor(maxSymbolValue) + 1; tableLog < minBits {
		tableLog = minBits
	}
	if tableLog < MinTableLog {
		tableLog = MinTableLog
	}

	norm = make([]int16, maxSymbolValue+1)
	if total > 0 {
		for s, c := range count {
			if int(c) == total {
				return norm, tableLog, s, nil
			}
		}
	}

	tableSize := 1 << tableLog
	remaining := tableSize
	lowThreshold := total >> uint(tableLog)

	step := (uint64(1) << 62) / uint64(total)
	scale := 62 - tableLog
	vStep := uint64(1) << uint(scale-20)

	largest, largestP := 0, int16(-1)
	for s := 0; s <= maxSymbolValue; s++ {
		c := count[s]
		if c == 0 {
			continue
		}
		if int(c) <= lowThreshold {
			norm[s] = -1
			remaining--
			continue
		}

		raw := uint64(c) * step
		proba := int16(raw >> uint(scale))
		if proba < 8 {
			restToBeat := vStep * uint64(rtbTable[proba])
			rest := raw - (uint64(proba) << uint(scale))
			if rest > restToBeat {
				proba++
			}
		}
		norm[s] = proba
		remaining -= int(proba)
		if proba > largestP {
			largestP = proba
			largest = s
		}
	}

	if remaining < 0 && absInt(remaining) >= int(norm[largest])-8 {
		if err := distribNpts(norm, remaining, maxSymbolValue); err != nil {
			return nil, 0, -1, err
		}
	} else {
		norm[largest] += int16(remaining)
	}

	return norm, tableLog, -1, nil
}

// distribNpts handles the case where rounding bias over-allocated the
// budget by more than the largest symbol can absorb cleanly. deficit is
// the signed correction still owed to the sum (negative: more was
// allocated than the table holds). It first debits the (up to) four
// largest positive entries, then falls back to a round-robin decrement
// over every positive entry until the sum is exact. Compression ratio
// degrades on this path; correctness does not.
func distribNpts(norm []int16, deficit int, maxSymbolValue int) error {
	need := -deficit
	if need <= 0 {
		if need < 0 {
			norm[0] -= int16(need) // deficit positive: extremely rare, add back to symbol 0
		}
		return nil
	}

	type cand struct{ sym, val int }
	var top [4]cand
	for i := range top {
		top[i] = cand{-1, -1}
	}
	for s := 0; s <= maxSymbolValue; s++ {
		v := int(norm[s])
		if v <= 0 {
			continue
		}
		for i := range top {
			if v > top[i].val {
				copy(top[i+1:], top[i:3])
				top[i] = cand{s, v}
				break
			}
		}
	}
	for i := range top {
		if need <= 0 || top[i].sym < 0 {
			continue
		}
		take := top[i].val - 1
		if take > need {
			take = need
		}
		if take < 0 {
			take = 0
		}
		norm[top[i].sym] -= int16(take)
		need -= take
	}

	for need > 0 {
		progressed := false
		for s := 0; s <= maxSymbolValue && need > 0; s++ {
			if norm[s] > 1 {
				norm[s]--
				need--
				progressed = true
			}
		}
		if !progressed {
			return ErrCorruptedStream
		}
	}
	return nil
}
