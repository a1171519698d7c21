package fse

// spreadSymbols assigns each of the 1<<tableLog table positions to a
// symbol via a constant-step circular walk. The step is odd and coprime
// with the table size, so the walk visits every slot exactly once and
// a symbol's states end up distributed across the whole range. It
// returns the table-position-to-symbol map and highThreshold, the highest
// slot left to regular symbols (low-probability symbols occupy the slots
// above it); callers needing only the decode side ignore the latter.
func spreadSymbols(norm []int16, maxSymbolValue, tableLog int) ([]uint32, int, error) {
	tableSize := 1 << tableLog
	tableMask := tableSize - 1
	step := (tableSize >> 1) + (tableSize >> 3) + 3

	// The distribution may come from a hostile header; reject anything
	// whose absolute values don't cover the table exactly before
	// touching it, or the walk below could write out of bounds.
	sum := 0
	for s := 0; s <= maxSymbolValue; s++ {
		n := norm[s]
		switch {
		case n == -1:
			sum++
		case n < -1:
			return nil, 0, ErrCorruptedStream
		default:
			sum += int(n)
		}
	}
	if sum != tableSize {
		return nil, 0, ErrCorruptedStream
	}

	tableSymbol := make([]uint32, tableSize)
	highThreshold := tableSize - 1

	for s := 0; s <= maxSymbolValue; s++ {
		if norm[s] == -1 {
			tableSymbol[highThreshold] = uint32(s)
			highThreshold--
		}
	}

	pos := 0
	for s := 0; s <= maxSymbolValue; s++ {
		if norm[s] <= 0 {
			continue
		}
		for n := int16(0); n < norm[s]; n++ {
			tableSymbol[pos] = uint32(s)
			pos = (pos + step) & tableMask
			for pos > highThreshold {
				pos = (pos + step) & tableMask
			}
		}
	}
	if pos != 0 {
		return nil, 0, ErrCorruptedStream
	}
	return tableSymbol, highThreshold, nil
}

// symbolCumulative returns, for each symbol in [0, maxSymbolValue], the
// running start position of that symbol's block within the spread's
// visiting order (low-probability symbols contribute exactly 1).
func symbolCumulative(norm []int16, maxSymbolValue int) []int {
	cumul := make([]int, maxSymbolValue+2)
	for s := 0; s <= maxSymbolValue; s++ {
		n := norm[s]
		c := int(n)
		if n == -1 {
			c = 1
		}
		if c < 0 {
			c = 0
		}
		cumul[s+1] = cumul[s] + c
	}
	return cumul
}

// BuildCTable constructs an FSE encode table from a normalized
// distribution.
func BuildCTable[S Symbol](norm []int16, maxSymbolValue, tableLog int) (*CTable[S], error) {
	tableSize := 1 << tableLog
	tableSymbol, _, err := spreadSymbols(norm, maxSymbolValue, tableLog)
	if err != nil {
		return nil, err
	}

	ct := &CTable[S]{
		TableLog:   tableLog,
		StateTable: make([]uint16, tableSize),
		Symbol:     make([]SymbolTransform, maxSymbolValue+1),
	}

	cumul := symbolCumulative(norm, maxSymbolValue)
	cursor := append([]int(nil), cumul...)
	for i := 0; i < tableSize; i++ {
		sym := tableSymbol[i]
		ct.StateTable[cursor[sym]] = uint16(tableSize + i)
		cursor[sym]++
	}

	for s := 0; s <= maxSymbolValue; s++ {
		n := norm[s]
		if n == 0 {
			continue
		}
		absN := int(n)
		if absN < 0 {
			absN = -absN
		}
		var minBitsOut, maxState int
		if absN == 1 {
			minBitsOut = tableLog
			maxState = (tableSize << 1) - 1
		} else {
			minBitsOut = tableLog - bitsLog2Floor(absN-1) - 1
			maxState = (absN << uint(minBitsOut+1)) - 1
		}
		ct.Symbol[s] = SymbolTransform{
			DeltaFindState: int32(cumul[s] - absN),
			MaxState:       uint16(maxState),
			MinBitsOut:     uint8(minBitsOut),
		}
	}

	return ct, nil
}

// BuildDTable constructs an FSE decode table from a normalized
// distribution.
func BuildDTable[S Symbol](norm []int16, maxSymbolValue, tableLog int) (*DTable[S], error) {
	tableSize := 1 << tableLog
	tableSymbol, _, err := spreadSymbols(norm, maxSymbolValue, tableLog)
	if err != nil {
		return nil, err
	}

	dt := &DTable[S]{TableLog: tableLog, Entries: make([]DEntry[S], tableSize), NoLarge: true}
	nextCounter := make([]int, maxSymbolValue+1)
	for s := 0; s <= maxSymbolValue; s++ {
		n := norm[s]
		if n == 0 {
			continue
		}
		absN := int(n)
		if absN < 0 {
			absN = -absN
		}
		nextCounter[s] = absN
	}

	for i := 0; i < tableSize; i++ {
		sym := tableSymbol[i]
		counter := nextCounter[sym]
		nextCounter[sym] = counter + 1
		nbBits := tableLog - bitsLog2Floor(counter)
		newState := (counter << uint(nbBits)) - tableSize
		if counter >= tableSize/2 {
			dt.NoLarge = false
		}
		dt.Entries[i] = DEntry[S]{
			NewState: uint16(newState),
			Symbol:   S(sym),
			NbBits:   uint8(nbBits),
		}
	}

	return dt, nil
}
