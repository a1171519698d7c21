package huff0

import "fmt"

// BuildDTable constructs a decode table directly from a weight array
// (as recovered by ReadTable), without needing the encoder's canonical
// codes: each symbol of weight w claims 2^(w-1) contiguous slots of the
// 2^maxNbBits-entry table, in ascending-weight rank order. That is the
// same block carving assignCanonicalCodes performs on the encode side
// (ascending weight = descending code length, ties by symbol value), so
// a codeword peeked as the top bits of a maxNbBits-wide window lands
// inside its own symbol's block.
//
// A second pass fuses entries: wherever the table index's low bits left
// over after the first symbol's code fully contain a second codeword,
// the entry decodes both symbols in one lookup (Length 2, NbBits the
// sum of both code lengths). This doubles decode throughput on skewed
// distributions, where short codes leave most of the window unused.
func BuildDTable(weights []byte, maxNbBits int) (*DTable, error) {
	if maxNbBits <= 0 || maxNbBits > AbsoluteMaxNbBits {
		return nil, fmt.Errorf("%w: maxNbBits %d out of range", ErrBadArgument, maxNbBits)
	}
	tableSize := 1 << maxNbBits

	var rankStats [AbsoluteMaxNbBits + 2]uint32
	for _, w := range weights {
		if int(w) > maxNbBits {
			return nil, fmt.Errorf("%w: weight %d exceeds maxNbBits", ErrCorruptedStream, w)
		}
		rankStats[w]++
	}

	var nextRankStart uint32
	for w := 1; w <= maxNbBits; w++ {
		current := nextRankStart
		nextRankStart += rankStats[w] << uint(w-1)
		rankStats[w] = current
	}
	if nextRankStart != uint32(tableSize) {
		return nil, fmt.Errorf("%w: weight sum does not cover table (got %d want %d)", ErrCorruptedStream, nextRankStart, tableSize)
	}

	dt := &DTable{
		DTLog:   maxNbBits,
		Entries: make([]DEntry, tableSize),
		SymBits: make([]uint8, len(weights)),
	}
	for sym, w := range weights {
		if w == 0 {
			continue
		}
		length := (uint32(1) << w) >> 1
		nb := uint8(maxNbBits + 1 - int(w))
		dt.SymBits[sym] = nb
		e := DEntry{Symbols: [2]byte{byte(sym), 0}, NbBits: nb, Length: 1}
		start := rankStats[w]
		for u := start; u < start+length; u++ {
			dt.Entries[u] = e
		}
		rankStats[w] += length
	}

	fillLevel2(dt)
	return dt, nil
}

// fillLevel2 upgrades single-symbol entries to fused two-symbol entries
// where the window bits below the first codeword unambiguously contain a
// complete second codeword. The candidate is read from the single-symbol
// table itself: the sub-window's prefix, left-aligned to DTLog bits,
// indexes the entry owning that prefix, and the fuse is valid exactly
// when that entry's code fits inside the known sub-window bits.
func fillLevel2(dt *DTable) {
	base := make([]DEntry, len(dt.Entries))
	copy(base, dt.Entries)

	for i := range dt.Entries {
		e1 := base[i]
		rem := dt.DTLog - int(e1.NbBits)
		if rem <= 0 {
			continue
		}
		sub := uint32(i) & (uint32(1)<<uint(rem) - 1)
		e2 := base[sub<<uint(dt.DTLog-rem)]
		if int(e2.NbBits) > rem {
			continue
		}
		dt.Entries[i] = DEntry{
			Symbols: [2]byte{e1.Symbols[0], e2.Symbols[0]},
			NbBits:  e1.NbBits + e2.NbBits,
			Length:  2,
		}
	}
}
