package huff0

import (
	"container/heap"
	"fmt"

	"golang.org/x/exp/slices"
)

// treeNode is a leaf or internal node used while building the
// length-limited Huffman tree. value >= 0 identifies a leaf's symbol;
// -1 marks an internal node.
type treeNode struct {
	count uint32
	value int
	left  int
	right int
}

type nodeHeap struct {
	pool    []treeNode
	indices []int
}

func (h *nodeHeap) Len() int { return len(h.indices) }
func (h *nodeHeap) Less(i, j int) bool {
	a, b := h.pool[h.indices[i]], h.pool[h.indices[j]]
	if a.count != b.count {
		return a.count < b.count
	}
	return h.indices[i] < h.indices[j]
}
func (h *nodeHeap) Swap(i, j int)      { h.indices[i], h.indices[j] = h.indices[j], h.indices[i] }
func (h *nodeHeap) Push(x interface{}) { h.indices = append(h.indices, x.(int)) }
func (h *nodeHeap) Pop() interface{} {
	old := h.indices
	n := len(old)
	v := old[n-1]
	h.indices = old[:n-1]
	return v
}

// BuildTree constructs a canonical, length-limited Huffman CTable from
// count (indexed by symbol, length maxSymbolValue+1). Code lengths never
// exceed maxNbBits: if the unconstrained tree would need more, the tree
// is rebuilt with an increasing floor on leaf weight until it fits.
func BuildTree(count []uint32, maxSymbolValue, maxNbBits int) (*CTable, error) {
	if maxNbBits <= 0 || maxNbBits > AbsoluteMaxNbBits {
		return nil, fmt.Errorf("%w: maxNbBits %d out of range", ErrBadArgument, maxNbBits)
	}

	ct := &CTable{
		MaxNbBits: maxNbBits,
		NbBits:    make([]uint8, maxSymbolValue+1),
		Codes:     make([]uint16, maxSymbolValue+1),
	}

	var nonZero int
	for _, c := range count {
		if c > 0 {
			nonZero++
		}
	}
	switch nonZero {
	case 0:
		return ct, nil
	case 1:
		// A single non-zero symbol carries no information to encode;
		// the caller's block framing should take the RLE path instead
		// of routing here, the same precondition internal/fse's
		// CompressBlock places on its caller.
		return nil, fmt.Errorf("%w: single-symbol histogram has no Huffman tree, use RLE framing", ErrBadArgument)
	}

	if err := buildLengthLimitedLengths(count, maxSymbolValue, maxNbBits, ct.NbBits); err != nil {
		return nil, err
	}
	assignCanonicalCodes(ct)
	return ct, nil
}

// buildLengthLimitedLengths fills nbBits with a canonical Huffman code
// length per symbol, retrying with a higher leaf-count floor whenever
// the unconstrained tree would exceed maxNbBits. Raising the floor
// flattens the count distribution, which shortens the deepest leaves;
// once every count is equal the tree is balanced and its depth is
// ceil(log2(alphabet)), so the loop converges for any maxNbBits at
// least that large.
func buildLengthLimitedLengths(count []uint32, maxSymbolValue, maxNbBits int, nbBits []uint8) error {
	for countMin := uint32(1); ; countMin *= 2 {
		for i := range nbBits {
			nbBits[i] = 0
		}

		h := &nodeHeap{}
		for sym := 0; sym <= maxSymbolValue; sym++ {
			c := count[sym]
			if c == 0 {
				continue
			}
			if c < countMin {
				c = countMin
			}
			idx := len(h.pool)
			h.pool = append(h.pool, treeNode{count: c, value: sym, left: -1, right: -1})
			h.indices = append(h.indices, idx)
		}
		if len(h.indices) == 1 {
			nbBits[h.pool[h.indices[0]].value] = 1
			return nil
		}

		heap.Init(h)
		for h.Len() > 1 {
			li := heap.Pop(h).(int)
			ri := heap.Pop(h).(int)
			pi := len(h.pool)
			h.pool = append(h.pool, treeNode{
				count: h.pool[li].count + h.pool[ri].count,
				value: -1,
				left:  li,
				right: ri,
			})
			heap.Push(h, pi)
		}

		maxDepth := assignDepths(h.pool, h.indices[0], 0, nbBits)
		if maxDepth <= maxNbBits {
			return nil
		}
		if countMin > uint32(len(count))*4+1<<20 {
			return fmt.Errorf("%w: tree would not converge under maxNbBits %d", ErrBadArgument, maxNbBits)
		}
	}
}

func assignDepths(pool []treeNode, idx, depth int, nbBits []uint8) int {
	n := &pool[idx]
	if n.value >= 0 {
		nbBits[n.value] = uint8(depth)
		return depth
	}
	maxDepth := depth
	if n.left >= 0 {
		if d := assignDepths(pool, n.left, depth+1, nbBits); d > maxDepth {
			maxDepth = d
		}
	}
	if n.right >= 0 {
		if d := assignDepths(pool, n.right, depth+1, nbBits); d > maxDepth {
			maxDepth = d
		}
	}
	return maxDepth
}

// assignCanonicalCodes numbers symbols by descending code length (ties
// broken by ascending symbol): each symbol claims a block of
// 2^(maxNbBits-len) consecutive slots of the 2^maxNbBits code space, and
// its codeword is that block's starting slot shifted down to len bits.
//
// The processing order (longest codes first) is deliberate, not
// arbitrary: it is the same order BuildDTable's weight-rank placement
// uses when it carves the decode table into contiguous per-symbol
// blocks, so a symbol's codeword, peeked as the top bits of a
// maxNbBits-wide window, indexes exactly the block of decode-table
// entries BuildDTable filled with that symbol. The two must stay in
// lockstep — see BuildDTable's doc comment for the matching derivation.
func assignCanonicalCodes(ct *CTable) {
	dtLog := ct.MaxNbBits

	symbols := make([]int, 0, len(ct.NbBits))
	for s, nb := range ct.NbBits {
		if nb != 0 {
			symbols = append(symbols, s)
		}
	}
	slices.SortFunc(symbols, func(a, b int) int {
		if ct.NbBits[a] != ct.NbBits[b] {
			return int(ct.NbBits[b]) - int(ct.NbBits[a])
		}
		return a - b
	})

	cursor := uint32(0)
	for _, s := range symbols {
		l := int(ct.NbBits[s])
		unitsPerSymbol := uint32(1) << uint(dtLog-l)
		ct.Codes[s] = uint16(cursor >> uint(dtLog-l))
		cursor += unitsPerSymbol
	}
}
