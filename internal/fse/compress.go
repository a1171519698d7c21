package fse

import "fmt"

// CompressBlock runs the full encode pipeline (count, normalize,
// header, table, bitstream) over src and returns the serialized
// header-plus-bitstream ("mode 2, compressed") body written into dst; its
// first byte is the header's mode/tableLog byte. It does not decide
// between raw/RLE/compressed framing — that choice belongs to the
// caller (block.go at the module root, or internal/huff0's weight
// header for its own nested use of this pipeline).
func CompressBlock[S Symbol](dst []byte, src []S, maxSymbolValue, tableLog int) (int, error) {
	count, _, err := Count(src, maxSymbolValue)
	if err != nil {
		return 0, err
	}

	norm, tableLog, single, err := Normalize(count, len(src), tableLog, maxSymbolValue)
	if err != nil {
		return 0, err
	}
	if single >= 0 {
		return 0, fmt.Errorf("%w: single-symbol histogram has no FSE table, use RLE framing", ErrBadArgument)
	}

	headerLen, err := WriteHeader(dst, norm, maxSymbolValue, tableLog)
	if err != nil {
		return 0, err
	}

	ct, err := BuildCTable[S](norm, maxSymbolValue, tableLog)
	if err != nil {
		return 0, err
	}

	var body []byte
	if len(src) >= 4 {
		body, err = CompressUsingCTable(src, ct)
	} else {
		body, err = CompressUsingCTableSingle(src, ct)
	}
	if err != nil {
		return 0, err
	}
	if len(dst) < headerLen+len(body) {
		return 0, ErrDstTooSmall
	}
	n := copy(dst[headerLen:], body)
	return headerLen + n, nil
}

// DecompressBlock is the mirror of CompressBlock: it parses the header
// to recover norm/tableLog, builds a DTable, and decodes exactly
// originalSize symbols from the remaining bitstream in src.
func DecompressBlock[S Symbol](dst []S, src []byte, maxSymbolValue, originalSize int) (int, error) {
	norm, tableLog, headerLen, err := ReadHeader(src, maxSymbolValue)
	if err != nil {
		return 0, err
	}
	dt, err := BuildDTable[S](norm, maxSymbolValue, tableLog)
	if err != nil {
		return 0, err
	}
	body := src[headerLen:]
	if originalSize >= 4 {
		return DecompressUsingDTable(dst, body, dt, originalSize)
	}
	return DecompressUsingDTableSingle(dst, body, dt, originalSize)
}
