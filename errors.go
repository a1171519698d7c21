package fsentropy

import "errors"

// Error taxonomy of this package. The block framing (Decompress,
// DecompressHuffman) returns ErrSrcSizeWrong and ErrCorruptedStream, wrapped
// with fmt.Errorf("%w: ...") for context. Errors raised inside internal/fse
// and internal/huff0 carry those packages' own sentinels and are returned
// unwrapped, so errors.Is against this set does not match them.
var (
	// ErrBadArgument reports a configuration value out of range: a
	// tableLog or maxSymbolValue outside its legal bounds.
	ErrBadArgument = errors.New("fsentropy: bad argument")

	// ErrDstTooSmall reports that a caller-supplied destination buffer
	// cannot hold the result.
	ErrDstTooSmall = errors.New("fsentropy: destination buffer too small")

	// ErrSrcSizeWrong reports an input shorter than the block framing
	// requires (e.g. a raw or RLE block truncated mid-payload).
	ErrSrcSizeWrong = errors.New("fsentropy: source size does not match framing")

	// ErrCorruptedStream reports a block whose mode byte holds the
	// reserved value 3. The decode-path checks inside internal/fse and
	// internal/huff0 (tableLog too large, a normalized-count sum
	// mismatch, a spread that failed to close, leftover bits after
	// decode) return those packages' own corrupted-stream errors.
	ErrCorruptedStream = errors.New("fsentropy: corrupted stream")

	// ErrGeneric is returned when a downstream call fails without a
	// more specific error to propagate.
	ErrGeneric = errors.New("fsentropy: generic error")
)
