package bitio

import "errors"

var (
	errBadStreamCount = errors.New("bitio: numStreams must be in [1,4]")
	errStreamTooLong  = errors.New("bitio: stream too long for trailer length field")

	// ErrTruncated reports that a buffer is too short to contain a valid
	// trailer descriptor or the bitstream content it describes.
	ErrTruncated = errors.New("bitio: truncated bitstream")

	// ErrOverrun reports that a read walked past the start of the
	// bitstream content.
	ErrOverrun = errors.New("bitio: read past start of bitstream")
)
