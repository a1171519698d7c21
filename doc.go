// Package fsentropy provides a pure Go implementation of Finite State
// Entropy (FSE / tANS) coding and the related Huff0 canonical Huffman
// coder used inside larger compression pipelines.
//
// Both codecs operate on an already-tokenized block of symbols (bytes,
// or 16-bit values for the wide alphabet variant) and produce a compact,
// self-describing bitstream. Every block is independent: there is no
// state carried across blocks, no adaptive modeling, and no arithmetic
// coding.
//
// The package supports:
//   - Histogramming and normalizing a symbol distribution to a power of
//     two (internal/fse)
//   - Building FSE encode/decode tables from a normalized distribution
//     (internal/fse)
//   - Compressing and decompressing a block with 1 or 2 interleaved
//     FSE states (internal/fse); there is no 4-state or 4-segment FSE
//     path
//   - Building length-limited canonical Huffman codes and a dual-symbol
//     decode table (internal/huff0)
//   - Raw/RLE/compressed block framing with a self-describing mode byte
//     (block.go, huffman.go)
//
// Basic usage for compressing a block:
//
//	out, err := fsentropy.Compress(nil, src)
//
// Basic usage for decompressing it again:
//
//	orig, err := fsentropy.Decompress(nil, out, len(src))
//
// CompressHuffman and DecompressHuffman are the same block framing over
// the Huff0 coder instead of FSE.
package fsentropy
