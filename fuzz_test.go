package fsentropy

import (
	"bytes"
	"testing"
)

// addBlockSeeds seeds the corpus with real compressed blocks spanning
// every mode byte, so mutation starts from syntactically valid input.
func addBlockSeeds(f *testing.F, compress func([]byte, []byte) ([]byte, error)) {
	f.Helper()
	seeds := [][]byte{
		nil,
		{0x41},
		bytes.Repeat([]byte{0x41}, 300),
		bytes.Repeat([]byte("abracadabra"), 40),
	}
	for _, src := range seeds {
		if out, err := compress(nil, src); err == nil {
			f.Add(out)
		}
	}
	f.Add([]byte{0x03})             // reserved mode
	f.Add([]byte{0x02, 0xFF, 0xFF}) // compressed mode, garbage header
}

// FuzzDecompress ensures no input can panic the FSE block decoder: any
// byte string either decodes or returns an error, and never writes past
// the requested output size.
func FuzzDecompress(f *testing.F) {
	addBlockSeeds(f, Compress)

	f.Fuzz(func(t *testing.T, data []byte) {
		for _, origSize := range []int{0, 1, 17, 1024} {
			out, err := Decompress(nil, data, origSize)
			if err == nil && len(out) != origSize {
				t.Fatalf("Decompress returned %d bytes, want %d", len(out), origSize)
			}
		}
	})
}

// FuzzDecompressHuffman is FuzzDecompress for the Huff0 path.
func FuzzDecompressHuffman(f *testing.F) {
	addBlockSeeds(f, CompressHuffman)

	f.Fuzz(func(t *testing.T, data []byte) {
		for _, origSize := range []int{0, 1, 17, 1024} {
			out, err := DecompressHuffman(nil, data, origSize)
			if err == nil && len(out) != origSize {
				t.Fatalf("DecompressHuffman returned %d bytes, want %d", len(out), origSize)
			}
		}
	})
}

// FuzzRoundTrip checks the identity decompress(compress(src)) == src for
// arbitrary sources, on both coders.
func FuzzRoundTrip(f *testing.F) {
	f.Add([]byte(nil))
	f.Add([]byte{0})
	f.Add(bytes.Repeat([]byte{0xAA}, 100))
	f.Add([]byte("hello hello hello world"))

	f.Fuzz(func(t *testing.T, src []byte) {
		out, err := Compress(nil, src)
		if err != nil {
			t.Fatalf("Compress: %v", err)
		}
		got, err := Decompress(nil, out, len(src))
		if err != nil {
			t.Fatalf("Decompress: %v", err)
		}
		if !bytes.Equal(got, src) {
			t.Fatal("FSE round trip mismatch")
		}

		out, err = CompressHuffman(nil, src)
		if err != nil {
			t.Fatalf("CompressHuffman: %v", err)
		}
		got, err = DecompressHuffman(nil, out, len(src))
		if err != nil {
			t.Fatalf("DecompressHuffman: %v", err)
		}
		if !bytes.Equal(got, src) {
			t.Fatal("Huffman round trip mismatch")
		}
	})
}
