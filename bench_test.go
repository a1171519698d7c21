package fsentropy

import (
	"bytes"
	"math/rand"
	"testing"
)

// loadBenchBlock builds a 64 KiB block with a text-like symbol
// distribution: a small hot alphabet plus a long tail.
func loadBenchBlock(b *testing.B) []byte {
	b.Helper()
	rng := rand.New(rand.NewSource(5))
	src := make([]byte, 64*1024)
	for i := range src {
		v := rng.Intn(1000)
		switch {
		case v < 350:
			src[i] = ' '
		case v < 600:
			src[i] = 'e'
		case v < 750:
			src[i] = 't'
		case v < 870:
			src[i] = 'a'
		default:
			src[i] = byte('a' + rng.Intn(26))
		}
	}
	return src
}

func BenchmarkCompressFSE(b *testing.B) {
	src := loadBenchBlock(b)
	b.SetBytes(int64(len(src)))
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := Compress(nil, src); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkDecompressFSE(b *testing.B) {
	src := loadBenchBlock(b)
	out, err := Compress(nil, src)
	if err != nil {
		b.Fatal(err)
	}
	b.SetBytes(int64(len(src)))
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		got, err := Decompress(nil, out, len(src))
		if err != nil {
			b.Fatal(err)
		}
		if !bytes.Equal(got, src) {
			b.Fatal("round trip mismatch")
		}
	}
}

func BenchmarkCompressHuffman(b *testing.B) {
	src := loadBenchBlock(b)
	b.SetBytes(int64(len(src)))
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := CompressHuffman(nil, src); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkDecompressHuffman(b *testing.B) {
	src := loadBenchBlock(b)
	out, err := CompressHuffman(nil, src)
	if err != nil {
		b.Fatal(err)
	}
	b.SetBytes(int64(len(src)))
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		got, err := DecompressHuffman(nil, out, len(src))
		if err != nil {
			b.Fatal(err)
		}
		if !bytes.Equal(got, src) {
			b.Fatal("round trip mismatch")
		}
	}
}
