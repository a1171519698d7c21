package fsentropy

import (
	"bytes"
	"math/rand"
	"testing"
)

func roundTripHuffman(t *testing.T, src []byte) {
	t.Helper()
	out, err := CompressHuffman(nil, src)
	if err != nil {
		t.Fatalf("CompressHuffman: %v", err)
	}
	if len(out) > CompressBound(len(src)) {
		t.Fatalf("CompressHuffman exceeded CompressBound: got %d, bound %d", len(out), CompressBound(len(src)))
	}
	got, err := DecompressHuffman(nil, out, len(src))
	if err != nil {
		t.Fatalf("DecompressHuffman: %v", err)
	}
	if !bytes.Equal(got, src) {
		t.Fatalf("round trip mismatch: got %d bytes, want %d bytes", len(got), len(src))
	}
}

func TestHuffmanEmpty(t *testing.T) {
	out, err := CompressHuffman(nil, nil)
	if err != nil {
		t.Fatalf("CompressHuffman: %v", err)
	}
	if len(out) != 1 || out[0]&0x3 != modeRaw {
		t.Fatalf("expected 1-byte raw block for empty input, got %v", out)
	}
	got, err := DecompressHuffman(nil, out, 0)
	if err != nil {
		t.Fatalf("DecompressHuffman: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("expected empty output, got %d bytes", len(got))
	}
}

func TestHuffmanRLE(t *testing.T) {
	src := bytes.Repeat([]byte{0x7}, 500)
	out, stats, err := CompressHuffmanStats(nil, src)
	if err != nil {
		t.Fatalf("CompressHuffmanStats: %v", err)
	}
	if stats.Mode != modeRLE {
		t.Fatalf("expected RLE mode, got %d", stats.Mode)
	}
	if len(out) != 2 || out[0] != modeRLE || out[1] != 0x7 {
		t.Fatalf("expected 2-byte RLE block, got %v", out)
	}
	roundTripHuffman(t, src)
}

func TestHuffmanSkewed(t *testing.T) {
	src := make([]byte, 4000)
	for i := range src {
		if i%10 == 0 {
			src[i] = 0xFF
		}
	}
	out, stats, err := CompressHuffmanStats(nil, src)
	if err != nil {
		t.Fatalf("CompressHuffmanStats: %v", err)
	}
	if stats.Mode != modeCompressed {
		t.Fatalf("expected compressed mode for skewed input, got %d", stats.Mode)
	}
	if len(out) >= len(src) {
		t.Fatalf("compressed output %d not smaller than input %d", len(out), len(src))
	}
	roundTripHuffman(t, src)
}

func TestHuffmanTextLike(t *testing.T) {
	src := bytes.Repeat([]byte("the quick brown fox jumps over the lazy dog. "), 100)
	roundTripHuffman(t, src)
}

func TestHuffmanRandomAlphabet(t *testing.T) {
	rng := rand.New(rand.NewSource(23))
	src := make([]byte, 10000)
	for i := range src {
		v := rng.Intn(1000)
		switch {
		case v < 500:
			src[i] = 'a'
		case v < 750:
			src[i] = 'b'
		case v < 880:
			src[i] = 'c'
		default:
			src[i] = byte(rng.Intn(64))
		}
	}
	roundTripHuffman(t, src)
}

func TestHuffmanSmallSizes(t *testing.T) {
	for n := 1; n < 70; n++ {
		src := make([]byte, n)
		for i := range src {
			src[i] = byte(i % 5)
		}
		roundTripHuffman(t, src)
	}
}

func TestHuffmanIncompressibleFallsBackToRaw(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	src := make([]byte, 2048)
	rng.Read(src)
	_, stats, err := CompressHuffmanStats(nil, src)
	if err != nil {
		t.Fatalf("CompressHuffmanStats: %v", err)
	}
	if stats.Mode != modeRaw {
		t.Fatalf("expected raw fallback, got mode %d", stats.Mode)
	}
	roundTripHuffman(t, src)
}

func TestDecompressHuffmanReservedMode(t *testing.T) {
	if _, err := DecompressHuffman(nil, []byte{modeReserved}, 0); err == nil {
		t.Fatal("expected error for reserved mode byte")
	}
}
