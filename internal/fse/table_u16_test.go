package fse

import (
	"math/rand"
	"testing"
)

func TestU16Symbol_CompressBlockRoundTrip(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	src := make([]uint16, 5000)
	for i := range src {
		v := rng.Intn(100)
		switch {
		case v < 60:
			src[i] = 0
		case v < 90:
			src[i] = 1
		default:
			src[i] = uint16(2 + rng.Intn(MaxSymbolValueU16-1))
		}
	}

	dst := make([]byte, len(src)*3+1024)
	n, err := CompressBlock[uint16](dst, src, MaxSymbolValueU16, 0)
	if err != nil {
		t.Fatalf("CompressBlock: %v", err)
	}

	out := make([]uint16, len(src))
	got, err := DecompressBlock[uint16](out, dst[:n], MaxSymbolValueU16, len(src))
	if err != nil {
		t.Fatalf("DecompressBlock: %v", err)
	}
	if got != len(src) {
		t.Fatalf("DecompressBlock returned %d, want %d", got, len(src))
	}
	for i := range src {
		if out[i] != src[i] {
			t.Fatalf("symbol %d: got %d, want %d", i, out[i], src[i])
		}
	}
}

func TestU16Symbol_WideValuesBeyondByteRange(t *testing.T) {
	count := make([]uint32, MaxSymbolValueU16+1)
	count[0] = 800
	count[285] = 200
	norm, tableLog, single, err := Normalize(count, 1000, 10, MaxSymbolValueU16)
	if err != nil {
		t.Fatalf("Normalize: %v", err)
	}
	if single != -1 {
		t.Fatalf("unexpected single-symbol signal")
	}

	ct, err := BuildCTable[uint16](norm, MaxSymbolValueU16, tableLog)
	if err != nil {
		t.Fatalf("BuildCTable: %v", err)
	}
	if ct.Symbol[285].MaxState == 0 && ct.Symbol[285].MinBitsOut == 0 {
		t.Fatalf("symbol 285's transform was never populated")
	}
}
