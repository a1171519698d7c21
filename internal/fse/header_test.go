package fse

import "testing"

func TestHeaderRoundTrip(t *testing.T) {
	cases := []struct {
		name  string
		count []uint32
		total int
		tl    int
		maxSV int
	}{
		{"skewed", []uint32{900, 0, 0, 100}, 1000, 9, 3},
		{"uniform", repeatCount(16, 10), 160, 7, 15},
		{"withZeroRun", []uint32{500, 0, 0, 0, 0, 0, 300, 200}, 1000, 10, 7},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			norm, tableLog, single, err := Normalize(c.count, c.total, c.tl, c.maxSV)
			if err != nil {
				t.Fatalf("Normalize: %v", err)
			}
			if single != -1 {
				t.Fatalf("unexpected single-symbol signal")
			}

			dst := make([]byte, HeaderBound(c.maxSV, tableLog))
			n, err := WriteHeader(dst, norm, c.maxSV, tableLog)
			if err != nil {
				t.Fatalf("WriteHeader: %v", err)
			}

			gotNorm, gotTL, consumed, err := ReadHeader(dst[:n], c.maxSV)
			if err != nil {
				t.Fatalf("ReadHeader: %v", err)
			}
			if consumed != n {
				t.Fatalf("consumed = %d, want %d", consumed, n)
			}
			if gotTL != tableLog {
				t.Fatalf("tableLog = %d, want %d", gotTL, tableLog)
			}
			for s := range norm {
				if gotNorm[s] != norm[s] {
					t.Fatalf("symbol %d: norm %d, want %d", s, gotNorm[s], norm[s])
				}
			}
		})
	}
}

func TestReadHeader_RejectsBadMode(t *testing.T) {
	if _, _, _, err := ReadHeader([]byte{0x01}, 255); err == nil {
		t.Fatal("expected error for non-FSE mode byte")
	}
}

func TestReadHeader_EmptyInput(t *testing.T) {
	if _, _, _, err := ReadHeader(nil, 255); err == nil {
		t.Fatal("expected error for empty header")
	}
}

func repeatCount(n int, v uint32) []uint32 {
	c := make([]uint32, n)
	for i := range c {
		c[i] = v
	}
	return c
}
