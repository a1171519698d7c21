package fse

import "testing"

func sumAbs(norm []int16) int {
	s := 0
	for _, n := range norm {
		if n < 0 {
			s -= int(n)
		} else {
			s += int(n)
		}
	}
	return s
}

func TestNormalize_SumMatchesTableSize(t *testing.T) {
	count := make([]uint32, 256)
	count[0] = 900
	count[255] = 100
	norm, tableLog, single, err := Normalize(count, 1000, 12, 255)
	if err != nil {
		t.Fatalf("Normalize: %v", err)
	}
	if single != -1 {
		t.Fatalf("single = %d, want -1", single)
	}
	if got, want := sumAbs(norm), 1<<tableLog; got != want {
		t.Fatalf("sum(|norm|) = %d, want %d", got, want)
	}
}

func TestNormalize_EverySeenSymbolNonZero(t *testing.T) {
	count := make([]uint32, 16)
	for i := range count {
		count[i] = uint32(i + 1)
	}
	norm, _, single, err := Normalize(count, sumCounts(count), 8, 15)
	if err != nil {
		t.Fatalf("Normalize: %v", err)
	}
	if single != -1 {
		t.Fatalf("unexpected single-symbol signal: %d", single)
	}
	for s, c := range count {
		if c > 0 && norm[s] == 0 {
			t.Errorf("symbol %d has count %d but norm 0", s, c)
		}
	}
}

func TestNormalize_SingleSymbolSignal(t *testing.T) {
	count := make([]uint32, 4)
	count[2] = 500
	_, _, single, err := Normalize(count, 500, 10, 3)
	if err != nil {
		t.Fatalf("Normalize: %v", err)
	}
	if single != 2 {
		t.Fatalf("single = %d, want 2", single)
	}
}

func TestNormalize_AutoTableLog(t *testing.T) {
	count := make([]uint32, 256)
	for i := range count {
		count[i] = 4
	}
	norm, tableLog, _, err := Normalize(count, sumCounts(count), 0, 255)
	if err != nil {
		t.Fatalf("Normalize: %v", err)
	}
	if tableLog < MinTableLog || tableLog > MaxTableLog {
		t.Fatalf("auto tableLog %d out of range", tableLog)
	}
	if sumAbs(norm) != 1<<tableLog {
		t.Fatalf("sum(|norm|) = %d, want %d", sumAbs(norm), 1<<tableLog)
	}
}

func TestNormalize_TableLogOutOfRange(t *testing.T) {
	count := make([]uint32, 4)
	count[0] = 10
	if _, _, _, err := Normalize(count, 10, MaxTableLog+1, 3); err == nil {
		t.Fatal("expected error for tableLog exceeding MaxTableLog")
	}
}

func TestNormalize_SkewedDistribution(t *testing.T) {
	count := make([]uint32, 256)
	count[0] = 900
	count[255] = 100
	norm, tableLog, _, err := Normalize(count, 1000, 12, 255)
	if err != nil {
		t.Fatalf("Normalize: %v", err)
	}
	tableSize := 1 << tableLog
	if got, want := int(norm[0]), (tableSize*9)/10; absInt(got-want) > tableSize/20 {
		t.Errorf("norm[0] = %d, want close to %d", got, want)
	}
}

func sumCounts(count []uint32) int {
	total := 0
	for _, c := range count {
		total += int(c)
	}
	return total
}
