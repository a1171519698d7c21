package pool

import "testing"

func TestGetReturnsRequestedLength(t *testing.T) {
	for _, size := range []int{0, 1, 512, bound(0), bound(4 << 10), bound(128 << 10)} {
		b := Get(size)
		if len(b) != size {
			t.Fatalf("Get(%d) returned length %d", size, len(b))
		}
		Put(b)
	}
}

func TestGetRoundsCapacityUpToClass(t *testing.T) {
	b := Get(600)
	if cap(b) != classSizes[1] {
		t.Fatalf("Get(600) capacity %d, want class size %d", cap(b), classSizes[1])
	}
	Put(b)
}

func TestPutRecyclesThroughSameClass(t *testing.T) {
	b := Get(100)
	b[0] = 0xAB
	Put(b)
	// The next same-class Get may or may not observe the recycled
	// buffer (sync.Pool gives no guarantee), but it must come back
	// with the class capacity and the requested length.
	c := Get(100)
	if len(c) != 100 || cap(c) != classSizes[0] {
		t.Fatalf("Get after Put: len %d cap %d, want 100/%d", len(c), cap(c), classSizes[0])
	}
	Put(c)
}

func TestOversizeAllocatesDirectly(t *testing.T) {
	size := classSizes[len(classSizes)-1] + 1
	b := Get(size)
	if len(b) != size {
		t.Fatalf("oversize Get returned length %d, want %d", len(b), size)
	}
	Put(b) // dropped, must not panic
}

func TestClassIndexMonotonic(t *testing.T) {
	prev := -1
	for _, sz := range classSizes {
		if sz <= prev {
			t.Fatalf("class sizes not strictly increasing: %v", classSizes)
		}
		prev = sz
	}
	if classIndex(0) != 0 {
		t.Fatalf("classIndex(0) = %d, want 0", classIndex(0))
	}
	if classIndex(classSizes[len(classSizes)-1]+1) != -1 {
		t.Fatal("expected -1 for a request beyond every class")
	}
}
