package parallel

import (
	"sync"
	"sync/atomic"
	"testing"
)

func TestForCoversEveryIndexOnce(t *testing.T) {
	cases := []struct {
		n, workers int
	}{
		{0, 4},
		{1, 4},
		{5, 1},
		{5, 2},
		{7, 3},
		{100, 8},
		{100, 0},
		{3, 16},
	}

	for _, tc := range cases {
		hits := make([]int32, tc.n)
		For(tc.n, tc.workers, func(start, end int) {
			for i := start; i < end; i++ {
				atomic.AddInt32(&hits[i], 1)
			}
		})

		for i, h := range hits {
			if h != 1 {
				t.Fatalf("n=%d workers=%d: index %d visited %d times", tc.n, tc.workers, i, h)
			}
		}
	}
}

func TestForChunksAreContiguous(t *testing.T) {
	var (
		mu     sync.Mutex
		chunks [][2]int
	)
	For(10, 3, func(start, end int) {
		mu.Lock()
		chunks = append(chunks, [2]int{start, end})
		mu.Unlock()
	})

	if len(chunks) != 3 {
		t.Fatalf("got %d chunks, want 3: %v", len(chunks), chunks)
	}

	total := 0
	for _, c := range chunks {
		if c[0] >= c[1] {
			t.Fatalf("empty chunk %v", c)
		}
		total += c[1] - c[0]
	}
	if total != 10 {
		t.Fatalf("chunks cover %d indices, want 10", total)
	}
}

func TestForSingleWorkerRunsInline(t *testing.T) {
	calls := 0
	For(42, 1, func(start, end int) {
		calls++
		if start != 0 || end != 42 {
			t.Fatalf("got [%d,%d), want [0,42)", start, end)
		}
	})
	if calls != 1 {
		t.Fatalf("fn called %d times, want 1", calls)
	}
}
