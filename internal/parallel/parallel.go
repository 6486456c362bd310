// Package parallel partitions index ranges across goroutines.
package parallel

import (
	"runtime"
	"sync"
)

// For executes fn over [0, n) split into at most workers contiguous chunks,
// one goroutine per chunk, and blocks until all chunks complete.
//
// workers <= 0 uses GOMAXPROCS. When only one chunk results, fn runs on the
// calling goroutine.
func For(n, workers int, fn func(start, end int)) {
	if n <= 0 {
		return
	}

	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	workers = min(workers, n)

	if workers == 1 {
		fn(0, n)
		return
	}

	chunkSize := (n + workers - 1) / workers

	var wg sync.WaitGroup
	for start := 0; start < n; start += chunkSize {
		end := min(start+chunkSize, n)
		wg.Add(1)
		go func() {
			defer wg.Done()
			fn(start, end)
		}()
	}
	wg.Wait()
}
