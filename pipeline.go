package tackling

import "sync"

// task runs fn over the indices [0, n) split into contiguous chunks, one
// goroutine per chunk. fn must only touch state owned by its index.
func task(workersCount, n int, fn func(i int)) {
	var wg sync.WaitGroup
	chunkSize := (n + workersCount - 1) / workersCount

	for workerID := 0; workerID < workersCount; workerID++ {
		start, end := workerID*chunkSize, min((workerID+1)*chunkSize, n)
		if start >= end {
			break
		}

		wg.Add(1)
		go func(start, end int) {
			defer wg.Done()
			for i := start; i < end; i++ {
				fn(i)
			}
		}(start, end)
	}
	wg.Wait()
}
