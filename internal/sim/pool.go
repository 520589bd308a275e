package sim

import "sync"

// fanOut runs fn over items on up to n goroutines and returns the results
// in input order, so detector output merging stays deterministic. With
// n <= 1 it degenerates to a plain loop.
func fanOut[T, R any](n int, items []T, fn func(T) R) []R {
	out := make([]R, len(items))
	if n <= 1 || len(items) <= 1 {
		for i, it := range items {
			out[i] = fn(it)
		}
		return out
	}

	type job struct{ idx int }
	queue := make(chan job, len(items))
	for i := range items {
		queue <- job{idx: i}
	}
	close(queue)

	if n > len(items) {
		n = len(items)
	}
	var wg sync.WaitGroup
	for w := 0; w < n; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := range queue {
				out[j.idx] = fn(items[j.idx])
			}
		}()
	}
	wg.Wait()
	return out
}
