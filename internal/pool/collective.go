package pool

import (
	"golang.org/x/sync/errgroup"
)

// ParallelForEach submits one task per item to p, awaiting all. It returns
// the first error encountered, after every task has run to completion.
func ParallelForEach[T any](p *Pool, items []T, fn func(T) error) error {
	var g errgroup.Group
	futures := make([]*Future[struct{}], len(items))

	for i, item := range items {
		item := item
		futures[i] = Submit(p, func() (struct{}, error) {
			return struct{}{}, fn(item)
		})
	}

	for _, f := range futures {
		f := f
		g.Go(func() error {
			_, err := f.Get()
			return err
		})
	}

	return g.Wait()
}

// ParallelMap applies fn to every item concurrently and returns results in
// input order. If any task errors, ParallelMap returns the first error
// encountered (after all tasks have completed).
func ParallelMap[T, R any](p *Pool, items []T, fn func(T) (R, error)) ([]R, error) {
	futures := make([]*Future[R], len(items))
	for i, item := range items {
		item := item
		futures[i] = Submit(p, func() (R, error) {
			return fn(item)
		})
	}

	results := make([]R, len(items))
	var firstErr error
	for i, f := range futures {
		v, err := f.Get()
		results[i] = v
		if err != nil && firstErr == nil {
			firstErr = err
		}
	}

	return results, firstErr
}

// ParallelFilter returns the subset of items for which predicate holds,
// preserving input order. Predicate evaluation runs concurrently.
func ParallelFilter[T any](p *Pool, items []T, predicate func(T) bool) []T {
	kept, _ := ParallelMap(p, items, func(item T) (bool, error) {
		return predicate(item), nil
	})

	out := make([]T, 0, len(items))
	for i, k := range kept {
		if k {
			out = append(out, items[i])
		}
	}
	return out
}

// ParallelReduce reduces items in chunks, combining per-chunk partial
// results with reducer. reducer must be associative: it both folds an item
// into an accumulator and combines two partial accumulators, since a
// single-typed T reducer must serve both roles.
func ParallelReduce[T any](p *Pool, items []T, initial T, reducer func(T, T) T) T {
	if len(items) == 0 {
		return initial
	}

	chunks := chunkCount(len(items))
	chunkSize := (len(items) + chunks - 1) / chunks

	var futures []*Future[T]
	for start := 0; start < len(items); start += chunkSize {
		end := start + chunkSize
		if end > len(items) {
			end = len(items)
		}
		slice := items[start:end]
		futures = append(futures, Submit(p, func() (T, error) {
			acc := initial
			for _, item := range slice {
				acc = reducer(acc, item)
			}
			return acc, nil
		}))
	}

	result := initial
	for _, f := range futures {
		v, _ := f.Get()
		result = reducer(result, v)
	}
	return result
}

// chunkCount picks a chunk count bounded by a small constant so tiny inputs
// don't spawn one goroutine per item.
func chunkCount(n int) int {
	const maxChunks = 64
	if n < maxChunks {
		return n
	}
	return maxChunks
}
