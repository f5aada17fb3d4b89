package workers

import (
	"context"
	"os"
	"runtime"
	"strconv"
	"sync"
)

// EnvOverride names the environment variable that pins the worker count.
const EnvOverride = "IMPORT_WORKERS"

// Count returns a worker count of GOMAXPROCS scaled by multiplier, never
// below 1 and capped at limit when limit is positive. A positive integer
// in IMPORT_WORKERS replaces the calculation but is still capped.
func Count(multiplier float64, limit int) int {
	if override := os.Getenv(EnvOverride); override != "" {
		if count, err := strconv.Atoi(override); err == nil && count > 0 {
			return capAt(count, limit)
		}
	}

	// GOMAXPROCS follows the container CPU limit.
	n := int(float64(runtime.GOMAXPROCS(0)) * multiplier)
	if n < 1 {
		n = 1
	}
	return capAt(n, limit)
}

func capAt(n, limit int) int {
	if limit > 0 && n > limit {
		return limit
	}
	return n
}

// ForCPU returns a worker count for CPU-bound work (1 per CPU).
func ForCPU(limit int) int {
	return Count(1.0, limit)
}

// ForIO returns a worker count for I/O-bound work (2 per CPU).
func ForIO(limit int) int {
	return Count(2.0, limit)
}

// Map runs fn for every index in [0, n) on at most size goroutines and
// returns the results in index order. Jobs not yet started when ctx is
// cancelled are skipped and their slot keeps the zero value.
func Map[T any](ctx context.Context, size, n int, fn func(ctx context.Context, i int) T) []T {
	results := make([]T, n)
	if n == 0 {
		return results
	}
	if size < 1 {
		size = 1
	}
	if size > n {
		size = n
	}

	jobs := make(chan int)
	var wg sync.WaitGroup
	for w := 0; w < size; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				results[i] = fn(ctx, i)
			}
		}()
	}

feed:
	for i := 0; i < n; i++ {
		if ctx.Err() != nil {
			break
		}
		select {
		case jobs <- i:
		case <-ctx.Done():
			break feed
		}
	}
	close(jobs)
	wg.Wait()
	return results
}
