// Package parallel provides the parallel execution utility used by the
// autodiff engine to evaluate independent graphs concurrently.
package parallel

import (
	"runtime"
	"sync"
)

// Config controls parallel execution behavior.
type Config struct {
	Enabled     bool // Whether parallel execution is enabled.
	NumWorkers  int  // Number of worker goroutines to use.
	MinParallel int  // Minimum items before goroutines are worth spawning.
}

// DefaultConfig returns sensible defaults based on CPU count.
//
// Items here are whole graph evaluations, not scalar loop iterations, so a
// handful of them already amortizes goroutine overhead.
func DefaultConfig() Config {
	n := runtime.NumCPU()
	return Config{
		Enabled:     n > 1,
		NumWorkers:  n,
		MinParallel: 2,
	}
}

// For executes f(i) for i in [0, n) with optional parallelism.
// Falls back to sequential execution if parallelism is disabled or n is too
// small. f must not share mutable state across indices.
func For(n int, f func(i int), cfg Config) {
	if !cfg.Enabled || n < cfg.MinParallel || cfg.NumWorkers < 2 {
		for i := 0; i < n; i++ {
			f(i)
		}
		return
	}

	workers := min(cfg.NumWorkers, n)
	var next int
	var mu sync.Mutex
	var wg sync.WaitGroup

	wg.Add(workers)
	for w := 0; w < workers; w++ {
		go func() {
			defer wg.Done()
			for {
				mu.Lock()
				i := next
				next++
				mu.Unlock()
				if i >= n {
					return
				}
				f(i)
			}
		}()
	}
	wg.Wait()
}
