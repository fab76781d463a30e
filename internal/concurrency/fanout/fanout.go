// Package fanout runs independent per-symbol tasks concurrently. A firing
// of a periodic job fans out over the known symbols; results are joined
// only to count failures for logging, never for correctness, so one
// symbol's failure cannot stall or abort the others.
package fanout

import (
	"context"
	"sync"
	"sync/atomic"
)

// Symbols applies fn to every symbol on up to workers goroutines and waits
// for all of them. It returns how many calls failed. A cancelled context
// stops the remaining items from being dispatched.
func Symbols(ctx context.Context, symbols []string, workers int, fn func(ctx context.Context, symbol string) error) int {
	if len(symbols) == 0 {
		return 0
	}
	if workers <= 0 {
		workers = 1
	}
	if workers > len(symbols) {
		workers = len(symbols)
	}

	workCh := make(chan string)
	go func() {
		defer close(workCh)
		for _, sym := range symbols {
			select {
			case <-ctx.Done():
				return
			case workCh <- sym:
			}
		}
	}()

	var failed atomic.Int64
	var wg sync.WaitGroup
	wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			for sym := range workCh {
				if err := fn(ctx, sym); err != nil {
					failed.Add(1)
				}
			}
		}()
	}
	wg.Wait()

	return int(failed.Load())
}
