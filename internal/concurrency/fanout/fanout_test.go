package fanout

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSymbolsProcessesEverything(t *testing.T) {
	symbols := []string{"A", "B", "C", "D", "E"}

	var mu sync.Mutex
	seen := make(map[string]int)

	failed := Symbols(context.Background(), symbols, 3, func(_ context.Context, sym string) error {
		mu.Lock()
		seen[sym]++
		mu.Unlock()
		return nil
	})

	assert.Zero(t, failed)
	assert.Len(t, seen, len(symbols))
	for _, sym := range symbols {
		assert.Equal(t, 1, seen[sym])
	}
}

func TestSymbolsIsolatesFailures(t *testing.T) {
	symbols := []string{"A", "BAD", "C", "BAD", "E"}

	var mu sync.Mutex
	var processed []string

	failed := Symbols(context.Background(), symbols, 2, func(_ context.Context, sym string) error {
		mu.Lock()
		processed = append(processed, sym)
		mu.Unlock()
		if sym == "BAD" {
			return errors.New("boom")
		}
		return nil
	})

	assert.Equal(t, 2, failed)
	assert.Len(t, processed, len(symbols), "a failing symbol must not abort the others")
}

func TestSymbolsEmptyInput(t *testing.T) {
	failed := Symbols(context.Background(), nil, 4, func(context.Context, string) error {
		t.Fatal("must not be called")
		return nil
	})
	assert.Zero(t, failed)
}

func TestSymbolsCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	// A cancelled context stops dispatch; whatever was not dispatched is
	// simply skipped, not failed.
	failed := Symbols(ctx, []string{"A", "B", "C"}, 1, func(context.Context, string) error {
		return nil
	})
	assert.Zero(t, failed)
}
