package repository

import (
	"context"
	"sort"
	"sync"

	"github.com/hitulnayakpara1412/TradingApp/internal/domain/model"
	"github.com/hitulnayakpara1412/TradingApp/internal/domain/port"
)

// MemoryRepository is the redis-less record store, used for local runs and
// tests. It keeps the same optimistic contract as the Redis adapter:
// Update mutates a private copy and commits only if the record's version
// did not move underneath it.
type MemoryRepository struct {
	mu     sync.RWMutex
	stocks map[string]*model.Stock
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{stocks: make(map[string]*model.Stock)}
}

var _ port.SymbolRepository = (*MemoryRepository)(nil)

func (r *MemoryRepository) Register(_ context.Context, stock model.Stock) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.stocks[stock.Symbol]; ok {
		return model.ErrSymbolExists
	}
	r.stocks[stock.Symbol] = stock.Clone()
	return nil
}

func (r *MemoryRepository) Get(_ context.Context, symbol string) (*model.Stock, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	st, ok := r.stocks[symbol]
	if !ok {
		return nil, model.ErrSymbolNotFound
	}
	return st.Clone(), nil
}

func (r *MemoryRepository) List(_ context.Context) ([]model.Stock, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	stocks := make([]model.Stock, 0, len(r.stocks))
	for _, st := range r.stocks {
		stocks = append(stocks, *st.Clone())
	}
	sort.Slice(stocks, func(i, j int) bool { return stocks[i].Symbol < stocks[j].Symbol })
	return stocks, nil
}

func (r *MemoryRepository) Symbols(_ context.Context) ([]string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	symbols := make([]string, 0, len(r.stocks))
	for sym := range r.stocks {
		symbols = append(symbols, sym)
	}
	sort.Strings(symbols)
	return symbols, nil
}

func (r *MemoryRepository) Update(_ context.Context, symbol string, mutate func(*model.Stock) error) error {
	r.mu.RLock()
	st, ok := r.stocks[symbol]
	if !ok {
		r.mu.RUnlock()
		return model.ErrSymbolNotFound
	}
	working := st.Clone()
	r.mu.RUnlock()

	// Mutation runs outside the lock; the version check on commit is what
	// serializes concurrent writers to the same record.
	if err := mutate(working); err != nil {
		return err
	}
	working.Version++

	r.mu.Lock()
	defer r.mu.Unlock()
	current, ok := r.stocks[symbol]
	if !ok {
		return model.ErrSymbolNotFound
	}
	if current.Version != working.Version-1 {
		return model.ErrWriteConflict
	}
	r.stocks[symbol] = working
	return nil
}

func (r *MemoryRepository) Ping(context.Context) error { return nil }

func (r *MemoryRepository) Close() error { return nil }
