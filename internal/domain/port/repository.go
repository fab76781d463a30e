package port

import (
	"context"

	"github.com/hitulnayakpara1412/TradingApp/internal/domain/model"
)

// SymbolRepository stores the live per-symbol records. The record is the
// unit of mutual exclusion: Update applies mutate to a private copy and
// commits it with a version check, returning model.ErrWriteConflict when a
// concurrent writer got there first. There is no retry; periodic jobs
// simply pick the record up again on their next firing.
type SymbolRepository interface {
	Register(ctx context.Context, stock model.Stock) error
	Get(ctx context.Context, symbol string) (*model.Stock, error)
	List(ctx context.Context) ([]model.Stock, error)
	Symbols(ctx context.Context) ([]string, error)
	Update(ctx context.Context, symbol string, mutate func(*model.Stock) error) error
	Ping(ctx context.Context) error
	Close() error
}
