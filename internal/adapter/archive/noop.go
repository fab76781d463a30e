package archive

import (
	"context"
	"time"

	"github.com/hitulnayakpara1412/TradingApp/internal/domain/model"
	"github.com/hitulnayakpara1412/TradingApp/internal/domain/port"
)

// NoopArchive discards everything; used when Postgres is not configured.
type NoopArchive struct{}

func NewNoopArchive() *NoopArchive { return &NoopArchive{} }

var _ port.CandleArchive = (*NoopArchive)(nil)

func (*NoopArchive) SaveRollup(context.Context, string, model.Candle) error { return nil }

func (*NoopArchive) SaveDailyClose(context.Context, string, float64, time.Time) error { return nil }

func (*NoopArchive) Ping(context.Context) error { return nil }

func (*NoopArchive) Close() error { return nil }
