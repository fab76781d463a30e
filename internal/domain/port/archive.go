package port

import (
	"context"
	"time"

	"github.com/hitulnayakpara1412/TradingApp/internal/domain/model"
)

// CandleArchive persists coarse series data beyond the bounded in-record
// windows: every ten-minute rollup candle and the closing price of each
// trading day.
type CandleArchive interface {
	SaveRollup(ctx context.Context, symbol string, candle model.Candle) error
	SaveDailyClose(ctx context.Context, symbol string, close float64, day time.Time) error
	Ping(ctx context.Context) error
	Close() error
}
