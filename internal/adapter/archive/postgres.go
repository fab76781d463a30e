package archive

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/lib/pq"

	"github.com/hitulnayakpara1412/TradingApp/internal/domain/model"
	"github.com/hitulnayakpara1412/TradingApp/internal/domain/port"
)

// PostgresArchive durably stores what outlives the bounded in-record
// windows: rolled-up ten-minute candles and per-day closing prices.
type PostgresArchive struct {
	db *sql.DB
}

func NewPostgresArchive(connStr string) (*PostgresArchive, error) {
	db, err := sql.Open("postgres", connStr)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &PostgresArchive{db: db}, nil
}

var _ port.CandleArchive = (*PostgresArchive)(nil)

func (a *PostgresArchive) InitSchema(ctx context.Context) error {
	query := `
	CREATE TABLE IF NOT EXISTS rollup_candles (
		id SERIAL PRIMARY KEY,
		symbol VARCHAR(20) NOT NULL,
		open_time TIMESTAMPTZ NOT NULL,
		open DOUBLE PRECISION NOT NULL,
		high DOUBLE PRECISION NOT NULL,
		low DOUBLE PRECISION NOT NULL,
		close DOUBLE PRECISION NOT NULL,
		created_at TIMESTAMPTZ DEFAULT NOW()
	);
	CREATE INDEX IF NOT EXISTS idx_rollup_symbol_time ON rollup_candles(symbol, open_time);
	CREATE TABLE IF NOT EXISTS daily_closes (
		id SERIAL PRIMARY KEY,
		symbol VARCHAR(20) NOT NULL,
		day DATE NOT NULL,
		close DOUBLE PRECISION NOT NULL,
		created_at TIMESTAMPTZ DEFAULT NOW(),
		UNIQUE (symbol, day)
	);
	`
	_, err := a.db.ExecContext(ctx, query)
	return err
}

func (a *PostgresArchive) SaveRollup(ctx context.Context, symbol string, candle model.Candle) error {
	_, err := a.db.ExecContext(ctx,
		`INSERT INTO rollup_candles (symbol, open_time, open, high, low, close)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		symbol, candle.OpenTime, candle.Open, candle.High, candle.Low, candle.Close,
	)
	if err != nil {
		return fmt.Errorf("failed to save rollup candle: %w", err)
	}
	return nil
}

// SaveDailyClose upserts on (symbol, day), so a re-fired daily reset just
// rewrites the same row.
func (a *PostgresArchive) SaveDailyClose(ctx context.Context, symbol string, close float64, day time.Time) error {
	_, err := a.db.ExecContext(ctx,
		`INSERT INTO daily_closes (symbol, day, close)
		 VALUES ($1, $2, $3)
		 ON CONFLICT (symbol, day) DO UPDATE SET close = EXCLUDED.close`,
		symbol, day.Format("2006-01-02"), close,
	)
	if err != nil {
		return fmt.Errorf("failed to save daily close: %w", err)
	}
	return nil
}

func (a *PostgresArchive) Ping(ctx context.Context) error {
	return a.db.PingContext(ctx)
}

func (a *PostgresArchive) Close() error {
	return a.db.Close()
}
