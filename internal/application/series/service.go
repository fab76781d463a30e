// Package series owns the per-symbol candle series: it applies generated
// ticks to the one-minute series, rolls the latest bar up into the
// ten-minute series, and resets both at the start of a trading day.
package series

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"math/rand"
	"sync"
	"time"

	"github.com/hitulnayakpara1412/TradingApp/internal/domain/model"
	"github.com/hitulnayakpara1412/TradingApp/internal/domain/port"
)

// Options bound the series and the amendment jitter.
type Options struct {
	// WindowSize caps the one-minute series; 390 bars is one session.
	WindowSize int
	// Bucket is the width of one bar.
	Bucket time.Duration
	// AmendJitter scales the random high/low extension applied when the
	// open candle is amended.
	AmendJitter float64
}

func DefaultOptions() Options {
	return Options{WindowSize: 390, Bucket: time.Minute, AmendJitter: 1}
}

type Service struct {
	repo    port.SymbolRepository
	archive port.CandleArchive
	logger  *slog.Logger
	opts    Options

	mu  sync.Mutex
	rng *rand.Rand
}

// NewService creates the aggregator. rng may be nil; tests inject a seeded
// source.
func NewService(repo port.SymbolRepository, archive port.CandleArchive, logger *slog.Logger, opts Options, rng *rand.Rand) *Service {
	if opts.WindowSize <= 0 {
		opts.WindowSize = 390
	}
	if opts.Bucket <= 0 {
		opts.Bucket = time.Minute
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Service{repo: repo, archive: archive, logger: logger, opts: opts, rng: rng}
}

// ApplyTick folds one generated tick into the symbol's one-minute series.
// A tick within the open candle's bucket amends it in place: close is
// replaced and high/low are extended by at most a small jitter around the
// new close. A tick past the bucket opens a new candle stamped with now.
// The series is then truncated to the window and the current price becomes
// the close of the last bar.
//
// A lost write race surfaces as model.ErrWriteConflict; callers drop the
// tick and rely on the next firing.
func (s *Service) ApplyTick(ctx context.Context, symbol string, tick model.Candle, now time.Time) error {
	return s.repo.Update(ctx, symbol, func(st *model.Stock) error {
		n := len(st.OneMinuteSeries)
		if n == 0 || now.Sub(st.OneMinuteSeries[n-1].OpenTime) >= s.opts.Bucket {
			tick.OpenTime = now
			tick.OriginalOpenTime = now
			st.OneMinuteSeries = append(st.OneMinuteSeries, tick)
		} else {
			last := &st.OneMinuteSeries[n-1]
			last.High = model.Round2(math.Max(last.High, tick.Close+s.jitter()))
			last.Low = model.Round2(math.Min(last.Low, tick.Close-s.jitter()))
			last.Close = tick.Close
		}
		if len(st.OneMinuteSeries) > s.opts.WindowSize {
			st.OneMinuteSeries = st.OneMinuteSeries[len(st.OneMinuteSeries)-s.opts.WindowSize:]
		}
		st.CurrentPrice = st.OneMinuteSeries[len(st.OneMinuteSeries)-1].Close
		return nil
	})
}

// RollupTenMinute snapshots the most recent one-minute candle into the
// ten-minute series: open is the current price at call time, high/low/close
// are copied from the bar. An empty one-minute series is a logged no-op.
func (s *Service) RollupTenMinute(ctx context.Context, symbol string, now time.Time) error {
	var rolled model.Candle
	err := s.repo.Update(ctx, symbol, func(st *model.Stock) error {
		if len(st.OneMinuteSeries) == 0 {
			return model.ErrEmptySeries
		}
		last := st.OneMinuteSeries[len(st.OneMinuteSeries)-1]
		rolled = model.Candle{
			OpenTime:         now,
			OriginalOpenTime: now,
			Open:             model.Round2(st.CurrentPrice),
			High:             model.Round2(last.High),
			Low:              model.Round2(last.Low),
			Close:            model.Round2(last.Close),
		}
		st.TenMinuteSeries = append(st.TenMinuteSeries, rolled)
		return nil
	})
	if errors.Is(err, model.ErrEmptySeries) {
		s.logger.Warn("nothing to roll up", "symbol", symbol)
		return nil
	}
	if err != nil {
		return err
	}
	if err := s.archive.SaveRollup(ctx, symbol, rolled); err != nil {
		s.logger.Error("failed to archive rollup candle", "symbol", symbol, "error", err)
	}
	return nil
}

// ResetForNewDay carries the current price over to lastDayTradedPrice and
// clears both series. Calling it again on the same day just re-clears
// already empty series, so the once-daily trigger does not need to be
// exactly-once.
func (s *Service) ResetForNewDay(ctx context.Context, symbol string, day time.Time) error {
	var dayClose float64
	err := s.repo.Update(ctx, symbol, func(st *model.Stock) error {
		st.LastDayTradedPrice = st.CurrentPrice
		st.OneMinuteSeries = nil
		st.TenMinuteSeries = nil
		dayClose = st.CurrentPrice
		return nil
	})
	if err != nil {
		return fmt.Errorf("reset %s: %w", symbol, err)
	}
	if err := s.archive.SaveDailyClose(ctx, symbol, dayClose, day); err != nil {
		s.logger.Error("failed to archive daily close", "symbol", symbol, "error", err)
	}
	return nil
}

func (s *Service) jitter() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rng.Float64() * s.opts.AmendJitter
}
