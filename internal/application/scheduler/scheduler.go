// Package scheduler drives the engine's three periodic jobs: tick
// generation, the ten-minute rollup and the daily reset. Triggers are
// plain cron firings that do not wait for the previous firing of the same
// job; within one firing the symbols are processed as independent
// concurrent tasks.
package scheduler

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/hitulnayakpara1412/TradingApp/internal/application/series"
	"github.com/hitulnayakpara1412/TradingApp/internal/application/session"
	"github.com/hitulnayakpara1412/TradingApp/internal/application/tickgen"
	"github.com/hitulnayakpara1412/TradingApp/internal/concurrency/fanout"
	"github.com/hitulnayakpara1412/TradingApp/internal/domain/model"
	"github.com/hitulnayakpara1412/TradingApp/internal/domain/port"
)

// Scheduler manages all cron jobs.
type Scheduler struct {
	cron      *cron.Cron
	clock     *session.Clock
	generator *tickgen.Generator
	series    *series.Service
	repo      port.SymbolRepository
	publisher port.FeedPublisher
	logger    *slog.Logger
	workers   int
	ctx       context.Context

	now func() time.Time
}

func New(ctx context.Context, clock *session.Clock, generator *tickgen.Generator, svc *series.Service, repo port.SymbolRepository, publisher port.FeedPublisher, logger *slog.Logger, workers int) *Scheduler {
	if workers <= 0 {
		workers = 4
	}
	return &Scheduler{
		cron:      cron.New(cron.WithSeconds()),
		clock:     clock,
		generator: generator,
		series:    svc,
		repo:      repo,
		publisher: publisher,
		logger:    logger,
		workers:   workers,
		ctx:       ctx,
		now:       time.Now,
	}
}

// RegisterAll registers the tick, rollup and daily-reset jobs.
func (s *Scheduler) RegisterAll(tickSpec, rollupSpec, resetSpec string) error {
	if _, err := s.cron.AddFunc(tickSpec, s.tickJob); err != nil {
		return fmt.Errorf("register tick job: %w", err)
	}
	if _, err := s.cron.AddFunc(rollupSpec, s.rollupJob); err != nil {
		return fmt.Errorf("register rollup job: %w", err)
	}
	if _, err := s.cron.AddFunc(resetSpec, s.resetJob); err != nil {
		return fmt.Errorf("register daily reset job: %w", err)
	}
	return nil
}

func (s *Scheduler) Start() {
	s.cron.Start()
	s.logger.Info("scheduler started")
}

func (s *Scheduler) Stop() {
	s.cron.Stop()
	s.logger.Info("scheduler stopped")
}

// tickJob synthesizes one tick per symbol. It runs only outside the
// trading session: the simulated feed keeps moving while the modeled
// market is closed, and goes quiet inside the session where the rollup
// takes over. The inversion is deliberate and matches the deployed
// behavior of the feed this engine reproduces.
func (s *Scheduler) tickJob() {
	now := s.now()
	if s.clock.IsTradingSession(now) {
		return
	}
	s.runForAll("tick", s.applyTickFor)
}

// rollupJob snapshots the latest one-minute candle into the ten-minute
// series; it runs only inside the trading session.
func (s *Scheduler) rollupJob() {
	now := s.now()
	if !s.clock.IsTradingSession(now) {
		return
	}
	s.runForAll("rollup", func(ctx context.Context, symbol string) error {
		err := s.series.RollupTenMinute(ctx, symbol, s.now())
		return s.dropConflict("rollup", symbol, err)
	})
}

// resetJob clears the series and carries over the day close. The cron
// trigger fires every weekday; IsTradingDay keeps holidays out and the
// reset itself is idempotent within a day.
func (s *Scheduler) resetJob() {
	now := s.now()
	if !s.clock.IsTradingDay(now) {
		return
	}
	s.runForAll("daily reset", func(ctx context.Context, symbol string) error {
		err := s.series.ResetForNewDay(ctx, symbol, s.now())
		return s.dropConflict("daily reset", symbol, err)
	})
	s.logger.Info("day reset completed", "at", now.Format(time.RFC3339))
}

// runForAll fans the job out over every known symbol. Failures are
// counted for the firing log only; they never abort the other symbols.
func (s *Scheduler) runForAll(job string, fn func(ctx context.Context, symbol string) error) {
	symbols, err := s.repo.Symbols(s.ctx)
	if err != nil {
		s.logger.Error("failed to list symbols", "job", job, "error", err)
		return
	}
	if failed := fanout.Symbols(s.ctx, symbols, s.workers, fn); failed > 0 {
		s.logger.Warn("job finished with failures", "job", job, "failed", failed, "symbols", len(symbols))
	}
}

func (s *Scheduler) applyTickFor(ctx context.Context, symbol string) error {
	stock, err := s.repo.Get(ctx, symbol)
	if err != nil {
		s.logger.Error("failed to load stock for tick", "symbol", symbol, "error", err)
		return err
	}

	tick, err := s.generator.Next(stock.CurrentPrice)
	if err != nil {
		s.logger.Error("skipping tick for symbol", "symbol", symbol, "error", err)
		return err
	}

	now := s.now()
	if err := s.series.ApplyTick(ctx, symbol, tick, now); err != nil {
		return s.dropConflict("tick", symbol, err)
	}

	event := model.FeedEvent{
		Symbol:    symbol,
		Price:     tick.Close,
		Candle:    tick,
		Timestamp: now,
	}
	if err := s.publisher.PublishTick(ctx, event); err != nil {
		s.logger.Error("failed to publish tick", "symbol", symbol, "error", err)
	}
	return nil
}

// dropConflict swallows a lost write race: the losing cycle is skipped
// silently and the next firing acts as the retry. Anything else is logged
// and counted against the firing.
func (s *Scheduler) dropConflict(job, symbol string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, model.ErrWriteConflict) {
		s.logger.Debug("skipping conflicting write", "job", job, "symbol", symbol)
		return nil
	}
	s.logger.Error("job failed for symbol", "job", job, "symbol", symbol, "error", err)
	return err
}
