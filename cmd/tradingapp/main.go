package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hitulnayakpara1412/TradingApp/internal/adapter/archive"
	"github.com/hitulnayakpara1412/TradingApp/internal/adapter/handler"
	"github.com/hitulnayakpara1412/TradingApp/internal/adapter/publisher"
	"github.com/hitulnayakpara1412/TradingApp/internal/adapter/repository"
	"github.com/hitulnayakpara1412/TradingApp/internal/application/scheduler"
	"github.com/hitulnayakpara1412/TradingApp/internal/application/series"
	"github.com/hitulnayakpara1412/TradingApp/internal/application/session"
	"github.com/hitulnayakpara1412/TradingApp/internal/application/tickgen"
	"github.com/hitulnayakpara1412/TradingApp/internal/application/usecase"
	"github.com/hitulnayakpara1412/TradingApp/internal/domain/model"
	"github.com/hitulnayakpara1412/TradingApp/internal/domain/port"
	"github.com/hitulnayakpara1412/TradingApp/internal/infrastructure/config"
	"github.com/hitulnayakpara1412/TradingApp/internal/infrastructure/logger"
	"github.com/hitulnayakpara1412/TradingApp/internal/infrastructure/server"
)

var (
	portFlag = flag.Int("port", 0, "Port number")
	helpFlag = flag.Bool("help", false, "Show help")
)

func main() {
	flag.Parse()

	if *helpFlag {
		printUsage()
		os.Exit(0)
	}

	cfgPath := "configs/config.yaml"
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		cfgPath = v
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Invalid config: %v\n", err)
		os.Exit(1)
	}

	if *portFlag != 0 {
		cfg.Server.Port = *portFlag
	}

	log := logger.New(cfg.Logging.Level, cfg.Logging.Format)
	log.Info("starting trading feed engine", "storage", cfg.Storage.Mode)

	var repo port.SymbolRepository
	if cfg.Storage.Mode == "redis" {
		redisRepo, err := repository.NewRedisRepository(cfg.RedisAddr(), cfg.Redis.Password, cfg.Redis.DB)
		if err != nil {
			log.Error("failed to initialize redis repository", "error", err)
			os.Exit(1)
		}
		repo = redisRepo
	} else {
		repo = repository.NewMemoryRepository()
	}
	defer repo.Close()

	var candleArchive port.CandleArchive
	if cfg.PostgreSQL.Enabled {
		pg, err := archive.NewPostgresArchive(cfg.PostgresDSN())
		if err != nil {
			log.Error("failed to initialize postgres archive", "error", err)
			os.Exit(1)
		}
		if err := pg.InitSchema(context.Background()); err != nil {
			log.Error("failed to initialize archive schema", "error", err)
			os.Exit(1)
		}
		candleArchive = pg
	} else {
		candleArchive = archive.NewNoopArchive()
	}
	defer candleArchive.Close()

	var feedPublisher port.FeedPublisher
	if cfg.Kafka.Enabled {
		kp, err := publisher.NewKafkaPublisher(cfg.Kafka.BrokerURL, cfg.Kafka.Topic)
		if err != nil {
			log.Error("failed to initialize kafka publisher", "error", err)
			os.Exit(1)
		}
		feedPublisher = kp
	} else {
		feedPublisher = publisher.NewNoopPublisher()
	}
	defer feedPublisher.Close()

	clock := session.NewClock(session.Window{
		OpenHour:    cfg.Session.OpenHour,
		OpenMinute:  cfg.Session.OpenMinute,
		CloseHour:   cfg.Session.CloseHour,
		CloseMinute: cfg.Session.CloseMinute,
	}, cfg.Session.Holidays, cfg.Location())

	generator := tickgen.New(tickgen.Config{
		MinChange: cfg.Generator.MinChange,
		MaxChange: cfg.Generator.MaxChange,
		TrendBias: cfg.Generator.TrendBias,
		TinyWick:  cfg.Generator.TinyWick,
		SmallWick: cfg.Generator.SmallWick,
		LongWick:  cfg.Generator.LongWick,
	}, nil)

	seriesService := series.NewService(repo, candleArchive, log, series.Options{
		WindowSize:  cfg.Engine.WindowSize,
		Bucket:      time.Minute,
		AmendJitter: cfg.Generator.AmendJitter,
	}, nil)

	stockUseCase := usecase.NewStockUseCase(repo)
	seedStocks(log, stockUseCase, cfg.Seed)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sched := scheduler.New(ctx, clock, generator, seriesService, repo, feedPublisher, log, cfg.Engine.Workers)
	if err := sched.RegisterAll(cfg.Schedule.TickCron, cfg.Schedule.RollupCron, cfg.Schedule.ResetCron); err != nil {
		log.Error("failed to register cron jobs", "error", err)
		os.Exit(1)
	}
	sched.Start()
	defer sched.Stop()

	stockHandler := handler.NewStockHandler(stockUseCase, log)
	feedHandler := handler.NewFeedHandler(stockUseCase, log, cfg.Engine.PushInterval)
	healthHandler := handler.NewHealthHandler(repo, candleArchive, log)

	mux := http.NewServeMux()
	mux.HandleFunc("POST /stocks/register", stockHandler.Register)
	mux.HandleFunc("GET /stocks", stockHandler.List)
	mux.HandleFunc("GET /stocks/stock", stockHandler.GetBySymbol)
	mux.HandleFunc("GET /feed", feedHandler.Serve)
	mux.HandleFunc("GET /health", healthHandler.Check)

	srv := server.NewServer(cfg.Server.Port, mux, log)
	go func() {
		if err := srv.Start(); err != nil && err != http.ErrServerClosed {
			log.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	log.Info("shutting down gracefully")
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("shutdown error", "error", err)
	}

	log.Info("shutdown complete")
}

// seedStocks registers the configured instruments; already-registered
// symbols are left untouched.
func seedStocks(log *slog.Logger, uc *usecase.StockUseCase, seeds []config.SeedStock) {
	for _, seed := range seeds {
		_, err := uc.Register(context.Background(), seed.Symbol, seed.CompanyName, seed.IconURL, seed.Price, seed.Price)
		if err != nil {
			if errors.Is(err, model.ErrSymbolExists) {
				continue
			}
			log.Warn("failed to seed stock", "symbol", seed.Symbol, "error", err)
			continue
		}
		log.Info("seeded stock", "symbol", seed.Symbol, "price", seed.Price)
	}
}

func printUsage() {
	fmt.Println("Usage:")
	fmt.Println("  tradingapp [--port <N>]")
	fmt.Println("  tradingapp --help")
	fmt.Println()
	fmt.Println("Options:")
	fmt.Println("  --port N     Port number")
}
