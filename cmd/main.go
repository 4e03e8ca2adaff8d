package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	goredis "github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	httpadapter "marketplace-ads/internal/adapter/http"
	"marketplace-ads/internal/adapter/kafka"
	"marketplace-ads/internal/adapter/memory"
	"marketplace-ads/internal/adapter/postgres"
	"marketplace-ads/internal/adapter/redis"
	"marketplace-ads/internal/adapter/rules"
	"marketplace-ads/internal/adapter/usecase"
	"marketplace-ads/internal/async"
	"marketplace-ads/internal/config"
	"marketplace-ads/internal/config/configs"
	"marketplace-ads/internal/core/eligibility"
	"marketplace-ads/internal/core/port"
	"marketplace-ads/internal/core/revenue"
	"marketplace-ads/internal/core/scoring"
	"marketplace-ads/internal/db"
	"marketplace-ads/internal/metrics"
	"marketplace-ads/internal/tracing"
)

// main loads configuration, builds the store and the ad engine, then serves
// HTTP until SIGINT or SIGTERM.
func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", slog.Any("error", err))
		os.Exit(1)
	}

	var logger *slog.Logger
	{
		var handler slog.Handler
		opts := cfg.Log.HandlerOptions()
		switch cfg.Log.SlogFormat() {
		case "json":
			handler = slog.NewJSONHandler(os.Stdout, opts)
		default:
			handler = slog.NewTextHandler(os.Stdout, opts)
		}
		logger = slog.New(handler).With(slog.String("env", cfg.Env))
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err = run(ctx, cfg, logger); err != nil {
		logger.Error("service stopped", slog.Any("error", err))
		os.Exit(1)
	}
	logger.Info("service gracefully stopped")
}

func run(ctx context.Context, cfg config.Config, logger *slog.Logger) error {
	shutdownTracing := func(context.Context) error { return nil }
	if cfg.Tracing.Enabled {
		shutdown, err := tracing.InitTracerProvider(cfg.Tracing.ServiceName, cfg.Tracing.JaegerEndpoint, logger)
		if err != nil {
			return fmt.Errorf("init tracing: %w", err)
		}
		shutdownTracing = shutdown
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.New(reg)
	tasks := async.NewRunner(logger, cfg.Ledger.NotifyTimeout, m)

	store, health, closeStore, err := openStore(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer closeStore()

	var reader port.CampaignReader = store
	if cfg.Redis.Enabled {
		client := goredis.NewClient(&goredis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer client.Close()
		reader = redis.NewCampaignCache(store, client, cfg.Redis.CacheTTL, logger)
		logger.Info("campaign cache enabled", slog.String("addr", cfg.Redis.Addr))
	}

	var notifier port.Notifier = kafka.NewLogNotifier(logger)
	if len(cfg.Kafka.Brokers) > 0 {
		w := kafka.NewWriter(cfg.Kafka.Brokers, cfg.Kafka.NotificationTopic)
		defer w.Close()
		notifier = kafka.NewNotifier(w)
	}

	engine, err := rules.NewCELEngine(logger)
	if err != nil {
		return fmt.Errorf("rule engine: %w", err)
	}
	revCfg, err := revenue.LoadConfig(cfg.Revenue.ConfigFile)
	if err != nil {
		return err
	}
	calc := revenue.NewCalculator(revCfg)
	loc, err := cfg.Ledger.Location()
	if err != nil {
		return err
	}

	tiers := scoring.Tiers{NewCampaignWindow: cfg.Selector.NewCampaignWindow}
	for _, v := range cfg.Selector.BudgetTiers {
		tiers.BudgetThresholds = append(tiers.BudgetThresholds, decimal.NewFromFloat(v))
	}

	ledger := usecase.NewLedger(store, store, notifier, engine, tasks, m, logger, usecase.LedgerConfig{
		MaxRetries:   cfg.Ledger.MaxRetries,
		RetryBackoff: cfg.Ledger.RetryBackoff,
		Location:     loc,
	})
	selector := usecase.NewSelector(reader, store, eligibility.New(engine, loc), scoring.NewTimeSeededRand(),
		tasks, m, logger, usecase.SelectorConfig{
			BaseURL:  cfg.Selector.BaseURL,
			MaxCount: cfg.Selector.MaxCount,
			Tiers:    tiers,
		})
	tracker := usecase.NewTracker(store, store, store, ledger, calc, logger)

	var limiter *rate.Limiter
	if cfg.Rate.Limit > 0 {
		limiter = rate.NewLimiter(rate.Limit(cfg.Rate.Limit), cfg.Rate.Burst)
	}
	if cfg.Auth.JWTSecret == "" {
		logger.Warn("AUTH_JWT_SECRET is empty, campaign endpoints will reject every request")
	}

	handler := httpadapter.NewHandler(httpadapter.Deps{
		Selector:  selector,
		Tracker:   tracker,
		Campaigns: ledger,
		Reader:    store,
		Revenue:   calc,
		Auth:      httpadapter.NewAuthenticator(cfg.Auth.JWTSecret),
		Limiter:   limiter,
		Metrics:   m,
		Gatherer:  reg,
		Health:    health,
	}, logger)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.HTTP.Port),
		Handler:      handler.Router(),
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("server listening", slog.Int("port", int(cfg.HTTP.Port)), slog.String("store", cfg.Store.Driver))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		sctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), cfg.HTTP.ShutdownTimeout)
		defer cancel()

		var errs []error
		if err := srv.Shutdown(sctx); err != nil {
			errs = append(errs, fmt.Errorf("server shutdown: %w", err))
		}
		if err := tasks.Wait(sctx); err != nil {
			errs = append(errs, fmt.Errorf("background tasks: %w", err))
		}
		if err := shutdownTracing(sctx); err != nil {
			errs = append(errs, fmt.Errorf("tracing shutdown: %w", err))
		}
		return errors.Join(errs...)
	})
	return g.Wait()
}

// openStore builds the configured campaign store. The returned health check
// and close function are never nil.
func openStore(ctx context.Context, cfg config.Config, logger *slog.Logger) (port.CampaignStore, func(context.Context) error, func(), error) {
	if cfg.Store.Driver == configs.StoreDriverMemory {
		st := memory.New()
		if err := loadFixtures(st, db.DemoFixtures(time.Now())); err != nil {
			return nil, nil, nil, fmt.Errorf("load demo data: %w", err)
		}
		logger.Info("using in-memory store with demo data")
		return st, func(context.Context) error { return nil }, func() {}, nil
	}

	if cfg.Psql.RunMigrations {
		if err := db.Migrate(cfg.Psql.Addr.String()); err != nil {
			return nil, nil, nil, fmt.Errorf("migrate: %w", err)
		}
		logger.Info("migrations applied successfully")
	}

	pool, err := db.NewPostgresPool(ctx, cfg.Psql)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("database connection: %w", err)
	}
	if cfg.Psql.Seed {
		if err = db.Seed(ctx, pool, db.DemoFixtures(time.Now())); err != nil {
			pool.Close()
			return nil, nil, nil, fmt.Errorf("seed: %w", err)
		}
		logger.Info("demo data seeded")
	}
	return postgres.NewCampaignStore(pool), pool.Ping, pool.Close, nil
}

func loadFixtures(st *memory.Store, fx db.Fixtures) error {
	for _, a := range fx.Advertisers {
		st.PutAdvertiser(a)
	}
	for _, c := range fx.Campaigns {
		if err := st.PutCampaign(c); err != nil {
			return err
		}
	}
	for _, s := range fx.Slots {
		st.PutSlot(s)
	}
	return nil
}
