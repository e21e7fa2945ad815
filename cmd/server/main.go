package main // Entry point package

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/iliyamo/kids-center-booking/internal/catalog"
	"github.com/iliyamo/kids-center-booking/internal/config"
	"github.com/iliyamo/kids-center-booking/internal/database"
	"github.com/iliyamo/kids-center-booking/internal/handler"
	applog "github.com/iliyamo/kids-center-booking/internal/log"
	"github.com/iliyamo/kids-center-booking/internal/repository"
	"github.com/iliyamo/kids-center-booking/internal/router"
	"github.com/iliyamo/kids-center-booking/internal/service"
)

func main() {
	// A missing .env is normal in containers.
	_ = godotenv.Load()

	cfg := config.Load()
	applog.Configure(applog.Config{Level: cfg.LogLevel, Service: "kids-center"})
	logger := applog.WithComponent("server")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	store, closeStore := openStore(cfg)
	defer closeStore()

	rdb := config.NewRedisClient()
	if rdb != nil {
		defer func() { _ = rdb.Close() }()
	} else {
		logger.Info().Msg("redis not configured or unreachable; cache and rate limit disabled")
	}

	deps := router.Deps{
		Catalog:   catalog.New(),
		Store:     store,
		Redis:     rdb,
		Cache:     config.LoadCacheConfig(),
		RateLimit: config.LoadRateLimitConfig(),
		Env: handler.DiagnosticsEnv{
			DatabaseURLSet:  cfg.DatabaseURL != "",
			DatabaseNameSet: cfg.DatabaseName != "",
		},
	}
	// Keep Events a nil interface when the broker is not configured.
	if pub := service.NewBookingPublisher(cfg.RabbitURL); pub != nil {
		deps.Events = pub
	}

	e := router.NewServer(deps)
	addr := ":" + cfg.Port
	logger.Info().Str("addr", addr).Str("env", cfg.Env).Msg("listening")

	go func() {
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error().Err(err).Msg("server stopped")
			stop()
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("graceful shutdown failed")
	}
	logger.Info().Msg("bye")
}

// openStore connects to the configured booking store.  Any failure leaves
// the service running catalog-only with an Unavailable store that reports
// the reason.
func openStore(cfg config.Config) (router.Store, func()) {
	logger := applog.WithComponent("store")
	noop := func() {}
	if !cfg.StoreConfigured() {
		logger.Warn().Msg("DATABASE_URL or DATABASE_NAME not set; bookings disabled")
		return repository.Unavailable{}, noop
	}

	backend, err := database.BackendOf(cfg.DatabaseURL)
	if err != nil {
		logger.Error().Err(err).Msg("bookings disabled")
		return repository.Unavailable{Reason: err}, noop
	}

	switch backend {
	case database.BackendMySQL:
		db, err := database.OpenMySQL(cfg.DatabaseURL, cfg.DatabaseName, cfg.ConnectTimeout)
		if err != nil {
			logger.Error().Err(err).Msg("mysql connect failed; bookings disabled")
			return repository.Unavailable{Reason: fmt.Errorf("database connection failed: %w", err)}, noop
		}
		repo := repository.NewBookingMySQLRepo(db, cfg.DatabaseName)
		sctx, cancel := context.WithTimeout(context.Background(), cfg.ConnectTimeout)
		defer cancel()
		if err := repo.EnsureSchema(sctx); err != nil {
			_ = db.Close()
			logger.Error().Err(err).Msg("mysql schema setup failed; bookings disabled")
			return repository.Unavailable{Reason: fmt.Errorf("database schema setup failed: %w", err)}, noop
		}
		logger.Info().Str("backend", backend).Str("database", cfg.DatabaseName).Msg("store connected")
		return repo, func() { _ = db.Close() }
	default:
		client, db, err := database.OpenMongo(cfg.DatabaseURL, cfg.DatabaseName, cfg.ConnectTimeout)
		if err != nil {
			logger.Error().Err(err).Msg("mongo connect failed; bookings disabled")
			return repository.Unavailable{Reason: fmt.Errorf("database connection failed: %w", err)}, noop
		}
		logger.Info().Str("backend", backend).Str("database", cfg.DatabaseName).Msg("store connected")
		return repository.NewBookingMongoRepo(db), func() {
			dctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = client.Disconnect(dctx)
		}
	}
}
