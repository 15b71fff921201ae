package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/Harshitk-cp/nars/internal/api"
	"github.com/Harshitk-cp/nars/internal/buildconfig"
	"github.com/Harshitk-cp/nars/internal/config"
	"github.com/Harshitk-cp/nars/internal/store"
)

func main() {
	if err := config.Load(); err != nil {
		panic(err)
	}

	logCfg := zap.NewProductionConfig()
	if level, err := zap.ParseAtomicLevel(config.LogLevel()); err == nil {
		logCfg.Level = level
	}
	logger, err := logCfg.Build()
	if err != nil {
		panic(err)
	}
	defer func() { _ = logger.Sync() }()

	params, err := config.LoadParams()
	if err != nil {
		logger.Fatal("failed to load reasoning parameters", zap.Error(err))
	}

	ctx := context.Background()

	var pool *pgxpool.Pool
	if dbURL := config.DatabaseURL(); dbURL != "" {
		pool, err = pgxpool.New(ctx, dbURL)
		if err != nil {
			logger.Fatal("failed to connect to database", zap.Error(err))
		}
		defer pool.Close()

		if err := pool.Ping(ctx); err != nil {
			logger.Fatal("failed to ping database", zap.Error(err))
		}
		if err := store.NewOutputStore(pool).EnsureSchema(ctx); err != nil {
			logger.Fatal("failed to prepare output journal", zap.Error(err))
		}
		logger.Info("connected to database")
	} else {
		logger.Info("DATABASE_URL not set, output journal disabled")
	}

	seed := uint64(time.Now().UnixNano())
	app := api.NewApp(pool, params, seed, logger)
	app.Start()

	logger.Info("reasoner ready",
		zap.String("run_id", app.Reasoner.RunID()),
		zap.Uint64("seed", seed),
		zap.String("version", buildconfig.Version()))

	addr := config.ServerAddr()
	srv := &http.Server{
		Addr:              addr,
		Handler:           app.Router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		logger.Info("server starting", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("server failed", zap.Error(err))
		}
	}()

	<-quit
	logger.Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server forced to shutdown", zap.Error(err))
	}

	// Stop the worker after the HTTP surface so no input arrives mid-flush.
	app.Stop()

	logger.Info("server stopped", zap.Uint64("cycles", app.Reasoner.Cycle()))
}
