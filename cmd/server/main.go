package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"pickup-route-service/internal/api"
	"pickup-route-service/internal/app"
	"pickup-route-service/internal/config"
	"pickup-route-service/internal/platform/logger"
	"pickup-route-service/internal/platform/metrics"
	"syscall"
	"time"

	"go.uber.org/zap"
)

// main is the application composition root.
// It wires concrete adapters (files, HTTP archives, Postgres) behind ports and starts the HTTP server.
func main() {
	loadedEnv, envErr := config.LoadDotEnv()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	log, err := logger.New(cfg.Env, cfg.LogLevel)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	if envErr != nil {
		log.Warn("could not read .env file", zap.Error(envErr))
	} else if !loadedEnv {
		log.Info("no .env file found (using environment variables)")
	}

	ctx := logger.WithContext(context.Background(), log)

	components, err := app.Build(ctx, cfg, log)
	if err != nil {
		log.Fatal("startup failed", zap.Error(err))
	}
	defer components.Close()

	metrics.Register()

	router := api.NewRouter(api.RouterDeps{
		Partitions: components.Partitions,
		Catalog:    components.Catalog,
		Cache:      components.Cache,
		Robot:      components.Robot,
		Logger:     log,
	})

	// Route search is CPU bound and grows factorially with the pickup count;
	// the write timeout leaves room for the largest allowed order.
	addr := fmt.Sprintf(":%d", cfg.Port)
	srv := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      120 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	go func() {
		log.Info("server listening", zap.String("addr", addr), zap.String("env", cfg.Env))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("http server error", zap.Error(err))
		}
	}()

	<-quit
	log.Info("received shutdown signal")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("error during shutdown", zap.Error(err))
	}
	log.Info("server stopped")
}
