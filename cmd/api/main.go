package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jonboulle/clockwork"
	"go.uber.org/zap"

	"calculator-api/internal/cache"
	"calculator-api/internal/compute"
	"calculator-api/internal/config"
	"calculator-api/internal/observability"
	"calculator-api/internal/server"
)

func main() {

	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	// Logger
	if err := observability.InitLogger(cfg.LogLevel); err != nil {
		panic(err)
	}
	defer observability.SyncLogger()

	// Tracing, metrics and log export
	telemetryShutdown, err := initTelemetry(ctx, cfg)
	if err != nil {
		observability.Logger.Fatal("telemetry init failed", zap.Error(err))
	}
	defer telemetryShutdown(ctx)

	if err := initMetrics(); err != nil {
		observability.Logger.Fatal("metric instruments init failed", zap.Error(err))
	}

	// Result cache
	clock := clockwork.NewRealClock()
	results, closeCache, err := cache.Open(ctx, cache.Options{
		RedisURL: cfg.RedisURL,
		Size:     cfg.CacheSize,
		TTL:      cfg.CacheTTL,
		Clock:    clock,
	})
	if err != nil {
		observability.Logger.Fatal("result cache init failed", zap.Error(err))
	}
	defer closeCache()

	// Router
	svc := compute.NewService(results)
	router := server.NewRouter(compute.NewHandler(svc, clock), observability.NewRegistry())

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		observability.Logger.Info("server started",
			zap.String("addr", srv.Addr),
			zap.String("cache", svc.CacheName()),
			zap.Bool("otel", cfg.OTelEnabled),
		)

		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			observability.Logger.Fatal("server failed", zap.Error(err))
		}
	}()

	waitForShutdown(srv, cfg.ShutdownTimeout)
}

func waitForShutdown(srv *http.Server, timeout time.Duration) {

	stop := make(chan os.Signal, 1)

	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	<-stop

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		observability.Logger.Error("server shutdown failed", zap.Error(err))
	}
	observability.Logger.Info("server stopped")
}
