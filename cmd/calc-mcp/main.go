package main

import (
	"context"
	"flag"
	"time"

	"github.com/mark3labs/mcp-go/server"
	"go.uber.org/zap"

	"calculator-api/internal/cache"
	"calculator-api/internal/compute"
	"calculator-api/internal/mcptools"
	"calculator-api/internal/observability"
)

const (
	serverName    = "calculator-api"
	serverVersion = "0.1.0"
)

func main() {
	var (
		redisURL  = flag.String("redis-url", "", "Redis URL for the result cache (in-memory when empty)")
		cacheSize = flag.Int("cache-size", 4096, "Maximum in-memory cache entries")
		cacheTTL  = flag.Duration("cache-ttl", time.Hour, "Result cache entry lifetime")
		logLevel  = flag.String("log-level", "info", "Log level (debug, info, warn, error)")
	)
	flag.Parse()

	// zap's production config writes to stderr, leaving stdout to the
	// stdio transport.
	if err := observability.InitLogger(*logLevel); err != nil {
		panic(err)
	}
	defer observability.SyncLogger()

	ctx := context.Background()

	results, closeCache, err := cache.Open(ctx, cache.Options{
		RedisURL: *redisURL,
		Size:     *cacheSize,
		TTL:      *cacheTTL,
	})
	if err != nil {
		observability.Logger.Fatal("result cache init failed", zap.Error(err))
	}
	defer closeCache()

	svc := compute.NewService(results)
	s := mcptools.NewServer(serverName, serverVersion, svc)

	observability.Logger.Info("mcp server starting", zap.String("cache", svc.CacheName()))

	if err := server.ServeStdio(s); err != nil {
		observability.Logger.Error("mcp server failed", zap.Error(err))
	}
}
