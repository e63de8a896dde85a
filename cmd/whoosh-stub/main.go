package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/mcoot/whoosh/internal/factory"
	"github.com/mcoot/whoosh/internal/services/accounts"
	redisstorage "github.com/mcoot/whoosh/internal/storage/redis"
	"github.com/mcoot/whoosh/internal/stubapi"
)

func main() {
	// A missing .env is fine
	_ = godotenv.Load()

	// Set up logging with JSON output
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	accountsCfg := accounts.DefaultConfig()
	accountsCfg.Secret = getEnvOrDefault("STUB_JWT_SECRET", accountsCfg.Secret)
	accountsCfg.AccessTTL = getDurationOrDefault("STUB_ACCESS_TTL", accountsCfg.AccessTTL)
	accountsCfg.RefreshTTL = getDurationOrDefault("STUB_REFRESH_TTL", accountsCfg.RefreshTTL)

	// Build factory config from environment
	cfg := factory.BackendConfig{
		AccountsConfig: accountsCfg,
		Logger:         logger,
		StorageType:    os.Getenv("STORAGE_TYPE"),
	}

	// Configure Redis if storage type is redis
	if cfg.StorageType == factory.StorageTypeRedis {
		redisURL := os.Getenv("REDIS_URL")
		if redisURL == "" {
			logger.Error("REDIS_URL required when STORAGE_TYPE=redis")
			os.Exit(1)
		}
		redisCfg := redisstorage.DefaultConfig()
		redisCfg.URL = redisURL
		cfg.RedisConfig = &redisCfg
	}

	backend, err := factory.NewBackend(cfg)
	if err != nil {
		logger.Error("failed to create backend", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Create server
	serverConfig := stubapi.DefaultServerConfig()
	serverConfig.Addr = getEnvOrDefault("STUB_ADDR", serverConfig.Addr)
	server := stubapi.NewServer(backend.Handler(), serverConfig, logger)

	// Handle graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Start server in goroutine
	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Start()
	}()

	// Wait for shutdown or error
	select {
	case err := <-errCh:
		if err != nil {
			logger.Error("server error", slog.String("error", err.Error()))
			os.Exit(1)
		}
	case <-ctx.Done():
		logger.Info("shutdown signal received")
		if err := server.Shutdown(context.Background()); err != nil {
			logger.Error("shutdown error", slog.String("error", err.Error()))
			os.Exit(1)
		}
	}

	if err := backend.Close(); err != nil {
		logger.Warn("failed to close storage", slog.String("error", err.Error()))
	}
	logger.Info("stub backend stopped")
}

func getEnvOrDefault(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func getDurationOrDefault(key string, defaultVal time.Duration) time.Duration {
	if d, err := time.ParseDuration(os.Getenv(key)); err == nil && d > 0 {
		return d
	}
	return defaultVal
}
