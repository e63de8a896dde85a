package factory

import (
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/mcoot/whoosh/internal/dependencies/clock"
	"github.com/mcoot/whoosh/internal/services/accounts"
	"github.com/mcoot/whoosh/internal/services/games"
	"github.com/mcoot/whoosh/internal/storage"
	"github.com/mcoot/whoosh/internal/storage/memory"
	redisstorage "github.com/mcoot/whoosh/internal/storage/redis"
	"github.com/mcoot/whoosh/internal/stubapi"
)

// Storage type constants for the stub backend
const (
	StorageTypeMemory = "memory"
	StorageTypeRedis  = "redis"
)

// Backend contains all wired stub backend components
type Backend struct {
	// Storage
	Storage storage.Storage

	// External dependencies
	Clock clock.Clock

	// Services
	AccountService *accounts.Service
	GameService    *games.Service

	Logger *slog.Logger
}

// BackendConfig holds configuration for the stub backend factory
type BackendConfig struct {
	// AccountsConfig holds token and password settings (optional)
	// If zero value, defaults to accounts.DefaultConfig()
	AccountsConfig accounts.Config
	// Logger is the backend logger (optional)
	// If nil, a no-op logger is used
	Logger *slog.Logger
	// StorageType selects the storage backend ("memory" or "redis")
	// If empty, defaults to "memory"
	StorageType string
	// RedisConfig holds Redis connection settings (required if StorageType is "redis")
	RedisConfig *redisstorage.Config
}

// NewBackend creates a stub backend with all dependencies wired
func NewBackend(cfg BackendConfig) (*Backend, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}

	var store storage.Storage
	storageType := cfg.StorageType
	if storageType == "" {
		storageType = StorageTypeMemory
	}

	switch storageType {
	case StorageTypeMemory:
		store = memory.New()
	case StorageTypeRedis:
		if cfg.RedisConfig == nil {
			return nil, errors.New("RedisConfig required when StorageType is redis")
		}
		redisStore, err := redisstorage.New(*cfg.RedisConfig)
		if err != nil {
			return nil, err
		}
		store = redisStore
	default:
		return nil, errors.New("invalid StorageType: must be 'memory' or 'redis'")
	}

	return newBackendWithDependencies(store, clock.New(), cfg.AccountsConfig, logger), nil
}

// newBackendWithDependencies creates a Backend with the given dependencies (useful for testing)
func newBackendWithDependencies(store storage.Storage, clk clock.Clock, accountsCfg accounts.Config, logger *slog.Logger) *Backend {
	return &Backend{
		Storage:        store,
		Clock:          clk,
		AccountService: accounts.New(store, clk, accountsCfg, logger),
		GameService:    games.New(store, clk, logger),
		Logger:         logger,
	}
}

// Handler returns the backend's HTTP handler
func (b *Backend) Handler() http.Handler {
	return stubapi.NewRouter(stubapi.RouterConfig{
		Logger:         b.Logger,
		AccountService: b.AccountService,
		GameService:    b.GameService,
	})
}

// Close releases connections held by the storage backend
func (b *Backend) Close() error {
	if c, ok := b.Storage.(io.Closer); ok {
		return c.Close()
	}
	return nil
}
