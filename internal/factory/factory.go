package factory

import (
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/mcoot/whoosh/internal/client"
	"github.com/mcoot/whoosh/internal/dependencies/clock"
	"github.com/mcoot/whoosh/internal/tokenstore"
	"github.com/mcoot/whoosh/internal/tokenstore/file"
	"github.com/mcoot/whoosh/internal/tokenstore/memory"
	redisstore "github.com/mcoot/whoosh/internal/tokenstore/redis"
	"github.com/mcoot/whoosh/internal/ui"
)

// Token store type constants
const (
	StoreTypeMemory = "memory"
	StoreTypeFile   = "file"
	StoreTypeRedis  = "redis"
)

// App contains all wired client components
type App struct {
	// Storage
	Store tokenstore.Store

	// External dependencies
	Clock clock.Clock

	Client *client.Client
	Logger *slog.Logger

	closers []io.Closer
}

// Config holds configuration for the application factory
type Config struct {
	// StoreType selects the token store ("memory", "file" or "redis")
	// If empty, defaults to "memory"
	StoreType string
	// TokenFile is the token document path (required if StoreType is "file")
	TokenFile string
	// RedisConfig holds Redis connection settings (required if StoreType is "redis")
	RedisConfig *redisstore.Config
	// ClientConfig configures the API client. Its Logger defaults to Logger.
	ClientConfig client.Config
	// Logger is the application logger (optional)
	// If nil, a no-op logger is used
	Logger *slog.Logger
}

// New creates a new application with all dependencies wired
func New(cfg Config) (*App, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	var (
		store   tokenstore.Store
		closers []io.Closer
	)
	storeType := cfg.StoreType
	if storeType == "" {
		storeType = StoreTypeMemory
	}

	switch storeType {
	case StoreTypeMemory:
		store = memory.New()
	case StoreTypeFile:
		if cfg.TokenFile == "" {
			return nil, errors.New("TokenFile required when StoreType is file")
		}
		store = file.New(cfg.TokenFile)
	case StoreTypeRedis:
		if cfg.RedisConfig == nil {
			return nil, errors.New("RedisConfig required when StoreType is redis")
		}
		redisStore, err := redisstore.New(*cfg.RedisConfig)
		if err != nil {
			return nil, fmt.Errorf("failed to open redis token store: %w", err)
		}
		store = redisStore
		closers = append(closers, redisStore)
	default:
		return nil, fmt.Errorf("invalid StoreType %q: must be 'memory', 'file' or 'redis'", storeType)
	}

	app := newWithDependencies(store, clock.New(), cfg.ClientConfig, logger)
	app.closers = closers
	return app, nil
}

// newWithDependencies creates an App with the given dependencies (useful for testing)
func newWithDependencies(store tokenstore.Store, clk clock.Clock, clientCfg client.Config, logger *slog.Logger) *App {
	if clientCfg.Logger == nil {
		clientCfg.Logger = logger
	}

	return &App{
		Store:  store,
		Clock:  clk,
		Client: client.New(store, clientCfg),
		Logger: logger,
	}
}

// Controller creates a UI controller rendering to view
func (a *App) Controller(view ui.View) *ui.Controller {
	return ui.New(a.Client, view, a.Clock, a.Logger)
}

// Close releases connections held by the token store
func (a *App) Close() error {
	var errs []error
	for _, c := range a.closers {
		errs = append(errs, c.Close())
	}
	return errors.Join(errs...)
}
