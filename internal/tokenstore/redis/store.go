package redis

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/mcoot/whoosh/internal/model"
	"github.com/mcoot/whoosh/internal/tokenstore"
)

// Store is a Redis-backed token store. The pair lives in one hash whose
// fields are the fixed token keys.
type Store struct {
	client *redis.Client
	cfg    Config
}

// New creates a new Redis token store
func New(cfg Config) (*Store, error) {
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, err
	}

	opts.PoolSize = cfg.PoolSize
	opts.MinIdleConns = cfg.MinIdleConns

	client := redis.NewClient(opts)

	// Verify connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, err
	}

	return NewWithClient(client, cfg), nil
}

// NewWithClient creates a Redis store with an existing client (for testing)
func NewWithClient(client *redis.Client, cfg Config) *Store {
	if cfg.Profile == "" {
		cfg.Profile = DefaultConfig().Profile
	}
	return &Store{
		client: client,
		cfg:    cfg,
	}
}

// Close closes the Redis connection
func (s *Store) Close() error {
	return s.client.Close()
}

// Ensure Store implements the interface
var _ tokenstore.Store = (*Store)(nil)

func (s *Store) Get(ctx context.Context) (model.TokenPair, error) {
	values, err := s.client.HMGet(ctx, tokensKey(s.cfg.Profile), model.AccessTokenKey, model.RefreshTokenKey).Result()
	if err != nil {
		return model.TokenPair{}, err
	}

	return model.TokenPair{
		AccessToken:  asString(values[0]),
		RefreshToken: asString(values[1]),
	}, nil
}

func (s *Store) Set(ctx context.Context, access, refresh string) error {
	key := tokensKey(s.cfg.Profile)

	// Replace the whole pair in one transaction
	_, err := s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Del(ctx, key)

		fields := make(map[string]any, 2)
		if access != "" {
			fields[model.AccessTokenKey] = access
		}
		if refresh != "" {
			fields[model.RefreshTokenKey] = refresh
		}
		if len(fields) == 0 {
			return nil
		}
		pipe.HSet(ctx, key, fields)

		if s.cfg.TokenTTL > 0 {
			pipe.Expire(ctx, key, s.cfg.TokenTTL)
		}
		return nil
	})
	return err
}

func (s *Store) Clear(ctx context.Context) error {
	return s.client.Del(ctx, tokensKey(s.cfg.Profile)).Err()
}

func asString(v any) string {
	if v == nil {
		return "" // Field missing
	}
	str, _ := v.(string)
	return str
}
