package redis

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/mcoot/whoosh/internal/model"
	"github.com/mcoot/whoosh/internal/storage"
)

// Storage is a Redis-backed implementation of the storage interface
type Storage struct {
	client *redis.Client
	cfg    Config
}

// New creates a new Redis storage instance
func New(cfg Config) (*Storage, error) {
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
		return nil, err
	}

	return &Storage{
		client: client,
		cfg:    cfg,
	}, nil
}

// NewWithClient creates a Redis storage with an existing client (for testing)
func NewWithClient(client *redis.Client, cfg Config) *Storage {
	return &Storage{
		client: client,
		cfg:    cfg,
	}
}

// Close closes the Redis connection
func (s *Storage) Close() error {
	return s.client.Close()
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

// User operations

func (s *Storage) SaveUser(ctx context.Context, user *model.User) error {
	data, err := json.Marshal(user)
	if err != nil {
		return err
	}

	prev, err := s.GetUser(ctx, user.ID)
	if err != nil && !errors.Is(err, model.ErrUserNotFound) {
		return err
	}

	// Guests expire unless converted; the indexes share the record's TTL
	var ttl time.Duration
	if user.IsGuest {
		ttl = s.cfg.GuestUserTTL
	}

	_, err = s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		if prev != nil {
			if prev.Username != user.Username {
				pipe.Del(ctx, usernameIndexKey(prev.Username))
			}
			if prev.Email != "" && prev.Email != user.Email {
				pipe.Del(ctx, emailIndexKey(prev.Email))
			}
		}
		pipe.Set(ctx, userKey(user.ID), data, ttl)
		pipe.Set(ctx, usernameIndexKey(user.Username), string(user.ID), ttl)
		if user.Email != "" {
			pipe.Set(ctx, emailIndexKey(user.Email), string(user.ID), ttl)
		}
		return nil
	})
	return err
}

func (s *Storage) GetUser(ctx context.Context, id model.UserID) (*model.User, error) {
	data, err := s.client.Get(ctx, userKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrUserNotFound
		}
		return nil, err
	}

	var user model.User
	if err := json.Unmarshal(data, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *Storage) GetUserByUsername(ctx context.Context, username string) (*model.User, error) {
	return s.getUserByIndex(ctx, usernameIndexKey(username))
}

func (s *Storage) GetUserByEmail(ctx context.Context, email string) (*model.User, error) {
	return s.getUserByIndex(ctx, emailIndexKey(email))
}

func (s *Storage) getUserByIndex(ctx context.Context, key string) (*model.User, error) {
	id, err := s.client.Get(ctx, key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrUserNotFound
		}
		return nil, err
	}
	return s.GetUser(ctx, model.UserID(id))
}

// Match operations

func (s *Storage) SaveMatch(ctx context.Context, match *model.Match) error {
	data, err := json.Marshal(match)
	if err != nil {
		return err
	}

	existed, err := s.client.Exists(ctx, matchKey(match.ID)).Result()
	if err != nil {
		return err
	}

	_, err = s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, matchKey(match.ID), data, 0)
		if existed == 0 {
			for _, p := range match.Participants {
				pipe.LPush(ctx, userMatchesKey(p.UserID), match.ID)
			}
		}
		return nil
	})
	return err
}

func (s *Storage) ListMatchesForUser(ctx context.Context, id model.UserID, limit int) ([]*model.Match, error) {
	if limit <= 0 {
		return []*model.Match{}, nil
	}

	ids, err := s.client.LRange(ctx, userMatchesKey(id), 0, int64(limit-1)).Result()
	if err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return []*model.Match{}, nil
	}

	keys := make([]string, len(ids))
	for i, matchID := range ids {
		keys[i] = matchKey(matchID)
	}

	values, err := s.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, err
	}

	matches := make([]*model.Match, 0, len(values))
	for _, v := range values {
		str, ok := v.(string)
		if !ok {
			continue // Match record missing
		}
		var m model.Match
		if err := json.Unmarshal([]byte(str), &m); err != nil {
			return nil, err
		}
		matches = append(matches, &m)
	}
	return matches, nil
}

// Matchmaking queue operations

func (s *Storage) Enqueue(ctx context.Context, queue string, id model.UserID) error {
	return s.client.LPush(ctx, queueKey(queue), string(id)).Err()
}

func (s *Storage) QueueLength(ctx context.Context, queue string) (int64, error) {
	return s.client.LLen(ctx, queueKey(queue)).Result()
}
