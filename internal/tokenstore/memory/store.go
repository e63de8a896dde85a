package memory

import (
	"context"
	"sync"

	"github.com/mcoot/whoosh/internal/model"
	"github.com/mcoot/whoosh/internal/tokenstore"
)

// Store is an in-memory token store
type Store struct {
	mu      sync.RWMutex
	entries map[string]string
}

// New creates an empty in-memory store
func New() *Store {
	return &Store{
		entries: make(map[string]string),
	}
}

// Ensure Store implements the interface
var _ tokenstore.Store = (*Store)(nil)

func (s *Store) Get(ctx context.Context) (model.TokenPair, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return model.TokenPair{
		AccessToken:  s.entries[model.AccessTokenKey],
		RefreshToken: s.entries[model.RefreshTokenKey],
	}, nil
}

func (s *Store) Set(ctx context.Context, access, refresh string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.put(model.AccessTokenKey, access)
	s.put(model.RefreshTokenKey, refresh)
	return nil
}

func (s *Store) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, model.AccessTokenKey)
	delete(s.entries, model.RefreshTokenKey)
	return nil
}

func (s *Store) put(key, value string) {
	if value == "" {
		delete(s.entries, key)
		return
	}
	s.entries[key] = value
}
