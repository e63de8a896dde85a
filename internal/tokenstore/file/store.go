package file

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/mcoot/whoosh/internal/model"
	"github.com/mcoot/whoosh/internal/tokenstore"
)

// Store keeps the token pair in a JSON file readable only by the current user
type Store struct {
	path string
	mu   sync.Mutex
}

// New creates a file-backed store. The file is created on first Set.
func New(path string) *Store {
	return &Store{path: path}
}

// Ensure Store implements the interface
var _ tokenstore.Store = (*Store)(nil)

// Path returns the backing file path
func (s *Store) Path() string {
	return s.path
}

// document is the on-disk layout, keyed by model.AccessTokenKey and model.RefreshTokenKey
type document map[string]string

func (s *Store) Get(ctx context.Context) (model.TokenPair, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.read()
	if err != nil {
		return model.TokenPair{}, err
	}
	return model.TokenPair{
		AccessToken:  doc[model.AccessTokenKey],
		RefreshToken: doc[model.RefreshTokenKey],
	}, nil
}

func (s *Store) Set(ctx context.Context, access, refresh string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc := document{}
	if access != "" {
		doc[model.AccessTokenKey] = access
	}
	if refresh != "" {
		doc[model.RefreshTokenKey] = refresh
	}
	return s.write(doc)
}

func (s *Store) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.Remove(s.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to remove token file: %w", err)
	}
	return nil
}

func (s *Store) read() (document, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return document{}, nil // No token file is fine
		}
		return nil, fmt.Errorf("failed to read token file: %w", err)
	}

	doc := document{}
	if len(data) == 0 {
		return doc, nil
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse token file: %w", err)
	}
	return doc, nil
}

// write replaces the file atomically so a crash never leaves half a token pair
func (s *Store) write(doc document) error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create token directory: %w", err)
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, ".tokens-*")
	if err != nil {
		return fmt.Errorf("failed to create token file: %w", err)
	}
	tmpName := tmp.Name()
	defer func() { _ = os.Remove(tmpName) }()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("failed to write token file: %w", err)
	}
	if err := tmp.Chmod(0600); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("failed to write token file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to write token file: %w", err)
	}

	if err := os.Rename(tmpName, s.path); err != nil {
		return fmt.Errorf("failed to write token file: %w", err)
	}
	return nil
}
