package file

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/mcoot/whoosh/internal/model"
)

type StoreSuite struct {
	suite.Suite
	path  string
	store *Store
	ctx   context.Context
}

func TestStoreSuite(t *testing.T) {
	suite.Run(t, new(StoreSuite))
}

func (s *StoreSuite) SetupTest() {
	s.path = filepath.Join(s.T().TempDir(), "nested", "tokens.json")
	s.store = New(s.path)
	s.ctx = context.Background()
}

func (s *StoreSuite) TestGetWithoutFile() {
	tokens, err := s.store.Get(s.ctx)
	s.Require().NoError(err)
	s.Equal(model.TokenPair{}, tokens)
}

func (s *StoreSuite) TestSetThenGet() {
	s.Require().NoError(s.store.Set(s.ctx, "a", "b"))

	tokens, err := s.store.Get(s.ctx)
	s.Require().NoError(err)
	s.Equal(model.TokenPair{AccessToken: "a", RefreshToken: "b"}, tokens)
}

func (s *StoreSuite) TestSurvivesNewInstance() {
	_ = s.store.Set(s.ctx, "a", "b")

	reopened := New(s.path)
	tokens, err := reopened.Get(s.ctx)
	s.Require().NoError(err)
	s.Equal("a", tokens.AccessToken)
	s.Equal("b", tokens.RefreshToken)
}

func (s *StoreSuite) TestFileUsesFixedKeys() {
	_ = s.store.Set(s.ctx, "a", "b")

	data, err := os.ReadFile(s.path)
	s.Require().NoError(err)
	s.Contains(string(data), `"access_token": "a"`)
	s.Contains(string(data), `"refresh_token": "b"`)
}

func (s *StoreSuite) TestFilePermissions() {
	_ = s.store.Set(s.ctx, "a", "b")

	info, err := os.Stat(s.path)
	s.Require().NoError(err)
	s.Equal(os.FileMode(0600), info.Mode().Perm())
}

func (s *StoreSuite) TestClear() {
	_ = s.store.Set(s.ctx, "a", "b")

	s.Require().NoError(s.store.Clear(s.ctx))

	tokens, err := s.store.Get(s.ctx)
	s.Require().NoError(err)
	s.False(tokens.HasAccess())
	s.False(tokens.HasRefresh())

	_, err = os.Stat(s.path)
	s.True(os.IsNotExist(err))
}

func (s *StoreSuite) TestClearWithoutFile() {
	s.NoError(s.store.Clear(s.ctx))
}

func (s *StoreSuite) TestCorruptFile() {
	s.Require().NoError(os.MkdirAll(filepath.Dir(s.path), 0700))
	s.Require().NoError(os.WriteFile(s.path, []byte("{not json"), 0600))

	_, err := s.store.Get(s.ctx)
	s.Error(err)
}
