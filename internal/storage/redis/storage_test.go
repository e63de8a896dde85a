package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/suite"

	"github.com/mcoot/whoosh/internal/model"
	"github.com/mcoot/whoosh/internal/storage/storagetest"
)

type StorageSuite struct {
	storagetest.Suite
	mini    *miniredis.Miniredis
	storage *Storage
}

func TestStorageSuite(t *testing.T) {
	suite.Run(t, new(StorageSuite))
}

func (s *StorageSuite) SetupTest() {
	s.mini = miniredis.RunT(s.T())

	client := redis.NewClient(&redis.Options{
		Addr: s.mini.Addr(),
	})

	cfg := DefaultConfig()
	cfg.GuestUserTTL = time.Hour

	s.storage = NewWithClient(client, cfg)
	s.Storage = s.storage
	s.Ctx = context.Background()
}

func (s *StorageSuite) TearDownTest() {
	if s.storage != nil {
		_ = s.storage.Close()
	}
	if s.mini != nil {
		s.mini.Close()
	}
}

func (s *StorageSuite) TestGuestExpires() {
	guest := &model.User{ID: "g1", Username: "guest_1", IsGuest: true}
	s.Require().NoError(s.storage.SaveUser(s.Ctx, guest))
	s.True(s.mini.Exists(userKey("g1")))

	s.mini.FastForward(time.Hour + time.Second)

	_, err := s.storage.GetUserByUsername(s.Ctx, "guest_1")
	s.ErrorIs(err, model.ErrUserNotFound)
}

func (s *StorageSuite) TestConvertedGuestDoesNotExpire() {
	guest := &model.User{ID: "g1", Username: "guest_1", IsGuest: true}
	s.Require().NoError(s.storage.SaveUser(s.Ctx, guest))

	converted := &model.User{ID: "g1", Username: "bob", Email: "bob@example.com"}
	s.Require().NoError(s.storage.SaveUser(s.Ctx, converted))

	s.mini.FastForward(2 * time.Hour)

	_, err := s.storage.GetUser(s.Ctx, "g1")
	s.NoError(err)
}

func (s *StorageSuite) TestQueueUsesMatchmakingKey() {
	s.Require().NoError(s.storage.Enqueue(s.Ctx, "standard", "u1"))

	items, err := s.mini.List("matchmaking:queue:standard")
	s.Require().NoError(err)
	s.Equal([]string{"u1"}, items)
}
