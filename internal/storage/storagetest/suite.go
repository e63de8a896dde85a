// Package storagetest holds the behaviour every storage backend must share
package storagetest

import (
	"context"
	"fmt"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/mcoot/whoosh/internal/model"
	"github.com/mcoot/whoosh/internal/storage"
)

// Suite runs against the Storage returned by Storage before each test.
// Backends embed it and set Storage in their SetupTest.
type Suite struct {
	suite.Suite
	Storage storage.Storage
	Ctx     context.Context
}

var epoch = time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)

func newUser(id, username, email string) *model.User {
	return &model.User{
		ID:          model.UserID(id),
		Username:    username,
		Email:       email,
		DisplayName: username,
		Elo:         model.StartingElo,
		CreatedAt:   epoch,
		UpdatedAt:   epoch,
	}
}

// User tests

func (s *Suite) TestSaveAndGetUser() {
	s.Require().NoError(s.Storage.SaveUser(s.Ctx, newUser("u1", "alice", "alice@example.com")))

	byID, err := s.Storage.GetUser(s.Ctx, "u1")
	s.Require().NoError(err)
	s.Equal("alice", byID.Username)
	s.Equal(model.StartingElo, byID.Elo)

	byName, err := s.Storage.GetUserByUsername(s.Ctx, "alice")
	s.Require().NoError(err)
	s.Equal(model.UserID("u1"), byName.ID)

	byEmail, err := s.Storage.GetUserByEmail(s.Ctx, "alice@example.com")
	s.Require().NoError(err)
	s.Equal(model.UserID("u1"), byEmail.ID)
}

func (s *Suite) TestGetMissingUser() {
	_, err := s.Storage.GetUser(s.Ctx, "missing")
	s.ErrorIs(err, model.ErrUserNotFound)

	_, err = s.Storage.GetUserByUsername(s.Ctx, "missing")
	s.ErrorIs(err, model.ErrUserNotFound)

	_, err = s.Storage.GetUserByEmail(s.Ctx, "missing@example.com")
	s.ErrorIs(err, model.ErrUserNotFound)
}

func (s *Suite) TestRenameMovesIndexes() {
	guest := newUser("u1", "guest_abc", "")
	guest.IsGuest = true
	s.Require().NoError(s.Storage.SaveUser(s.Ctx, guest))

	converted := newUser("u1", "bob", "bob@example.com")
	s.Require().NoError(s.Storage.SaveUser(s.Ctx, converted))

	_, err := s.Storage.GetUserByUsername(s.Ctx, "guest_abc")
	s.ErrorIs(err, model.ErrUserNotFound)

	user, err := s.Storage.GetUserByUsername(s.Ctx, "bob")
	s.Require().NoError(err)
	s.False(user.IsGuest)

	_, err = s.Storage.GetUserByEmail(s.Ctx, "bob@example.com")
	s.NoError(err)
}

func (s *Suite) TestReturnedUserIsACopy() {
	s.Require().NoError(s.Storage.SaveUser(s.Ctx, newUser("u1", "alice", "")))

	user, err := s.Storage.GetUser(s.Ctx, "u1")
	s.Require().NoError(err)
	user.Elo = 5000

	again, err := s.Storage.GetUser(s.Ctx, "u1")
	s.Require().NoError(err)
	s.Equal(model.StartingElo, again.Elo)
}

// Match tests

func (s *Suite) TestListMatchesNewestFirst() {
	for i := range 3 {
		m := &model.Match{
			ID:        fmt.Sprintf("m%d", i),
			StartedAt: epoch.Add(time.Duration(i) * time.Minute),
			Participants: []model.MatchParticipant{
				{UserID: "u1", EloBefore: 1000, EloAfter: 1010},
				{UserID: "u2", EloBefore: 1000, EloAfter: 990},
			},
		}
		s.Require().NoError(s.Storage.SaveMatch(s.Ctx, m))
	}

	matches, err := s.Storage.ListMatchesForUser(s.Ctx, "u1", 10)
	s.Require().NoError(err)
	s.Require().Len(matches, 3)
	s.Equal("m2", matches[0].ID)
	s.Equal("m0", matches[2].ID)

	limited, err := s.Storage.ListMatchesForUser(s.Ctx, "u2", 2)
	s.Require().NoError(err)
	s.Len(limited, 2)
}

func (s *Suite) TestResavingMatchDoesNotDuplicate() {
	m := &model.Match{ID: "m1", StartedAt: epoch, Participants: []model.MatchParticipant{{UserID: "u1"}}}
	s.Require().NoError(s.Storage.SaveMatch(s.Ctx, m))
	s.Require().NoError(s.Storage.SaveMatch(s.Ctx, m))

	matches, err := s.Storage.ListMatchesForUser(s.Ctx, "u1", 10)
	s.Require().NoError(err)
	s.Len(matches, 1)
}

func (s *Suite) TestListMatchesForUnknownUser() {
	matches, err := s.Storage.ListMatchesForUser(s.Ctx, "nobody", 10)
	s.Require().NoError(err)
	s.Empty(matches)
}

// Queue tests

func (s *Suite) TestEnqueue() {
	s.Require().NoError(s.Storage.Enqueue(s.Ctx, "standard", "u1"))
	s.Require().NoError(s.Storage.Enqueue(s.Ctx, "standard", "u2"))
	s.Require().NoError(s.Storage.Enqueue(s.Ctx, "ranked", "u1"))

	n, err := s.Storage.QueueLength(s.Ctx, "standard")
	s.Require().NoError(err)
	s.Equal(int64(2), n)

	n, err = s.Storage.QueueLength(s.Ctx, "empty")
	s.Require().NoError(err)
	s.Zero(n)
}
