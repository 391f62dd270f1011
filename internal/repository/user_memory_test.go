package repository

import (
	"testing"

	"nexuslink/internal/models"

	"github.com/stretchr/testify/suite"
)

type UserMemorySuite struct {
	suite.Suite
	store *UserMemory
}

func (s *UserMemorySuite) SetupTest() {
	s.store = NewUserMemory()
}

func TestUserMemorySuite(t *testing.T) {
	suite.Run(t, new(UserMemorySuite))
}

func (s *UserMemorySuite) TestCreateAndLookup() {
	created, err := s.store.Create(map[string]models.PlatformLink{
		models.PlatformDiscord: {PlatformID: "d-1", Username: "alice"},
	})
	s.Require().NoError(err)
	s.NotEmpty(created.ID)

	byID, err := s.store.FindByID(created.ID)
	s.Require().NoError(err)
	s.Equal("alice", byID.Links[models.PlatformDiscord].Username)

	byPlatform, err := s.store.FindByPlatformID(models.PlatformDiscord, "d-1")
	s.Require().NoError(err)
	s.Equal(created.ID, byPlatform.ID)

	_, err = s.store.FindByID("missing")
	s.Require().ErrorIs(err, ErrNotFound)

	_, err = s.store.FindByPlatformID(models.PlatformDiscord, "d-2")
	s.Require().ErrorIs(err, ErrNotFound)
}

func (s *UserMemorySuite) TestPendingEntriesNeverMatchLookup() {
	_, err := s.store.Create(map[string]models.PlatformLink{
		models.PlatformDiscord: {Pending: &models.PendingClaim{ClaimedName: "alice", SourceUsername: "streamer"}},
	})
	s.Require().NoError(err)

	_, err = s.store.FindByPlatformID(models.PlatformDiscord, "")
	s.Require().ErrorIs(err, ErrNotFound)
}

func (s *UserMemorySuite) TestUpdateMergesPerPlatform() {
	created, err := s.store.Create(map[string]models.PlatformLink{
		models.PlatformDiscord: {PlatformID: "d-1", Username: "alice"},
	})
	s.Require().NoError(err)

	updated, err := s.store.Update(created.ID, map[string]models.PlatformLink{
		models.PlatformMinecraft: {PlatformID: "mc-1", Username: "Steve"},
	})
	s.Require().NoError(err)
	s.Equal("d-1", updated.Links[models.PlatformDiscord].PlatformID)
	s.Equal("mc-1", updated.Links[models.PlatformMinecraft].PlatformID)

	// last writer wins per platform key
	updated, err = s.store.Update(created.ID, map[string]models.PlatformLink{
		models.PlatformMinecraft: {PlatformID: "mc-2", Username: "Alex"},
	})
	s.Require().NoError(err)
	s.Equal("mc-2", updated.Links[models.PlatformMinecraft].PlatformID)

	_, err = s.store.Update("missing", map[string]models.PlatformLink{})
	s.Require().ErrorIs(err, ErrNotFound)
}

func (s *UserMemorySuite) TestDeleteReturnsLastState() {
	created, err := s.store.Create(map[string]models.PlatformLink{
		models.PlatformTwitch: {PlatformID: "tw-1", Username: "streamer"},
	})
	s.Require().NoError(err)

	deleted, err := s.store.Delete(created.ID)
	s.Require().NoError(err)
	s.Equal("tw-1", deleted.Links[models.PlatformTwitch].PlatformID)

	_, err = s.store.FindByID(created.ID)
	s.Require().ErrorIs(err, ErrNotFound)

	_, err = s.store.Delete(created.ID)
	s.Require().ErrorIs(err, ErrNotFound)
}

func (s *UserMemorySuite) TestClonesDoNotAliasStoredState() {
	created, err := s.store.Create(map[string]models.PlatformLink{
		models.PlatformDiscord: {PlatformID: "d-1", Username: "alice"},
	})
	s.Require().NoError(err)

	created.Links[models.PlatformDiscord] = models.PlatformLink{PlatformID: "tampered"}

	stored, err := s.store.FindByID(created.ID)
	s.Require().NoError(err)
	s.Equal("d-1", stored.Links[models.PlatformDiscord].PlatformID)
}

func (s *UserMemorySuite) TestList() {
	users, err := s.store.List()
	s.Require().NoError(err)
	s.Empty(users)

	for _, id := range []string{"d-1", "d-2", "d-3"} {
		_, err := s.store.Create(map[string]models.PlatformLink{
			models.PlatformDiscord: {PlatformID: id},
		})
		s.Require().NoError(err)
	}

	users, err = s.store.List()
	s.Require().NoError(err)
	s.Len(users, 3)
}
