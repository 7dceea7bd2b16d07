package store_test

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/inbar-marom/botverify/internal/adapters/outbound/store"
	"github.com/inbar-marom/botverify/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openStore(t *testing.T) (*store.Store, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "submissions.json")
	s, err := store.Open(path)
	require.NoError(t, err)
	return s, path
}

func TestCreate_AssignsIDAndTimestamps(t *testing.T) {
	s, _ := openStore(t)

	sub, err := s.Create(domain.Submission{
		BotName:  "demo-bot",
		TeamName: "RocketTeam",
		Version:  "1.0.0",
	})
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(sub.ID, "sub_rocket-team_"), sub.ID)
	assert.Equal(t, domain.StatusPending, sub.Status)
	assert.False(t, sub.SubmittedAt.IsZero())
	assert.Equal(t, sub.SubmittedAt, sub.UpdatedAt)
}

func TestCreate_KeepsExplicitStatus(t *testing.T) {
	s, _ := openStore(t)
	sub, err := s.Create(domain.Submission{BotName: "b", TeamName: "t", Version: "1", Status: domain.StatusTesting})
	require.NoError(t, err)
	assert.Equal(t, domain.StatusTesting, sub.Status)
}

func TestGet_Unknown(t *testing.T) {
	s, _ := openStore(t)
	_, err := s.Get("sub_nope_00000000")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestList_Filters(t *testing.T) {
	s, _ := openStore(t)
	_, err := s.Create(domain.Submission{BotName: "a", TeamName: "Alpha", Version: "1"})
	require.NoError(t, err)
	_, err = s.Create(domain.Submission{BotName: "b", TeamName: "Beta", Version: "1", Status: domain.StatusApproved})
	require.NoError(t, err)
	_, err = s.Create(domain.Submission{BotName: "c", TeamName: "Alpha", Version: "2"})
	require.NoError(t, err)

	byTeam, err := s.List(domain.SubmissionFilter{TeamName: "alpha"})
	require.NoError(t, err)
	assert.Len(t, byTeam, 2, "team matching is case-insensitive")

	byStatus, err := s.List(domain.SubmissionFilter{Status: domain.StatusApproved})
	require.NoError(t, err)
	require.Len(t, byStatus, 1)
	assert.Equal(t, "b", byStatus[0].BotName)

	limited, err := s.List(domain.SubmissionFilter{Limit: 2})
	require.NoError(t, err)
	assert.Len(t, limited, 2)
}

func TestList_PreservesInsertionOrder(t *testing.T) {
	s, _ := openStore(t)
	for _, name := range []string{"first", "second", "third"} {
		_, err := s.Create(domain.Submission{BotName: name, TeamName: "T", Version: "1"})
		require.NoError(t, err)
	}

	subs, err := s.List(domain.SubmissionFilter{})
	require.NoError(t, err)
	require.Len(t, subs, 3)
	assert.Equal(t, "first", subs[0].BotName)
	assert.Equal(t, "third", subs[2].BotName)
}

func TestUpdate_PartialFields(t *testing.T) {
	s, _ := openStore(t)
	created, err := s.Create(domain.Submission{BotName: "b", TeamName: "t", Version: "1.0.0", Description: "old"})
	require.NoError(t, err)

	newVersion := "2.0.0"
	approved := domain.StatusApproved
	updated, err := s.Update(created.ID, domain.SubmissionUpdate{Version: &newVersion, Status: &approved})
	require.NoError(t, err)

	assert.Equal(t, "2.0.0", updated.Version)
	assert.Equal(t, domain.StatusApproved, updated.Status)
	assert.Equal(t, "old", updated.Description, "nil pointer leaves the field alone")
}

func TestDelete(t *testing.T) {
	s, _ := openStore(t)
	created, err := s.Create(domain.Submission{BotName: "b", TeamName: "t", Version: "1"})
	require.NoError(t, err)

	deleted, err := s.Delete(created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, deleted.ID)

	_, err = s.Get(created.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = s.Delete(created.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestStatistics(t *testing.T) {
	s, _ := openStore(t)
	_, err := s.Create(domain.Submission{BotName: "a", TeamName: "Alpha", Version: "1", Language: "csharp"})
	require.NoError(t, err)
	_, err = s.Create(domain.Submission{BotName: "b", TeamName: "Alpha", Version: "1", Language: "csharp", Status: domain.StatusApproved})
	require.NoError(t, err)
	_, err = s.Create(domain.Submission{BotName: "c", TeamName: "Beta", Version: "1"})
	require.NoError(t, err)

	stats, err := s.Statistics()
	require.NoError(t, err)
	assert.Equal(t, 3, stats.Total)
	assert.Equal(t, 2, stats.ByStatus["pending"])
	assert.Equal(t, 1, stats.ByStatus["approved"])
	assert.Equal(t, 2, stats.ByTeam["Alpha"])
	assert.Equal(t, 2, stats.ByLanguage["csharp"])
}

func TestPersistence_SurvivesReopen(t *testing.T) {
	s, path := openStore(t)
	created, err := s.Create(domain.Submission{BotName: "b", TeamName: "CamelCaseTeam", Version: "1"})
	require.NoError(t, err)

	reopened, err := store.Open(path)
	require.NoError(t, err)

	got, err := reopened.Get(created.ID)
	require.NoError(t, err)
	assert.Equal(t, "b", got.BotName)

	subs, err := reopened.List(domain.SubmissionFilter{})
	require.NoError(t, err)
	assert.Len(t, subs, 1)
}
