package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storymap-backend/internal/domains/story/model"
)

func seedOrphan(t *testing.T, repo *memoryStoryRepository, createdAt time.Time) uuid.UUID {
	t.Helper()
	repo.createdClock = func() time.Time { return createdAt }
	story := &model.Story{ID: uuid.New(), PlaceID: uuid.New(), AnswerText: "orphan", Status: model.StatusPending}
	require.NoError(t, repo.Create(context.Background(), story))
	return story.ID
}

func TestSweepOrphans(t *testing.T) {
	f := newFixture(t)
	now := f.svc.now()

	old1 := seedOrphan(t, f.repo, now.Add(-time.Hour))
	old2 := seedOrphan(t, f.repo, now.Add(-30*time.Minute))
	young := seedOrphan(t, f.repo, now.Add(-time.Minute))

	f.repo.createdClock = func() time.Time { return now.Add(-2 * time.Hour) }
	linked, err := f.svc.CreateStory(context.Background(), f.request("linked"))
	require.NoError(t, err)

	removed, err := f.svc.SweepOrphans(context.Background(), 10*time.Minute, 100)
	require.NoError(t, err)

	assert.Equal(t, 2, removed)
	assert.False(t, f.repo.rawExists(old1))
	assert.False(t, f.repo.rawExists(old2))
	assert.True(t, f.repo.rawExists(young))
	assert.True(t, f.repo.rawExists(linked.ID))
}

func TestSweepOrphans_ContinuesPastDeleteFailures(t *testing.T) {
	f := newFixture(t)
	seedOrphan(t, f.repo, f.svc.now().Add(-time.Hour))
	f.repo.deleteErr = errStore

	removed, err := f.svc.SweepOrphans(context.Background(), time.Minute, 100)
	require.NoError(t, err)
	assert.Equal(t, 0, removed)
}

func TestCompensateOrphan_LeavesLinkedStory(t *testing.T) {
	f := newFixture(t)
	story, err := f.svc.CreateStory(context.Background(), f.request("linked"))
	require.NoError(t, err)

	require.NoError(t, f.svc.CompensateOrphan(context.Background(), story.ID))
	assert.True(t, f.repo.rawExists(story.ID))
}

func TestCompensateOrphan_Failure(t *testing.T) {
	f := newFixture(t)
	f.repo.deleteErr = errStore

	err := f.svc.CompensateOrphan(context.Background(), uuid.New())
	assert.ErrorIs(t, err, errStore)
}
