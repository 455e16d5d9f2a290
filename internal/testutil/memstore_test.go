package testutil

import (
	"context"
	"testing"
	"time"

	"portfolio-api/internal/models"
	"portfolio-api/internal/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func steppingClock(start time.Time, step time.Duration) store.Clock {
	now := start
	return func() time.Time {
		t := now
		now = now.Add(step)
		return t
	}
}

func TestMemoryStoreLifecycle(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	s.SetClock(steppingClock(time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC), time.Second))

	created, err := s.Create(ctx, models.CreateProjectRequest{Title: "A", Description: "B", ImageURL: "http://x"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), created.ID)
	assert.Equal(t, created.CreatedAt, created.UpdatedAt)

	title := "A2"
	updated, err := s.Update(ctx, created.ID, models.UpdateProjectRequest{Title: &title})
	require.NoError(t, err)
	assert.Equal(t, "A2", updated.Title)
	assert.Equal(t, "B", updated.Description)
	assert.True(t, updated.UpdatedAt.After(created.UpdatedAt))
	assert.Equal(t, created.CreatedAt, updated.CreatedAt)

	require.NoError(t, s.Delete(ctx, created.ID))
	_, err = s.Get(ctx, created.ID)
	assert.ErrorIs(t, err, store.ErrNotFound)

	next, err := s.Create(ctx, models.CreateProjectRequest{Title: "C", Description: "D", ImageURL: "http://y"})
	require.NoError(t, err)
	assert.Equal(t, int64(2), next.ID, "ids are never reused")
}

func TestMemoryStoreRejectsInvalidCreate(t *testing.T) {
	s := NewMemoryStore()

	_, err := s.Create(context.Background(), models.CreateProjectRequest{Title: "only title"})
	var ve *models.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, 0, s.Len())
}

func TestMemoryStoreEmptyUpdateBumpsUpdatedAt(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	s.SetClock(steppingClock(time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC), time.Minute))

	p, err := s.Create(ctx, models.CreateProjectRequest{Title: "A", Description: "B", ImageURL: "http://x"})
	require.NoError(t, err)

	out, err := s.Update(ctx, p.ID, models.UpdateProjectRequest{})
	require.NoError(t, err)
	assert.Equal(t, p.UpdatedAt.Add(time.Minute), out.UpdatedAt)
	assert.Equal(t, p.Title, out.Title)
}

func TestMemoryStoreMissingIDs(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	_, err := s.Get(ctx, 42)
	assert.ErrorIs(t, err, store.ErrNotFound)
	_, err = s.Update(ctx, 42, models.UpdateProjectRequest{})
	assert.ErrorIs(t, err, store.ErrNotFound)
	empty := ""
	_, err = s.Update(ctx, 42, models.UpdateProjectRequest{Title: &empty})
	assert.ErrorIs(t, err, store.ErrNotFound, "lookup runs before validation")
	assert.ErrorIs(t, s.Delete(ctx, 42), store.ErrNotFound)
}

func TestMemoryStoreListInsertionOrder(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	for _, title := range []string{"one", "two", "three"} {
		_, err := s.Create(ctx, models.CreateProjectRequest{Title: title, Description: "d", ImageURL: "i"})
		require.NoError(t, err)
	}
	require.NoError(t, s.Delete(ctx, 2))

	list, err := s.List(ctx, store.ListOptions{})
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "one", list[0].Title)
	assert.Equal(t, "three", list[1].Title)
}
