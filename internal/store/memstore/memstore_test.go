package memstore

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"task-backend/internal/models"
	"task-backend/internal/store"
)

func task(id, owner string, createdAt time.Time) *models.Task {
	return &models.Task{
		TaskID:    id,
		OwnerID:   owner,
		Title:     "title-" + id,
		DueDate:   "2024-01-01",
		CreatedAt: createdAt,
	}
}

func TestGetItemAbsent(t *testing.T) {
	s := New()
	got, err := s.GetItem(context.Background(), "nope")
	require.NoError(t, err)
	assert.Nil(t, got)

	exists, err := s.ItemExists(context.Background(), "nope")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestCreateOverwritesOnSameID(t *testing.T) {
	s := New()
	ctx := context.Background()
	now := time.Now()

	require.NoError(t, s.CreateItem(ctx, task("t1", "u1", now)))
	replacement := task("t1", "u1", now)
	replacement.Title = "replaced"
	require.NoError(t, s.CreateItem(ctx, replacement))

	got, err := s.GetItem(ctx, "t1")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "replaced", got.Title)
}

func TestListOrdersByCreationTime(t *testing.T) {
	s := New()
	ctx := context.Background()
	base := time.Now()

	require.NoError(t, s.CreateItem(ctx, task("t2", "u1", base.Add(time.Second))))
	require.NoError(t, s.CreateItem(ctx, task("t1", "u1", base)))
	require.NoError(t, s.CreateItem(ctx, task("t3", "u2", base)))

	asc, err := s.ListByOwner(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, asc, 2)
	assert.Equal(t, "t1", asc[0].TaskID)
	assert.Equal(t, "t2", asc[1].TaskID)

	desc, err := s.ListByOwnerRecentFirst(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, desc, 2)
	assert.Equal(t, "t2", desc[0].TaskID)
}

func TestUpdateFieldsLeavesRestUntouched(t *testing.T) {
	s := New()
	ctx := context.Background()
	created := task("t1", "u1", time.Now())
	created.AttachmentURL = "https://b.s3.amazonaws.com/a"
	require.NoError(t, s.CreateItem(ctx, created))

	require.NoError(t, s.UpdateFields(ctx, "t1", store.TaskUpdate{
		Title:   "new title",
		DueDate: "2024-02-02",
		Done:    true,
	}))

	got, err := s.GetItem(ctx, "t1")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "new title", got.Title)
	assert.Equal(t, "2024-02-02", got.DueDate)
	assert.True(t, got.Done)
	assert.Equal(t, created.OwnerID, got.OwnerID)
	assert.Equal(t, created.AttachmentURL, got.AttachmentURL)
	assert.Equal(t, created.CreatedAt, got.CreatedAt)
}

func TestDeleteIsIdempotent(t *testing.T) {
	s := New()
	ctx := context.Background()
	require.NoError(t, s.CreateItem(ctx, task("t1", "u1", time.Now())))

	require.NoError(t, s.DeleteItem(ctx, "t1"))
	require.NoError(t, s.DeleteItem(ctx, "t1"))
	require.NoError(t, s.DeleteItem(ctx, "never-existed"))

	exists, err := s.ItemExists(ctx, "t1")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestGetItemReturnsCopy(t *testing.T) {
	s := New()
	ctx := context.Background()
	require.NoError(t, s.CreateItem(ctx, task("t1", "u1", time.Now())))

	got, err := s.GetItem(ctx, "t1")
	require.NoError(t, err)
	got.Title = "mutated by caller"

	again, err := s.GetItem(ctx, "t1")
	require.NoError(t, err)
	assert.Equal(t, "title-t1", again.Title)
}
