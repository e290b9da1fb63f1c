package repository

import (
	"context"
	"errors"
	"testing"

	"skillswap/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnnouncementRepositoryActiveFeed(t *testing.T) {
	truncateTables(t)
	repo := NewAnnouncementRepository(testDB)
	ctx := context.Background()

	admin := createTestUser(t, "admin", func(u *models.User) { u.IsAdmin = true })

	live := &models.Announcement{Title: "Welcome", Body: "Swap season is open", Active: true, CreatedByID: admin.ID}
	require.NoError(t, repo.Create(ctx, live))
	retired := &models.Announcement{Title: "Old news", Body: "Expired", Active: false, CreatedByID: admin.ID}
	require.NoError(t, repo.Create(ctx, retired))

	active, err := repo.ListActive(ctx)
	require.NoError(t, err)
	require.Len(t, active, 1)
	assert.Equal(t, "Welcome", active[0].Title)

	require.NoError(t, repo.SetActive(ctx, live.ID, false))
	active, err = repo.ListActive(ctx)
	require.NoError(t, err)
	assert.Empty(t, active)

	all, total, err := repo.ListAll(ctx, 1, 10)
	require.NoError(t, err)
	assert.EqualValues(t, 2, total)
	assert.Len(t, all, 2)

	// Toggling back on resurfaces the announcement; rows are never removed.
	require.NoError(t, repo.SetActive(ctx, retired.ID, true))
	active, err = repo.ListActive(ctx)
	require.NoError(t, err)
	require.Len(t, active, 1)
	assert.Equal(t, "Old news", active[0].Title)

	_, total, err = repo.ListAll(ctx, 1, 10)
	require.NoError(t, err)
	assert.EqualValues(t, 2, total)

	err = repo.SetActive(ctx, 9999, false)
	var appErr *models.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, "NOT_FOUND", appErr.Code)
}
