package repository

import (
	"context"
	"errors"
	"testing"

	"skillswap/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRatingRepositoryCreateAndRecompute(t *testing.T) {
	truncateTables(t)
	repo := NewRatingRepository(testDB)
	ctx := context.Background()

	requester, provider, offered, wanted := swapFixture(t)
	first := createTestSwap(t, requester, provider, offered, wanted, models.SwapStatusCompleted)
	second := createTestSwap(t, requester, provider, offered, wanted, models.SwapStatusCompleted)

	require.NoError(t, repo.CreateAndRecompute(ctx, &models.Rating{
		SwapRequestID: first.ID,
		RaterID:       requester.ID,
		RatedID:       provider.ID,
		Score:         5,
		Feedback:      "Great teacher",
	}))
	require.NoError(t, repo.CreateAndRecompute(ctx, &models.Rating{
		SwapRequestID: second.ID,
		RaterID:       requester.ID,
		RatedID:       provider.ID,
		Score:         2,
	}))

	// Aggregates are recomputed inside the insert transaction:
	// the average over received ratings and the distinct rated swaps.
	var rated models.User
	require.NoError(t, testDB.First(&rated, provider.ID).Error)
	assert.InDelta(t, 3.5, rated.AverageRating, 0.001)
	assert.Equal(t, 2, rated.CompletedSwaps)

	// The requester received no ratings yet, so both aggregates sit at zero.
	var unrated models.User
	require.NoError(t, testDB.First(&unrated, requester.ID).Error)
	assert.Zero(t, unrated.AverageRating)
	assert.Zero(t, unrated.CompletedSwaps)

	// A reverse rating on an already-counted swap raises the requester's
	// count but not the provider's.
	require.NoError(t, repo.CreateAndRecompute(ctx, &models.Rating{
		SwapRequestID: first.ID,
		RaterID:       provider.ID,
		RatedID:       requester.ID,
		Score:         4,
	}))
	require.NoError(t, testDB.First(&unrated, requester.ID).Error)
	assert.Equal(t, 1, unrated.CompletedSwaps)
	require.NoError(t, testDB.First(&rated, provider.ID).Error)
	assert.Equal(t, 2, rated.CompletedSwaps)
}

func TestRatingRepositoryDuplicateRejected(t *testing.T) {
	truncateTables(t)
	repo := NewRatingRepository(testDB)
	ctx := context.Background()

	requester, provider, offered, wanted := swapFixture(t)
	swap := createTestSwap(t, requester, provider, offered, wanted, models.SwapStatusCompleted)

	require.NoError(t, repo.CreateAndRecompute(ctx, &models.Rating{
		SwapRequestID: swap.ID,
		RaterID:       requester.ID,
		RatedID:       provider.ID,
		Score:         4,
	}))

	err := repo.CreateAndRecompute(ctx, &models.Rating{
		SwapRequestID: swap.ID,
		RaterID:       requester.ID,
		RatedID:       provider.ID,
		Score:         1,
	})
	var appErr *models.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, "CONFLICT", appErr.Code)

	// The failed insert must not change the aggregate.
	var rated models.User
	require.NoError(t, testDB.First(&rated, provider.ID).Error)
	assert.InDelta(t, 4.0, rated.AverageRating, 0.001)
}

func TestRatingRepositoryListForUser(t *testing.T) {
	truncateTables(t)
	repo := NewRatingRepository(testDB)
	ctx := context.Background()

	requester, provider, offered, wanted := swapFixture(t)
	swap := createTestSwap(t, requester, provider, offered, wanted, models.SwapStatusCompleted)

	require.NoError(t, repo.CreateAndRecompute(ctx, &models.Rating{
		SwapRequestID: swap.ID,
		RaterID:       requester.ID,
		RatedID:       provider.ID,
		Score:         5,
		Feedback:      "Patient and clear",
	}))

	ratings, total, err := repo.ListForUser(ctx, provider.ID, 1, 10)
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	require.Len(t, ratings, 1)
	assert.Equal(t, "requester", ratings[0].Rater.Username)

	existing, err := repo.GetBySwapAndRater(ctx, swap.ID, requester.ID)
	require.NoError(t, err)
	require.NotNil(t, existing)

	none, err := repo.GetBySwapAndRater(ctx, swap.ID, provider.ID)
	require.NoError(t, err)
	assert.Nil(t, none)
}

func TestRatingRepositoryListBySwap(t *testing.T) {
	truncateTables(t)
	repo := NewRatingRepository(testDB)
	ctx := context.Background()

	requester, provider, offered, wanted := swapFixture(t)
	swap := createTestSwap(t, requester, provider, offered, wanted, models.SwapStatusCompleted)
	other := createTestSwap(t, requester, provider, offered, wanted, models.SwapStatusCompleted)

	require.NoError(t, repo.CreateAndRecompute(ctx, &models.Rating{
		SwapRequestID: swap.ID, RaterID: requester.ID, RatedID: provider.ID, Score: 4,
	}))
	require.NoError(t, repo.CreateAndRecompute(ctx, &models.Rating{
		SwapRequestID: swap.ID, RaterID: provider.ID, RatedID: requester.ID, Score: 5,
	}))
	require.NoError(t, repo.CreateAndRecompute(ctx, &models.Rating{
		SwapRequestID: other.ID, RaterID: requester.ID, RatedID: provider.ID, Score: 2,
	}))

	ratings, err := repo.ListBySwap(ctx, swap.ID)
	require.NoError(t, err)
	require.Len(t, ratings, 2)
	assert.Equal(t, 4, ratings[0].Score)
	assert.Equal(t, 5, ratings[1].Score)
}
