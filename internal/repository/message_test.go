package repository

import (
	"context"
	"testing"

	"skillswap/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMessageRepositoryThread(t *testing.T) {
	truncateTables(t)
	repo := NewMessageRepository(testDB)
	ctx := context.Background()

	requester, provider, offered, wanted := swapFixture(t)
	swap := createTestSwap(t, requester, provider, offered, wanted, models.SwapStatusAccepted)

	require.NoError(t, repo.Create(ctx, &models.SwapMessage{
		SwapRequestID: swap.ID,
		SenderID:      requester.ID,
		Content:       "When works for you?",
	}))
	require.NoError(t, repo.Create(ctx, &models.SwapMessage{
		SwapRequestID: swap.ID,
		SenderID:      provider.ID,
		Content:       "Thursday evening",
	}))

	messages, total, err := repo.ListBySwap(ctx, swap.ID, 1, 50)
	require.NoError(t, err)
	assert.EqualValues(t, 2, total)
	require.Len(t, messages, 2)
	// Oldest first.
	assert.Equal(t, "When works for you?", messages[0].Content)
	assert.Equal(t, "requester", messages[0].Sender.Username)
}

func TestMessageRepositoryMarkRead(t *testing.T) {
	truncateTables(t)
	repo := NewMessageRepository(testDB)
	ctx := context.Background()

	requester, provider, offered, wanted := swapFixture(t)
	swap := createTestSwap(t, requester, provider, offered, wanted, models.SwapStatusAccepted)

	require.NoError(t, repo.Create(ctx, &models.SwapMessage{SwapRequestID: swap.ID, SenderID: requester.ID, Content: "one"}))
	require.NoError(t, repo.Create(ctx, &models.SwapMessage{SwapRequestID: swap.ID, SenderID: requester.ID, Content: "two"}))
	require.NoError(t, repo.Create(ctx, &models.SwapMessage{SwapRequestID: swap.ID, SenderID: provider.ID, Content: "own message"}))

	unread, err := repo.CountUnread(ctx, swap.ID, provider.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 2, unread)

	// Reading marks only the other side's messages.
	affected, err := repo.MarkRead(ctx, swap.ID, provider.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 2, affected)

	unread, err = repo.CountUnread(ctx, swap.ID, provider.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 0, unread)

	// The sender's own message stays unread for the requester.
	unread, err = repo.CountUnread(ctx, swap.ID, requester.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 1, unread)
}
