package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type cachedProfile struct {
	ID       uint   `json:"id"`
	Username string `json:"username"`
}

func setupTestRedis(t *testing.T) *miniredis.Miniredis {
	t.Helper()
	mr := miniredis.RunT(t)
	client = redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client = nil })
	return mr
}

func TestAsideLoadsAndCaches(t *testing.T) {
	mr := setupTestRedis(t)
	ctx := context.Background()

	loads := 0
	loader := func(ctx context.Context) (cachedProfile, error) {
		loads++
		return cachedProfile{ID: 7, Username: "maya"}, nil
	}

	got, err := Aside(ctx, "user:7", time.Minute, loader)
	require.NoError(t, err)
	assert.Equal(t, "maya", got.Username)
	assert.Equal(t, 1, loads)

	// Second call must hit the cache, not the loader.
	got, err = Aside(ctx, "user:7", time.Minute, loader)
	require.NoError(t, err)
	assert.Equal(t, uint(7), got.ID)
	assert.Equal(t, 1, loads)

	assert.True(t, mr.Exists("user:7"))
}

func TestAsideCorruptEntryFallsBackToLoader(t *testing.T) {
	mr := setupTestRedis(t)
	ctx := context.Background()

	require.NoError(t, mr.Set("user:9", "{not json"))

	got, err := Aside(ctx, "user:9", time.Minute, func(ctx context.Context) (cachedProfile, error) {
		return cachedProfile{ID: 9, Username: "rin"}, nil
	})
	require.NoError(t, err)
	assert.Equal(t, "rin", got.Username)
}

func TestAsideWithoutRedis(t *testing.T) {
	client = nil
	got, err := Aside(context.Background(), "user:1", time.Minute, func(ctx context.Context) (int, error) {
		return 42, nil
	})
	require.NoError(t, err)
	assert.Equal(t, 42, got)
}

func TestInvalidateUser(t *testing.T) {
	mr := setupTestRedis(t)
	ctx := context.Background()

	require.NoError(t, mr.Set(UserKey(3), "{}"))
	require.NoError(t, mr.Set(UserSkillsKey(3), "[]"))

	InvalidateUser(ctx, 3)

	assert.False(t, mr.Exists(UserKey(3)))
	assert.False(t, mr.Exists(UserSkillsKey(3)))
}

func TestInvalidateUserSkills(t *testing.T) {
	mr := setupTestRedis(t)
	ctx := context.Background()

	require.NoError(t, mr.Set(UserKey(4), "{}"))
	require.NoError(t, mr.Set(UserSkillsKey(4), "[]"))

	InvalidateUserSkills(ctx, 4)

	// Only the skills listing is stale after a skill edit.
	assert.True(t, mr.Exists(UserKey(4)))
	assert.False(t, mr.Exists(UserSkillsKey(4)))
}

func TestInvalidateSwapThread(t *testing.T) {
	mr := setupTestRedis(t)
	ctx := context.Background()

	require.NoError(t, mr.Set(SwapThreadKey(12), "{}"))
	require.NoError(t, mr.Set(SwapThreadKey(13), "{}"))

	InvalidateSwapThread(ctx, 12)

	assert.False(t, mr.Exists(SwapThreadKey(12)))
	assert.True(t, mr.Exists(SwapThreadKey(13)))
}
