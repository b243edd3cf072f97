package cache

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"contacts/internal/domain/entity"
	"contacts/internal/domain/service"
)

func newTestUserCache(t *testing.T) (service.UserCache, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	return NewUserCache(client, logger), mr
}

func testUser() *entity.User {
	return &entity.User{
		ID:           uuid.New(),
		Username:     "alice",
		Email:        "alice@example.com",
		PasswordHash: "$2a$10$abcdefghijklmnopqrstuv",
		Confirmed:    true,
		AvatarURL:    "http://cdn.example.com/alice.png",
	}
}

func TestUserCache_SetAndGet(t *testing.T) {
	cache, mr := newTestUserCache(t)
	ctx := context.Background()
	user := testUser()

	require.NoError(t, cache.Set(ctx, user.Email, user, 0))

	got, err := cache.Get(ctx, user.Email)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, user.ID, got.ID)
	assert.Equal(t, user.Username, got.Username)
	assert.Equal(t, user.PasswordHash, got.PasswordHash)
	assert.Equal(t, user.Confirmed, got.Confirmed)
	assert.Equal(t, user.AvatarURL, got.AvatarURL)

	// The key format and TTL are part of the wire contract.
	assert.True(t, mr.Exists("user:alice@example.com"))
	assert.Equal(t, service.UserCacheTTL, mr.TTL("user:alice@example.com"))
}

func TestUserCache_MissReturnsNil(t *testing.T) {
	cache, _ := newTestUserCache(t)

	got, err := cache.Get(context.Background(), "nobody@example.com")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestUserCache_EntryExpires(t *testing.T) {
	cache, mr := newTestUserCache(t)
	ctx := context.Background()
	user := testUser()

	require.NoError(t, cache.Set(ctx, user.Email, user, 900*time.Second))

	// Simulate the TTL elapsing inside the store.
	mr.FastForward(901 * time.Second)

	got, err := cache.Get(ctx, user.Email)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestUserCache_SetOverwritesAndResetsTTL(t *testing.T) {
	cache, mr := newTestUserCache(t)
	ctx := context.Background()
	user := testUser()

	require.NoError(t, cache.Set(ctx, user.Email, user, 900*time.Second))
	mr.FastForward(600 * time.Second)

	user.AvatarURL = "http://cdn.example.com/alice-v2.png"
	require.NoError(t, cache.Set(ctx, user.Email, user, 900*time.Second))

	got, err := cache.Get(ctx, user.Email)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "http://cdn.example.com/alice-v2.png", got.AvatarURL)
	assert.Equal(t, 900*time.Second, mr.TTL("user:alice@example.com"))
}

func TestUserCache_Invalidate(t *testing.T) {
	cache, mr := newTestUserCache(t)
	ctx := context.Background()
	user := testUser()

	require.NoError(t, cache.Set(ctx, user.Email, user, 0))
	require.NoError(t, cache.Invalidate(ctx, user.Email))

	assert.False(t, mr.Exists("user:alice@example.com"))

	// Invalidating an absent entry is a no-op.
	require.NoError(t, cache.Invalidate(ctx, user.Email))
}

func TestUserCache_CorruptEntryIsAMiss(t *testing.T) {
	cache, mr := newTestUserCache(t)
	ctx := context.Background()

	require.NoError(t, mr.Set("user:alice@example.com", "{not json"))

	got, err := cache.Get(ctx, "alice@example.com")
	require.NoError(t, err)
	assert.Nil(t, got)
}
