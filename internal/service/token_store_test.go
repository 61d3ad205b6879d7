package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryTokenStoreLifecycle(t *testing.T) {
	store := NewMemoryTokenStore().(*memoryTokenStore)
	now := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return now }
	ctx := context.Background()
	key := AccessTokenKey(uuid.New(), "tok")

	require.NoError(t, store.Save(ctx, key, time.Minute))
	ok, err := store.Exists(ctx, key)
	require.NoError(t, err)
	assert.True(t, ok)

	now = now.Add(2 * time.Minute)
	ok, _ = store.Exists(ctx, key)
	assert.False(t, ok)

	require.NoError(t, store.Save(ctx, key, time.Minute))
	require.NoError(t, store.Delete(ctx, key))
	ok, _ = store.Exists(ctx, key)
	assert.False(t, ok)
}

func TestTokenKeysAreScopedByKind(t *testing.T) {
	userID := uuid.New()
	assert.NotEqual(t, AccessTokenKey(userID, "x"), RefreshTokenKey(userID, "x"))
}
