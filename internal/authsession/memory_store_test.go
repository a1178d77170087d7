package authsession

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateID_Unique(t *testing.T) {
	a, err := GenerateID()
	require.NoError(t, err)
	b, err := GenerateID()
	require.NoError(t, err)
	assert.NotEqual(t, a, b)
	assert.GreaterOrEqual(t, len(a), 43, "256 bits base64url encoded")
}

func TestMemoryStore_Lifecycle(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	tok := Token{ID: "t1", UserID: "alice", ExpiresAt: time.Now().Add(time.Hour)}
	require.NoError(t, store.Create(ctx, tok))

	got, err := store.Get(ctx, "t1")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "alice", got.UserID)

	require.NoError(t, store.Delete(ctx, "t1"))
	got, err = store.Get(ctx, "t1")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestMemoryStore_UnknownTokenIsNil(t *testing.T) {
	store := NewMemoryStore()
	got, err := store.Get(context.Background(), "missing")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestMemoryStore_ExpiredTokenDropped(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	tok := Token{ID: "t2", UserID: "alice", ExpiresAt: time.Now().Add(-time.Minute)}
	require.NoError(t, store.Create(ctx, tok))

	got, err := store.Get(ctx, "t2")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestMemoryStore_RejectsIncompleteToken(t *testing.T) {
	store := NewMemoryStore()
	err := store.Create(context.Background(), Token{ID: "", UserID: "alice"})
	assert.Error(t, err)
}
