package challenge

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arrendo/arrendo-ui/internal/ports"
)

func TestMemoryStore_PutTake(t *testing.T) {
	store := NewMemoryStore(time.Minute)
	ctx := context.Background()

	require.NoError(t, store.Put(ctx, "state-1"))

	got, err := store.Take(ctx)
	require.NoError(t, err)
	assert.Equal(t, "state-1", got)
}

func TestMemoryStore_TakeConsumesChallenge(t *testing.T) {
	store := NewMemoryStore(time.Minute)
	ctx := context.Background()

	require.NoError(t, store.Put(ctx, "state-1"))

	_, err := store.Take(ctx)
	require.NoError(t, err)

	// Second take finds nothing; a challenge is usable exactly once.
	_, err = store.Take(ctx)
	assert.ErrorIs(t, err, ports.ErrNoChallenge)
}

func TestMemoryStore_TakeEmpty(t *testing.T) {
	store := NewMemoryStore(time.Minute)

	_, err := store.Take(context.Background())
	assert.ErrorIs(t, err, ports.ErrNoChallenge)
}

func TestMemoryStore_PutReplacesPrevious(t *testing.T) {
	store := NewMemoryStore(time.Minute)
	ctx := context.Background()

	require.NoError(t, store.Put(ctx, "old"))
	require.NoError(t, store.Put(ctx, "new"))

	got, err := store.Take(ctx)
	require.NoError(t, err)
	assert.Equal(t, "new", got)
}

func TestMemoryStore_ExpiredChallengeIsGone(t *testing.T) {
	store := NewMemoryStore(10 * time.Minute)
	ctx := context.Background()

	now := time.Now()
	store.now = func() time.Time { return now }

	require.NoError(t, store.Put(ctx, "state-1"))

	now = now.Add(11 * time.Minute)
	_, err := store.Take(ctx)
	assert.ErrorIs(t, err, ports.ErrNoChallenge)

	// The expired value was still consumed.
	now = now.Add(-11 * time.Minute)
	_, err = store.Take(ctx)
	assert.ErrorIs(t, err, ports.ErrNoChallenge)
}
