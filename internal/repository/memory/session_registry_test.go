package memory

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetOrCreateIsIdempotent(t *testing.T) {
	registry := NewSessionRegistry(time.Hour)
	ctx := context.Background()

	first, err := registry.GetOrCreate(ctx, "user-1")
	require.NoError(t, err)
	second, err := registry.GetOrCreate(ctx, "user-1")
	require.NoError(t, err)

	assert.Equal(t, first.Token, second.Token)
	assert.Equal(t, "user-1", first.UserID)
}

func TestDistinctUsersGetDistinctTokens(t *testing.T) {
	registry := NewSessionRegistry(time.Hour)
	ctx := context.Background()

	a, err := registry.GetOrCreate(ctx, "user-a")
	require.NoError(t, err)
	b, err := registry.GetOrCreate(ctx, "user-b")
	require.NoError(t, err)

	assert.NotEqual(t, a.Token, b.Token)
}

func TestResetMintsNewToken(t *testing.T) {
	registry := NewSessionRegistry(time.Hour)
	ctx := context.Background()

	before, err := registry.GetOrCreate(ctx, "user-1")
	require.NoError(t, err)

	require.NoError(t, registry.Reset(ctx, "user-1"))
	// Reset is idempotent even with no entry
	require.NoError(t, registry.Reset(ctx, "user-1"))

	after, err := registry.GetOrCreate(ctx, "user-1")
	require.NoError(t, err)
	assert.NotEqual(t, before.Token, after.Token)
}

func TestIdleWindowExpiry(t *testing.T) {
	registry := NewSessionRegistry(50 * time.Millisecond)
	ctx := context.Background()

	before, err := registry.GetOrCreate(ctx, "user-1")
	require.NoError(t, err)

	time.Sleep(80 * time.Millisecond)

	_, active, err := registry.Info(ctx, "user-1")
	require.NoError(t, err)
	assert.False(t, active)

	after, err := registry.GetOrCreate(ctx, "user-1")
	require.NoError(t, err)
	assert.NotEqual(t, before.Token, after.Token)
}

func TestInfoDoesNotCreate(t *testing.T) {
	registry := NewSessionRegistry(time.Hour)
	ctx := context.Background()

	session, active, err := registry.Info(ctx, "nobody")
	require.NoError(t, err)
	assert.False(t, active)
	assert.Nil(t, session)
}

func TestConcurrentGetOrCreateMintsOnce(t *testing.T) {
	registry := NewSessionRegistry(time.Hour)
	ctx := context.Background()

	const workers = 32
	tokens := make([]string, workers)

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			session, err := registry.GetOrCreate(ctx, "user-1")
			require.NoError(t, err)
			tokens[i] = session.Token
		}(i)
	}
	wg.Wait()

	for i := 1; i < workers; i++ {
		assert.Equal(t, tokens[0], tokens[i])
	}
}
