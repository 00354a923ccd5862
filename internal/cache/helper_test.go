package cache

import (
	"context"
	"errors"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupMiniredis(t *testing.T) *miniredis.Miniredis {
	t.Helper()
	mr := miniredis.RunT(t)
	SetClient(redis.NewClient(&redis.Options{Addr: mr.Addr()}))
	t.Cleanup(func() { SetClient(nil) })
	return mr
}

func TestAsideCachesFetchResult(t *testing.T) {
	setupMiniredis(t)
	ctx := context.Background()

	type payload struct {
		Name string `json:"name"`
	}

	calls := 0
	fetch := func(dest *payload) func() error {
		return func() error {
			calls++
			dest.Name = "fetched"
			return nil
		}
	}

	var first payload
	require.NoError(t, Aside(ctx, "k", &first, UserTTL, fetch(&first)))
	assert.Equal(t, "fetched", first.Name)
	assert.Equal(t, 1, calls)

	var second payload
	require.NoError(t, Aside(ctx, "k", &second, UserTTL, fetch(&second)))
	assert.Equal(t, "fetched", second.Name)
	assert.Equal(t, 1, calls, "second read must be served from cache")
}

func TestAsideFetchErrorPropagates(t *testing.T) {
	setupMiniredis(t)
	ctx := context.Background()

	var dest struct{}
	wantErr := errors.New("boom")
	err := Aside(ctx, "missing", &dest, UserTTL, func() error { return wantErr })
	assert.ErrorIs(t, err, wantErr)
}

func TestAsideWithoutClientFallsThrough(t *testing.T) {
	SetClient(nil)
	ctx := context.Background()

	calls := 0
	var dest struct{}
	for i := 0; i < 2; i++ {
		require.NoError(t, Aside(ctx, "k", &dest, UserTTL, func() error {
			calls++
			return nil
		}))
	}
	assert.Equal(t, 2, calls, "no client means every read hits the source")
}

func TestInvalidateFollowGraph(t *testing.T) {
	mr := setupMiniredis(t)
	ctx := context.Background()

	require.NoError(t, SetJSON(ctx, FollowingKey(1), []uint{2}, FollowTTL))
	require.NoError(t, SetJSON(ctx, FollowersKey(2), []uint{1}, FollowTTL))

	InvalidateFollowGraph(ctx, 1, 2)

	assert.False(t, mr.Exists(FollowingKey(1)))
	assert.False(t, mr.Exists(FollowersKey(2)))
}
