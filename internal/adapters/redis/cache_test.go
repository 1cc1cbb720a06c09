package redisad_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	redisad "flex_reviews/internal/adapters/redis"
	"flex_reviews/internal/domain"
)

func newCache(t *testing.T) (*redisad.Cache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	c := redisad.New(mr.Addr(), "", 0)
	t.Cleanup(func() { _ = c.Close() })
	return c, mr
}

func TestCache_SetGet(t *testing.T) {
	c, _ := newCache(t)
	ctx := context.Background()

	in := []domain.HostawayReview{{ID: 7453, GuestName: "Shane Finkelstein"}}
	require.NoError(t, c.Set(ctx, "hostaway:reviews:all", in, 60))

	var out []domain.HostawayReview
	ok, err := c.Get(ctx, "hostaway:reviews:all", &out)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, in, out)
}

func TestCache_MissAndExpiry(t *testing.T) {
	c, mr := newCache(t)
	ctx := context.Background()

	var out []int
	ok, err := c.Get(ctx, "absent", &out)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, c.Set(ctx, "k", []int{1}, 5))
	assert.True(t, mr.Exists("flex:k"))
	mr.FastForward(6 * time.Second)

	ok, err = c.Get(ctx, "k", &out)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestCache_Del(t *testing.T) {
	c, mr := newCache(t)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "k", "v", 60))
	require.NoError(t, c.Del(ctx, "k"))
	assert.False(t, mr.Exists("flex:k"))
}

func TestCache_CorruptPayload(t *testing.T) {
	c, mr := newCache(t)
	require.NoError(t, mr.Set("flex:k", "{not json"))

	var out map[string]any
	ok, err := c.Get(context.Background(), "k", &out)
	assert.Error(t, err)
	assert.False(t, ok)
}
