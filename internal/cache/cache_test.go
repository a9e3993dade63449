package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCache(t *testing.T) (*Cache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	logger := zerolog.Nop()
	return New(client, time.Minute, &logger), mr
}

type item struct {
	Nome string `json:"nome"`
}

func TestSetAndGetJSON(t *testing.T) {
	c, mr := newTestCache(t)
	ctx := context.Background()
	key := Key("org_1", "silos", "all")

	hit, err := c.GetJSON(ctx, key, &[]item{})
	require.NoError(t, err)
	assert.False(t, hit)

	require.NoError(t, c.SetJSON(ctx, key, []item{{Nome: "Silo 1"}}, 0))
	assert.Equal(t, time.Minute, mr.TTL(key))

	var got []item
	hit, err = c.GetJSON(ctx, key, &got)
	require.NoError(t, err)
	assert.True(t, hit)
	assert.Equal(t, []item{{Nome: "Silo 1"}}, got)
}

func TestInvalidateGroupsOnlyTouchesTenantGroups(t *testing.T) {
	c, mr := newTestCache(t)
	ctx := context.Background()

	for _, k := range []string{
		Key("org_1", "colheitas", "a"),
		Key("org_1", "colheitas", "b"),
		Key("org_1", "saldo", "x"),
		Key("org_1", "granjas", "all"),
		Key("org_2", "colheitas", "a"),
	} {
		require.NoError(t, c.SetJSON(ctx, k, 1, 0))
	}

	require.NoError(t, c.InvalidateGroups(ctx, "org_1", "colheitas", "saldo"))

	assert.False(t, mr.Exists(Key("org_1", "colheitas", "a")))
	assert.False(t, mr.Exists(Key("org_1", "colheitas", "b")))
	assert.False(t, mr.Exists(Key("org_1", "saldo", "x")))
	assert.True(t, mr.Exists(Key("org_1", "granjas", "all")))
	assert.True(t, mr.Exists(Key("org_2", "colheitas", "a")))
}

func TestRemember(t *testing.T) {
	c, _ := newTestCache(t)
	ctx := context.Background()
	key := Key("org_1", "saldo", "k")

	calls := 0
	load := func(context.Context) (float64, error) {
		calls++
		return 900, nil
	}

	v, err := Remember(ctx, c, key, 0, load)
	require.NoError(t, err)
	assert.Equal(t, 900.0, v)

	v, err = Remember(ctx, c, key, 0, load)
	require.NoError(t, err)
	assert.Equal(t, 900.0, v)
	assert.Equal(t, 1, calls)
}

func TestRememberSkipsWriteWhenGroupInvalidatedDuringLoad(t *testing.T) {
	c, mr := newTestCache(t)
	ctx := context.Background()
	key := Key("org_1", "estoque", "granja=;safra=")

	calls := 0
	load := func(ctx context.Context) (float64, error) {
		calls++
		if calls == 1 {
			// A harvest is recorded after this read saw the old rows.
			require.NoError(t, c.InvalidateGroups(ctx, "org_1", "estoque"))
		}
		return float64(100 * calls), nil
	}

	v, err := Remember(ctx, c, key, 0, load)
	require.NoError(t, err)
	assert.Equal(t, 100.0, v)
	assert.False(t, mr.Exists(key))

	v, err = Remember(ctx, c, key, 0, load)
	require.NoError(t, err)
	assert.Equal(t, 200.0, v)
	assert.True(t, mr.Exists(key))

	v, err = Remember(ctx, c, key, 0, load)
	require.NoError(t, err)
	assert.Equal(t, 200.0, v)
	assert.Equal(t, 2, calls)
}

func TestInvalidateGroupsBumpsGeneration(t *testing.T) {
	c, mr := newTestCache(t)
	ctx := context.Background()

	require.NoError(t, c.InvalidateGroups(ctx, "org_1", "saldo"))
	require.NoError(t, c.InvalidateGroups(ctx, "org_1", "saldo", "estoque"))

	got, err := mr.Get(generationKey("org_1", "saldo"))
	require.NoError(t, err)
	assert.Equal(t, "2", got)
	got, err = mr.Get(generationKey("org_1", "estoque"))
	require.NoError(t, err)
	assert.Equal(t, "1", got)
	assert.False(t, mr.Exists(generationKey("org_2", "saldo")))
}

func TestRememberDoesNotCacheErrors(t *testing.T) {
	c, mr := newTestCache(t)
	key := Key("org_1", "saldo", "err")

	_, err := Remember(context.Background(), c, key, 0, func(context.Context) (int, error) {
		return 0, errors.New("boom")
	})
	assert.EqualError(t, err, "boom")
	assert.False(t, mr.Exists(key))
}

func TestRememberFallsThroughWhenRedisIsDown(t *testing.T) {
	c, mr := newTestCache(t)
	mr.Close()

	v, err := Remember(context.Background(), c, Key("org", "g", "f"), 0, func(context.Context) (string, error) {
		return "fresh", nil
	})
	require.NoError(t, err)
	assert.Equal(t, "fresh", v)
}

func TestNilCache(t *testing.T) {
	var c *Cache
	ctx := context.Background()

	hit, err := c.GetJSON(ctx, "k", new(int))
	assert.NoError(t, err)
	assert.False(t, hit)
	assert.NoError(t, c.SetJSON(ctx, "k", 1, 0))
	assert.NoError(t, c.InvalidateGroups(ctx, "org", "g"))
	assert.Error(t, c.Ping(ctx))

	v, err := Remember(ctx, c, "k", 0, func(context.Context) (int, error) { return 7, nil })
	require.NoError(t, err)
	assert.Equal(t, 7, v)
}
