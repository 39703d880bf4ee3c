package ttlcache_test

import (
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mostafa-wahied/portracker-core/internal/infrastructure/ttlcache"
)

func TestCache_GetOrSet_MemoizesWithinTTL(t *testing.T) {
	t.Parallel()

	c := ttlcache.New(false)
	var calls int32

	fn := func() (any, error) {
		atomic.AddInt32(&calls, 1)
		return "value", nil
	}

	v1, err := c.GetOrSet("k", time.Minute, fn)
	require.NoError(t, err)
	assert.Equal(t, "value", v1)

	v2, err := c.GetOrSet("k", time.Minute, fn)
	require.NoError(t, err)
	assert.Equal(t, "value", v2)

	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
}

func TestCache_GetOrSet_RetriesOnError(t *testing.T) {
	t.Parallel()

	c := ttlcache.New(false)
	errBoom := errors.New("boom")

	_, err := c.GetOrSet("k", time.Minute, func() (any, error) {
		return nil, errBoom
	})
	require.ErrorIs(t, err, errBoom)

	v, err := c.GetOrSet("k", time.Minute, func() (any, error) {
		return "ok", nil
	})
	require.NoError(t, err)
	assert.Equal(t, "ok", v)
}

func TestCache_Disabled_AlwaysCallsFn(t *testing.T) {
	t.Parallel()

	c := ttlcache.New(true)
	var calls int32

	fn := func() (any, error) {
		atomic.AddInt32(&calls, 1)
		return "value", nil
	}

	_, err := c.GetOrSet("k", time.Minute, fn)
	require.NoError(t, err)
	_, err = c.GetOrSet("k", time.Minute, fn)
	require.NoError(t, err)

	assert.Equal(t, int32(2), atomic.LoadInt32(&calls))
}

func TestCache_Delete_And_Clear(t *testing.T) {
	t.Parallel()

	c := ttlcache.New(false)
	c.Set("a", 1, time.Minute)
	c.Set("b", 2, time.Minute)

	c.Delete("a")
	_, ok := c.Get("a")
	assert.False(t, ok)

	_, ok = c.Get("b")
	assert.True(t, ok)

	c.Clear()
	_, ok = c.Get("b")
	assert.False(t, ok)
}

func TestCache_Get_ExpiresEntry(t *testing.T) {
	t.Parallel()

	c := ttlcache.New(false)
	c.Set("k", "v", time.Nanosecond)

	time.Sleep(time.Millisecond)

	_, ok := c.Get("k")
	assert.False(t, ok)
}
