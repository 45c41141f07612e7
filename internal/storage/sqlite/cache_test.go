package sqlite

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClock struct {
	now time.Time
}

func (f *fakeClock) Now() time.Time { return f.now }

func openTestCache(t *testing.T) (*Cache, *fakeClock) {
	t.Helper()
	clock := &fakeClock{now: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)}
	c, err := Open(filepath.Join(t.TempDir(), "nested", "cache.db"), WithClock(clock.Now))
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Close() })
	return c, clock
}

func TestOpenRejectsEmptyPath(t *testing.T) {
	_, err := Open("  ")
	assert.Error(t, err)
}

func TestPutGet(t *testing.T) {
	c, clock := openTestCache(t)
	ctx := context.Background()

	_, err := c.Get(ctx, "GET /public/projects")
	assert.ErrorIs(t, err, ErrCacheMiss)

	require.NoError(t, c.Put(ctx, "GET /public/projects", []byte(`{"items":[]}`)))
	e, err := c.Get(ctx, "GET /public/projects")
	require.NoError(t, err)
	assert.Equal(t, []byte(`{"items":[]}`), e.Payload)
	assert.True(t, e.FetchedAt.Equal(clock.now))

	clock.now = clock.now.Add(time.Hour)
	require.NoError(t, c.Put(ctx, "GET /public/projects", []byte(`{"items":[1]}`)))
	e, err = c.Get(ctx, "GET /public/projects")
	require.NoError(t, err)
	assert.Equal(t, []byte(`{"items":[1]}`), e.Payload)
	assert.Equal(t, time.Duration(0), e.Age(clock.now))
}

func TestInvalidKey(t *testing.T) {
	c, _ := openTestCache(t)
	assert.ErrorIs(t, c.Put(context.Background(), "", nil), ErrInvalidKey)
	_, err := c.Get(context.Background(), " ")
	assert.ErrorIs(t, err, ErrInvalidKey)
}

func TestDeleteClearPrune(t *testing.T) {
	c, clock := openTestCache(t)
	ctx := context.Background()

	require.NoError(t, c.Put(ctx, "a", []byte("1")))
	clock.now = clock.now.Add(30 * time.Minute)
	require.NoError(t, c.Put(ctx, "b", []byte("22")))
	require.NoError(t, c.Put(ctx, "c", []byte("333")))

	st, err := c.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, st.Entries)
	assert.Equal(t, int64(6), st.Bytes)
	assert.True(t, st.Newest.After(st.Oldest))

	require.NoError(t, c.Delete(ctx, "c"))
	require.NoError(t, c.Delete(ctx, "missing"))

	n, err := c.Prune(ctx, 10*time.Minute)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
	_, err = c.Get(ctx, "a")
	assert.ErrorIs(t, err, ErrCacheMiss)

	n, err = c.Clear(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	st, err = c.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, Stats{}, st)
}

func TestPersistsAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cache.db")
	c, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, c.Put(context.Background(), "k", []byte("v")))
	require.NoError(t, c.Close())

	c, err = Open(path)
	require.NoError(t, err)
	defer c.Close()
	e, err := c.Get(context.Background(), "k")
	require.NoError(t, err)
	assert.Equal(t, []byte("v"), e.Payload)
}
