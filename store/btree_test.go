package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestBTreeCacheGetSet does basic sanity checks on our cache, layering
// cache wraps on top of each other and writing or discarding them.
func TestBTreeCacheGetSet(t *testing.T) {
	base := MemStore()

	get := func(kv KVStore, key []byte) []byte {
		t.Helper()
		v, err := kv.Get(key)
		require.NoError(t, err)
		return v
	}
	has := func(kv KVStore, key []byte) bool {
		t.Helper()
		ok, err := kv.Has(key)
		require.NoError(t, err)
		return ok
	}

	// make sure the btree is empty at start but returns results
	// that are writen to it
	k, v := []byte("french"), []byte("fry")
	assert.Nil(t, get(base, k))
	assert.False(t, has(base, k))
	require.NoError(t, base.Set(k, v))
	assert.Equal(t, v, get(base, k))
	assert.True(t, has(base, k))

	// now layer another btree on top and make sure that we get
	// base data
	cache := base.CacheWrap()
	assert.Equal(t, v, get(cache, k))

	// writing more data is only visible in the cache
	k2, v2 := []byte("LA"), []byte("Dodgers")
	require.NoError(t, cache.Set(k2, v2))
	assert.Equal(t, v2, get(cache, k2))
	assert.Nil(t, get(base, k2))
	assert.True(t, has(cache, k2))
	assert.False(t, has(base, k2))

	// we can write the cache to the base layer...
	require.NoError(t, cache.Write())
	assert.Equal(t, v, get(base, k))
	assert.Equal(t, v2, get(base, k2))

	// we can discard one
	k3, v3 := []byte("Bayern"), []byte("Munich")
	c2 := base.CacheWrap()
	require.NoError(t, c2.Set(k3, v3))
	assert.Equal(t, v3, get(c2, k3))
	c2.Discard()
	assert.Nil(t, get(base, k3))

	// and commit another one with a delete
	c3 := base.CacheWrap()
	require.NoError(t, c3.Delete(k))
	assert.Nil(t, get(c3, k))
	assert.False(t, has(c3, k))
	assert.Equal(t, v, get(base, k))
	require.NoError(t, c3.Write())

	assert.Nil(t, get(base, k))
	assert.Equal(t, v2, get(base, k2))
	assert.Nil(t, get(base, k3))
}

func TestNestedCacheWrapDiscard(t *testing.T) {
	base := MemStore()
	outer := base.CacheWrap()
	require.NoError(t, outer.Set([]byte("a"), []byte("1")))

	inner := outer.CacheWrap()
	require.NoError(t, inner.Set([]byte("a"), []byte("2")))
	require.NoError(t, inner.Set([]byte("b"), []byte("3")))
	inner.Discard()

	v, err := outer.Get([]byte("a"))
	require.NoError(t, err)
	assert.Equal(t, []byte("1"), v)
	ok, err := outer.Has([]byte("b"))
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, outer.Write())
	v, err = base.Get([]byte("a"))
	require.NoError(t, err)
	assert.Equal(t, []byte("1"), v)
}

func TestNilKey(t *testing.T) {
	kv := MemStore()
	assert.Error(t, kv.Set(nil, []byte("x")))
	assert.Error(t, kv.Delete(nil))
}

func TestNonAtomicBatch(t *testing.T) {
	kv := MemStore()
	b := NewNonAtomicBatch(kv)
	require.NoError(t, b.Set([]byte("k"), []byte("v")))
	require.NoError(t, b.Delete([]byte("gone")))
	assert.Len(t, b.ShowOps(), 2)

	v, err := kv.Get([]byte("k"))
	require.NoError(t, err)
	assert.Nil(t, v, "batch must not write before Write is called")

	require.NoError(t, b.Write())
	assert.Len(t, b.ShowOps(), 0)
	v, err = kv.Get([]byte("k"))
	require.NoError(t, err)
	assert.Equal(t, []byte("v"), v)
}
