package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func memStoreConstructor() (CacheableKVStore, func()) {
	return MemStore(), func() {}
}

func TestBTreeCacheGetSet(t *testing.T) {
	NewTestSuite(memStoreConstructor).GetSet(t)
}

func TestBTreeCacheConflicts(t *testing.T) {
	NewTestSuite(memStoreConstructor).CacheConflicts(t)
}

func TestBTreeCacheFuzzIterator(t *testing.T) {
	NewTestSuite(memStoreConstructor).FuzzIterator(t)
}

func TestBTreeCacheIteratorWithConflicts(t *testing.T) {
	NewTestSuite(memStoreConstructor).IteratorWithConflicts(t)
}

// TestSliceIterator makes sure the basic slice iterator works
func TestSliceIterator(t *testing.T) {
	const Size = 10

	ks := randKeys(Size, 8)
	vs := randKeys(Size, 40)

	models := make([]Model, Size)
	for i := 0; i < Size; i++ {
		models[i] = Pair(ks[i], vs[i])
	}

	iter := NewSliceIterator(models)
	for i := 0; iter.Valid(); i++ {
		require.True(t, i < Size)
		assert.Equal(t, ks[i], iter.Key())
		assert.Equal(t, vs[i], iter.Value())
		require.NoError(t, iter.Next())
	}
	assert.Error(t, iter.Next(), "cannot advance past the end")

	// iterator is invalid after close
	trash := NewSliceIterator(models)
	assert.True(t, trash.Valid())
	trash.Close()
	assert.False(t, trash.Valid())
}

// TestNestedSavepoints checks that a discarded inner cache does not leak
// into the outer one, while a written one does.
func TestNestedSavepoints(t *testing.T) {
	base := MemStore()
	outer := base.CacheWrap()
	require.NoError(t, outer.Set([]byte("a"), []byte("1")))

	inner := outer.CacheWrap()
	require.NoError(t, inner.Set([]byte("b"), []byte("2")))
	require.NoError(t, inner.Delete([]byte("a")))
	inner.Discard()

	val, err := outer.Get([]byte("a"))
	require.NoError(t, err)
	assert.Equal(t, []byte("1"), val)
	has, err := outer.Has([]byte("b"))
	require.NoError(t, err)
	assert.False(t, has)

	inner = outer.CacheWrap()
	require.NoError(t, inner.Set([]byte("b"), []byte("2")))
	require.NoError(t, inner.Write())
	require.NoError(t, outer.Write())

	val, err = base.Get([]byte("b"))
	require.NoError(t, err)
	assert.Equal(t, []byte("2"), val)
	val, err = base.Get([]byte("a"))
	require.NoError(t, err)
	assert.Equal(t, []byte("1"), val)
}

func TestNonAtomicBatch(t *testing.T) {
	base := MemStore()
	b := NewNonAtomicBatch(base)
	require.NoError(t, b.Set([]byte("k"), []byte("v")))
	require.NoError(t, b.Delete([]byte("gone")))
	assert.Len(t, b.ShowOps(), 2)

	has, err := base.Has([]byte("k"))
	require.NoError(t, err)
	assert.False(t, has, "batch must not write before Write")

	require.NoError(t, b.Write())
	assert.Len(t, b.ShowOps(), 0)
	val, err := base.Get([]byte("k"))
	require.NoError(t, err)
	assert.Equal(t, []byte("v"), val)
}
