package vm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIntMap_LookupMissingReturnsZeroValue(t *testing.T) {
	m := NewIntMap[int64]()
	assert.Equal(t, int64(0), m.Lookup(42))
	assert.False(t, m.Contains(42))

	m.Store(42, 100)
	assert.Equal(t, int64(100), m.Lookup(42))
	assert.True(t, m.Contains(42))
}

func TestStrMap_KeysAreForced(t *testing.T) {
	m := NewStrMap[int64]()
	lazyKey := Concat(FromLiteral("fo"), FromLiteral("o"))
	m.Store(lazyKey, 7)

	literalKey := FromLiteral("foo")
	assert.Equal(t, int64(7), m.Lookup(literalKey))
}

func TestIter_SnapshotsKeysAtBegin(t *testing.T) {
	m := NewIntMap[int64]()
	m.Store(1, 10)
	m.Store(2, 20)

	it := NewIntIter(m)

	seen := make(map[int64]bool)
	for {
		ok, err := it.HasNext()
		require.NoError(t, err)
		if !ok {
			break
		}
		k, err := it.Next()
		require.NoError(t, err)
		seen[k] = true
	}
	assert.Len(t, seen, 2)
	assert.True(t, seen[1])
	assert.True(t, seen[2])
}

func TestIter_InvalidatedByMutation(t *testing.T) {
	m := NewIntMap[int64]()
	m.Store(1, 10)

	it := NewIntIter(m)
	m.Store(2, 20)

	_, err := it.HasNext()
	require.Error(t, err)
	var fe *FatalError
	require.ErrorAs(t, err, &fe)
	assert.ErrorIs(t, fe, errInvariant)
}

func TestIter_ExhaustedNextIsFatal(t *testing.T) {
	m := NewIntMap[int64]()
	it := NewIntIter(m)

	ok, err := it.HasNext()
	require.NoError(t, err)
	assert.False(t, ok)

	_, err = it.Next()
	require.Error(t, err)
}
