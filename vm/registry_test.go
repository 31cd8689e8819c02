package vm

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistryGetOrCreate_CallsMakeOncePerKey(t *testing.T) {
	r := NewRegistry[int]()
	makeCalls := 0
	make_ := func(key string) (*int, error) {
		makeCalls++
		v := len(key)
		return &v, nil
	}
	use := func(v *int) int { return *v }

	v1, err := RegistryGetOrCreate(r, "abc", make_, use)
	require.NoError(t, err)
	assert.Equal(t, 3, v1)

	v2, err := RegistryGetOrCreate(r, "abc", make_, use)
	require.NoError(t, err)
	assert.Equal(t, 3, v2)

	_, err = RegistryGetOrCreate(r, "abcdef", make_, use)
	require.NoError(t, err)

	assert.Equal(t, 2, makeCalls, "make should run once per distinct key")
}

func TestRegistryGetOrCreate_MakeFailureNotCached(t *testing.T) {
	r := NewRegistry[int]()
	boom := errors.New("boom")
	calls := 0
	make_ := func(key string) (*int, error) {
		calls++
		if calls == 1 {
			return nil, boom
		}
		v := 7
		return &v, nil
	}
	use := func(v *int) int { return *v }

	_, err := RegistryGetOrCreate(r, "k", make_, use)
	require.ErrorIs(t, err, boom)

	v, err := RegistryGetOrCreate(r, "k", make_, use)
	require.NoError(t, err)
	assert.Equal(t, 7, v)
	assert.Equal(t, 2, calls, "a failed make must not poison the cache")
}

func TestRegistryGetOrCreateFallible_UseErrorDoesNotEvict(t *testing.T) {
	r := NewRegistry[int]()
	make_ := func(key string) (*int, error) {
		v := 1
		return &v, nil
	}
	boom := errors.New("use failed")
	useCalls := 0
	use := func(v *int) (int, error) {
		useCalls++
		if useCalls == 1 {
			return 0, boom
		}
		return *v, nil
	}

	_, err := RegistryGetOrCreateFallible(r, "k", make_, use)
	require.ErrorIs(t, err, boom)

	v, err := RegistryGetOrCreateFallible(r, "k", make_, use)
	require.NoError(t, err)
	assert.Equal(t, 1, v)
}
