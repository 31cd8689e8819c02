package vm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegexCache_MatchAndReuse(t *testing.T) {
	c := NewRegexCache()

	ok, err := c.Match("fo+", "food")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = c.Match("fo+", "bard")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestRegexCache_CompileErrorIsFatal(t *testing.T) {
	c := NewRegexCache()
	_, err := c.Match("(unterminated", "x")
	require.Error(t, err)
	assert.ErrorIs(t, err, errRegexCompile)
}
