package vm

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileReader_GetLineSequentialAndEOF(t *testing.T) {
	path := filepath.Join(t.TempDir(), "in.txt")
	require.NoError(t, os.WriteFile(path, []byte("one\ntwo\nthree"), 0o644))

	fr := NewFileReader()
	defer fr.Close()

	var buf []byte
	ok, err := fr.GetLine(path, &buf)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "one\n", string(buf))

	buf = buf[:0]
	ok, err = fr.GetLine(path, &buf)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "two\n", string(buf))

	buf = buf[:0]
	ok, err = fr.GetLine(path, &buf)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "three", string(buf), "final line with no trailing newline still returned")

	buf = buf[:0]
	ok, err = fr.GetLine(path, &buf)
	require.NoError(t, err)
	assert.False(t, ok, "further reads at EOF report false")
}

func TestFileReader_MissingFileIsFatal(t *testing.T) {
	fr := NewFileReader()
	defer fr.Close()

	var buf []byte
	_, err := fr.GetLine(filepath.Join(t.TempDir(), "nope.txt"), &buf)
	require.Error(t, err)
	assert.ErrorIs(t, err, errIO)
}
