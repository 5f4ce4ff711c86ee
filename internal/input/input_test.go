package input

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenMapsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sample.bin")
	content := []byte{0, 0, 1, 1, 0, 0, 1, 1}
	require.NoError(t, os.WriteFile(path, content, 0o644))

	src, err := Open(path)
	require.NoError(t, err)
	assert.Equal(t, path, src.Name())
	assert.Equal(t, content, src.Bytes())
	require.NoError(t, src.Close())
	assert.Nil(t, src.Bytes())
	require.NoError(t, src.Close())
}

func TestOpenEmptyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.bin")
	require.NoError(t, os.WriteFile(path, nil, 0o644))

	src, err := Open(path)
	require.NoError(t, err)
	assert.Empty(t, src.Bytes())
	assert.NoError(t, src.Close())
}

func TestOpenMissingFile(t *testing.T) {
	_, err := Open(filepath.Join(t.TempDir(), "missing"))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestRead(t *testing.T) {
	src, err := Read("stdin", strings.NewReader("hello"))
	require.NoError(t, err)
	assert.Equal(t, "stdin", src.Name())
	assert.Equal(t, []byte("hello"), src.Bytes())
	assert.NoError(t, src.Close())
}
