package mmap

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestOpen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "keys.txt")
	require.NoError(t, os.WriteFile(path, []byte("1 one\n2 two\n"), 0644))

	m, err := Open(path)
	require.NoError(t, err)
	require.Equal(t, "1 one\n2 two\n", string(m.Data))
	require.Equal(t, 12, m.Size)

	require.NoError(t, m.Close())
	require.Nil(t, m.Data)
	require.NoError(t, m.Close())
}

func TestOpenEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty")
	require.NoError(t, os.WriteFile(path, nil, 0644))

	m, err := Open(path)
	require.NoError(t, err)
	require.Empty(t, m.Data)
	require.NoError(t, m.Close())
}

func TestOpenErrors(t *testing.T) {
	dir := t.TempDir()

	_, err := Open(filepath.Join(dir, "missing"))
	require.Error(t, err)

	_, err = Open(dir)
	require.Error(t, err)
}
