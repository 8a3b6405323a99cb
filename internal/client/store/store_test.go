package store

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileStoreRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "clubhub", "token")
	s := NewFileStore(path)

	token, err := s.Load()
	require.NoError(t, err, "a missing file is not an error")
	assert.Empty(t, token)

	require.NoError(t, s.Save("tok-123"))
	token, err = s.Load()
	require.NoError(t, err)
	assert.Equal(t, "tok-123", token)

	require.NoError(t, s.Save("tok-456"))
	token, err = s.Load()
	require.NoError(t, err)
	assert.Equal(t, "tok-456", token)
}

func TestFileStorePermissions(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("unix permission bits")
	}
	path := filepath.Join(t.TempDir(), "token")
	s := NewFileStore(path)
	require.NoError(t, s.Save("tok-123"))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
}

func TestFileStoreClearIsIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "token")
	s := NewFileStore(path)
	require.NoError(t, s.Save("tok-123"))

	require.NoError(t, s.Clear())
	require.NoError(t, s.Clear(), "clearing an already empty store must succeed")

	token, err := s.Load()
	require.NoError(t, err)
	assert.Empty(t, token)
}

func TestMemoryStore(t *testing.T) {
	s := NewMemoryStore("seed")

	token, err := s.Load()
	require.NoError(t, err)
	assert.Equal(t, "seed", token)

	require.NoError(t, s.Save("next"))
	token, _ = s.Load()
	assert.Equal(t, "next", token)

	require.NoError(t, s.Clear())
	token, _ = s.Load()
	assert.Empty(t, token)
}
