package kv

import (
	"context"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func exerciseStore(t *testing.T, s Store) {
	t.Helper()

	_, ok, err := s.Get("themeMode")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, s.Set("themeMode", "dark"))
	require.NoError(t, s.Set("selectedAiVoiceName", ""))

	v, ok, err := s.Get("themeMode")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "dark", v)

	v, ok, err = s.Get("selectedAiVoiceName")
	require.NoError(t, err)
	assert.True(t, ok, "empty values are still present")
	assert.Equal(t, "", v)

	require.NoError(t, s.Set("themeMode", "light"))
	v, _, err = s.Get("themeMode")
	require.NoError(t, err)
	assert.Equal(t, "light", v)
}

func TestMemoryStore(t *testing.T) {
	exerciseStore(t, NewMemory())
}

func TestFileStore(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "prefs.yaml")
	exerciseStore(t, NewFile(path))

	// A fresh handle sees what the first one wrote.
	v, ok, err := NewFile(path).Get("themeMode")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "light", v)
}

func TestFileStoreRejectsCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prefs.yaml")
	require.NoError(t, os.WriteFile(path, []byte("::: not yaml"), 0o644))

	_, _, err := NewFile(path).Get("themeMode")
	assert.Error(t, err)
}

func TestFileStoreWatch(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prefs.yaml")
	watched := NewFile(path)
	require.NoError(t, watched.Set("themeMode", "light"))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var calls atomic.Int32
	require.NoError(t, watched.Watch(ctx, func() { calls.Add(1) }))

	// Give the modification time a chance to move past the first write.
	time.Sleep(20 * time.Millisecond)
	other := NewFile(path)
	require.NoError(t, other.Set("themeMode", "dark"))

	require.Eventually(t, func() bool { return calls.Load() > 0 }, 5*time.Second, 20*time.Millisecond)

	v, _, err := watched.Get("themeMode")
	require.NoError(t, err)
	assert.Equal(t, "dark", v)
}

func TestSQLiteStore(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prefs.db")
	s, err := OpenSQLite(path)
	require.NoError(t, err)
	exerciseStore(t, s)
	require.NoError(t, s.Close())

	reopened, err := OpenSQLite(path)
	require.NoError(t, err)
	defer reopened.Close()

	v, ok, err := reopened.Get("themeMode")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "light", v)
}

func TestOpen(t *testing.T) {
	dir := t.TempDir()

	s, err := Open(Options{Backend: "file", Path: filepath.Join(dir, "p.yaml")})
	require.NoError(t, err)
	assert.IsType(t, &File{}, s)

	s, err = Open(Options{Backend: "memory"})
	require.NoError(t, err)
	assert.IsType(t, &Memory{}, s)

	_, err = Open(Options{Backend: "file"})
	assert.Error(t, err)

	_, err = Open(Options{Backend: "etcd"})
	assert.ErrorIs(t, err, ErrUnknownBackend)
}
