package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMissingFileGivesDefaults(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
	require.NoError(t, cfg.Validate())
	assert.Equal(t, 5*time.Second, cfg.KeepAlive())
	assert.Equal(t, 3*time.Second, cfg.SavedDelay())
}

func TestDefaultPathHonoursXDG(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	assert.Equal(t, filepath.Join(dir, "folio", FileName), DefaultPath())
	assert.Equal(t, filepath.Join(dir, "folio", "preferences.yaml"), DefaultConfig().Store.Path)
}

func TestLoadOverlaysFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	require.NoError(t, os.WriteFile(path, []byte(`
store:
  backend: SQLite
  path: /tmp/prefs.db
speech:
  keep_alive: 250ms
`), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())
	assert.Equal(t, "sqlite", cfg.StoreOptions().Backend)
	assert.Equal(t, "/tmp/prefs.db", cfg.StoreOptions().Path)
	assert.Equal(t, 250*time.Millisecond, cfg.KeepAlive())
	assert.Equal(t, "3s", cfg.UI.SavedDelay, "unset fields keep their defaults")
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", FileName)
	cfg := DefaultConfig()
	cfg.Store.Backend = "redis"
	cfg.Store.Redis.Addr = "cache:6379"
	require.NoError(t, cfg.Save(path))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(c *Config)
	}{
		{"unknown backend", func(c *Config) { c.Store.Backend = "etcd" }},
		{"file without path", func(c *Config) { c.Store.Path = "" }},
		{"redis without addr", func(c *Config) { c.Store.Backend = "redis"; c.Store.Redis.Addr = "" }},
		{"bad keep-alive", func(c *Config) { c.Speech.KeepAlive = "soon" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}

	mem := DefaultConfig()
	mem.Store.Backend = "memory"
	mem.Store.Path = ""
	assert.NoError(t, mem.Validate())
}

func TestLoadRejectsMalformedYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	require.NoError(t, os.WriteFile(path, []byte("store: [oops"), 0o644))
	_, err := Load(path)
	assert.Error(t, err)
}
