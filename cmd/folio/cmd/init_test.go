package cmd

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iiroan/folio/internal/config"
)

func resetInitFlags(t *testing.T) {
	t.Helper()
	t.Cleanup(func() {
		cfgFile, storeBackend = "", ""
		initStorePath, initSpeechCommand, initForce = "", "", false
	})
}

func TestRunInitWritesLoadableConfig(t *testing.T) {
	resetInitFlags(t)
	cfgFile = filepath.Join(t.TempDir(), "folio.yaml")
	storeBackend = "sqlite"
	initSpeechCommand = "espeak"

	require.NoError(t, runInit(initCmd, nil))

	loaded, err := config.Load(cfgFile)
	require.NoError(t, err)
	assert.Equal(t, "sqlite", loaded.Store.Backend)
	assert.Equal(t, ".db", filepath.Ext(loaded.Store.Path))
	assert.Equal(t, "espeak", loaded.Speech.Command)
	require.NoError(t, loaded.Validate())
}

func TestRunInitRefusesToOverwrite(t *testing.T) {
	resetInitFlags(t)
	cfgFile = filepath.Join(t.TempDir(), "folio.yaml")
	storeBackend = "memory"
	require.NoError(t, runInit(initCmd, nil))

	err := runInit(initCmd, nil)
	assert.ErrorContains(t, err, "--force")

	initForce = true
	assert.NoError(t, runInit(initCmd, nil))
}

func TestInitConfigRejectsUnknownBackend(t *testing.T) {
	resetInitFlags(t)
	storeBackend = "etcd"
	_, err := initConfig()
	assert.Error(t, err)
}
