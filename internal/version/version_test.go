package version

import (
	"encoding/json"
	"runtime/debug"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetUsesRuntime(t *testing.T) {
	info := Get()
	assert.NotEmpty(t, info.GoVersion)
	assert.NotEmpty(t, info.OS)
	assert.NotEmpty(t, info.Arch)
	assert.NotEmpty(t, info.Version)
}

func TestFromBuildInfo(t *testing.T) {
	base := Info{Version: "dev", Commit: "unknown", BuildDate: "unknown"}
	bi := &debug.BuildInfo{
		Main: debug.Module{Version: "(devel)"},
		Settings: []debug.BuildSetting{
			{Key: "vcs.revision", Value: "3f2a9c1d0e"},
			{Key: "vcs.time", Value: "2026-01-02T03:04:05Z"},
			{Key: "vcs.modified", Value: "true"},
		},
	}

	info := fromBuildInfo(base, bi)
	assert.Equal(t, "dev", info.Version)
	assert.Equal(t, "3f2a9c1d0e", info.Commit)
	assert.Equal(t, "2026-01-02T03:04:05Z", info.BuildDate)
	assert.True(t, info.Dirty)
	assert.Equal(t, "dev-3f2a9c1+dirty", info.Short())
}

func TestFromBuildInfoKeepsLinkerValues(t *testing.T) {
	base := Info{Version: "v1.2.0", Commit: "abc", BuildDate: "today"}
	bi := &debug.BuildInfo{
		Main:     debug.Module{Version: "v0.0.1"},
		Settings: []debug.BuildSetting{{Key: "vcs.revision", Value: "zzz"}},
	}

	info := fromBuildInfo(base, bi)
	assert.Equal(t, "v1.2.0", info.Version)
	assert.Equal(t, "abc", info.Commit)
	assert.Equal(t, "today", info.BuildDate)
	assert.Equal(t, "v1.2.0", info.Short())
}

func TestShort(t *testing.T) {
	assert.Equal(t, "dev", Info{Version: "dev", Commit: "unknown"}.Short())
	assert.Equal(t, "dev-abc", Info{Version: "dev", Commit: "abc"}.Short())
}

func TestStringAndJSON(t *testing.T) {
	info := Info{Version: "v1", Commit: "c", BuildDate: "d", GoVersion: "go1.24", OS: "linux", Arch: "amd64"}

	assert.Contains(t, info.String(), "Version:    v1\n")
	assert.Contains(t, info.String(), "OS/Arch:    linux/amd64\n")

	data, err := info.JSON()
	require.NoError(t, err)
	var decoded map[string]any
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, "v1", decoded["version"])
	assert.NotContains(t, decoded, "dirty")
}
