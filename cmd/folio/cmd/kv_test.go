package cmd

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseKeyValuePairs(t *testing.T) {
	values, err := parseKeyValuePairs([]string{"themeMode=dark", " isSoundOn = false ", "", "wallpaper=css:a=b"})
	require.NoError(t, err)
	assert.Equal(t, map[string]string{
		"themeMode": "dark",
		"isSoundOn": "false",
		"wallpaper": "css:a=b",
	}, values)

	_, err = parseKeyValuePairs([]string{"themeMode"})
	assert.ErrorContains(t, err, "expected KEY=VALUE")

	_, err = parseKeyValuePairs([]string{"=dark"})
	assert.ErrorContains(t, err, "empty key")
}

func TestFormatKeyValuePairs(t *testing.T) {
	assert.Equal(t, "", formatKeyValuePairs(nil))
	assert.Equal(t, "a=1, b=2", formatKeyValuePairs(map[string]string{"b": "2", "a": "1"}))
}

func TestSplitList(t *testing.T) {
	assert.Equal(t, []string{"Tech", "Operations"}, splitList(" Tech, ,Operations "))
	assert.Nil(t, splitList(""))
}
