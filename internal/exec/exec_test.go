package exec

import (
	"context"
	"runtime"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunCapturesOutput(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("needs a POSIX shell")
	}
	res := Run(context.Background(), "sh", []string{"-c", "echo hello; echo oops >&2; exit 3"}, DefaultOptions())
	require.Error(t, res.Err)
	assert.Equal(t, 3, res.ExitCode)
	assert.Equal(t, "hello\n", res.Stdout)
	assert.Equal(t, "oops\n", res.Stderr)
	assert.False(t, res.Canceled())
}

func TestRunCanceled(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("needs a POSIX shell")
	}
	ctx, cancel := context.WithCancel(context.Background())
	time.AfterFunc(20*time.Millisecond, cancel)

	res := Run(ctx, "sleep", []string{"5"}, DefaultOptions())
	require.Error(t, res.Err)
	assert.True(t, res.Canceled())
	assert.Less(t, res.Duration, 5*time.Second)
}

func TestRequireCommands(t *testing.T) {
	err := RequireCommands("definitely-not-a-real-folio-tool")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "definitely-not-a-real-folio-tool")
}

func TestFormatCommand(t *testing.T) {
	assert.Equal(t, "espeak-ng -v vi hello", FormatCommand("espeak-ng", []string{"-v", "vi", "hello"}))
}

func TestLastNLines(t *testing.T) {
	assert.Equal(t, "b\nc", LastNLines("a\nb\nc\n", 2))
	assert.Equal(t, "a\n", LastNLines("a\n", 3))
}
