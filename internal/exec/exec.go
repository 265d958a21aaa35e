// Package exec runs the external programs folio shells out to, such as the
// text-to-speech engine.
package exec

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"
	"time"

	"github.com/charmbracelet/log"
)

// Result holds the result of a command execution
type Result struct {
	Command  string
	Args     []string
	ExitCode int
	Stdout   string
	Stderr   string
	Duration time.Duration
	Err      error
}

// Canceled reports whether the command was stopped by its context.
func (r *Result) Canceled() bool {
	return errors.Is(r.Err, context.Canceled) || errors.Is(r.Err, context.DeadlineExceeded)
}

// Options configures command execution
type Options struct {
	Env     []string
	Timeout time.Duration
	Stdin   io.Reader
	Logger  *log.Logger
}

// DefaultOptions returns default execution options
func DefaultOptions() Options {
	return Options{Timeout: 2 * time.Minute}
}

// Run executes a command and returns the result. When ctx is canceled the
// process is killed and Result.Err wraps ctx.Err().
func Run(ctx context.Context, name string, args []string, opts Options) *Result {
	start := time.Now()

	result := &Result{
		Command: name,
		Args:    args,
	}

	if opts.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, opts.Timeout)
		defer cancel()
	}

	cmd := exec.CommandContext(ctx, name, args...)
	if len(opts.Env) > 0 {
		cmd.Env = append(os.Environ(), opts.Env...)
	}
	if opts.Stdin != nil {
		cmd.Stdin = opts.Stdin
	}

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if opts.Logger != nil {
		opts.Logger.Debug("executing command", "cmd", name, "args", args)
	}

	err := cmd.Run()
	result.Duration = time.Since(start)
	result.Stdout = stdout.String()
	result.Stderr = stderr.String()

	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			result.ExitCode = exitErr.ExitCode()
		} else {
			result.ExitCode = -1
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			err = fmt.Errorf("%s: %w", name, ctxErr)
		}
		result.Err = err
	}

	if opts.Logger != nil {
		if err != nil {
			opts.Logger.Debug("command failed",
				"cmd", name,
				"exit_code", result.ExitCode,
				"duration", result.Duration,
			)
		} else {
			opts.Logger.Debug("command succeeded",
				"cmd", name,
				"duration", result.Duration,
			)
		}
	}

	return result
}

// CheckCommand checks if a command is available
func CheckCommand(name string) bool {
	_, err := exec.LookPath(name)
	return err == nil
}

// RequireCommands checks if all required commands are available
func RequireCommands(commands ...string) error {
	missing := []string{}
	for _, cmd := range commands {
		if !CheckCommand(cmd) {
			missing = append(missing, cmd)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing required commands: %s", strings.Join(missing, ", "))
	}
	return nil
}

// FormatCommand formats a command for display
func FormatCommand(name string, args []string) string {
	parts := append([]string{name}, args...)
	return strings.Join(parts, " ")
}

// LastNLines returns the last n lines of a string
func LastNLines(s string, n int) string {
	lines := strings.Split(strings.TrimSpace(s), "\n")
	if len(lines) <= n {
		return s
	}
	return strings.Join(lines[len(lines)-n:], "\n")
}
