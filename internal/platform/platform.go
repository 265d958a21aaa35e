// Package platform holds the OS-specific defaults folio falls back to.
package platform

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
)

// SpeechCommand returns the text-to-speech program for the current OS.
func SpeechCommand() string {
	switch runtime.GOOS {
	case "darwin":
		return "say"
	case "windows":
		return ""
	default:
		return "espeak-ng"
	}
}

// RequireSpeech returns an error if the current OS has no supported
// speech program.
func RequireSpeech(feature string) error {
	if SpeechCommand() == "" {
		if feature == "" {
			feature = "speech"
		}
		return fmt.Errorf("%s is not supported on %s", feature, runtime.GOOS)
	}
	return nil
}

// ConfigDir returns folio's configuration directory, honouring
// XDG_CONFIG_HOME.
func ConfigDir() string {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, "folio")
	}
	if dir, err := os.UserConfigDir(); err == nil {
		return filepath.Join(dir, "folio")
	}
	return ".folio"
}
