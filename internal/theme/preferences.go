// Package theme owns folio's canonical user preferences: color mode, the
// per-mode accent colors, feature toggles, the selected voice and the
// wallpaper. Every change is written through to a kv.Store and the derived
// style effects are re-applied immediately.
package theme

import "strings"

// Mode is the color mode.
type Mode string

const (
	Light Mode = "light"
	Dark  Mode = "dark"
)

// ParseMode returns the mode named s.
func ParseMode(s string) (Mode, bool) {
	switch Mode(strings.ToLower(strings.TrimSpace(s))) {
	case Light:
		return Light, true
	case Dark:
		return Dark, true
	}
	return "", false
}

// Other returns the opposite mode.
func (m Mode) Other() Mode {
	if m == Dark {
		return Light
	}
	return Dark
}

// Storage keys, one per preference field.
const (
	KeyMode          = "themeMode"
	KeyLightAccent   = "lightThemeColor"
	KeyDarkAccent    = "darkThemeColor"
	KeyCursorEffect  = "isCursorEffectOn"
	KeySound         = "isSoundOn"
	KeyAIVoice       = "isAiVoiceOn"
	KeyVoice         = "selectedAiVoiceName"
	KeyWallpaper     = "wallpaper"
	KeyProjectFilter = "projectFilter"
)

// Keys lists every key the manager reads and writes.
func Keys() []string {
	return []string{
		KeyMode, KeyLightAccent, KeyDarkAccent, KeyCursorEffect, KeySound,
		KeyAIVoice, KeyVoice, KeyWallpaper, KeyProjectFilter,
	}
}

const (
	DefaultLightAccent   = "#101733"
	DefaultDarkAccent    = "#FFFFFF"
	DefaultProjectFilter = "all"
	DefaultVideoURL      = "https://cdn.dribbble.com/userupload/32524948/file/original-3c68e4ad227ae70e1875ef71289be2b0.mp4"
)

// Preferences is a snapshot of the canonical preference set.
type Preferences struct {
	Mode          Mode
	LightAccent   string
	DarkAccent    string
	CursorEffect  bool
	Sound         bool
	AIVoice       bool
	VoiceID       string
	Wallpaper     Wallpaper
	ProjectFilter string
}

// Defaults returns the preference set used for absent keys, with mode as
// the color mode.
func Defaults(mode Mode) Preferences {
	return Preferences{
		Mode:          mode,
		LightAccent:   DefaultLightAccent,
		DarkAccent:    DefaultDarkAccent,
		CursorEffect:  false,
		Sound:         true,
		AIVoice:       true,
		VoiceID:       "",
		Wallpaper:     Video(DefaultVideoURL),
		ProjectFilter: DefaultProjectFilter,
	}
}

// Accent returns the accent color of the active mode.
func (p Preferences) Accent() string {
	return p.AccentFor(p.Mode)
}

// AccentFor returns the accent slot of mode.
func (p Preferences) AccentFor(mode Mode) string {
	if mode == Dark {
		return p.DarkAccent
	}
	return p.LightAccent
}

func formatBool(b bool) string {
	if b {
		return "true"
	}
	return "false"
}

// parseBool accepts only the two values folio writes.
func parseBool(s string) (bool, bool) {
	switch s {
	case "true":
		return true, true
	case "false":
		return false, true
	}
	return false, false
}
