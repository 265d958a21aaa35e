package ui

import (
	"sync"
	"sync/atomic"

	"github.com/iiroan/folio/internal/theme"
)

// Preferences controls runtime UI settings.
type Preferences struct {
	Dense   bool
	NoColor bool
}

var currentPrefs atomic.Pointer[Preferences]

// CurrentPreferences returns the active UI preferences.
func CurrentPreferences() Preferences {
	if p := currentPrefs.Load(); p != nil {
		return *p
	}
	return Preferences{}
}

// ApplyPreferences updates UI preferences and active palette.
func ApplyPreferences(p Preferences, mode theme.Mode, accent string) {
	currentPrefs.Store(&p)
	ApplyTheme(mode, accent, p.NoColor)
}

// ApplyTheme switches the color palette for the TUI.
func ApplyTheme(mode theme.Mode, accent string, noColor bool) {
	palette := PaletteFor(mode, accent)
	palette.Disabled = noColor
	ApplyPalette(palette)
}

// PaletteEffects is a theme.Effects receiver that keeps the TUI palette in
// step with the canonical color mode and accent. It may be called from the
// store watcher while a TUI renders; each change publishes a new Styles.
type PaletteEffects struct {
	mu     sync.Mutex
	mode   theme.Mode
	accent string
}

// NewPaletteEffects returns a receiver starting from the default palette.
func NewPaletteEffects() *PaletteEffects {
	return &PaletteEffects{mode: theme.Dark, accent: theme.DefaultDarkAccent}
}

func (e *PaletteEffects) SetProperty(name, value string) {
	if name != theme.PropAccent {
		return
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	e.accent = value
	ApplyTheme(e.mode, e.accent, CurrentPreferences().NoColor)
}

func (e *PaletteEffects) SetClass(name string, on bool) {
	if name != theme.ClassDark {
		return
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	e.mode = theme.Light
	if on {
		e.mode = theme.Dark
	}
	ApplyTheme(e.mode, e.accent, CurrentPreferences().NoColor)
}
