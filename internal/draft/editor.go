// Package draft holds the pending settings a user edits before saving them.
// Nothing here is persisted until Commit.
package draft

import (
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/iiroan/folio/internal/theme"
)

// DefaultSavedDelay is how long the saved indicator stays visible.
const DefaultSavedDelay = 3 * time.Second

// Draft is the pending copy of the settable preference fields.
type Draft struct {
	Mode         theme.Mode
	LightAccent  string
	DarkAccent   string
	CursorEffect bool
	Sound        bool
	AIVoice      bool
	VoiceID      string
	Wallpaper    theme.Wallpaper
}

// Accent returns the draft accent of the draft mode.
func (d Draft) Accent() string {
	if d.Mode == theme.Dark {
		return d.DarkAccent
	}
	return d.LightAccent
}

func fromPreferences(p theme.Preferences) Draft {
	return Draft{
		Mode:         p.Mode,
		LightAccent:  p.LightAccent,
		DarkAccent:   p.DarkAccent,
		CursorEffect: p.CursorEffect,
		Sound:        p.Sound,
		AIVoice:      p.AIVoice,
		VoiceID:      p.VoiceID,
		Wallpaper:    p.Wallpaper,
	}
}

// Editor owns one draft over a theme.Manager.
type Editor struct {
	manager    *theme.Manager
	logger     *log.Logger
	savedDelay time.Duration

	mu          sync.Mutex
	draft       Draft
	saved       bool
	savedTimer  *time.Timer
	unsubscribe func()
}

// Option configures an Editor.
type Option func(*Editor)

func WithLogger(l *log.Logger) Option {
	return func(e *Editor) { e.logger = l }
}

// WithSavedDelay overrides how long Saved reports true after a commit.
func WithSavedDelay(d time.Duration) Option {
	return func(e *Editor) { e.savedDelay = d }
}

// NewEditor copies the manager's current preferences into a fresh draft and
// follows later canonical changes.
func NewEditor(m *theme.Manager, opts ...Option) *Editor {
	e := &Editor{
		manager:    m,
		logger:     log.Default(),
		savedDelay: DefaultSavedDelay,
	}
	for _, opt := range opts {
		opt(e)
	}
	e.draft = fromPreferences(m.Snapshot())
	e.unsubscribe = m.Subscribe(e.resync)
	return e
}

// resync replaces the draft with canonical state. Unsaved edits are lost,
// which matches what the settings page shows after a save elsewhere.
func (e *Editor) resync(p theme.Preferences) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.draft = fromPreferences(p)
}

// Draft returns a copy of the pending state.
func (e *Editor) Draft() Draft {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.draft
}

func (e *Editor) edit(fn func(d *Draft)) {
	e.mu.Lock()
	defer e.mu.Unlock()
	fn(&e.draft)
}

// SetMode changes the draft mode. The accent shown switches to that mode's
// draft slot.
func (e *Editor) SetMode(mode theme.Mode) {
	if _, ok := theme.ParseMode(string(mode)); !ok {
		e.logger.Warn("ignoring unknown color mode", "mode", mode)
		return
	}
	e.edit(func(d *Draft) { d.Mode = mode })
}

// SetAccent sets the accent of the draft mode's slot.
func (e *Editor) SetAccent(color string) {
	e.edit(func(d *Draft) {
		if d.Mode == theme.Dark {
			d.DarkAccent = color
		} else {
			d.LightAccent = color
		}
	})
}

func (e *Editor) SetCursorEffect(on bool) { e.edit(func(d *Draft) { d.CursorEffect = on }) }
func (e *Editor) SetSound(on bool)        { e.edit(func(d *Draft) { d.Sound = on }) }
func (e *Editor) SetAIVoice(on bool)      { e.edit(func(d *Draft) { d.AIVoice = on }) }
func (e *Editor) SetVoice(id string)      { e.edit(func(d *Draft) { d.VoiceID = id }) }

func (e *Editor) SetWallpaper(w theme.Wallpaper) {
	e.edit(func(d *Draft) { d.Wallpaper = w })
}

// Commit writes every draft field through the manager as one update and
// shows the saved indicator.
func (e *Editor) Commit() {
	d := e.Draft()

	e.manager.Update(func(tx *theme.Tx) {
		tx.SetAccentFor(theme.Light, d.LightAccent)
		tx.SetAccentFor(theme.Dark, d.DarkAccent)
		tx.SetMode(d.Mode)
		tx.SetCursorEffect(d.CursorEffect)
		tx.SetSound(d.Sound)
		tx.SetAIVoice(d.AIVoice)
		tx.SetVoice(d.VoiceID)
		tx.SetWallpaper(d.Wallpaper)
	})
	e.logger.Debug("settings saved", "mode", d.Mode, "accent", d.Accent(), "wallpaper", d.Wallpaper)

	e.mu.Lock()
	defer e.mu.Unlock()
	e.saved = true
	if e.savedTimer != nil {
		e.savedTimer.Stop()
	}
	e.savedTimer = time.AfterFunc(e.savedDelay, e.clearSaved)
}

func (e *Editor) clearSaved() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.saved = false
}

// Saved reports whether the saved indicator is showing.
func (e *Editor) Saved() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.saved
}

// Discard drops unsaved edits.
func (e *Editor) Discard() {
	e.resync(e.manager.Snapshot())
}

// Dirty reports whether the draft differs from canonical state.
func (e *Editor) Dirty() bool {
	return e.Draft() != fromPreferences(e.manager.Snapshot())
}

// Close stops following the manager and cancels the indicator timer.
func (e *Editor) Close() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.unsubscribe != nil {
		e.unsubscribe()
		e.unsubscribe = nil
	}
	if e.savedTimer != nil {
		e.savedTimer.Stop()
		e.savedTimer = nil
	}
	e.saved = false
}
