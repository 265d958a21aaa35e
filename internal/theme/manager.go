package theme

import (
	"sync"

	"github.com/charmbracelet/log"

	"github.com/iiroan/folio/internal/kv"
)

// Manager is the single owner of the canonical preferences and the only
// writer of their storage keys.
type Manager struct {
	store       kv.Store
	logger      *log.Logger
	effects     []Effects
	prefersDark func() bool
	osOnce      sync.Once
	osMode      Mode

	mu          sync.RWMutex
	prefs       Preferences
	initialized bool

	subMu   sync.Mutex
	subs    map[int]func(Preferences)
	nextSub int

	voiceMu      sync.Mutex
	voiceStarted bool
	voiceDone    bool
	voiceRemove  func()
}

// Option configures a Manager.
type Option func(*Manager)

// WithLogger sets the logger used for persistence warnings.
func WithLogger(l *log.Logger) Option {
	return func(m *Manager) { m.logger = l }
}

// WithEffects adds a receiver for the derived style effects.
func WithEffects(e Effects) Option {
	return func(m *Manager) { m.effects = append(m.effects, e) }
}

// WithPrefersDark sets the OS color-scheme probe. It is consulted at most
// once, the first time no valid mode is persisted, and the answer is kept
// for later reloads.
func WithPrefersDark(fn func() bool) Option {
	return func(m *Manager) { m.prefersDark = fn }
}

// New returns a manager over store. Call Init before use.
func New(store kv.Store, opts ...Option) *Manager {
	m := &Manager{
		store:       store,
		logger:      log.Default(),
		prefersDark: func() bool { return false },
		subs:        make(map[int]func(Preferences)),
	}
	for _, opt := range opts {
		opt(m)
	}
	m.prefs = Defaults(Light)
	return m
}

// Init hydrates the preferences from the store. Later calls are no-ops.
func (m *Manager) Init() {
	m.mu.Lock()
	if m.initialized {
		m.mu.Unlock()
		return
	}
	m.prefs = m.hydrate()
	m.initialized = true
	applyEffects(m.prefs, m.effects)
	m.mu.Unlock()
}

// Reload re-reads every key, for when another process changed the store.
// Subscribers are notified if anything differs.
func (m *Manager) Reload() {
	m.mu.Lock()
	before := m.prefs
	m.prefs = m.hydrate()
	m.initialized = true
	after := m.prefs
	applyEffects(after, m.effects)
	m.mu.Unlock()

	if before != after {
		m.notify(after)
	}
}

// systemMode returns the OS color scheme, probed on first use only.
func (m *Manager) systemMode() Mode {
	m.osOnce.Do(func() {
		m.osMode = Light
		if m.prefersDark() {
			m.osMode = Dark
		}
	})
	return m.osMode
}

func (m *Manager) hydrate() Preferences {
	p := Defaults(Light)

	var valid bool
	if v, ok := m.read(KeyMode); ok {
		p.Mode, valid = ParseMode(v)
	}
	if !valid {
		p.Mode = m.systemMode()
	}

	if v, ok := m.read(KeyLightAccent); ok && v != "" {
		p.LightAccent = v
	}
	if v, ok := m.read(KeyDarkAccent); ok && v != "" {
		p.DarkAccent = v
	}
	if v, ok := m.read(KeyCursorEffect); ok {
		if b, valid := parseBool(v); valid {
			p.CursorEffect = b
		}
	}
	if v, ok := m.read(KeySound); ok {
		if b, valid := parseBool(v); valid {
			p.Sound = b
		}
	}
	if v, ok := m.read(KeyAIVoice); ok {
		if b, valid := parseBool(v); valid {
			p.AIVoice = b
		}
	}
	if v, ok := m.read(KeyVoice); ok {
		p.VoiceID = v
	}
	if v, ok := m.read(KeyProjectFilter); ok && v != "" {
		p.ProjectFilter = v
	}
	if v, ok := m.read(KeyWallpaper); ok {
		w, migrated, valid := resolveWallpaper(v)
		if valid {
			p.Wallpaper = w
			if migrated {
				m.logger.Debug("migrated legacy wallpaper", "from", v, "to", w.Encode())
				m.write(KeyWallpaper, w.Encode())
			}
		}
	}
	return p
}

func (m *Manager) read(key string) (string, bool) {
	v, ok, err := m.store.Get(key)
	if err != nil {
		m.logger.Warn("reading preference failed, using default", "key", key, "error", err)
		return "", false
	}
	return v, ok
}

func (m *Manager) write(key, value string) {
	if err := m.store.Set(key, value); err != nil {
		m.logger.Warn("persisting preference failed", "key", key, "error", err)
	}
}

// Snapshot returns the current canonical preferences.
func (m *Manager) Snapshot() Preferences {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.prefs
}

// Mode returns the active color mode.
func (m *Manager) Mode() Mode {
	return m.Snapshot().Mode
}

// Accent returns the accent color of the active mode.
func (m *Manager) Accent() string {
	return m.Snapshot().Accent()
}

// AccentFor returns the accent slot of mode.
func (m *Manager) AccentFor(mode Mode) string {
	return m.Snapshot().AccentFor(mode)
}

// Subscribe registers fn to receive the new snapshot after every change.
// fn runs outside the manager's lock and may read from it.
func (m *Manager) Subscribe(fn func(Preferences)) (unsubscribe func()) {
	m.subMu.Lock()
	defer m.subMu.Unlock()
	id := m.nextSub
	m.nextSub++
	m.subs[id] = fn
	return func() {
		m.subMu.Lock()
		defer m.subMu.Unlock()
		delete(m.subs, id)
	}
}

func (m *Manager) notify(p Preferences) {
	m.subMu.Lock()
	fns := make([]func(Preferences), 0, len(m.subs))
	for _, fn := range m.subs {
		fns = append(fns, fn)
	}
	m.subMu.Unlock()

	for _, fn := range fns {
		fn(p)
	}
}

// Tx applies several preference writes as one change. Readers never see a
// partially applied Tx.
type Tx struct {
	m       *Manager
	p       *Preferences
	styled  bool
	changed bool
}

func (tx *Tx) touch(changed bool) {
	if changed {
		tx.changed = true
	}
}

// SetMode switches the color mode; the accent of the new mode becomes active.
func (tx *Tx) SetMode(mode Mode) {
	if _, ok := ParseMode(string(mode)); !ok {
		tx.m.logger.Warn("ignoring unknown color mode", "mode", mode)
		return
	}
	tx.touch(tx.p.Mode != mode)
	tx.p.Mode = mode
	tx.m.write(KeyMode, string(mode))
	tx.styled = true
}

// SetAccent sets the accent of the active mode only.
func (tx *Tx) SetAccent(color string) {
	tx.SetAccentFor(tx.p.Mode, color)
}

// SetAccentFor sets the accent slot of mode.
func (tx *Tx) SetAccentFor(mode Mode, color string) {
	if mode == Dark {
		tx.touch(tx.p.DarkAccent != color)
		tx.p.DarkAccent = color
		tx.m.write(KeyDarkAccent, color)
	} else {
		tx.touch(tx.p.LightAccent != color)
		tx.p.LightAccent = color
		tx.m.write(KeyLightAccent, color)
	}
	tx.styled = true
}

func (tx *Tx) SetCursorEffect(on bool) {
	tx.touch(tx.p.CursorEffect != on)
	tx.p.CursorEffect = on
	tx.m.write(KeyCursorEffect, formatBool(on))
}

func (tx *Tx) SetSound(on bool) {
	tx.touch(tx.p.Sound != on)
	tx.p.Sound = on
	tx.m.write(KeySound, formatBool(on))
}

func (tx *Tx) SetAIVoice(on bool) {
	tx.touch(tx.p.AIVoice != on)
	tx.p.AIVoice = on
	tx.m.write(KeyAIVoice, formatBool(on))
}

// SetVoice stores id as given; it is not checked against the catalog.
func (tx *Tx) SetVoice(id string) {
	tx.touch(tx.p.VoiceID != id)
	tx.p.VoiceID = id
	tx.m.write(KeyVoice, id)
}

func (tx *Tx) SetWallpaper(w Wallpaper) {
	tx.touch(tx.p.Wallpaper != w)
	tx.p.Wallpaper = w
	tx.m.write(KeyWallpaper, w.Encode())
}

func (tx *Tx) SetProjectFilter(filter string) {
	tx.touch(tx.p.ProjectFilter != filter)
	tx.p.ProjectFilter = filter
	tx.m.write(KeyProjectFilter, filter)
}

// Update runs fn with exclusive access and applies effects and
// notifications once, after fn returns.
func (m *Manager) Update(fn func(tx *Tx)) {
	m.mu.Lock()
	next := m.prefs
	tx := &Tx{m: m, p: &next}
	fn(tx)
	m.prefs = next
	if tx.styled {
		applyEffects(next, m.effects)
	}
	m.mu.Unlock()

	if tx.changed {
		m.notify(next)
	}
}

func (m *Manager) SetMode(mode Mode)       { m.Update(func(tx *Tx) { tx.SetMode(mode) }) }
func (m *Manager) SetAccent(color string)  { m.Update(func(tx *Tx) { tx.SetAccent(color) }) }
func (m *Manager) SetCursorEffect(on bool) { m.Update(func(tx *Tx) { tx.SetCursorEffect(on) }) }
func (m *Manager) SetSound(on bool)        { m.Update(func(tx *Tx) { tx.SetSound(on) }) }
func (m *Manager) SetAIVoice(on bool)      { m.Update(func(tx *Tx) { tx.SetAIVoice(on) }) }
func (m *Manager) SetVoice(id string)      { m.Update(func(tx *Tx) { tx.SetVoice(id) }) }

func (m *Manager) SetWallpaper(w Wallpaper) {
	m.Update(func(tx *Tx) { tx.SetWallpaper(w) })
}

func (m *Manager) SetProjectFilter(filter string) {
	m.Update(func(tx *Tx) { tx.SetProjectFilter(filter) })
}
