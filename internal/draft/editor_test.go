package draft

import (
	"io"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iiroan/folio/internal/kv"
	"github.com/iiroan/folio/internal/theme"
)

func setup(t *testing.T, opts ...Option) (*theme.Manager, *kv.Memory, *Editor) {
	t.Helper()
	store := kv.NewMemory()
	m := theme.New(store, theme.WithLogger(log.New(io.Discard)))
	m.Init()
	opts = append([]Option{WithLogger(log.New(io.Discard))}, opts...)
	e := NewEditor(m, opts...)
	t.Cleanup(e.Close)
	return m, store, e
}

func TestDraftEditsStayLocal(t *testing.T) {
	m, store, e := setup(t)
	before := m.Snapshot()

	e.SetMode(theme.Dark)
	e.SetAccent("#ED1B2F")
	e.SetSound(false)
	e.SetCursorEffect(true)
	e.SetWallpaper(theme.Special(theme.OrbitingPlanets))

	assert.Equal(t, before, m.Snapshot())
	assert.Empty(t, store.Keys(), "no key written before commit")
	assert.True(t, e.Dirty())
}

func TestDiscardRestoresCanonical(t *testing.T) {
	m, _, e := setup(t)
	e.SetMode(theme.Dark)
	e.SetVoice("Zira")

	e.Discard()
	assert.Equal(t, fromPreferences(m.Snapshot()), e.Draft())
	assert.False(t, e.Dirty())
}

func TestCommitWritesEveryField(t *testing.T) {
	m, store, e := setup(t)

	e.SetMode(theme.Dark)
	e.SetAccent("#49C16C")
	e.SetAIVoice(false)
	e.SetVoice("An")
	e.SetWallpaper(theme.Gradient(theme.AnimatedGradient))
	e.Commit()

	p := m.Snapshot()
	assert.Equal(t, theme.Dark, p.Mode)
	assert.Equal(t, "#49C16C", p.DarkAccent)
	assert.Equal(t, theme.DefaultLightAccent, p.LightAccent)
	assert.False(t, p.AIVoice)
	assert.Equal(t, "An", p.VoiceID)

	for _, key := range []string{theme.KeyMode, theme.KeyDarkAccent, theme.KeyLightAccent, theme.KeyAIVoice, theme.KeyVoice, theme.KeyWallpaper} {
		_, ok, err := store.Get(key)
		require.NoError(t, err)
		assert.True(t, ok, key)
	}
	v, _, _ := store.Get(theme.KeyDarkAccent)
	assert.Equal(t, "#49C16C", v, "the accent goes to the committed mode's slot")
}

func TestCommitIsObservedOnce(t *testing.T) {
	m, _, e := setup(t)
	var seen []theme.Preferences
	m.Subscribe(func(p theme.Preferences) { seen = append(seen, p) })

	e.SetMode(theme.Dark)
	e.SetAccent("#FFB300")
	e.SetSound(false)
	e.Commit()

	require.Len(t, seen, 1)
	assert.Equal(t, theme.Dark, seen[0].Mode)
	assert.Equal(t, "#FFB300", seen[0].Accent())
	assert.False(t, seen[0].Sound)
}

func TestDraftFollowsCanonicalChanges(t *testing.T) {
	m, _, e := setup(t)
	e.SetSound(false)

	m.SetMode(theme.Dark)
	d := e.Draft()
	assert.Equal(t, theme.Dark, d.Mode)
	assert.True(t, d.Sound, "resync replaces unsaved edits")
}

func TestDraftAccentFollowsDraftMode(t *testing.T) {
	_, _, e := setup(t)
	e.SetAccent("#AE2070")
	e.SetMode(theme.Dark)
	assert.Equal(t, theme.DefaultDarkAccent, e.Draft().Accent())
	e.SetMode(theme.Light)
	assert.Equal(t, "#AE2070", e.Draft().Accent())
}

func TestStaleVoiceCommitsAsIs(t *testing.T) {
	m, _, e := setup(t)
	e.SetVoice("voice-that-was-uninstalled")
	e.Commit()
	assert.Equal(t, "voice-that-was-uninstalled", m.Snapshot().VoiceID)
}

func TestSavedIndicatorClears(t *testing.T) {
	_, _, e := setup(t, WithSavedDelay(20*time.Millisecond))
	assert.False(t, e.Saved())

	e.Commit()
	assert.True(t, e.Saved())
	assert.Eventually(t, func() bool { return !e.Saved() }, time.Second, 5*time.Millisecond)
}

func TestCloseStopsFollowing(t *testing.T) {
	m, _, e := setup(t, WithSavedDelay(time.Hour))
	e.Commit()
	e.Close()
	assert.False(t, e.Saved())

	m.SetMode(theme.Dark)
	assert.Equal(t, theme.Light, e.Draft().Mode)
}
