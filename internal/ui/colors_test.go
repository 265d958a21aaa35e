package ui

import (
	"sync"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"

	"github.com/iiroan/folio/internal/kv"
	"github.com/iiroan/folio/internal/theme"
)

func TestPaletteForDarkUsesAccent(t *testing.T) {
	p := PaletteFor(theme.Dark, "#FFFFFF")
	assert.Equal(t, "dark", p.Name)
	assert.Equal(t, lipgloss.Color("#ffffff"), p.Primary)
	assert.NotEmpty(t, p.Accent)
	assert.NotEmpty(t, p.Border)
}

func TestPaletteForLightKeepsAccentReadable(t *testing.T) {
	p := PaletteFor(theme.Light, "#FFFFFF")
	assert.Equal(t, "light", p.Name)
	assert.NotEqual(t, lipgloss.Color("#ffffff"), p.Primary)
}

func TestPaletteForInvalidAccent(t *testing.T) {
	p := PaletteFor(theme.Dark, "not-a-color")
	assert.Equal(t, lipgloss.Color("#e2e8f0"), p.Primary)
}

func TestApplyPaletteDisabled(t *testing.T) {
	t.Cleanup(func() { ApplyPalette(DefaultPalette()) })

	p := DefaultPalette()
	p.Disabled = true
	ApplyPalette(p)
	assert.Empty(t, Primary())
	assert.Empty(t, Error())

	ApplyPalette(DefaultPalette())
	assert.Equal(t, DefaultPalette().Primary, Primary())
}

func TestApplyPaletteKeepsPublishedStyles(t *testing.T) {
	t.Cleanup(func() { ApplyPalette(DefaultPalette()) })

	before := Active()
	ApplyPalette(PaletteFor(theme.Light, "#D13438"))

	assert.Equal(t, DefaultPalette().Primary, before.Primary)
	assert.Equal(t, PaletteFor(theme.Light, "#D13438").Primary, Active().Primary)
	assert.NotSame(t, before, Active())
}

func TestPaletteEffectsFollowsMode(t *testing.T) {
	t.Cleanup(func() { ApplyPalette(DefaultPalette()) })

	e := NewPaletteEffects()
	e.SetClass(theme.ClassDark, false)
	assert.Equal(t, "light", Active().Name)
	assert.Equal(t, PaletteFor(theme.Light, theme.DefaultDarkAccent).Primary, Primary())

	e.SetProperty(theme.PropAccent, "#D13438")
	assert.Equal(t, PaletteFor(theme.Light, "#D13438").Primary, Primary())

	e.SetProperty(theme.PropAccentRGB, "1, 2, 3")
	assert.Equal(t, PaletteFor(theme.Light, "#D13438").Primary, Primary())

	e.SetClass("other", true)
	assert.Equal(t, "light", Active().Name)
}

func TestPaletteEffectsWiredToManager(t *testing.T) {
	t.Cleanup(func() { ApplyPalette(DefaultPalette()) })

	e := NewPaletteEffects()
	m := theme.New(kv.NewMemory(), theme.WithEffects(e), theme.WithPrefersDark(func() bool { return true }))
	m.Init()
	m.SetMode(theme.Light)

	assert.Equal(t, "light", Active().Name)
	assert.Equal(t, PaletteFor(theme.Light, m.Accent()).Primary, Primary())
}

// Restyling happens on the watcher goroutine while the TUI renders.
func TestPaletteEffectsConcurrentWithRendering(t *testing.T) {
	t.Cleanup(func() { ApplyPalette(DefaultPalette()) })

	e := NewPaletteEffects()
	accents := []string{"#D13438", "#0078D4", "#107C10"}

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		for i := 0; i < 200; i++ {
			e.SetProperty(theme.PropAccent, accents[i%len(accents)])
			e.SetClass(theme.ClassDark, i%2 == 0)
		}
	}()
	go func() {
		defer wg.Done()
		for i := 0; i < 200; i++ {
			_ = MutedStyle().Render("muted")
			_ = Primary()
			_ = HuhTheme()
			_ = KeyValue("mode:", "dark", 9)
		}
	}()
	wg.Wait()

	assert.Contains(t, []string{"light", "dark"}, Active().Name)
}
