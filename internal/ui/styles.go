// Package ui provides Charm-based UI components for folio
package ui

import (
	"os"
	"strings"
	"sync/atomic"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/term"
)

// Styles is one palette together with the styles built from it. A Styles
// value is never modified after it is published, so renderers on any
// goroutine can hold on to it while the palette changes.
type Styles struct {
	Palette

	Title        lipgloss.Style
	Subtitle     lipgloss.Style
	Tagline      lipgloss.Style
	SuccessStyle lipgloss.Style
	WarningStyle lipgloss.Style
	ErrorStyle   lipgloss.Style
	MutedStyle   lipgloss.Style
	HintStyle    lipgloss.Style
	PrimaryStyle lipgloss.Style

	SuccessBox  lipgloss.Style
	TableHeader lipgloss.Style

	// Status indicators
	StatusSuccess lipgloss.Style
	StatusPending lipgloss.Style
}

var active atomic.Pointer[Styles]

func init() {
	ApplyPalette(DefaultPalette())
}

// Active returns the styles of the palette applied last.
func Active() *Styles {
	return active.Load()
}

// ApplyPalette publishes the styles for p. A disabled palette renders
// without color.
func ApplyPalette(p Palette) {
	active.Store(newStyles(p))
}

func newStyles(p Palette) *Styles {
	if p.Disabled {
		p = Palette{Name: p.Name, Disabled: true}
	}

	return &Styles{
		Palette: p,

		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(p.Primary).
			MarginBottom(1),

		Subtitle: lipgloss.NewStyle().
			Foreground(p.Secondary).
			Italic(true),

		Tagline: lipgloss.NewStyle().
			Foreground(p.Muted).
			Italic(true),

		SuccessStyle: lipgloss.NewStyle().
			Foreground(p.Success).
			Bold(true),

		WarningStyle: lipgloss.NewStyle().
			Foreground(p.Warning),

		ErrorStyle: lipgloss.NewStyle().
			Foreground(p.Error).
			Bold(true),

		MutedStyle: lipgloss.NewStyle().
			Foreground(p.Muted),

		HintStyle: lipgloss.NewStyle().
			Foreground(p.Muted).
			Italic(true),

		PrimaryStyle: lipgloss.NewStyle().
			Foreground(p.Primary).
			Bold(true),

		SuccessBox: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(p.Success).
			Padding(0, 1).
			MarginTop(1).
			MarginBottom(1),

		TableHeader: lipgloss.NewStyle().
			Bold(true).
			Foreground(p.Primary).
			BorderStyle(lipgloss.NormalBorder()).
			BorderBottom(true).
			BorderForeground(p.Muted),

		StatusSuccess: lipgloss.NewStyle().Foreground(p.Success).SetString("✓"),
		StatusPending: lipgloss.NewStyle().Foreground(p.Muted).SetString("○"),
	}
}

func Primary() lipgloss.Color { return Active().Primary }
func Muted() lipgloss.Color   { return Active().Muted }
func Warning() lipgloss.Color { return Active().Warning }
func Error() lipgloss.Color   { return Active().Palette.Error }
func Border() lipgloss.Color  { return Active().Border }

func Title() lipgloss.Style         { return Active().Title }
func Subtitle() lipgloss.Style      { return Active().Subtitle }
func SuccessStyle() lipgloss.Style  { return Active().SuccessStyle }
func WarningStyle() lipgloss.Style  { return Active().WarningStyle }
func ErrorStyle() lipgloss.Style    { return Active().ErrorStyle }
func MutedStyle() lipgloss.Style    { return Active().MutedStyle }
func HintStyle() lipgloss.Style     { return Active().HintStyle }
func PrimaryStyle() lipgloss.Style  { return Active().PrimaryStyle }
func SuccessBox() lipgloss.Style    { return Active().SuccessBox }
func TableHeader() lipgloss.Style   { return Active().TableHeader }
func StatusSuccess() lipgloss.Style { return Active().StatusSuccess }
func StatusPending() lipgloss.Style { return Active().StatusPending }

// Header renders a full-width title bar.
func Header(title string) string {
	width := terminalWidth()
	if width > 80 {
		width = 80
	}
	s := Active()
	return lipgloss.NewStyle().
		Foreground(s.Background).
		Background(s.Primary).
		Bold(true).
		Padding(0, 1).
		Width(width).
		Render(strings.ToUpper(title))
}

// Swatch renders a color sample followed by its hex code.
func Swatch(hex string) string {
	if CurrentPreferences().NoColor {
		return hex
	}
	return lipgloss.NewStyle().Foreground(lipgloss.Color(hex)).Render("██") + " " + hex
}

func terminalWidth() int {
	width, _, err := term.GetSize(os.Stdout.Fd())
	if err != nil || width <= 0 {
		return 80
	}
	return width
}
