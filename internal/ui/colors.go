package ui

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/iiroan/folio/internal/theme"
)

// Palette defines the TUI color palette.
type Palette struct {
	Name       string
	Primary    lipgloss.Color
	Secondary  lipgloss.Color
	Accent     lipgloss.Color
	Info       lipgloss.Color
	Success    lipgloss.Color
	Warning    lipgloss.Color
	Error      lipgloss.Color
	Muted      lipgloss.Color
	Background lipgloss.Color
	Foreground lipgloss.Color
	Border     lipgloss.Color
	Highlight  lipgloss.Color
	Disabled   bool
}

func basePalette(mode theme.Mode) Palette {
	if mode == theme.Light {
		return Palette{
			Name:       "light",
			Info:       lipgloss.Color("#0078D4"),
			Success:    lipgloss.Color("#15803D"),
			Warning:    lipgloss.Color("#B45309"),
			Error:      lipgloss.Color("#DC2626"),
			Muted:      lipgloss.Color("#64748B"),
			Background: lipgloss.Color("#F8FAFC"),
			Foreground: lipgloss.Color("#0F172A"),
		}
	}
	return Palette{
		Name:       "dark",
		Info:       lipgloss.Color("#60A5FA"),
		Success:    lipgloss.Color("#34D399"),
		Warning:    lipgloss.Color("#FBBF24"),
		Error:      lipgloss.Color("#F87171"),
		Muted:      lipgloss.Color("#94A3B8"),
		Background: lipgloss.Color("#0B1120"),
		Foreground: lipgloss.Color("#E2E8F0"),
	}
}

// PaletteFor derives the palette from a color mode and its accent. The
// accent drives the primary color; the secondary, border and highlight
// tones are blends of it against the mode's background and foreground.
func PaletteFor(mode theme.Mode, accent string) Palette {
	p := basePalette(mode)

	bg, _ := colorful.Hex(string(p.Background))
	fg, _ := colorful.Hex(string(p.Foreground))
	c, err := theme.ParseHex(accent)
	if err != nil {
		c = fg
	}
	// Keep the accent readable against the mode's background.
	if c.DistanceLab(bg) < 0.25 {
		c = c.BlendLab(fg, 0.6)
	}

	p.Primary = lipgloss.Color(c.Clamped().Hex())
	p.Accent = lipgloss.Color(c.BlendLab(p.infoColor(), 0.35).Clamped().Hex())
	p.Secondary = lipgloss.Color(c.BlendLab(fg, 0.4).Clamped().Hex())
	p.Highlight = lipgloss.Color(c.BlendLab(fg, 0.25).Clamped().Hex())
	p.Border = lipgloss.Color(c.BlendLab(bg, 0.6).Clamped().Hex())
	return p
}

func (p Palette) infoColor() colorful.Color {
	c, _ := colorful.Hex(string(p.Info))
	return c
}

// DefaultPalette returns the palette of the default dark preferences.
func DefaultPalette() Palette {
	return PaletteFor(theme.Dark, theme.DefaultDarkAccent)
}
