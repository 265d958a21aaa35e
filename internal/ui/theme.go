package ui

import (
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

// HuhTheme returns the form theme for the active palette, so the settings
// form previews the committed accent.
func HuhTheme() *huh.Theme {
	t := huh.ThemeBase()
	if CurrentPreferences().NoColor {
		return t
	}
	p := Active().Palette

	t.Focused.Base = t.Focused.Base.BorderForeground(p.Border)
	t.Focused.Title = t.Focused.Title.Foreground(p.Primary).Bold(true)
	t.Focused.NoteTitle = t.Focused.NoteTitle.Foreground(p.Highlight).Bold(true)
	t.Focused.Description = t.Focused.Description.Foreground(p.Muted)
	t.Focused.ErrorIndicator = t.Focused.ErrorIndicator.Foreground(p.Error)
	t.Focused.ErrorMessage = t.Focused.ErrorMessage.Foreground(p.Error)
	t.Focused.SelectSelector = t.Focused.SelectSelector.Foreground(p.Primary)
	t.Focused.NextIndicator = t.Focused.NextIndicator.Foreground(p.Primary)
	t.Focused.PrevIndicator = t.Focused.PrevIndicator.Foreground(p.Primary)
	t.Focused.Option = t.Focused.Option.Foreground(p.Foreground)
	t.Focused.MultiSelectSelector = t.Focused.MultiSelectSelector.Foreground(p.Primary)
	t.Focused.SelectedOption = t.Focused.SelectedOption.Foreground(p.Accent)
	t.Focused.SelectedPrefix = t.Focused.SelectedPrefix.Foreground(p.Accent)
	t.Focused.UnselectedOption = t.Focused.UnselectedOption.Foreground(p.Foreground)
	t.Focused.UnselectedPrefix = t.Focused.UnselectedPrefix.Foreground(p.Muted)
	t.Focused.FocusedButton = t.Focused.FocusedButton.Foreground(p.Background).Background(p.Primary).Bold(true)
	t.Focused.BlurredButton = t.Focused.BlurredButton.Foreground(p.Foreground).Background(lipgloss.Color(""))

	t.Focused.TextInput.Cursor = t.Focused.TextInput.Cursor.Foreground(p.Primary)
	t.Focused.TextInput.Placeholder = t.Focused.TextInput.Placeholder.Foreground(p.Muted)
	t.Focused.TextInput.Prompt = t.Focused.TextInput.Prompt.Foreground(p.Accent)

	t.Blurred = t.Focused
	t.Blurred.Base = t.Focused.Base.BorderStyle(lipgloss.HiddenBorder())
	t.Blurred.Title = t.Focused.Title.Foreground(p.Muted).Bold(false)
	t.Blurred.NextIndicator = lipgloss.NewStyle()
	t.Blurred.PrevIndicator = lipgloss.NewStyle()

	return t
}
